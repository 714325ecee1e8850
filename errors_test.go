package detstream

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorMessages(t *testing.T) {
	sentinels := []struct {
		name string
		err  error
	}{
		{"ErrModelLoad", ErrModelLoad},
		{"ErrNoModels", ErrNoModels},
		{"ErrZeroWeight", ErrZeroWeight},
		{"ErrBadToken", ErrBadToken},
		{"ErrOpenInput", ErrOpenInput},
		{"ErrOpenOutput", ErrOpenOutput},
		{"ErrClosed", ErrClosed},
	}

	for _, tt := range sentinels {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.HasPrefix(tt.err.Error(), "detstream: ") {
				t.Errorf("%s: message %q does not have 'detstream: ' prefix", tt.name, tt.err)
			}

			wrapped := fmt.Errorf("operation failed: %w", tt.err)
			if !errors.Is(wrapped, tt.err) {
				t.Errorf("errors.Is(wrapped, %s) = false, want true", tt.name)
			}

			doubleWrapped := fmt.Errorf("outer context: %w", wrapped)
			if !errors.Is(doubleWrapped, tt.err) {
				t.Errorf("errors.Is(doubleWrapped, %s) = false, want true", tt.name)
			}
		})
	}
}
