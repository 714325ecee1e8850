package detstream

import (
	"fmt"
	"io"
	"os"
)

// OpenInput opens the query source. An empty path or "-" selects
// standard input; closing that reader is a no-op. A file path that
// cannot be opened returns an error wrapping ErrOpenInput.
func OpenInput(path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(os.Stdin), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenInput, err)
	}
	return f, nil
}

// OpenOutput opens the estimate sink. An empty path or "-" selects
// standard output; closing that writer is a no-op. A file path that
// cannot be created returns an error wrapping ErrOpenOutput.
func OpenOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopWriteCloser{os.Stdout}, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenOutput, err)
	}
	return f, nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
