package detstream

import (
	"fmt"
	"strconv"
	"strings"
)

// DecodeVector converts one query line into a vector of the given
// dimension. Tokens are split on whitespace and fill the vector left to
// right; unfilled trailing positions stay zero and extra tokens are
// ignored.
//
// A token that does not parse as a number stops the fill at that
// position: positions already filled keep their values, the rest stay
// zero, and the returned error wraps ErrBadToken. The vector is still
// usable, mirroring the under-supplied-token behavior.
func DecodeVector(line string, dimension int) ([]float64, error) {
	vec := make([]float64, dimension)

	tokens := strings.Fields(line)
	if len(tokens) > dimension {
		tokens = tokens[:dimension]
	}

	for i, tok := range tokens {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return vec, fmt.Errorf("%w: field %d %q", ErrBadToken, i+1, tok)
		}
		vec[i] = v
	}

	return vec, nil
}
