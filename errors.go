package detstream

import "errors"

// Sentinel errors for ensemble evaluation.
// Use errors.Is() to check for specific error conditions.
var (
	// ErrModelLoad indicates a single model file could not be deserialized.
	// Loading skips the offending path and continues with the rest.
	ErrModelLoad = errors.New("detstream: model load failed")

	// ErrNoModels indicates that zero models loaded successfully.
	// The registry is unusable and no queries may be processed.
	ErrNoModels = errors.New("detstream: no models loaded")

	// ErrZeroWeight indicates every model reported zero support for a query,
	// leaving the weighted average undefined.
	ErrZeroWeight = errors.New("detstream: ensemble has zero total support")

	// ErrBadToken indicates a query line contained a token that does not
	// parse as a number. Decoding stops at the offending token.
	ErrBadToken = errors.New("detstream: malformed numeric token")

	// ErrOpenInput indicates the query source could not be opened.
	ErrOpenInput = errors.New("detstream: cannot open query source")

	// ErrOpenOutput indicates the estimate sink could not be opened.
	ErrOpenOutput = errors.New("detstream: cannot open estimate sink")

	// ErrClosed indicates the registry was used after Close.
	ErrClosed = errors.New("detstream: registry closed")
)
