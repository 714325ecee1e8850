package detstream

// Model is one trained density estimation tree, as exposed by the tree
// library. All methods except Close are pure reads against immutable
// state and safe for concurrent use.
type Model interface {
	// ComputeValue returns the model's density estimate at point.
	// The point must have at least MaxDimension components.
	ComputeValue(point []float64) float64

	// SupportCount returns the number of training observations the
	// model covers. Used as the model's weight in the ensemble.
	SupportCount() int

	// MaxDimension returns the dimensionality of the model's input domain.
	MaxDimension() int

	// Close releases the model's resources.
	Close() error
}

// Loader deserializes a model from a file path.
// The default loader reads trees with det.Load.
type Loader func(path string) (Model, error)

// ModelInfo describes one loaded model, in load order.
type ModelInfo struct {
	// Path is the file the model was loaded from.
	Path string `json:"path"`

	// Dimension is the model's input dimensionality.
	Dimension int `json:"dimension"`

	// Support is the model's training support count.
	Support int `json:"support"`

	// Leaves is the model's leaf count, when the model reports one.
	Leaves int `json:"leaves,omitempty"`
}

// Stats summarizes one streaming run.
type Stats struct {
	// LinesRead is the number of non-sentinel query lines consumed.
	LinesRead int `json:"lines_read"`

	// EstimatesWritten is the number of output lines produced.
	// Always equal to LinesRead: degenerate lines produce a marker line.
	EstimatesWritten int `json:"estimates_written"`

	// MalformedLines counts lines with at least one unparseable token.
	// Such lines are still evaluated with the tokens that did parse.
	MalformedLines int `json:"malformed_lines"`

	// DegenerateLines counts lines for which the whole ensemble reported
	// zero support, producing a NaN marker instead of an estimate.
	DegenerateLines int `json:"degenerate_lines"`
}
