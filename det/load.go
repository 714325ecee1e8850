package det

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrBadModel indicates a model file that is not a usable serialized tree.
var ErrBadModel = errors.New("det: invalid model file")

// treeSpec is the on-disk JSON form of a serialized tree.
type treeSpec struct {
	// MinVals and MaxVals bound the training region, one entry per dimension.
	MinVals []float64 `json:"min_vals"`
	MaxVals []float64 `json:"max_vals"`

	// Start and End delimit the root node's training point range.
	Start int `json:"start"`
	End   int `json:"end"`

	// Root is the serialized root node.
	Root *nodeSpec `json:"root"`
}

// nodeSpec is the on-disk JSON form of a tree node. A node is a leaf
// when both children are absent.
type nodeSpec struct {
	SplitDim int       `json:"split_dim,omitempty"`
	SplitVal float64   `json:"split_val,omitempty"`
	Density  float64   `json:"density,omitempty"`
	Left     *nodeSpec `json:"left,omitempty"`
	Right    *nodeSpec `json:"right,omitempty"`
}

// Load deserializes a tree from a model file.
// Returns an error wrapping ErrBadModel if the file cannot be read or
// does not describe a usable tree.
func Load(path string) (*Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadModel, err)
	}

	var spec treeSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrBadModel, path, err)
	}

	if len(spec.MaxVals) == 0 || len(spec.MaxVals) != len(spec.MinVals) {
		return nil, fmt.Errorf("%w: %s: inconsistent bounds", ErrBadModel, path)
	}
	if spec.End < spec.Start {
		return nil, fmt.Errorf("%w: %s: negative support range", ErrBadModel, path)
	}
	if spec.Root == nil {
		return nil, fmt.Errorf("%w: %s: missing root node", ErrBadModel, path)
	}

	root, err := buildNode(spec.Root, len(spec.MaxVals))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrBadModel, path, err)
	}

	return &Tree{
		minVals: spec.MinVals,
		maxVals: spec.MaxVals,
		start:   spec.Start,
		end:     spec.End,
		root:    root,
	}, nil
}

// buildNode converts a nodeSpec subtree, checking that splits reference
// valid dimensions and that internal nodes have both children.
func buildNode(spec *nodeSpec, dims int) (*node, error) {
	n := &node{
		splitDim: spec.SplitDim,
		splitVal: spec.SplitVal,
		density:  spec.Density,
	}

	if spec.Left == nil && spec.Right == nil {
		return n, nil
	}
	if spec.Left == nil || spec.Right == nil {
		return nil, errors.New("internal node with a single child")
	}
	if spec.SplitDim < 0 || spec.SplitDim >= dims {
		return nil, fmt.Errorf("split dimension %d out of range", spec.SplitDim)
	}

	var err error
	if n.left, err = buildNode(spec.Left, dims); err != nil {
		return nil, err
	}
	if n.right, err = buildNode(spec.Right, dims); err != nil {
		return nil, err
	}
	return n, nil
}
