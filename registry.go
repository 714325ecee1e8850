package detstream

import (
	"fmt"

	"github.com/thejonan/detstream/det"
)

// defaultLoader adapts det.Load to the Loader type.
func defaultLoader(path string) (Model, error) {
	return det.Load(path)
}

// Registry holds the loaded ensemble. It is immutable after LoadRegistry
// returns and safe for concurrent queries until Close is called.
type Registry struct {
	// models are the loaded handles, in load order. The registry owns
	// them exclusively for its lifetime.
	models []Model

	// paths are the source files of the loaded models, index-aligned
	// with models. Kept for diagnostics only.
	paths []string

	// queryDim is the maximum input dimensionality across all models.
	queryDim int

	// logger receives diagnostic messages. May be nil.
	logger Logger

	closed bool
}

// LoadRegistry loads the models at the given paths, in order. A path
// that fails to deserialize is logged and skipped; loading continues
// with the remaining paths. Returns ErrNoModels if no path yields a
// usable model.
func LoadRegistry(paths []string, opts ...RegistryOption) (*Registry, error) {
	cfg := newRegistryConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	r := &Registry{logger: cfg.logger}
	for _, path := range paths {
		m, err := cfg.loader(path)
		if err != nil {
			if cfg.logger != nil {
				cfg.logger.Warn("skipping model", "path", path, "error", err)
			}
			continue
		}

		r.models = append(r.models, m)
		r.paths = append(r.paths, path)
		if d := m.MaxDimension(); d > r.queryDim {
			r.queryDim = d
		}
		if cfg.logger != nil {
			cfg.logger.Info("model loaded", "path", path,
				"dimension", m.MaxDimension(), "support", m.SupportCount())
		}
	}

	if len(r.models) == 0 {
		return nil, fmt.Errorf("%w: %d paths given", ErrNoModels, len(paths))
	}

	return r, nil
}

// Len returns the number of loaded models.
func (r *Registry) Len() int {
	return len(r.models)
}

// QueryDimension returns the length every query vector must have: the
// maximum input dimensionality across all loaded models.
func (r *Registry) QueryDimension() int {
	return r.queryDim
}

// Infos returns a description of each loaded model, in load order.
func (r *Registry) Infos() []ModelInfo {
	infos := make([]ModelInfo, len(r.models))
	for i, m := range r.models {
		infos[i] = ModelInfo{
			Path:      r.paths[i],
			Dimension: m.MaxDimension(),
			Support:   m.SupportCount(),
		}
		if lc, ok := m.(interface{ LeafCount() int }); ok {
			infos[i].Leaves = lc.LeafCount()
		}
	}
	return infos
}

// Close releases every loaded model. The registry must not be queried
// afterwards. Close is idempotent; the first error encountered is
// returned after all models have been released.
func (r *Registry) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true

	var firstErr error
	for i, m := range r.models {
		if err := m.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("closing %s: %w", r.paths[i], err)
		}
	}
	r.models = nil
	return firstErr
}
