package detstream

import (
	"context"
	"fmt"
	"sync"
)

// partial is one model's contribution to a query: its density value and
// its support-count weight.
type partial struct {
	value  float64
	weight int64
}

// Evaluator computes weighted ensemble estimates against a registry.
// It holds no per-query state and is safe for sequential reuse; queries
// fan out over a bounded pool of workers and are reduced in model load
// order, so results do not depend on scheduling.
type Evaluator struct {
	// registry supplies the loaded models. Never mutated here.
	registry *Registry

	// workers is the number of concurrent per-model evaluations.
	workers int
}

// NewEvaluator creates an Evaluator over the given registry.
func NewEvaluator(registry *Registry, opts ...EvalOption) *Evaluator {
	cfg := &evalConfig{workers: DefaultWorkers()}
	for _, opt := range opts {
		opt(cfg)
	}

	return &Evaluator{
		registry: registry,
		workers:  cfg.workers,
	}
}

// Evaluate returns the ensemble density estimate for point: the
// support-weighted mean of every model's value at point.
//
// Each model contributes value*support to a compensated accumulator and
// support to an exact integer total; the combination runs over a
// position-indexed result slice, so the estimate is identical regardless
// of how model evaluations interleave. Returns ErrZeroWeight when every
// model reports zero support for the point.
func (e *Evaluator) Evaluate(ctx context.Context, point []float64) (float64, error) {
	if e.registry.closed {
		return 0, ErrClosed
	}

	models := e.registry.models
	parts := make([]partial, len(models))

	workers := e.workers
	if workers > len(models) {
		workers = len(models)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				m := models[i]
				parts[i] = partial{
					value:  m.ComputeValue(point),
					weight: int64(m.SupportCount()),
				}
			}
		}()
	}

dispatch:
	for i := range models {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("evaluation interrupted: %w", err)
	}

	// Reduce single-threaded in model order. Kahan compensation keeps
	// the weighted sum stable for large ensembles and weights.
	var sum, comp float64
	var total int64
	for _, p := range parts {
		total += p.weight

		y := p.value*float64(p.weight) - comp
		t := sum + y
		comp = (t - sum) - y
		sum = t
	}

	if total == 0 {
		return 0, fmt.Errorf("%w: %d models", ErrZeroWeight, len(models))
	}

	return sum / float64(total), nil
}
