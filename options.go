package detstream

import "runtime"

// MaxWorkers is the maximum number of evaluation workers per query.
const MaxWorkers = 64

// DefaultWorkers returns the default evaluation worker count: one per
// CPU, capped at MaxWorkers.
func DefaultWorkers() int {
	n := runtime.NumCPU()
	if n > MaxWorkers {
		n = MaxWorkers
	}
	if n < 1 {
		n = 1
	}
	return n
}

// RegistryOption configures registry loading.
type RegistryOption func(*registryConfig)

// registryConfig holds configuration for LoadRegistry.
type registryConfig struct {
	// loader deserializes one model file.
	loader Loader

	// logger receives diagnostic messages. May be nil.
	logger Logger
}

// newRegistryConfig returns a registryConfig with default values.
func newRegistryConfig() *registryConfig {
	return &registryConfig{
		loader: defaultLoader,
	}
}

// WithLoader sets a custom model loader.
// Useful for testing or for alternative serialization formats.
// If not set, models are loaded with det.Load.
func WithLoader(loader Loader) RegistryOption {
	return func(c *registryConfig) {
		if loader != nil {
			c.loader = loader
		}
	}
}

// WithLogger sets a logger for diagnostic output.
// If not set, logging is disabled.
func WithLogger(logger Logger) RegistryOption {
	return func(c *registryConfig) {
		c.logger = logger
	}
}

// EvalOption configures an Evaluator.
type EvalOption func(*evalConfig)

// evalConfig holds configuration for Evaluator construction.
type evalConfig struct {
	// workers is the number of concurrent per-model evaluations.
	workers int
}

// WithWorkers sets the number of concurrent per-model evaluations for
// one query. Values are clamped to the range [1, MaxWorkers].
// Default is DefaultWorkers().
func WithWorkers(n int) EvalOption {
	return func(c *evalConfig) {
		if n < 1 {
			n = 1
		}
		if n > MaxWorkers {
			n = MaxWorkers
		}
		c.workers = n
	}
}

// Logger is the interface for diagnostic logging.
// Compatible with slog, zap, logrus, and other structured loggers.
type Logger interface {
	// Debug logs a debug-level message with optional key-value pairs.
	Debug(msg string, keysAndValues ...any)

	// Info logs an info-level message with optional key-value pairs.
	Info(msg string, keysAndValues ...any)

	// Warn logs a warning-level message with optional key-value pairs.
	Warn(msg string, keysAndValues ...any)

	// Error logs an error-level message with optional key-value pairs.
	Error(msg string, keysAndValues ...any)
}
