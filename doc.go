// Package detstream evaluates ensembles of pre-trained density
// estimation trees against a stream of query points.
//
// The package serves two primary use cases:
//
//  1. Programmatic API - LoadRegistry loads an ensemble of serialized
//     tree models, and NewEvaluator computes per-point estimates as the
//     support-weighted mean across all models. Evaluator.Run drives the
//     full line-oriented streaming loop over a query source.
//
//  2. CLI via NewCommand - a complete Cobra command tree with
//     "estimate" and "inspect" subcommands, used by cmd/detstream.
//
// # Streaming Protocol
//
// Queries arrive one per line as whitespace-separated numeric tokens.
// Each line is decoded to a vector of the registry's query dimension
// (the maximum dimensionality across loaded models), missing trailing
// components default to zero, and one estimate is written per line in
// input order. The first zero-length line terminates the stream.
//
// # Thread Safety
//
// A loaded Registry is immutable and its models are queried
// concurrently within a single evaluation; the combination of
// per-model results is position-ordered, so estimates never depend on
// goroutine scheduling. Lines are processed strictly sequentially.
//
// # Model Files
//
// Tree deserialization and single-tree evaluation belong to the det
// subpackage. A loader for other formats can be supplied with
// WithLoader.
package detstream
