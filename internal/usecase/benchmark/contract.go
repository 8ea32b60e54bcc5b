package benchmark

import (
	"context"

	dombench "github.com/kailas-cloud/modelcatalog/internal/domain/benchmark"
)

// Repository defines the benchmark read contract.
// Both methods return domain.ErrModelNotFound for an unknown model id.
type Repository interface {
	// Benchmarks returns the model's rows ordered by run time descending.
	Benchmarks(ctx context.Context, modelID int64) ([]dombench.Benchmark, error)
	// BenchmarkSummary returns the mean score and row count; ok is false for zero rows.
	BenchmarkSummary(ctx context.Context, modelID int64) (s dombench.Summary, ok bool, err error)
}
