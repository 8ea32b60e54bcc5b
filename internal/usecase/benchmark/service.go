package benchmark

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/modelcatalog/internal/domain"
	dombench "github.com/kailas-cloud/modelcatalog/internal/domain/benchmark"
)

// Service summarizes benchmark rows per model.
type Service struct {
	repo Repository
}

// New creates a benchmark service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListForModel returns all benchmark rows of a model, newest first.
func (s *Service) ListForModel(ctx context.Context, modelID int64) ([]dombench.Benchmark, error) {
	if err := validateModelID(modelID); err != nil {
		return nil, err
	}

	rows, err := s.repo.Benchmarks(ctx, modelID)
	if err != nil {
		return nil, fmt.Errorf("list benchmarks for model %d: %w", modelID, err)
	}
	return rows, nil
}

// SummaryForModel returns the mean score and row count.
// A model without benchmarks yields domain.ErrNoBenchmarkData, never a zero summary.
func (s *Service) SummaryForModel(ctx context.Context, modelID int64) (dombench.Summary, error) {
	if err := validateModelID(modelID); err != nil {
		return dombench.Summary{}, err
	}

	summary, ok, err := s.repo.BenchmarkSummary(ctx, modelID)
	if err != nil {
		return dombench.Summary{}, fmt.Errorf("summarize benchmarks for model %d: %w", modelID, err)
	}
	if !ok {
		return dombench.Summary{}, fmt.Errorf("summarize benchmarks for model %d: %w", modelID, domain.ErrNoBenchmarkData)
	}
	return summary, nil
}

// AggregationForModel always answers; the average is nil when the model has no benchmarks.
func (s *Service) AggregationForModel(ctx context.Context, modelID int64) (dombench.Aggregation, error) {
	if err := validateModelID(modelID); err != nil {
		return dombench.Aggregation{}, err
	}

	summary, ok, err := s.repo.BenchmarkSummary(ctx, modelID)
	if err != nil {
		return dombench.Aggregation{}, fmt.Errorf("aggregate benchmarks for model %d: %w", modelID, err)
	}
	return dombench.AggregationOf(summary, ok), nil
}

func validateModelID(id int64) error {
	if id <= 0 {
		return domain.NewValidationError("modelId", "must be a positive integer")
	}
	return nil
}
