package modelcatalog

import (
	"context"
	"fmt"
	"time"
)

// Benchmarks returns a model's benchmark runs, newest first.
func (c *Client) Benchmarks(ctx context.Context, modelID int64) (_ []Benchmark, err error) {
	start := time.Now()
	defer func() { c.obs.observe("benchmarks", start, err) }()

	bs, err := c.benchSvc.ListForModel(ctx, modelID)
	if err != nil {
		return nil, fmt.Errorf("list benchmarks: %w", err)
	}
	return fromDomainBenchmarks(bs), nil
}

// BenchmarkSummary returns the mean benchmark score of a model.
// Models without benchmarks fail with ErrNoBenchmarkData.
func (c *Client) BenchmarkSummary(ctx context.Context, modelID int64) (_ BenchmarkSummary, err error) {
	start := time.Now()
	defer func() { c.obs.observe("benchmark_summary", start, err) }()

	s, err := c.benchSvc.SummaryForModel(ctx, modelID)
	if err != nil {
		return BenchmarkSummary{}, fmt.Errorf("benchmark summary: %w", err)
	}
	return BenchmarkSummary{AverageScore: s.AverageScore(), Count: s.Count()}, nil
}
