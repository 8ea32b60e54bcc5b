// Package catalogtest builds catalog models for tests.
package catalogtest

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kailas-cloud/modelcatalog/internal/domain/benchmark"
	"github.com/kailas-cloud/modelcatalog/internal/domain/capability"
	"github.com/kailas-cloud/modelcatalog/internal/domain/catalog"
	"github.com/kailas-cloud/modelcatalog/internal/domain/pricing"
)

// Option customizes a fixture model.
type Option func(id int64, p *catalog.Params)

// BaseTime is the run time of the newest fixture benchmark.
var BaseTime = time.Date(2025, 4, 14, 12, 0, 0, 0, time.UTC)

// Model builds a model with version "1", provider ExampleAI and no pricing or benchmarks.
func Model(id int64, name string, opts ...Option) catalog.Model {
	p := catalog.Params{
		Name:         name,
		Version:      "1",
		Provider:     catalog.Provider{Name: "ExampleAI", Country: "US"},
		Status:       catalog.StatusActive,
		Capabilities: capability.New(),
	}
	for _, opt := range opts {
		opt(id, &p)
	}
	return catalog.Reconstruct(id, p)
}

// WithPrice attaches pricing with the given input and output prices.
func WithPrice(input, output string) Option {
	return func(id int64, p *catalog.Params) {
		pr := pricing.Reconstruct(id, pricing.Params{
			Name:     p.Name + "-pricing",
			Input:    decimal.RequireFromString(input),
			Output:   decimal.RequireFromString(output),
			Currency: "USD",
			Unit:     "per_million_tokens",
		})
		p.Pricing = &pr
	}
}

// WithNormalized sets the normalized price. Must follow WithPrice.
func WithNormalized(normalized string) Option {
	return func(id int64, p *catalog.Params) {
		params := p.Pricing.Params()
		params.Normalized = decimal.NewNullDecimal(decimal.RequireFromString(normalized))
		pr := pricing.Reconstruct(id, params)
		p.Pricing = &pr
	}
}

// WithBenchmarks attaches one benchmark per score, newest first, one day apart.
func WithBenchmarks(scores ...float64) Option {
	return func(id int64, p *catalog.Params) {
		for i, s := range scores {
			p.Benchmarks = append(p.Benchmarks, benchmark.Reconstruct(
				id*100+int64(i), id, "MMLU", s, nil, BaseTime.Add(-time.Duration(i)*24*time.Hour), nil,
			))
		}
	}
}

// WithCapabilities sets the capability labels.
func WithCapabilities(labels ...string) Option {
	return func(_ int64, p *catalog.Params) {
		p.Capabilities = capability.New(labels...)
	}
}

// WithProvider sets the provider name.
func WithProvider(name string) Option {
	return func(_ int64, p *catalog.Params) {
		p.Provider = catalog.Provider{Name: name}
	}
}

// WithVersion sets the model version.
func WithVersion(version string) Option {
	return func(_ int64, p *catalog.Params) {
		p.Version = version
	}
}

// IDs returns the ids of the models in order.
func IDs(models []catalog.Model) []int64 {
	out := make([]int64, len(models))
	for i, m := range models {
		out[i] = m.ID()
	}
	return out
}
