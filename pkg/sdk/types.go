package modelcatalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// Provider is a model vendor.
type Provider struct {
	ID      int64
	Name    string
	Country string
}

// Field is a taxonomy entry models can be tagged with.
type Field struct {
	ID   int64
	Name string
}

// Pricing is a model's price card. Prices are per million tokens.
type Pricing struct {
	Name        string
	Input       decimal.Decimal
	Output      decimal.Decimal
	Cached      decimal.NullDecimal
	Training    decimal.NullDecimal
	Normalized  decimal.NullDecimal
	Currency    string
	Unit        string
	EffectiveAt time.Time
}

// Benchmark is one benchmark run.
type Benchmark struct {
	ID       int64
	ModelID  int64
	Type     string
	Score    float64
	MaxScore *float64
	RunAt    time.Time
	Metadata map[string]any
}

// BenchmarkSummary is the mean score over a model's benchmark rows.
type BenchmarkSummary struct {
	AverageScore float64
	Count        int
}

// Model is a catalog entry with its provider, pricing and benchmarks.
type Model struct {
	ID               int64
	Name             string
	Version          string
	Provider         Provider
	Description      string
	ReleaseDate      *time.Time
	Status           string
	Deprecated       bool
	Capabilities     []string
	Fields           []string
	Modalities       []string
	SupportedFormats []string
	Languages        []string
	Metadata         map[string]any
	Pricing          *Pricing // nil when unpriced
	Benchmarks       []Benchmark
}

// MatchResult is one ranked model for a task.
type MatchResult struct {
	ModelID               int64
	ModelName             string
	ModelVersion          string
	ProviderName          string
	Score                 float64
	CostPerMillionTokens  decimal.NullDecimal
	AverageBenchmarkScore *float64
	Explanation           string
}

// Suggestion is an alternative to a reference model.
// Negative deltas mean the candidate is cheaper or scores lower.
type Suggestion struct {
	ModelID                   int64
	ModelName                 string
	ModelVersion              string
	ProviderName              string
	SimilarityScore           float64
	CostDeltaPerMillionTokens decimal.NullDecimal
	BenchmarkDelta            *float64
	Explanation               string
}

// PriceBounds is an inclusive price range. A nil Max is unbounded.
type PriceBounds struct {
	Min decimal.Decimal
	Max *decimal.Decimal
}

// ImportStats counts what an import wrote.
type ImportStats struct {
	Providers  int
	Fields     int
	Models     int
	Benchmarks int
}
