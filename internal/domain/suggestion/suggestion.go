// Package suggestion holds the reference-model target and similarity results.
package suggestion

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kailas-cloud/modelcatalog/internal/domain"
)

// Explanations attached to suggestions, in the order they are checked.
const (
	ExplanationCheaper       = "cheaper with comparable capabilities"
	ExplanationBetterBenches = "better benchmarks with similar capabilities"
	ExplanationSimilar       = "similar capability profile"
)

// Target identifies the reference model, either by id or by name and version.
type Target struct {
	id      int64
	name    string
	version string
}

// ByID targets a model by its catalog id.
func ByID(id int64) (Target, error) {
	if id <= 0 {
		return Target{}, domain.NewValidationError("modelId", "must be a positive integer")
	}
	return Target{id: id}, nil
}

// ByIdentity targets a model by its unique name and version.
func ByIdentity(name, version string) (Target, error) {
	name, version = strings.TrimSpace(name), strings.TrimSpace(version)
	if name == "" {
		return Target{}, domain.NewValidationError("name", "is required")
	}
	if version == "" {
		return Target{}, domain.NewValidationError("version", "is required")
	}
	return Target{name: name, version: version}, nil
}

// ID returns the target id; zero when targeting by identity.
func (t Target) ID() int64 { return t.id }

// Identity returns name and version; empty when targeting by id.
func (t Target) Identity() (name, version string) { return t.name, t.version }

// Result is one alternative to the reference model.
// SimilarityScore is not bounded to [0,1]: it can go negative for much pricier
// or weaker candidates with overlapping capabilities.
type Result struct {
	ModelID                   int64
	ModelName                 string
	ModelVersion              string
	ProviderName              string
	SimilarityScore           float64
	CostDeltaPerMillionTokens decimal.NullDecimal
	BenchmarkDelta            *float64
	Explanation               string
}
