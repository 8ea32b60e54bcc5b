package suggestion

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/kailas-cloud/modelcatalog/internal/domain/capability"
	"github.com/kailas-cloud/modelcatalog/internal/domain/catalog"
	domsug "github.com/kailas-cloud/modelcatalog/internal/domain/suggestion"
)

const (
	capabilityWeight = 0.6
	deltaWeight      = 0.2
	// deltaScale softens deltas before tanh squashing.
	deltaScale = 10.0
)

// profile is the part of a model that similarity scoring looks at.
type profile struct {
	capabilities capability.Set
	cost         decimal.Decimal
	costKnown    bool
	avg          float64
	avgKnown     bool
}

func profileOf(m catalog.Model) profile {
	cost, costKnown := m.Cost()
	summary, avgKnown := m.BenchmarkSummary()
	return profile{
		capabilities: m.Capabilities(),
		cost:         cost,
		costKnown:    costKnown,
		avg:          summary.AverageScore(),
		avgKnown:     avgKnown,
	}
}

// score compares a candidate against the reference. The result is
// jaccard*0.6 ± 0.2 per delta and is deliberately left unnormalized.
func score(ref profile, cand catalog.Model) domsug.Result {
	c := profileOf(cand)

	r := domsug.Result{
		ModelID:      cand.ID(),
		ModelName:    cand.Name(),
		ModelVersion: cand.Version(),
		ProviderName: cand.ProviderName(),
	}

	jaccard := capability.Jaccard(ref.capabilities, c.capabilities)

	var costComponent, benchComponent float64
	if ref.costKnown && c.costKnown {
		delta := c.cost.Sub(ref.cost)
		r.CostDeltaPerMillionTokens = decimal.NewNullDecimal(delta)
		costComponent = -math.Tanh(delta.InexactFloat64()/deltaScale) * deltaWeight
	}
	if ref.avgKnown && c.avgKnown {
		delta := c.avg - ref.avg
		r.BenchmarkDelta = &delta
		benchComponent = math.Tanh(delta/deltaScale) * deltaWeight
	}

	r.SimilarityScore = jaccard*capabilityWeight + costComponent + benchComponent
	r.Explanation = explain(r)
	return r
}

// explain checks cost first, then benchmarks.
func explain(r domsug.Result) string {
	switch {
	case r.CostDeltaPerMillionTokens.Valid && r.CostDeltaPerMillionTokens.Decimal.IsNegative():
		return domsug.ExplanationCheaper
	case r.BenchmarkDelta != nil && *r.BenchmarkDelta > 0:
		return domsug.ExplanationBetterBenches
	default:
		return domsug.ExplanationSimilar
	}
}

// rankAgainst scores every model except the reference and sorts by score
// descending, model id ascending on ties.
func rankAgainst(ref catalog.Model, models []catalog.Model) []domsug.Result {
	target := profileOf(ref)
	results := make([]domsug.Result, 0, len(models))
	for _, m := range models {
		if m.ID() == ref.ID() {
			continue
		}
		results = append(results, score(target, m))
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].SimilarityScore != results[j].SimilarityScore {
			return results[i].SimilarityScore > results[j].SimilarityScore
		}
		return results[i].ModelID < results[j].ModelID
	})
	return results
}
