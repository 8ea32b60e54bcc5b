package matching

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/kailas-cloud/modelcatalog/internal/domain/catalog"
	"github.com/kailas-cloud/modelcatalog/internal/domain/match"
)

const (
	// neutralPrior stands in for an unknown cost or benchmark signal.
	neutralPrior = 0.5
	// strongBenchmark is the average score above which a model counts as strong.
	strongBenchmark = 85.0
)

// normalizeCost maps a non-negative cost onto (0, 1]: cheaper is higher.
func normalizeCost(cost decimal.Decimal, known bool) float64 {
	if !known {
		return neutralPrior
	}
	return 1 / (1 + cost.InexactFloat64())
}

// normalizeBenchmark maps a 0-100 average onto [0, 1].
func normalizeBenchmark(avg float64, known bool) float64 {
	if !known {
		return neutralPrior
	}
	return min(max(avg/100, 0), 1)
}

// explain picks the presentation label. Branch order is fixed:
// strong-within-budget, then lower-cost, then higher-cost.
// Without a constraint the budget is treated as cost+1.
func explain(cost decimal.Decimal, costKnown bool, avg float64, avgKnown bool, maxPrice decimal.NullDecimal) string {
	if !costKnown || !avgKnown {
		return match.ExplanationBalanced
	}

	limit := cost.Add(decimal.NewFromInt(1))
	if maxPrice.Valid {
		limit = maxPrice.Decimal
	}

	switch {
	case avg >= strongBenchmark && cost.LessThanOrEqual(limit):
		return match.ExplanationStrongInCost
	case cost.LessThan(limit):
		return match.ExplanationLowerCost
	default:
		return match.ExplanationHigherCost
	}
}

// rank scores every priced model within the cost ceiling and sorts by score
// descending, model id ascending on ties. Unpriced and over-budget models are
// counted as excluded.
func rank(models []catalog.Model, req match.Request, costWeight float64) (results []match.Result, excluded int) {
	maxPrice := req.MaxPrice()
	results = make([]match.Result, 0, len(models))

	for _, m := range models {
		cost, costKnown := m.Cost()
		if !costKnown {
			excluded++
			continue
		}
		if maxPrice.Valid && cost.GreaterThan(maxPrice.Decimal) {
			excluded++
			continue
		}

		summary, avgKnown := m.BenchmarkSummary()
		avg := summary.AverageScore()

		score := costWeight*normalizeCost(cost, costKnown) +
			(1-costWeight)*normalizeBenchmark(avg, avgKnown)

		r := match.Result{
			ModelID:              m.ID(),
			ModelName:            m.Name(),
			ModelVersion:         m.Version(),
			ProviderName:         m.ProviderName(),
			Score:                score,
			CostPerMillionTokens: decimal.NewNullDecimal(cost),
			Explanation:          explain(cost, costKnown, avg, avgKnown, maxPrice),
		}
		if avgKnown {
			r.AverageBenchmarkScore = &avg
		}
		results = append(results, r)
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].ModelID < results[j].ModelID
	})

	return results, excluded
}
