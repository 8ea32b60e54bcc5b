package match

import "github.com/shopspring/decimal"

// Explanations attached to match results.
const (
	ExplanationBalanced     = "balanced trade-off between cost and benchmark performance"
	ExplanationStrongInCost = "strong benchmarks while staying within cost constraints"
	ExplanationLowerCost    = "prioritizes lower cost while maintaining reasonable performance"
	ExplanationHigherCost   = "higher performance at a relatively higher cost"
)

// Result is one ranked model for a task.
type Result struct {
	ModelID               int64
	ModelName             string
	ModelVersion          string
	ProviderName          string
	Score                 float64
	CostPerMillionTokens  decimal.NullDecimal
	AverageBenchmarkScore *float64
	Explanation           string
}
