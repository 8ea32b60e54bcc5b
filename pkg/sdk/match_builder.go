package modelcatalog

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kailas-cloud/modelcatalog/internal/domain/match"
)

// MatchBuilder is a fluent builder for task-matching queries.
type MatchBuilder struct {
	client *Client

	task       string
	maxPrice   *decimal.Decimal
	costWeight *float64
	limit      int
}

// Match starts a ranking of the catalog for a task.
// The description is echoed back and does not influence ranking.
func (c *Client) Match(task string) *MatchBuilder {
	return &MatchBuilder{client: c, task: task}
}

// MaxPrice excludes models whose cost per million tokens exceeds p.
func (b *MatchBuilder) MaxPrice(p decimal.Decimal) *MatchBuilder {
	b.maxPrice = &p
	return b
}

// CostWeight sets the weight of cost against benchmark quality, within [0,1].
// 1 ranks purely by price, 0 purely by benchmarks.
func (b *MatchBuilder) CostWeight(w float64) *MatchBuilder {
	b.costWeight = &w
	return b
}

// Limit caps the number of results. Zero returns all.
func (b *MatchBuilder) Limit(n int) *MatchBuilder {
	b.limit = n
	return b
}

// Do validates the query and returns ranked results, best first.
func (b *MatchBuilder) Do(ctx context.Context) (_ []MatchResult, err error) {
	start := time.Now()
	defer func() { b.client.obs.observe("match", start, err) }()

	req, err := match.NewRequest(match.Params{
		TaskDescription: b.task,
		MaxPrice:        b.maxPrice,
		CostWeight:      b.costWeight,
		Limit:           b.limit,
	})
	if err != nil {
		return nil, err //nolint:wrapcheck // validation error names the field
	}

	results, err := b.client.matchSvc.MatchModelsForTask(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("match models: %w", err)
	}
	return fromMatchResults(results), nil
}
