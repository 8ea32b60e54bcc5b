package pricing

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kailas-cloud/modelcatalog/internal/domain"
	"github.com/kailas-cloud/modelcatalog/internal/domain/catalog"
	dompricing "github.com/kailas-cloud/modelcatalog/internal/domain/pricing"
)

// Service filters catalog models by price.
type Service struct {
	repo Repository
}

// New creates a pricing service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// FilterByInputRange keeps models whose input price lies within r.
func (s *Service) FilterByInputRange(ctx context.Context, r dompricing.Range) ([]catalog.Model, error) {
	return s.filter(ctx, "filter by input range", func(p dompricing.Pricing) bool {
		return r.Contains(p.Input())
	})
}

// FilterByOutputRange keeps models whose output price lies within r.
func (s *Service) FilterByOutputRange(ctx context.Context, r dompricing.Range) ([]catalog.Model, error) {
	return s.filter(ctx, "filter by output range", func(p dompricing.Pricing) bool {
		return r.Contains(p.Output())
	})
}

// FilterByInputOutputRange keeps models whose input price lies within in AND output price within out.
func (s *Service) FilterByInputOutputRange(
	ctx context.Context, in, out dompricing.Range,
) ([]catalog.Model, error) {
	return s.filter(ctx, "filter by input/output range", func(p dompricing.Pricing) bool {
		return in.Contains(p.Input()) && out.Contains(p.Output())
	})
}

// FilterByPriceRange keeps models whose input price lies within [minInput, maxOutput].
// Both bounds apply to the input price.
func (s *Service) FilterByPriceRange(
	ctx context.Context, minInput, maxOutput decimal.Decimal,
) ([]catalog.Model, error) {
	r, err := dompricing.Between("price range", minInput, maxOutput)
	if err != nil {
		return nil, err
	}
	return s.FilterByInputRange(ctx, r)
}

// FindSimilarPrices returns models whose input and output prices both lie within
// ±10% of the named pricing record. The reference model itself is included.
func (s *Service) FindSimilarPrices(ctx context.Context, pricingName string) ([]catalog.Model, error) {
	pricingName = strings.TrimSpace(pricingName)
	if pricingName == "" {
		return nil, domain.NewValidationError("name", "is required")
	}

	ref, err := s.repo.PricingByName(ctx, pricingName)
	if err != nil {
		return nil, fmt.Errorf("get pricing %q: %w", pricingName, err)
	}

	in := dompricing.Band(ref.Input(), dompricing.SimilarityTolerance())
	out := dompricing.Band(ref.Output(), dompricing.SimilarityTolerance())
	return s.FilterByInputOutputRange(ctx, in, out)
}

func (s *Service) filter(
	ctx context.Context, op string, keep func(dompricing.Pricing) bool,
) ([]catalog.Model, error) {
	models, err := s.repo.AllModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := selectPriced(models, keep)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

// selectPriced keeps priced models accepted by keep. Models without pricing never pass.
func selectPriced(models []catalog.Model, keep func(dompricing.Pricing) bool) []catalog.Model {
	out := make([]catalog.Model, 0, len(models))
	for _, m := range models {
		p := m.Pricing()
		if p == nil {
			continue
		}
		if keep(*p) {
			out = append(out, m)
		}
	}
	return out
}
