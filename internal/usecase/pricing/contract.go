package pricing

import (
	"context"

	"github.com/kailas-cloud/modelcatalog/internal/domain/catalog"
	dompricing "github.com/kailas-cloud/modelcatalog/internal/domain/pricing"
)

// ModelReader reads the catalog snapshot.
type ModelReader interface {
	AllModels(ctx context.Context) ([]catalog.Model, error)
}

// PricingReader resolves a pricing record by its unique name.
// Returns domain.ErrModelNotFound when the name does not resolve.
type PricingReader interface {
	PricingByName(ctx context.Context, name string) (dompricing.Pricing, error)
}

// Repository is the store contract used by the price filters.
type Repository interface {
	ModelReader
	PricingReader
}
