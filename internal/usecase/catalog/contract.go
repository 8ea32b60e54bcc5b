package catalog

import (
	"context"

	domcat "github.com/kailas-cloud/modelcatalog/internal/domain/catalog"
)

// ModelReader reads models.
// Single-model lookups return domain.ErrModelNotFound when the model does not exist.
type ModelReader interface {
	AllModels(ctx context.Context) ([]domcat.Model, error)
	ModelByID(ctx context.Context, id int64) (domcat.Model, error)
	ModelByIdentity(ctx context.Context, name, version string) (domcat.Model, error)
	ModelsByName(ctx context.Context, name string) ([]domcat.Model, error)
}

// TaxonomyReader reads providers and fields.
// Lookups by name return domain.ErrNotFound when nothing matches.
type TaxonomyReader interface {
	Providers(ctx context.Context) ([]domcat.Provider, error)
	ProviderByName(ctx context.Context, name string) (domcat.Provider, error)
	Fields(ctx context.Context) ([]domcat.Field, error)
	FieldByName(ctx context.Context, name string) (domcat.Field, error)
}

// Repository is the store contract used by catalog browsing.
type Repository interface {
	ModelReader
	TaxonomyReader
}
