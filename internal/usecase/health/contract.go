package health

import (
	"context"

	"github.com/kailas-cloud/modelcatalog/internal/domain/catalog"
)

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// CatalogReader reads the provider list to confirm the catalog is seeded.
type CatalogReader interface {
	Providers(ctx context.Context) ([]catalog.Provider, error)
}
