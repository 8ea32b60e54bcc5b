package importer

import (
	"context"

	"github.com/kailas-cloud/modelcatalog/internal/domain/catalog"
)

// Repository persists a catalog snapshot, upserting by natural keys
// (provider/field/pricing name, model name+version).
type Repository interface {
	Import(ctx context.Context, snap catalog.Snapshot) error
}
