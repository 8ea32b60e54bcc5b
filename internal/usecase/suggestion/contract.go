package suggestion

import (
	"context"
	"time"

	"github.com/kailas-cloud/modelcatalog/internal/domain/catalog"
)

// CatalogReader reads the reference model and the catalog snapshot.
// Single-model lookups return domain.ErrModelNotFound when the model does not exist.
type CatalogReader interface {
	AllModels(ctx context.Context) ([]catalog.Model, error)
	ModelByID(ctx context.Context, id int64) (catalog.Model, error)
	ModelByIdentity(ctx context.Context, name, version string) (catalog.Model, error)
}

// Recorder observes ranking outcomes (metrics).
type Recorder interface {
	ObserveRanking(kind string, scored, excluded int, elapsed time.Duration, err error)
}

type nopRecorder struct{}

func (nopRecorder) ObserveRanking(string, int, int, time.Duration, error) {}
