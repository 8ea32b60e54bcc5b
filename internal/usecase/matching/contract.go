package matching

import (
	"context"
	"time"

	"github.com/kailas-cloud/modelcatalog/internal/domain/catalog"
)

// CatalogReader reads the catalog snapshot with pricing and benchmarks attached.
type CatalogReader interface {
	AllModels(ctx context.Context) ([]catalog.Model, error)
}

// Recorder observes ranking outcomes (metrics).
type Recorder interface {
	ObserveRanking(kind string, scored, excluded int, elapsed time.Duration, err error)
}

type nopRecorder struct{}

func (nopRecorder) ObserveRanking(string, int, int, time.Duration, error) {}
