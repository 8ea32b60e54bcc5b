package modelcatalog

import (
	"context"
	"fmt"
	"io"
	"time"

	domcat "github.com/kailas-cloud/modelcatalog/internal/domain/catalog"
	"github.com/kailas-cloud/modelcatalog/internal/seed"
)

// ImportFile loads a YAML catalog file and writes it to the store.
func (c *Client) ImportFile(ctx context.Context, path string) (ImportStats, error) {
	snap, err := seed.Load(path)
	if err != nil {
		return ImportStats{}, fmt.Errorf("load catalog: %w", err)
	}
	return c.importSnapshot(ctx, snap)
}

// Import reads a YAML catalog and writes it to the store.
func (c *Client) Import(ctx context.Context, r io.Reader) (ImportStats, error) {
	snap, err := seed.Decode(r)
	if err != nil {
		return ImportStats{}, fmt.Errorf("decode catalog: %w", err)
	}
	return c.importSnapshot(ctx, snap)
}

func (c *Client) importSnapshot(ctx context.Context, snap domcat.Snapshot) (_ ImportStats, err error) {
	start := time.Now()
	defer func() { c.obs.observe("import", start, err) }()

	stats, err := c.importSvc.Import(ctx, snap)
	if err != nil {
		return ImportStats{}, fmt.Errorf("import catalog: %w", err)
	}
	return ImportStats{
		Providers:  stats.Providers,
		Fields:     stats.Fields,
		Models:     stats.Models,
		Benchmarks: stats.Benchmarks,
	}, nil
}
