// Package storage opens the configured catalog backend: gorm for SQL drivers,
// rueidis for valkey. Both expose the same repository contract.
package storage

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/modelcatalog/internal/config"
	"github.com/kailas-cloud/modelcatalog/internal/db/gormdb"
	"github.com/kailas-cloud/modelcatalog/internal/db/valkey"
	"github.com/kailas-cloud/modelcatalog/internal/repository/kvstore"
	"github.com/kailas-cloud/modelcatalog/internal/repository/sqlstore"
	benchmarkuc "github.com/kailas-cloud/modelcatalog/internal/usecase/benchmark"
	cataloguc "github.com/kailas-cloud/modelcatalog/internal/usecase/catalog"
	importeruc "github.com/kailas-cloud/modelcatalog/internal/usecase/importer"
	pricinguc "github.com/kailas-cloud/modelcatalog/internal/usecase/pricing"
)

// Repository is the union of the store contracts used by the use cases.
type Repository interface {
	cataloguc.Repository
	pricinguc.PricingReader
	benchmarkuc.Repository
	importeruc.Repository
}

// conn is the connection lifecycle shared by both backends.
type conn interface {
	Ping(ctx context.Context) error
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Backend is an open catalog store.
type Backend struct {
	Repo   Repository
	driver string
	conn   conn
	sql    *gormdb.Store
}

// Open connects to the configured backend and waits until it answers.
// SQL backends are migrated when cfg.AutoMigrate is set.
func Open(ctx context.Context, cfg config.DatabaseConfig, log *zap.Logger) (*Backend, error) {
	if log == nil {
		log = zap.NewNop()
	}

	b := &Backend{driver: cfg.Driver}
	switch {
	case cfg.Driver == config.DriverValkey:
		s, err := valkey.NewStore(valkey.Config{
			Addrs:    cfg.Addrs,
			Password: cfg.Password,
		})
		if err != nil {
			return nil, fmt.Errorf("create valkey store: %w", err)
		}
		b.conn = s
		b.Repo = kvstore.New(s, cfg.KeyPrefix, log)
	case cfg.IsSQL():
		s, err := gormdb.Open(gormdb.Config{
			Driver:       cfg.Driver,
			DSN:          cfg.DSN,
			Replicas:     cfg.Replicas,
			MaxOpenConns: cfg.MaxOpenConns,
			MaxIdleConns: cfg.MaxIdleConns,
		}, log)
		if err != nil {
			return nil, fmt.Errorf("open %s store: %w", cfg.Driver, err)
		}
		b.conn = s
		b.sql = s
		b.Repo = sqlstore.New(s.DB(), log)
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}

	timeout := time.Duration(cfg.ReadinessTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if err := b.conn.WaitForReady(ctx, timeout); err != nil {
		b.Close()
		return nil, fmt.Errorf("database not ready: %w", err)
	}

	if cfg.AutoMigrate {
		if err := b.Migrate(ctx); err != nil {
			b.Close()
			return nil, err
		}
	}

	log.Info("Catalog store ready", zap.String("driver", cfg.Driver))
	return b, nil
}

// Migrate creates or updates the SQL schema. Valkey needs no schema.
func (b *Backend) Migrate(ctx context.Context) error {
	if b.sql == nil {
		return nil
	}
	if err := sqlstore.Migrate(ctx, b.sql.DB()); err != nil {
		return fmt.Errorf("migrate %s store: %w", b.driver, err)
	}
	return nil
}

// Driver returns the configured driver name.
func (b *Backend) Driver() string { return b.driver }

// Ping checks database connectivity.
func (b *Backend) Ping(ctx context.Context) error {
	if err := b.conn.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (b *Backend) Close() {
	if b.conn != nil {
		b.conn.Close()
	}
}
