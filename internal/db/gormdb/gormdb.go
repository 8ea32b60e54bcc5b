// Package gormdb opens the SQL catalog database via gorm (sqlite, postgres, mysql).
package gormdb

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"

	"github.com/kailas-cloud/modelcatalog/internal/db"
	"github.com/kailas-cloud/modelcatalog/internal/logger"
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// Config holds connection parameters for a SQL store.
type Config struct {
	Driver       string
	DSN          string
	Replicas     []string
	MaxOpenConns int
	MaxIdleConns int
}

// Store owns a gorm connection pool.
type Store struct {
	gorm *gorm.DB
}

// Open connects to the database. Replica DSNs serve reads through dbresolver.
func Open(cfg Config, log *zap.Logger) (*Store, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("dsn is required")
	}
	if log == nil {
		log = zap.NewNop()
	}

	primary, err := dialector(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, err
	}

	gdb, err := gorm.Open(primary, &gorm.Config{
		Logger:         logger.NewGormLogger(log),
		TranslateError: true,
	})
	if err != nil {
		return nil, &db.Error{Op: db.OpOpen, Err: err}
	}

	if len(cfg.Replicas) > 0 {
		replicas := make([]gorm.Dialector, 0, len(cfg.Replicas))
		for _, dsn := range cfg.Replicas {
			d, err := dialector(cfg.Driver, dsn)
			if err != nil {
				return nil, err
			}
			replicas = append(replicas, d)
		}
		resolver := dbresolver.Register(dbresolver.Config{
			Replicas: replicas,
			Policy:   dbresolver.RandomPolicy{},
		})
		if cfg.MaxOpenConns > 0 {
			resolver = resolver.SetMaxOpenConns(cfg.MaxOpenConns)
		}
		if cfg.MaxIdleConns > 0 {
			resolver = resolver.SetMaxIdleConns(cfg.MaxIdleConns)
		}
		if err := gdb.Use(resolver); err != nil {
			return nil, &db.Error{Op: db.OpOpen, Err: fmt.Errorf("register replicas: %w", err)}
		}
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, &db.Error{Op: db.OpOpen, Err: err}
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	log.Info("SQL store opened",
		zap.String("driver", cfg.Driver),
		zap.Int("replicas", len(cfg.Replicas)),
	)

	return &Store{gorm: gdb}, nil
}

// NewStoreForTest wraps an existing gorm connection (test-only).
func NewStoreForTest(gdb *gorm.DB) *Store {
	return &Store{gorm: gdb}
}

// DB returns the gorm handle for repositories.
func (s *Store) DB() *gorm.DB {
	return s.gorm
}

// Ping checks connectivity of the primary.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.gorm.DB()
	if err != nil {
		return &db.Error{Op: db.OpPing, Err: err}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return &db.Error{Op: db.OpPing, Err: err}
	}
	return nil
}

// Close closes the connection pool.
func (s *Store) Close() {
	if sqlDB, err := s.gorm.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// WaitForReady polls Ping until the database responds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := s.Ping(ctx); err == nil {
		return nil
	}

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for database: %w", ctx.Err())
		case <-ticker.C:
			if err := s.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}

func dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case DriverSQLite, "":
		return sqlite.Open(dsn), nil
	case DriverPostgres:
		return postgres.Open(dsn), nil
	case DriverMySQL:
		return mysql.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}
}
