package modelcatalog

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/modelcatalog/internal/config"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	db config.DatabaseConfig

	costWeight *float64

	logger     *zap.Logger
	metricsReg prometheus.Registerer
}

// WithSQLite opens a SQLite database file. Use ":memory:" only with a single connection.
func WithSQLite(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.db.Driver = config.DriverSQLite
		c.db.DSN = path
	})
}

// WithPostgres connects to PostgreSQL using a libpq-style DSN.
func WithPostgres(dsn string) Option {
	return optionFunc(func(c *clientConfig) {
		c.db.Driver = config.DriverPostgres
		c.db.DSN = dsn
	})
}

// WithMySQL connects to MySQL using a go-sql-driver DSN.
func WithMySQL(dsn string) Option {
	return optionFunc(func(c *clientConfig) {
		c.db.Driver = config.DriverMySQL
		c.db.DSN = dsn
	})
}

// WithValkey stores the catalog in a Valkey instance.
func WithValkey(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.db.Driver = config.DriverValkey
		c.db.Addrs = []string{addr}
		c.db.Password = password
	})
}

// WithKeyPrefix namespaces Valkey keys. Default: "modelcatalog:".
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.db.KeyPrefix = prefix
	})
}

// WithReadReplicas routes SQL reads to the given DSNs.
func WithReadReplicas(dsns ...string) Option {
	return optionFunc(func(c *clientConfig) {
		c.db.Replicas = append(c.db.Replicas, dsns...)
	})
}

// WithoutMigrations skips schema creation on connect. SQL backends migrate by default.
func WithoutMigrations() Option {
	return optionFunc(func(c *clientConfig) {
		c.db.AutoMigrate = false
	})
}

// WithDefaultCostWeight sets the cost weight used when a match request leaves it unset.
// Default: 0.5.
func WithDefaultCostWeight(w float64) Option {
	return optionFunc(func(c *clientConfig) {
		c.costWeight = &w
	})
}

// WithLogger enables structured logging for client operations.
// Pass nil to disable (default).
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers client metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
