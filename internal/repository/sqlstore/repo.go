// Package sqlstore implements the catalog store on a relational database via gorm.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/kailas-cloud/modelcatalog/internal/db"
	"github.com/kailas-cloud/modelcatalog/internal/domain"
	dombench "github.com/kailas-cloud/modelcatalog/internal/domain/benchmark"
	"github.com/kailas-cloud/modelcatalog/internal/domain/catalog"
	dompricing "github.com/kailas-cloud/modelcatalog/internal/domain/pricing"
)

// Repo implements the catalog store contracts of every usecase.
type Repo struct {
	db  *gorm.DB
	log *zap.Logger
}

// New creates a SQL catalog repository.
func New(gdb *gorm.DB, log *zap.Logger) *Repo {
	if log == nil {
		log = zap.NewNop()
	}
	return &Repo{db: gdb, log: log}
}

// Migrate creates or updates the catalog schema.
func Migrate(ctx context.Context, gdb *gorm.DB) error {
	tx := gdb.WithContext(ctx)
	if err := tx.SetupJoinTable(&modelRow{}, "Fields", &modelFieldRow{}); err != nil {
		return &db.Error{Op: db.OpMigrate, Err: err}
	}
	err := tx.AutoMigrate(
		&providerRow{},
		&fieldRow{},
		&pricingRow{},
		&modelRow{},
		&modelFieldRow{},
		&benchmarkRow{},
	)
	if err != nil {
		return &db.Error{Op: db.OpMigrate, Err: err}
	}
	return nil
}

// AllModels returns every model with provider, pricing, fields and benchmarks, ordered by id.
func (r *Repo) AllModels(ctx context.Context) ([]catalog.Model, error) {
	var rows []modelRow
	err := r.snapshot(ctx, func(tx *gorm.DB) error {
		return preloadModels(tx).Order("id").Find(&rows).Error
	})
	if err != nil {
		return nil, storeErr(db.OpSelect, err)
	}
	return r.toModels(rows), nil
}

// ModelsByName returns all versions of a model name, ordered by id.
func (r *Repo) ModelsByName(ctx context.Context, name string) ([]catalog.Model, error) {
	var rows []modelRow
	err := r.snapshot(ctx, func(tx *gorm.DB) error {
		return preloadModels(tx).Where("name = ?", name).Order("id").Find(&rows).Error
	})
	if err != nil {
		return nil, storeErr(db.OpSelect, err)
	}
	return r.toModels(rows), nil
}

// ModelByID returns a model or domain.ErrModelNotFound.
func (r *Repo) ModelByID(ctx context.Context, id int64) (catalog.Model, error) {
	var row modelRow
	err := r.snapshot(ctx, func(tx *gorm.DB) error {
		return preloadModels(tx).Where("id = ?", id).Take(&row).Error
	})
	if err != nil {
		return catalog.Model{}, notFoundOr(err, domain.ErrModelNotFound)
	}
	return toModel(row, r.log), nil
}

// ModelByIdentity returns the model with the given name and version or domain.ErrModelNotFound.
func (r *Repo) ModelByIdentity(ctx context.Context, name, version string) (catalog.Model, error) {
	var row modelRow
	err := r.snapshot(ctx, func(tx *gorm.DB) error {
		return preloadModels(tx).Where("name = ? AND version = ?", name, version).Take(&row).Error
	})
	if err != nil {
		return catalog.Model{}, notFoundOr(err, domain.ErrModelNotFound)
	}
	return toModel(row, r.log), nil
}

// PricingByName returns a pricing record or domain.ErrModelNotFound.
func (r *Repo) PricingByName(ctx context.Context, name string) (dompricing.Pricing, error) {
	var row pricingRow
	if err := r.db.WithContext(ctx).Where("name = ?", name).Take(&row).Error; err != nil {
		return dompricing.Pricing{}, notFoundOr(err, domain.ErrModelNotFound)
	}
	return toPricing(row), nil
}

// Benchmarks returns the model's benchmarks, newest first.
func (r *Repo) Benchmarks(ctx context.Context, modelID int64) ([]dombench.Benchmark, error) {
	if err := r.ensureModel(ctx, modelID); err != nil {
		return nil, err
	}

	var rows []benchmarkRow
	err := r.db.WithContext(ctx).
		Where("model_id = ?", modelID).
		Order("run_at DESC").Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, storeErr(db.OpSelect, err)
	}

	out := make([]dombench.Benchmark, 0, len(rows))
	for _, row := range rows {
		out = append(out, toBenchmark(row))
	}
	return out, nil
}

// BenchmarkSummary aggregates the model's scores in SQL. ok is false when there are no rows.
func (r *Repo) BenchmarkSummary(ctx context.Context, modelID int64) (dombench.Summary, bool, error) {
	if err := r.ensureModel(ctx, modelID); err != nil {
		return dombench.Summary{}, false, err
	}

	var agg summaryRow
	err := r.db.WithContext(ctx).
		Model(&benchmarkRow{}).
		Select("AVG(score) AS avg_score, COUNT(*) AS row_count").
		Where("model_id = ?", modelID).
		Scan(&agg).Error
	if err != nil {
		return dombench.Summary{}, false, storeErr(db.OpSelect, err)
	}
	if agg.AvgScore == nil {
		return dombench.Summary{}, false, nil
	}

	s, ok := dombench.NewSummary(*agg.AvgScore, int(agg.RowCount))
	return s, ok, nil
}

// Providers returns every provider ordered by name.
func (r *Repo) Providers(ctx context.Context) ([]catalog.Provider, error) {
	var rows []providerRow
	if err := r.db.WithContext(ctx).Order("name").Find(&rows).Error; err != nil {
		return nil, storeErr(db.OpSelect, err)
	}
	out := make([]catalog.Provider, 0, len(rows))
	for _, row := range rows {
		out = append(out, toProvider(row))
	}
	return out, nil
}

// ProviderByName returns a provider or domain.ErrNotFound.
func (r *Repo) ProviderByName(ctx context.Context, name string) (catalog.Provider, error) {
	var row providerRow
	if err := r.db.WithContext(ctx).Where("name = ?", name).Take(&row).Error; err != nil {
		return catalog.Provider{}, notFoundOr(err, domain.ErrNotFound)
	}
	return toProvider(row), nil
}

// Fields returns every field ordered by name.
func (r *Repo) Fields(ctx context.Context) ([]catalog.Field, error) {
	var rows []fieldRow
	if err := r.db.WithContext(ctx).Order("name").Find(&rows).Error; err != nil {
		return nil, storeErr(db.OpSelect, err)
	}
	out := make([]catalog.Field, 0, len(rows))
	for _, row := range rows {
		out = append(out, toField(row))
	}
	return out, nil
}

// FieldByName returns a field or domain.ErrNotFound.
func (r *Repo) FieldByName(ctx context.Context, name string) (catalog.Field, error) {
	var row fieldRow
	if err := r.db.WithContext(ctx).Where("name = ?", name).Take(&row).Error; err != nil {
		return catalog.Field{}, notFoundOr(err, domain.ErrNotFound)
	}
	return toField(row), nil
}

// snapshot runs fn in one read-only transaction so a model and its preloaded
// associations are read from the same committed state. Replicas are not used
// inside a transaction.
func (r *Repo) snapshot(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn, &sql.TxOptions{
		Isolation: snapshotIsolation(r.db.Dialector.Name()),
		ReadOnly:  true,
	})
}

// snapshotIsolation returns the weakest level that keeps one snapshot for the
// whole transaction. SQLite transactions are serializable already.
func snapshotIsolation(dialect string) sql.IsolationLevel {
	switch dialect {
	case "postgres", "mysql":
		return sql.LevelRepeatableRead
	default:
		return sql.LevelDefault
	}
}

func preloadModels(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Provider").
		Preload("Pricing").
		Preload("Fields", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("fields.name")
		}).
		Preload("Benchmarks", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("run_at DESC").Order("id DESC")
		})
}

func (r *Repo) toModels(rows []modelRow) []catalog.Model {
	out := make([]catalog.Model, 0, len(rows))
	for _, row := range rows {
		out = append(out, toModel(row, r.log))
	}
	return out
}

func (r *Repo) ensureModel(ctx context.Context, id int64) error {
	var n int64
	if err := r.db.WithContext(ctx).Model(&modelRow{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return storeErr(db.OpSelect, err)
	}
	if n == 0 {
		return domain.ErrModelNotFound
	}
	return nil
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, &db.Error{Op: op, Err: err})
}

func notFoundOr(err, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return storeErr(db.OpSelect, err)
}
