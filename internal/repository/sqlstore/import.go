package sqlstore

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kailas-cloud/modelcatalog/internal/db"
	"github.com/kailas-cloud/modelcatalog/internal/domain"
	"github.com/kailas-cloud/modelcatalog/internal/domain/catalog"
)

var modelUpdateColumns = []string{
	"provider_id", "description", "release_date", "status", "deprecated",
	"capabilities", "modalities", "supported_formats", "languages", "metadata", "pricing_id",
}

var pricingUpdateColumns = []string{
	"input", "output", "cached", "training", "normalized", "currency", "unit", "effective_at",
}

// Import upserts a snapshot in a single transaction, keyed by natural keys.
// A model's field links and benchmarks are replaced by the snapshot's.
func (r *Repo) Import(ctx context.Context, snap catalog.Snapshot) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		providerIDs, err := upsertProviders(tx, snap)
		if err != nil {
			return err
		}
		fieldIDs, err := upsertFields(tx, snap)
		if err != nil {
			return err
		}
		for _, m := range snap.Models {
			if err := upsertModel(tx, m, providerIDs, fieldIDs); err != nil {
				return fmt.Errorf("model %s: %w", m.Identity(), err)
			}
		}
		return nil
	})
	if err == nil || errors.Is(err, domain.ErrInvalidCatalog) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
}

func upsertProviders(tx *gorm.DB, snap catalog.Snapshot) (map[string]int64, error) {
	names := make([]string, 0, len(snap.Providers)+len(snap.Models))
	rows := make([]providerRow, 0, len(snap.Providers))
	for _, p := range snap.Providers {
		rows = append(rows, providerRow{Name: p.Name, Country: p.Country})
		names = append(names, p.Name)
	}
	for _, m := range snap.Models {
		names = append(names, m.ProviderName())
	}

	if len(rows) > 0 {
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"country"}),
		}).Create(&rows).Error
		if err != nil {
			return nil, &db.Error{Op: db.OpUpsert, Err: fmt.Errorf("providers: %w", err)}
		}
	}

	var stored []providerRow
	if err := tx.Where("name IN ?", names).Find(&stored).Error; err != nil {
		return nil, &db.Error{Op: db.OpSelect, Err: err}
	}
	ids := make(map[string]int64, len(stored))
	for _, p := range stored {
		ids[p.Name] = p.ID
	}
	return ids, nil
}

func upsertFields(tx *gorm.DB, snap catalog.Snapshot) (map[string]int64, error) {
	names := make([]string, 0, len(snap.Fields))
	rows := make([]fieldRow, 0, len(snap.Fields))
	for _, f := range snap.Fields {
		rows = append(rows, fieldRow{Name: f.Name})
		names = append(names, f.Name)
	}
	for _, m := range snap.Models {
		names = append(names, m.Fields()...)
	}

	if len(rows) > 0 {
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&rows).Error
		if err != nil {
			return nil, &db.Error{Op: db.OpUpsert, Err: fmt.Errorf("fields: %w", err)}
		}
	}

	ids := make(map[string]int64, len(names))
	if len(names) == 0 {
		return ids, nil
	}
	var stored []fieldRow
	if err := tx.Where("name IN ?", names).Find(&stored).Error; err != nil {
		return nil, &db.Error{Op: db.OpSelect, Err: err}
	}
	for _, f := range stored {
		ids[f.Name] = f.ID
	}
	return ids, nil
}

func upsertModel(tx *gorm.DB, m catalog.Model, providerIDs, fieldIDs map[string]int64) error {
	providerID, ok := providerIDs[m.ProviderName()]
	if !ok {
		return fmt.Errorf("%w: unknown provider %q", domain.ErrInvalidCatalog, m.ProviderName())
	}

	var pricingID *int64
	if p := m.Pricing(); p != nil {
		row := fromPricing(*p)
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns(pricingUpdateColumns),
		}).Create(&row).Error
		if err != nil {
			return &db.Error{Op: db.OpUpsert, Err: fmt.Errorf("pricing %s: %w", p.Name(), err)}
		}
		var stored pricingRow
		if err := tx.Select("id").Where("name = ?", p.Name()).Take(&stored).Error; err != nil {
			return &db.Error{Op: db.OpSelect, Err: err}
		}
		pricingID = &stored.ID
	}

	row, err := fromModel(m, providerID, pricingID)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	err = tx.Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}, {Name: "version"}},
		DoUpdates: clause.AssignmentColumns(modelUpdateColumns),
	}).Create(&row).Error
	if err != nil {
		return &db.Error{Op: db.OpUpsert, Err: err}
	}

	var stored modelRow
	err = tx.Select("id").Where("name = ? AND version = ?", m.Name(), m.Version()).Take(&stored).Error
	if err != nil {
		return &db.Error{Op: db.OpSelect, Err: err}
	}

	if err := tx.Where("model_id = ?", stored.ID).Delete(&modelFieldRow{}).Error; err != nil {
		return &db.Error{Op: db.OpUpsert, Err: err}
	}
	if len(m.Fields()) > 0 {
		links := make([]modelFieldRow, 0, len(m.Fields()))
		for _, name := range m.Fields() {
			fieldID, ok := fieldIDs[name]
			if !ok {
				return fmt.Errorf("%w: unknown field %q", domain.ErrInvalidCatalog, name)
			}
			links = append(links, modelFieldRow{ModelID: stored.ID, FieldID: fieldID})
		}
		if err := tx.Create(&links).Error; err != nil {
			return &db.Error{Op: db.OpUpsert, Err: err}
		}
	}

	if err := tx.Where("model_id = ?", stored.ID).Delete(&benchmarkRow{}).Error; err != nil {
		return &db.Error{Op: db.OpUpsert, Err: err}
	}
	if len(m.Benchmarks()) > 0 {
		rows := make([]benchmarkRow, 0, len(m.Benchmarks()))
		for _, b := range m.Benchmarks() {
			rows = append(rows, fromBenchmark(stored.ID, b))
		}
		if err := tx.Create(&rows).Error; err != nil {
			return &db.Error{Op: db.OpUpsert, Err: err}
		}
	}

	return nil
}
