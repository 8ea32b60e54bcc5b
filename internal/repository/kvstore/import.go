package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/kailas-cloud/modelcatalog/internal/db"
	"github.com/kailas-cloud/modelcatalog/internal/domain"
	"github.com/kailas-cloud/modelcatalog/internal/domain/catalog"
)

// Import upserts a snapshot, keeping the ids of records that already exist.
// Documents are written in one pipelined round-trip; identity keys follow.
// There is no transaction: a failure part-way leaves earlier writes in place.
func (r *Repo) Import(ctx context.Context, snap catalog.Snapshot) error {
	var items []db.JSONSetItem

	providers := make(map[string]providerDoc, len(snap.Providers))
	for _, p := range snap.Providers {
		var existing providerDoc
		id, err := r.resolveID(ctx, r.providerKey(p.Name), "provider", &existing, func() int64 { return existing.ID })
		if err != nil {
			return err
		}
		d := providerDoc{ID: id, Name: p.Name, Country: p.Country}
		providers[p.Name] = d
		if items, err = appendDoc(items, r.providerKey(p.Name), d); err != nil {
			return err
		}
	}

	for _, f := range snap.Fields {
		var existing fieldDoc
		id, err := r.resolveID(ctx, r.fieldKey(f.Name), "field", &existing, func() int64 { return existing.ID })
		if err != nil {
			return err
		}
		if items, err = appendDoc(items, r.fieldKey(f.Name), fieldDoc{ID: id, Name: f.Name}); err != nil {
			return err
		}
	}

	identities := make(map[string]int64, len(snap.Models))
	for _, m := range snap.Models {
		doc, err := r.buildModelDoc(ctx, m, providers)
		if err != nil {
			return fmt.Errorf("model %s: %w", m.Identity(), err)
		}
		if items, err = appendDoc(items, r.modelKey(doc.ID), doc); err != nil {
			return err
		}
		if doc.Pricing != nil {
			if items, err = appendDoc(items, r.pricingKey(doc.Pricing.Name), doc.Pricing); err != nil {
				return err
			}
		}
		identities[r.identityKey(m.Name(), m.Version())] = doc.ID
	}

	if err := r.store.JSONSetMulti(ctx, items); err != nil {
		return storeErr(err)
	}
	for key, id := range identities {
		if err := r.store.Set(ctx, key, []byte(strconv.FormatInt(id, 10))); err != nil {
			return storeErr(err)
		}
	}
	return nil
}

func (r *Repo) buildModelDoc(ctx context.Context, m catalog.Model, providers map[string]providerDoc) (modelDoc, error) {
	provider, ok := providers[m.ProviderName()]
	if !ok {
		var existing providerDoc
		if err := r.getJSON(ctx, r.providerKey(m.ProviderName()), &existing); err != nil {
			if errors.Is(err, db.ErrKeyNotFound) {
				return modelDoc{}, fmt.Errorf("%w: unknown provider %q", domain.ErrInvalidCatalog, m.ProviderName())
			}
			return modelDoc{}, err
		}
		provider = existing
	}

	id, err := r.identity(ctx, m.Name(), m.Version())
	if err != nil {
		return modelDoc{}, err
	}
	if id == 0 {
		if id, err = r.next(ctx, "model"); err != nil {
			return modelDoc{}, err
		}
	}

	caps, err := json.Marshal(m.Capabilities())
	if err != nil {
		return modelDoc{}, fmt.Errorf("encode capabilities: %w", err)
	}

	doc := modelDoc{
		ID:               id,
		Name:             m.Name(),
		Version:          m.Version(),
		Provider:         provider,
		Description:      m.Description(),
		ReleaseDate:      m.ReleaseDate(),
		Status:           m.Status(),
		Deprecated:       m.Deprecated(),
		Capabilities:     caps,
		Fields:           m.Fields(),
		Modalities:       m.Modalities(),
		SupportedFormats: m.SupportedFormats(),
		Languages:        m.Languages(),
		Metadata:         m.Metadata(),
	}

	if p := m.Pricing(); p != nil {
		var existing pricingDoc
		pid, err := r.resolveID(ctx, r.pricingKey(p.Name()), "pricing", &existing, func() int64 { return existing.ID })
		if err != nil {
			return modelDoc{}, err
		}
		doc.Pricing = newPricingDoc(pid, *p)
	}

	for _, b := range m.Benchmarks() {
		bid, err := r.next(ctx, "benchmark")
		if err != nil {
			return modelDoc{}, err
		}
		doc.Benchmarks = append(doc.Benchmarks, benchmarkDoc{
			ID:       bid,
			Type:     b.Type(),
			Score:    b.Score(),
			MaxScore: b.MaxScore(),
			RunAt:    b.RunAt(),
			Metadata: b.Metadata(),
		})
	}

	return doc, nil
}

// resolveID reuses the id of the document stored at key, or allocates the next one.
func (r *Repo) resolveID(ctx context.Context, key, kind string, existing any, id func() int64) (int64, error) {
	err := r.getJSON(ctx, key, existing)
	switch {
	case err == nil:
		return id(), nil
	case errors.Is(err, db.ErrKeyNotFound):
		return r.next(ctx, kind)
	default:
		return 0, err
	}
}

func (r *Repo) next(ctx context.Context, kind string) (int64, error) {
	id, err := r.store.Incr(ctx, r.seqKey(kind))
	if err != nil {
		return 0, storeErr(err)
	}
	return id, nil
}

func appendDoc(items []db.JSONSetItem, key string, v any) ([]db.JSONSetItem, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return items, fmt.Errorf("encode %s: %w", key, err)
	}
	return append(items, db.JSONSetItem{Key: key, Path: "$", Data: data}), nil
}
