// Package kvstore implements the catalog store as JSON documents on Valkey.
//
// Key layout under the configured prefix:
//
//	model:{id}                 model aggregate (pricing and benchmarks embedded)
//	identity:{name}:{version}  model id
//	pricing:{name}             pricing record
//	provider:{name}            provider
//	field:{name}               field
//	seq:{kind}                 id sequences
package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"go.uber.org/zap"

	"github.com/kailas-cloud/modelcatalog/internal/db"
	"github.com/kailas-cloud/modelcatalog/internal/domain"
	dombench "github.com/kailas-cloud/modelcatalog/internal/domain/benchmark"
	"github.com/kailas-cloud/modelcatalog/internal/domain/catalog"
	dompricing "github.com/kailas-cloud/modelcatalog/internal/domain/pricing"
)

// store is the consumer interface for the catalog documents (ISP).
type store interface {
	JSONSetMulti(ctx context.Context, items []db.JSONSetItem) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	JSONGetMulti(ctx context.Context, keys []string) ([][]byte, error)
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Incr(ctx context.Context, key string) (int64, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements the catalog store contracts of every usecase.
type Repo struct {
	store  store
	prefix string
	log    *zap.Logger
}

// New creates a key-value catalog repository.
func New(s store, prefix string, log *zap.Logger) *Repo {
	if log == nil {
		log = zap.NewNop()
	}
	return &Repo{store: s, prefix: prefix, log: log}
}

// AllModels returns every model ordered by id.
func (r *Repo) AllModels(ctx context.Context) ([]catalog.Model, error) {
	docs, err := r.modelDocs(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]catalog.Model, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain(r.log))
	}
	return out, nil
}

// ModelsByName returns all versions of a model name, ordered by id.
func (r *Repo) ModelsByName(ctx context.Context, name string) ([]catalog.Model, error) {
	docs, err := r.modelDocs(ctx)
	if err != nil {
		return nil, err
	}
	var out []catalog.Model
	for _, d := range docs {
		if d.Name == name {
			out = append(out, d.toDomain(r.log))
		}
	}
	return out, nil
}

// ModelByID returns a model or domain.ErrModelNotFound.
func (r *Repo) ModelByID(ctx context.Context, id int64) (catalog.Model, error) {
	d, err := r.modelDoc(ctx, id)
	if err != nil {
		return catalog.Model{}, err
	}
	return d.toDomain(r.log), nil
}

// ModelByIdentity returns the model with the given name and version or domain.ErrModelNotFound.
func (r *Repo) ModelByIdentity(ctx context.Context, name, version string) (catalog.Model, error) {
	id, err := r.identity(ctx, name, version)
	if err != nil {
		return catalog.Model{}, err
	}
	if id == 0 {
		return catalog.Model{}, domain.ErrModelNotFound
	}
	return r.ModelByID(ctx, id)
}

// PricingByName returns a pricing record or domain.ErrModelNotFound.
func (r *Repo) PricingByName(ctx context.Context, name string) (dompricing.Pricing, error) {
	var d pricingDoc
	if err := r.getJSON(ctx, r.pricingKey(name), &d); err != nil {
		return dompricing.Pricing{}, notFoundAs(err, domain.ErrModelNotFound)
	}
	return d.toDomain(), nil
}

// Benchmarks returns the model's benchmarks, newest first.
func (r *Repo) Benchmarks(ctx context.Context, modelID int64) ([]dombench.Benchmark, error) {
	m, err := r.ModelByID(ctx, modelID)
	if err != nil {
		return nil, err
	}
	return m.Benchmarks(), nil
}

// BenchmarkSummary averages the model's scores in memory. ok is false when there are none.
func (r *Repo) BenchmarkSummary(ctx context.Context, modelID int64) (dombench.Summary, bool, error) {
	m, err := r.ModelByID(ctx, modelID)
	if err != nil {
		return dombench.Summary{}, false, err
	}
	s, ok := m.BenchmarkSummary()
	return s, ok, nil
}

// Providers returns every provider ordered by name.
func (r *Repo) Providers(ctx context.Context) ([]catalog.Provider, error) {
	var docs []providerDoc
	if err := r.scanJSON(ctx, r.key("provider:*"), func(raw []byte) error {
		var d providerDoc
		if err := json.Unmarshal(raw, &d); err != nil {
			return err
		}
		docs = append(docs, d)
		return nil
	}); err != nil {
		return nil, err
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].Name < docs[j].Name })
	out := make([]catalog.Provider, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// ProviderByName returns a provider or domain.ErrNotFound.
func (r *Repo) ProviderByName(ctx context.Context, name string) (catalog.Provider, error) {
	var d providerDoc
	if err := r.getJSON(ctx, r.providerKey(name), &d); err != nil {
		return catalog.Provider{}, notFoundAs(err, domain.ErrNotFound)
	}
	return d.toDomain(), nil
}

// Fields returns every field ordered by name.
func (r *Repo) Fields(ctx context.Context) ([]catalog.Field, error) {
	var docs []fieldDoc
	if err := r.scanJSON(ctx, r.key("field:*"), func(raw []byte) error {
		var d fieldDoc
		if err := json.Unmarshal(raw, &d); err != nil {
			return err
		}
		docs = append(docs, d)
		return nil
	}); err != nil {
		return nil, err
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].Name < docs[j].Name })
	out := make([]catalog.Field, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// FieldByName returns a field or domain.ErrNotFound.
func (r *Repo) FieldByName(ctx context.Context, name string) (catalog.Field, error) {
	var d fieldDoc
	if err := r.getJSON(ctx, r.fieldKey(name), &d); err != nil {
		return catalog.Field{}, notFoundAs(err, domain.ErrNotFound)
	}
	return d.toDomain(), nil
}

func (r *Repo) modelDocs(ctx context.Context) ([]modelDoc, error) {
	var docs []modelDoc
	err := r.scanJSON(ctx, r.key("model:*"), func(raw []byte) error {
		var d modelDoc
		if err := json.Unmarshal(raw, &d); err != nil {
			return err
		}
		docs = append(docs, d)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs, nil
}

func (r *Repo) modelDoc(ctx context.Context, id int64) (modelDoc, error) {
	var d modelDoc
	if err := r.getJSON(ctx, r.modelKey(id), &d); err != nil {
		return modelDoc{}, notFoundAs(err, domain.ErrModelNotFound)
	}
	return d, nil
}

// identity resolves name:version to a model id; 0 means no such model.
func (r *Repo) identity(ctx context.Context, name, version string) (int64, error) {
	raw, err := r.store.Get(ctx, r.identityKey(name, version))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return 0, nil
		}
		return 0, storeErr(err)
	}
	id, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return 0, storeErr(&db.Error{Op: db.OpDecode, Err: err})
	}
	return id, nil
}

// scanJSON loads every document matching pattern and passes it to fn.
// Keys that vanish between SCAN and JSON.GET are skipped.
func (r *Repo) scanJSON(ctx context.Context, pattern string, fn func(raw []byte) error) error {
	keys, err := r.store.Scan(ctx, pattern)
	if err != nil {
		return storeErr(err)
	}
	if len(keys) == 0 {
		return nil
	}
	docs, err := r.store.JSONGetMulti(ctx, keys)
	if err != nil {
		return storeErr(err)
	}
	for i, raw := range docs {
		if raw == nil {
			continue
		}
		if err := fn(raw); err != nil {
			return storeErr(&db.Error{Op: db.OpDecode, Err: fmt.Errorf("key %s: %w", keys[i], err)})
		}
	}
	return nil
}

// getJSON reads one document; a missing key returns db.ErrKeyNotFound unwrapped.
func (r *Repo) getJSON(ctx context.Context, key string, v any) error {
	raw, err := r.store.JSONGet(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return err
		}
		return storeErr(err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return storeErr(&db.Error{Op: db.OpDecode, Err: fmt.Errorf("key %s: %w", key, err)})
	}
	return nil
}

func (r *Repo) key(suffix string) string { return r.prefix + suffix }

func (r *Repo) modelKey(id int64) string { return r.key("model:" + strconv.FormatInt(id, 10)) }

func (r *Repo) identityKey(name, version string) string {
	return r.key("identity:" + name + ":" + version)
}

func (r *Repo) pricingKey(name string) string  { return r.key("pricing:" + name) }
func (r *Repo) providerKey(name string) string { return r.key("provider:" + name) }
func (r *Repo) fieldKey(name string) string    { return r.key("field:" + name) }
func (r *Repo) seqKey(kind string) string      { return r.key("seq:" + kind) }

func storeErr(err error) error {
	var dbErr *db.Error
	if !errors.As(err, &dbErr) {
		err = &db.Error{Op: db.OpGet, Err: err}
	}
	return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
}

func notFoundAs(err, notFound error) error {
	if errors.Is(err, db.ErrKeyNotFound) {
		return notFound
	}
	return err
}
