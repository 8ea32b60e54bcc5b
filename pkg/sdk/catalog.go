package modelcatalog

import (
	"context"
	"fmt"
	"time"
)

// Models returns every model, ordered by id. A non-empty name keeps exact name matches.
func (c *Client) Models(ctx context.Context, name string) (_ []Model, err error) {
	start := time.Now()
	defer func() { c.obs.observe("models", start, err) }()

	ms, err := c.catalogSvc.Models(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}
	return fromDomainModels(ms), nil
}

// SearchModels fuzzy-matches query against model names and versions, best match first.
func (c *Client) SearchModels(ctx context.Context, query string, limit int) (_ []Model, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search_models", start, err) }()

	ms, err := c.catalogSvc.SearchModels(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("search models: %w", err)
	}
	return fromDomainModels(ms), nil
}

// Model returns a model by id.
func (c *Client) Model(ctx context.Context, id int64) (_ Model, err error) {
	start := time.Now()
	defer func() { c.obs.observe("model", start, err) }()

	m, err := c.catalogSvc.Model(ctx, id)
	if err != nil {
		return Model{}, fmt.Errorf("get model %d: %w", id, err)
	}
	return fromDomainModel(m), nil
}

// ModelByIdentity returns a model by its unique name and version.
func (c *Client) ModelByIdentity(ctx context.Context, name, version string) (_ Model, err error) {
	start := time.Now()
	defer func() { c.obs.observe("model_by_identity", start, err) }()

	m, err := c.catalogSvc.ModelByIdentity(ctx, name, version)
	if err != nil {
		return Model{}, fmt.Errorf("get model %s/%s: %w", name, version, err)
	}
	return fromDomainModel(m), nil
}

// Providers lists model vendors.
func (c *Client) Providers(ctx context.Context) (_ []Provider, err error) {
	start := time.Now()
	defer func() { c.obs.observe("providers", start, err) }()

	ps, err := c.catalogSvc.Providers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list providers: %w", err)
	}
	return fromDomainProviders(ps), nil
}

// Fields lists the capability taxonomy.
func (c *Client) Fields(ctx context.Context) (_ []Field, err error) {
	start := time.Now()
	defer func() { c.obs.observe("fields", start, err) }()

	fs, err := c.catalogSvc.Fields(ctx)
	if err != nil {
		return nil, fmt.Errorf("list fields: %w", err)
	}
	return fromDomainFields(fs), nil
}
