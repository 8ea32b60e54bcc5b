package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/kailas-cloud/modelcatalog/internal/domain"
	domcat "github.com/kailas-cloud/modelcatalog/internal/domain/catalog"
)

// DefaultSearchLimit caps fuzzy search results when the caller does not.
const DefaultSearchLimit = 20

// Service serves read-only catalog browsing.
type Service struct {
	repo Repository
}

// New creates a catalog service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Models lists all models, or only those with the exact name when one is given.
func (s *Service) Models(ctx context.Context, name string) ([]domcat.Model, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		models, err := s.repo.AllModels(ctx)
		if err != nil {
			return nil, fmt.Errorf("list models: %w", err)
		}
		return models, nil
	}

	models, err := s.repo.ModelsByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("list models named %q: %w", name, err)
	}
	return models, nil
}

// SearchModels fuzzy-matches the query against "provider/name:version" labels,
// best match first.
func (s *Service) SearchModels(ctx context.Context, query string, limit int) ([]domcat.Model, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.NewValidationError("search", "is required")
	}
	if limit < 0 {
		return nil, domain.NewValidationError("limit", "must be non-negative")
	}
	if limit == 0 {
		limit = DefaultSearchLimit
	}

	models, err := s.repo.AllModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("search models: %w", err)
	}

	matches := fuzzy.FindFrom(query, labelSource(models))
	out := make([]domcat.Model, 0, min(limit, len(matches)))
	for _, m := range matches {
		if len(out) == limit {
			break
		}
		out = append(out, models[m.Index])
	}
	return out, nil
}

// Model returns a model by id.
func (s *Service) Model(ctx context.Context, id int64) (domcat.Model, error) {
	if id <= 0 {
		return domcat.Model{}, domain.NewValidationError("modelId", "must be a positive integer")
	}
	m, err := s.repo.ModelByID(ctx, id)
	if err != nil {
		return domcat.Model{}, fmt.Errorf("get model %d: %w", id, err)
	}
	return m, nil
}

// ModelByIdentity returns a model by name and version.
func (s *Service) ModelByIdentity(ctx context.Context, name, version string) (domcat.Model, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(version) == "" {
		return domcat.Model{}, domain.NewValidationError("identity", "name and version are required")
	}
	m, err := s.repo.ModelByIdentity(ctx, name, version)
	if err != nil {
		return domcat.Model{}, fmt.Errorf("get model %s:%s: %w", name, version, err)
	}
	return m, nil
}

// Providers returns all providers.
func (s *Service) Providers(ctx context.Context) ([]domcat.Provider, error) {
	ps, err := s.repo.Providers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list providers: %w", err)
	}
	return ps, nil
}

// Provider returns the provider with the given name.
func (s *Service) Provider(ctx context.Context, name string) (domcat.Provider, error) {
	p, err := s.repo.ProviderByName(ctx, name)
	if err != nil {
		return domcat.Provider{}, fmt.Errorf("get provider %q: %w", name, err)
	}
	return p, nil
}

// Fields returns all taxonomy fields.
func (s *Service) Fields(ctx context.Context) ([]domcat.Field, error) {
	fs, err := s.repo.Fields(ctx)
	if err != nil {
		return nil, fmt.Errorf("list fields: %w", err)
	}
	return fs, nil
}

// Field returns the field with the given name.
func (s *Service) Field(ctx context.Context, name string) (domcat.Field, error) {
	f, err := s.repo.FieldByName(ctx, name)
	if err != nil {
		return domcat.Field{}, fmt.Errorf("get field %q: %w", name, err)
	}
	return f, nil
}

// labelSource adapts models to fuzzy.Source.
type labelSource []domcat.Model

func (l labelSource) String(i int) string { return l[i].Label() }
func (l labelSource) Len() int            { return len(l) }
