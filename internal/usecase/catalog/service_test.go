package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/modelcatalog/internal/domain"
	domcat "github.com/kailas-cloud/modelcatalog/internal/domain/catalog"
	ct "github.com/kailas-cloud/modelcatalog/internal/domain/catalog/catalogtest"
)

// --- Mocks ---

type mockRepo struct {
	models    []domcat.Model
	providers []domcat.Provider
	fields    []domcat.Field
	err       error
	byName    string
}

func (m *mockRepo) AllModels(_ context.Context) ([]domcat.Model, error) { return m.models, m.err }

func (m *mockRepo) ModelByID(_ context.Context, id int64) (domcat.Model, error) {
	for _, mod := range m.models {
		if mod.ID() == id {
			return mod, nil
		}
	}
	return domcat.Model{}, domain.ErrModelNotFound
}

func (m *mockRepo) ModelByIdentity(_ context.Context, name, version string) (domcat.Model, error) {
	for _, mod := range m.models {
		if mod.Name() == name && mod.Version() == version {
			return mod, nil
		}
	}
	return domcat.Model{}, domain.ErrModelNotFound
}

func (m *mockRepo) ModelsByName(_ context.Context, name string) ([]domcat.Model, error) {
	m.byName = name
	var out []domcat.Model
	for _, mod := range m.models {
		if mod.Name() == name {
			out = append(out, mod)
		}
	}
	return out, m.err
}

func (m *mockRepo) Providers(_ context.Context) ([]domcat.Provider, error) { return m.providers, m.err }

func (m *mockRepo) ProviderByName(_ context.Context, name string) (domcat.Provider, error) {
	for _, p := range m.providers {
		if p.Name == name {
			return p, nil
		}
	}
	return domcat.Provider{}, domain.ErrNotFound
}

func (m *mockRepo) Fields(_ context.Context) ([]domcat.Field, error) { return m.fields, m.err }

func (m *mockRepo) FieldByName(_ context.Context, name string) (domcat.Field, error) {
	for _, f := range m.fields {
		if f.Name == name {
			return f, nil
		}
	}
	return domcat.Field{}, domain.ErrNotFound
}

func newRepo() *mockRepo {
	return &mockRepo{
		models: []domcat.Model{
			ct.Model(1, "gpt-4.1", ct.WithVersion("2025-04")),
			ct.Model(2, "gpt-4.1-economy", ct.WithVersion("2025-04")),
			ct.Model(3, "vision-pro", ct.WithProvider("AltAI")),
		},
		providers: []domcat.Provider{{ID: 1, Name: "ExampleAI", Country: "US"}, {ID: 2, Name: "AltAI", Country: "DE"}},
		fields:    []domcat.Field{{ID: 1, Name: "nlp"}, {ID: 2, Name: "vision"}},
	}
}

// --- Tests ---

func TestModels_NameFilter(t *testing.T) {
	repo := newRepo()
	svc := New(repo)

	all, err := svc.Models(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 models, got %d", len(all))
	}

	named, err := svc.Models(context.Background(), " gpt-4.1 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.byName != "gpt-4.1" || len(named) != 1 || named[0].ID() != 1 {
		t.Errorf("expected exact-name match on gpt-4.1, got %v", ct.IDs(named))
	}
}

func TestSearchModels_Fuzzy(t *testing.T) {
	svc := New(newRepo())

	got, err := svc.SearchModels(context.Background(), "altvis", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID() != 3 {
		t.Fatalf("expected vision-pro, got %v", ct.IDs(got))
	}

	got, err = svc.SearchModels(context.Background(), "gpt", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("expected limit of 1, got %d", len(got))
	}
}

func TestSearchModels_Validation(t *testing.T) {
	svc := New(newRepo())
	if _, err := svc.SearchModels(context.Background(), " ", 5); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for blank query, got %v", err)
	}
	if _, err := svc.SearchModels(context.Background(), "gpt", -1); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for negative limit, got %v", err)
	}
}

func TestModel_Lookups(t *testing.T) {
	svc := New(newRepo())

	m, err := svc.ModelByIdentity(context.Background(), "gpt-4.1-economy", "2025-04")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.ID() != 2 {
		t.Errorf("expected id 2, got %d", m.ID())
	}

	if _, err := svc.Model(context.Background(), 42); !errors.Is(err, domain.ErrModelNotFound) {
		t.Errorf("expected ErrModelNotFound, got %v", err)
	}
	if _, err := svc.Model(context.Background(), 0); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestProviderAndField(t *testing.T) {
	svc := New(newRepo())

	p, err := svc.Provider(context.Background(), "AltAI")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Country != "DE" {
		t.Errorf("expected country DE, got %q", p.Country)
	}
	if _, err := svc.Provider(context.Background(), "Nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	f, err := svc.Field(context.Background(), "vision")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.ID != 2 {
		t.Errorf("expected field id 2, got %d", f.ID)
	}
	fs, err := svc.Fields(context.Background())
	if err != nil || len(fs) != 2 {
		t.Errorf("expected 2 fields, got %d (%v)", len(fs), err)
	}
}

func TestBrowse_StoreUnavailable(t *testing.T) {
	repo := newRepo()
	repo.err = domain.ErrStoreUnavailable
	svc := New(repo)

	if _, err := svc.Models(context.Background(), ""); !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Errorf("expected ErrStoreUnavailable, got %v", err)
	}
	if _, err := svc.Providers(context.Background()); !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Errorf("expected ErrStoreUnavailable, got %v", err)
	}
}
