package sqlstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kailas-cloud/modelcatalog/internal/db/gormdb"
	"github.com/kailas-cloud/modelcatalog/internal/domain/benchmark"
	"github.com/kailas-cloud/modelcatalog/internal/domain/capability"
	"github.com/kailas-cloud/modelcatalog/internal/domain/catalog"
	"github.com/kailas-cloud/modelcatalog/internal/domain/pricing"
)

var runAt = time.Date(2025, 4, 14, 12, 0, 0, 0, time.UTC)

func newTestRepo(t *testing.T) (*Repo, *gormdb.Store) {
	t.Helper()
	store, err := gormdb.Open(gormdb.Config{
		Driver: gormdb.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "catalog.db"),
	}, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(store.Close)

	if err := Migrate(context.Background(), store.DB()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return New(store.DB(), nil), store
}

func mustPricing(t *testing.T, name, input, output, normalized string) *pricing.Pricing {
	t.Helper()
	p := pricing.Params{
		Name:        name,
		Input:       decimal.RequireFromString(input),
		Output:      decimal.RequireFromString(output),
		EffectiveAt: runAt,
	}
	if normalized != "" {
		p.Normalized = decimal.NewNullDecimal(decimal.RequireFromString(normalized))
	}
	pr, err := pricing.New(p)
	if err != nil {
		t.Fatalf("pricing: %v", err)
	}
	return &pr
}

func mustBenchmark(t *testing.T, score float64, age time.Duration) benchmark.Benchmark {
	t.Helper()
	b, err := benchmark.New("mmlu-2024", score, nil, runAt.Add(-age), map[string]any{"shots": 5.0})
	if err != nil {
		t.Fatalf("benchmark: %v", err)
	}
	return b
}

func mustModel(t *testing.T, p catalog.Params) catalog.Model {
	t.Helper()
	m, err := catalog.New(p)
	if err != nil {
		t.Fatalf("model: %v", err)
	}
	return m
}

// testSnapshot mirrors the seed catalog: two priced models and one unbenchmarked preview.
func testSnapshot(t *testing.T) catalog.Snapshot {
	t.Helper()
	example := catalog.Provider{Name: "ExampleAI", Country: "US"}
	alt := catalog.Provider{Name: "AltAI", Country: "US"}

	return catalog.Snapshot{
		Providers: []catalog.Provider{example, alt},
		Fields:    []catalog.Field{{Name: "nlp"}, {Name: "vision"}},
		Models: []catalog.Model{
			mustModel(t, catalog.Params{
				Name:         "gpt-4.1",
				Version:      "2024-11",
				Provider:     example,
				Capabilities: capability.New("nlp", "reasoning", "code"),
				Fields:       []string{"nlp"},
				Modalities:   []string{"text"},
				Pricing:      mustPricing(t, "gpt-4.1-standard", "10", "30", "10"),
				Benchmarks: []benchmark.Benchmark{
					mustBenchmark(t, 86.4, 0),
					mustBenchmark(t, 84.0, 48*time.Hour),
				},
			}),
			mustModel(t, catalog.Params{
				Name:         "gpt-4.1-economy",
				Version:      "2024-11",
				Provider:     alt,
				Capabilities: capability.New("nlp", "summarization"),
				Fields:       []string{"nlp"},
				Pricing:      mustPricing(t, "gpt-4.1-economy", "5", "15", "5"),
				Benchmarks:   []benchmark.Benchmark{mustBenchmark(t, 80.1, 0)},
			}),
			mustModel(t, catalog.Params{
				Name:         "altai-vision",
				Version:      "2025-01",
				Provider:     alt,
				Status:       catalog.StatusPreview,
				Capabilities: capability.New("vision"),
				Fields:       []string{"vision", "nlp"},
				Pricing:      mustPricing(t, "altai-vision", "9.5", "28", ""),
			}),
		},
	}
}

func importSnapshot(t *testing.T, r *Repo) {
	t.Helper()
	if err := r.Import(context.Background(), testSnapshot(t)); err != nil {
		t.Fatalf("import: %v", err)
	}
}
