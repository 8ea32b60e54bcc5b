package modelcatalog

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/kailas-cloud/modelcatalog/internal/domain/match"
	domsug "github.com/kailas-cloud/modelcatalog/internal/domain/suggestion"
)

func TestNew_NoStore(t *testing.T) {
	_, err := New(context.Background())
	if err == nil {
		t.Fatal("expected error when no store is configured")
	}
}

func TestNew_MissingDSN(t *testing.T) {
	_, err := New(context.Background(), WithPostgres(""))
	if err == nil {
		t.Fatal("expected error for empty postgres dsn")
	}
}

func TestNew_InvalidDefaultCostWeight(t *testing.T) {
	for _, w := range []float64{-2, 1.5, math.NaN()} {
		dsn := filepath.Join(t.TempDir(), "catalog.db")
		c, err := New(context.Background(), WithSQLite(dsn), WithDefaultCostWeight(w))
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("weight %v: expected ErrInvalidInput, got %v", w, err)
		}
		if c != nil {
			t.Errorf("weight %v: expected no client", w)
			c.Close()
		}
	}
}

func TestOptions(t *testing.T) {
	cfg := &clientConfig{}
	for _, o := range []Option{
		WithValkey("localhost:6379", "secret"),
		WithKeyPrefix("test:"),
		WithDefaultCostWeight(0.7),
		WithoutMigrations(),
	} {
		o.apply(cfg)
	}

	if cfg.db.Driver != "valkey" || cfg.db.Addrs[0] != "localhost:6379" || cfg.db.Password != "secret" {
		t.Errorf("db config = %+v", cfg.db)
	}
	if cfg.db.KeyPrefix != "test:" {
		t.Errorf("key prefix = %q", cfg.db.KeyPrefix)
	}
	if cfg.costWeight == nil || *cfg.costWeight != 0.7 {
		t.Errorf("cost weight = %v", cfg.costWeight)
	}
	if cfg.db.AutoMigrate {
		t.Error("expected migrations disabled")
	}
}

// seededClient opens a SQLite file in a temp dir and imports the shipped catalog.
func seededClient(t *testing.T) *Client {
	t.Helper()
	ctx := context.Background()

	c, err := New(ctx, WithSQLite(filepath.Join(t.TempDir(), "catalog.db")))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	t.Cleanup(c.Close)

	stats, err := c.ImportFile(ctx, "../../seed/catalog.yaml")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if stats.Models != 3 {
		t.Fatalf("imported models = %d, want 3", stats.Models)
	}
	return c
}

func TestClient_SQLite_EndToEnd(t *testing.T) {
	ctx := context.Background()
	c := seededClient(t)

	if err := c.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}
	if h := c.Health(ctx); !h.OK() {
		t.Errorf("health = %+v, want ok", h)
	}

	gpt, err := c.ModelByIdentity(ctx, "gpt-4.1", "2024-11")
	if err != nil {
		t.Fatalf("model by identity: %v", err)
	}
	if gpt.Provider.Name != "ExampleAI" || gpt.Pricing == nil {
		t.Fatalf("gpt-4.1 = %+v", gpt)
	}

	economy, err := c.ModelByIdentity(ctx, "gpt-4.1-economy", "2024-11")
	if err != nil {
		t.Fatalf("economy by identity: %v", err)
	}

	t.Run("match ranks cheaper comparable model first", func(t *testing.T) {
		results, err := c.Match("summarize support tickets").Do(ctx)
		if err != nil {
			t.Fatalf("match: %v", err)
		}
		if len(results) != 3 {
			t.Fatalf("results = %d, want 3", len(results))
		}
		if results[0].ModelID != economy.ID || results[1].ModelID != gpt.ID {
			t.Errorf("order = %d,%d, want economy then gpt-4.1", results[0].ModelID, results[1].ModelID)
		}
		if results[2].AverageBenchmarkScore != nil {
			t.Errorf("unbenchmarked model should carry no average, got %v", *results[2].AverageBenchmarkScore)
		}
		for i := 1; i < len(results); i++ {
			if results[i].Score > results[i-1].Score {
				t.Errorf("scores not descending at %d", i)
			}
		}
	})

	t.Run("max price excludes expensive models", func(t *testing.T) {
		results, err := c.Match("").MaxPrice(decimal.NewFromInt(6)).Do(ctx)
		if err != nil {
			t.Fatalf("match: %v", err)
		}
		if len(results) != 1 || results[0].ModelID != economy.ID {
			t.Errorf("results = %+v, want only economy", results)
		}
		if results[0].Explanation == "" {
			t.Error("expected an explanation")
		}
	})

	t.Run("pure cost weight prefers cheapest", func(t *testing.T) {
		results, err := c.Match("x").CostWeight(1).Limit(1).Do(ctx)
		if err != nil {
			t.Fatalf("match: %v", err)
		}
		if len(results) != 1 || results[0].ModelID != economy.ID {
			t.Errorf("results = %+v", results)
		}
		if results[0].Explanation != match.ExplanationLowerCost {
			t.Errorf("explanation = %q", results[0].Explanation)
		}
	})

	t.Run("suggestions exclude the reference", func(t *testing.T) {
		got, err := c.SuggestionsFor(ctx, "gpt-4.1", "2024-11")
		if err != nil {
			t.Fatalf("suggestions: %v", err)
		}
		if len(got) == 0 {
			t.Fatal("expected suggestions")
		}
		var sawEconomy bool
		for _, s := range got {
			if s.ModelID == gpt.ID {
				t.Error("reference model must not be suggested")
			}
			if s.ModelID == economy.ID {
				sawEconomy = true
				if s.Explanation != domsug.ExplanationCheaper {
					t.Errorf("economy explanation = %q", s.Explanation)
				}
			}
		}
		if !sawEconomy {
			t.Error("expected economy among suggestions")
		}
	})

	t.Run("benchmarks", func(t *testing.T) {
		s, err := c.BenchmarkSummary(ctx, gpt.ID)
		if err != nil {
			t.Fatalf("summary: %v", err)
		}
		if s.Count != 1 || s.AverageScore != 86.4 {
			t.Errorf("summary = %+v", s)
		}

		vision, err := c.ModelByIdentity(ctx, "altai-vision", "2025-01")
		if err != nil {
			t.Fatalf("vision by identity: %v", err)
		}
		if _, err := c.BenchmarkSummary(ctx, vision.ID); !errors.Is(err, ErrNoBenchmarkData) {
			t.Errorf("err = %v, want ErrNoBenchmarkData", err)
		}
	})

	t.Run("similar prices include the reference", func(t *testing.T) {
		got, err := c.SimilarPrices(ctx, "gpt-4.1")
		if err != nil {
			t.Fatalf("similar: %v", err)
		}
		var sawRef bool
		for _, m := range got {
			if m.ID == gpt.ID {
				sawRef = true
			}
			if m.ID == economy.ID {
				t.Error("economy is outside the 10% band")
			}
		}
		if !sawRef {
			t.Error("expected the reference model")
		}
	})

	t.Run("unknown identity", func(t *testing.T) {
		_, err := c.ModelByIdentity(ctx, "nope", "1")
		if !errors.Is(err, ErrModelNotFound) {
			t.Errorf("err = %v, want ErrModelNotFound", err)
		}
	})
}
