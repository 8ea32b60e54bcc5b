package matching

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/kailas-cloud/modelcatalog/internal/domain"
	"github.com/kailas-cloud/modelcatalog/internal/domain/catalog"
	ct "github.com/kailas-cloud/modelcatalog/internal/domain/catalog/catalogtest"
	"github.com/kailas-cloud/modelcatalog/internal/domain/match"
)

// --- Mocks ---

type mockCatalog struct {
	models []catalog.Model
	err    error
}

func (m *mockCatalog) AllModels(_ context.Context) ([]catalog.Model, error) {
	return m.models, m.err
}

type mockRecorder struct {
	kind             string
	scored, excluded int
	err              error
	calls            int
}

func (m *mockRecorder) ObserveRanking(kind string, scored, excluded int, _ time.Duration, err error) {
	m.kind, m.scored, m.excluded, m.err = kind, scored, excluded, err
	m.calls++
}

func newRequest(t *testing.T, p match.Params) match.Request {
	t.Helper()
	req, err := match.NewRequest(p)
	if err != nil {
		t.Fatalf("match.NewRequest: %v", err)
	}
	return req
}

func weight(w float64) *float64 { return &w }

func price(s string) *decimal.Decimal {
	v := decimal.RequireFromString(s)
	return &v
}

func resultIDs(rs []match.Result) []int64 {
	out := make([]int64, len(rs))
	for i, r := range rs {
		out[i] = r.ModelID
	}
	return out
}

// --- Tests ---

func TestMatch_CostVersusBenchmarkScenario(t *testing.T) {
	cat := &mockCatalog{models: []catalog.Model{
		ct.Model(2, "B", ct.WithPrice("5", "5")),
		ct.Model(1, "A", ct.WithPrice("10", "10"), ct.WithBenchmarks(80, 90)),
	}}
	svc := New(cat)

	got, err := svc.MatchModelsForTask(context.Background(), newRequest(t, match.Params{
		TaskDescription: "summarize legal docs",
		CostWeight:      weight(0.5),
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ids := resultIDs(got); !reflect.DeepEqual(ids, []int64{1, 2}) {
		t.Fatalf("expected A before B, got %v", ids)
	}

	wantA := 0.5*(1.0/11.0) + 0.5*0.85
	if math.Abs(got[0].Score-wantA) > 1e-9 {
		t.Errorf("A score = %v, want %v", got[0].Score, wantA)
	}
	wantB := 0.5*(1.0/6.0) + 0.5*0.5
	if math.Abs(got[1].Score-wantB) > 1e-9 {
		t.Errorf("B score = %v, want %v", got[1].Score, wantB)
	}
	if got[0].AverageBenchmarkScore == nil || *got[0].AverageBenchmarkScore != 85 {
		t.Errorf("expected A average 85, got %v", got[0].AverageBenchmarkScore)
	}
	if got[1].AverageBenchmarkScore != nil {
		t.Errorf("expected B average unknown, got %v", *got[1].AverageBenchmarkScore)
	}
	if !got[1].CostPerMillionTokens.Valid || !got[1].CostPerMillionTokens.Decimal.Equal(decimal.NewFromInt(5)) {
		t.Errorf("expected B cost 5, got %v", got[1].CostPerMillionTokens)
	}
}

func TestMatch_MaxPriceIsHardFilter(t *testing.T) {
	cat := &mockCatalog{models: []catalog.Model{
		ct.Model(1, "cheap", ct.WithPrice("5", "15")),
		ct.Model(2, "exact", ct.WithPrice("10", "30")),
		ct.Model(3, "pricey-but-great", ct.WithPrice("10.01", "30"), ct.WithBenchmarks(99)),
		ct.Model(4, "normalized-under", ct.WithPrice("50", "50"), ct.WithNormalized("8")),
	}}
	rec := &mockRecorder{}
	svc := New(cat).WithRecorder(rec)

	got, err := svc.MatchModelsForTask(context.Background(), newRequest(t, match.Params{
		MaxPrice: price("10"),
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, r := range got {
		if r.ModelID == 3 {
			t.Fatal("model above max price must be excluded")
		}
	}
	if len(got) != 3 {
		t.Errorf("expected 3 results, got %d", len(got))
	}
	if rec.scored != 3 || rec.excluded != 1 || rec.kind != "matching" {
		t.Errorf("unexpected recorder state: %+v", rec)
	}
}

func TestMatch_UnpricedModelsExcluded(t *testing.T) {
	cat := &mockCatalog{models: []catalog.Model{
		ct.Model(1, "priced", ct.WithPrice("1", "1")),
		ct.Model(2, "unpriced", ct.WithBenchmarks(99)),
	}}

	got, err := New(cat).MatchModelsForTask(context.Background(), newRequest(t, match.Params{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ids := resultIDs(got); !reflect.DeepEqual(ids, []int64{1}) {
		t.Errorf("expected only priced model, got %v", ids)
	}
}

func TestMatch_TieBreakByModelID(t *testing.T) {
	cat := &mockCatalog{models: []catalog.Model{
		ct.Model(9, "z", ct.WithPrice("3", "3")),
		ct.Model(4, "y", ct.WithPrice("3", "3")),
		ct.Model(7, "x", ct.WithPrice("3", "3")),
	}}

	got, err := New(cat).MatchModelsForTask(context.Background(), newRequest(t, match.Params{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ids := resultIDs(got); !reflect.DeepEqual(ids, []int64{4, 7, 9}) {
		t.Errorf("expected ties ordered by id, got %v", ids)
	}
}

func TestMatch_WeightExtremes(t *testing.T) {
	cat := &mockCatalog{models: []catalog.Model{
		ct.Model(1, "cheap-weak", ct.WithPrice("1", "1"), ct.WithBenchmarks(40)),
		ct.Model(2, "pricey-strong", ct.WithPrice("20", "20"), ct.WithBenchmarks(95)),
	}}
	svc := New(cat)

	got, err := svc.MatchModelsForTask(context.Background(), newRequest(t, match.Params{CostWeight: weight(1)}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0].ModelID != 1 {
		t.Errorf("pure cost optimization should favor cheap model, got %v", resultIDs(got))
	}

	got, err = svc.MatchModelsForTask(context.Background(), newRequest(t, match.Params{CostWeight: weight(0)}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0].ModelID != 2 {
		t.Errorf("pure quality optimization should favor strong model, got %v", resultIDs(got))
	}
}

func TestMatch_DefaultCostWeightOverride(t *testing.T) {
	cat := &mockCatalog{models: []catalog.Model{
		ct.Model(1, "cheap-weak", ct.WithPrice("1", "1"), ct.WithBenchmarks(40)),
		ct.Model(2, "pricey-strong", ct.WithPrice("20", "20"), ct.WithBenchmarks(95)),
	}}

	got, err := New(cat).WithDefaultCostWeight(0).
		MatchModelsForTask(context.Background(), newRequest(t, match.Params{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0].ModelID != 2 {
		t.Errorf("expected configured default weight to apply, got %v", resultIDs(got))
	}
}

func TestMatch_DefaultCostWeightOutOfRangeIsClamped(t *testing.T) {
	cat := &mockCatalog{models: []catalog.Model{
		ct.Model(1, "cheap-weak", ct.WithPrice("1", "1"), ct.WithBenchmarks(40)),
		ct.Model(2, "pricey-strong", ct.WithPrice("20", "20"), ct.WithBenchmarks(95)),
	}}

	tests := []struct {
		name      string
		weight    float64
		wantFirst int64
	}{
		{"above one acts as pure cost", 3, 1},
		{"below zero acts as pure quality", -2, 2},
		{"NaN falls back to the default", math.NaN(), 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			core, logs := observer.New(zap.WarnLevel)
			svc := New(cat).WithLogger(zap.New(core)).WithDefaultCostWeight(tc.weight)

			got, err := svc.MatchModelsForTask(context.Background(), newRequest(t, match.Params{}))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got[0].ModelID != tc.wantFirst {
				t.Errorf("expected model %d first, got %v", tc.wantFirst, resultIDs(got))
			}
			for _, r := range got {
				if r.Score < 0 || r.Score > 1 {
					t.Errorf("score %v outside [0,1]", r.Score)
				}
			}
			if logs.FilterMessage("Default cost weight out of range").Len() != 1 {
				t.Error("expected the out-of-range weight to be logged")
			}
		})
	}
}

func TestMatch_Limit(t *testing.T) {
	cat := &mockCatalog{models: []catalog.Model{
		ct.Model(1, "a", ct.WithPrice("1", "1")),
		ct.Model(2, "b", ct.WithPrice("2", "2")),
		ct.Model(3, "c", ct.WithPrice("3", "3")),
	}}

	got, err := New(cat).MatchModelsForTask(context.Background(), newRequest(t, match.Params{Limit: 2}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ids := resultIDs(got); !reflect.DeepEqual(ids, []int64{1, 2}) {
		t.Errorf("expected top 2, got %v", ids)
	}
}

func TestMatch_StoreUnavailable(t *testing.T) {
	rec := &mockRecorder{}
	svc := New(&mockCatalog{err: domain.ErrStoreUnavailable}).WithRecorder(rec)

	got, err := svc.MatchModelsForTask(context.Background(), newRequest(t, match.Params{}))
	if !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
	if got != nil {
		t.Errorf("expected no partial ranking, got %d results", len(got))
	}
	if rec.calls != 1 || rec.err == nil {
		t.Errorf("expected failure recorded, got %+v", rec)
	}
}

func TestMatch_CancelledContext(t *testing.T) {
	cat := &mockCatalog{models: []catalog.Model{ct.Model(1, "a", ct.WithPrice("1", "1"))}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := New(cat).MatchModelsForTask(ctx, newRequest(t, match.Params{}))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if got != nil {
		t.Error("cancelled request must not return a ranking")
	}
}

func TestMatch_EmptyResultIsNotAnError(t *testing.T) {
	cat := &mockCatalog{models: []catalog.Model{ct.Model(1, "a", ct.WithPrice("50", "50"))}}

	got, err := New(cat).MatchModelsForTask(context.Background(), newRequest(t, match.Params{MaxPrice: price("1")}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil result, got %v", got)
	}
}
