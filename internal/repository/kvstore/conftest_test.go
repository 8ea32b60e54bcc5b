package kvstore

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kailas-cloud/modelcatalog/internal/db"
	"github.com/kailas-cloud/modelcatalog/internal/domain/benchmark"
	"github.com/kailas-cloud/modelcatalog/internal/domain/capability"
	"github.com/kailas-cloud/modelcatalog/internal/domain/catalog"
	"github.com/kailas-cloud/modelcatalog/internal/domain/pricing"
)

const testPrefix = "modelcatalog:"

// --- Mocks ---

// mockStore is an in-memory store. err, when set, fails every call.
type mockStore struct {
	mu   sync.Mutex
	docs map[string][]byte
	kv   map[string][]byte
	seq  map[string]int64
	err  error
}

func newMockStore() *mockStore {
	return &mockStore{
		docs: make(map[string][]byte),
		kv:   make(map[string][]byte),
		seq:  make(map[string]int64),
	}
}

func (m *mockStore) JSONSetMulti(_ context.Context, items []db.JSONSetItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return &db.Error{Op: db.OpJSONSet, Err: m.err}
	}
	for _, it := range items {
		m.docs[it.Key] = append([]byte(nil), it.Data...)
	}
	return nil
}

func (m *mockStore) JSONGet(_ context.Context, key string, _ ...string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, &db.Error{Op: db.OpJSONGet, Err: m.err}
	}
	raw, ok := m.docs[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return raw, nil
}

func (m *mockStore) JSONGetMulti(_ context.Context, keys []string) ([][]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, &db.Error{Op: db.OpJSONGet, Err: m.err}
	}
	out := make([][]byte, len(keys))
	for i, k := range keys {
		out[i] = m.docs[k]
	}
	return out, nil
}

func (m *mockStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, &db.Error{Op: db.OpGet, Err: m.err}
	}
	raw, ok := m.kv[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return raw, nil
}

func (m *mockStore) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return &db.Error{Op: db.OpSet, Err: m.err}
	}
	m.kv[key] = value
	return nil
}

func (m *mockStore) Incr(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, &db.Error{Op: db.OpIncr, Err: m.err}
	}
	m.seq[key]++
	return m.seq[key], nil
}

func (m *mockStore) Scan(_ context.Context, pattern string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, &db.Error{Op: db.OpScan, Err: m.err}
	}
	prefix := strings.TrimSuffix(pattern, "*")
	var keys []string
	for k := range m.docs {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

// --- Fixtures ---

var runAt = time.Date(2025, 4, 14, 12, 0, 0, 0, time.UTC)

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := newMockStore()
	return New(ms, testPrefix, nil), ms
}

func testSnapshot(t *testing.T) catalog.Snapshot {
	t.Helper()
	example := catalog.Provider{Name: "ExampleAI", Country: "US"}
	alt := catalog.Provider{Name: "AltAI", Country: "US"}

	price := func(name, in, out string) *pricing.Pricing {
		p, err := pricing.New(pricing.Params{
			Name:   name,
			Input:  decimal.RequireFromString(in),
			Output: decimal.RequireFromString(out),
		})
		if err != nil {
			t.Fatalf("pricing: %v", err)
		}
		return &p
	}
	bench := func(score float64, age time.Duration) benchmark.Benchmark {
		b, err := benchmark.New("mmlu-2024", score, nil, runAt.Add(-age), nil)
		if err != nil {
			t.Fatalf("benchmark: %v", err)
		}
		return b
	}
	model := func(p catalog.Params) catalog.Model {
		m, err := catalog.New(p)
		if err != nil {
			t.Fatalf("model: %v", err)
		}
		return m
	}

	return catalog.Snapshot{
		Providers: []catalog.Provider{example, alt},
		Fields:    []catalog.Field{{Name: "nlp"}, {Name: "vision"}},
		Models: []catalog.Model{
			model(catalog.Params{
				Name:         "gpt-4.1",
				Version:      "2024-11",
				Provider:     example,
				Capabilities: capability.New("nlp", "reasoning", "code"),
				Fields:       []string{"nlp"},
				Pricing:      price("gpt-4.1-standard", "10", "30"),
				Benchmarks:   []benchmark.Benchmark{bench(84.0, 48*time.Hour), bench(86.4, 0)},
			}),
			model(catalog.Params{
				Name:         "altai-vision",
				Version:      "2025-01",
				Provider:     alt,
				Capabilities: capability.New("vision"),
				Pricing:      price("altai-vision", "9.5", "28"),
			}),
		},
	}
}
