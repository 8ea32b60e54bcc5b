package kvstore

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/kailas-cloud/modelcatalog/internal/domain/benchmark"
	"github.com/kailas-cloud/modelcatalog/internal/domain/capability"
	"github.com/kailas-cloud/modelcatalog/internal/domain/catalog"
	"github.com/kailas-cloud/modelcatalog/internal/domain/pricing"
)

type providerDoc struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country,omitempty"`
}

type fieldDoc struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type pricingDoc struct {
	ID          int64               `json:"id"`
	Name        string              `json:"name"`
	Input       decimal.Decimal     `json:"input"`
	Output      decimal.Decimal     `json:"output"`
	Cached      decimal.NullDecimal `json:"cached"`
	Training    decimal.NullDecimal `json:"training"`
	Normalized  decimal.NullDecimal `json:"normalized"`
	Currency    string              `json:"currency"`
	Unit        string              `json:"unit"`
	EffectiveAt time.Time           `json:"effective_at"`
}

type benchmarkDoc struct {
	ID       int64          `json:"id"`
	Type     string         `json:"type"`
	Score    float64        `json:"score"`
	MaxScore *float64       `json:"max_score,omitempty"`
	RunAt    time.Time      `json:"run_at"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// modelDoc is the aggregate stored under model:{id}. Capabilities stay raw
// so that a malformed value is coerced on read instead of failing the decode.
type modelDoc struct {
	ID               int64           `json:"id"`
	Name             string          `json:"name"`
	Version          string          `json:"version"`
	Provider         providerDoc     `json:"provider"`
	Description      string          `json:"description,omitempty"`
	ReleaseDate      *time.Time      `json:"release_date,omitempty"`
	Status           string          `json:"status"`
	Deprecated       bool            `json:"deprecated"`
	Capabilities     json.RawMessage `json:"capabilities,omitempty"`
	Fields           []string        `json:"fields,omitempty"`
	Modalities       []string        `json:"modalities,omitempty"`
	SupportedFormats []string        `json:"supported_formats,omitempty"`
	Languages        []string        `json:"languages,omitempty"`
	Metadata         map[string]any  `json:"metadata,omitempty"`
	Pricing          *pricingDoc     `json:"pricing,omitempty"`
	Benchmarks       []benchmarkDoc  `json:"benchmarks,omitempty"`
}

func (d providerDoc) toDomain() catalog.Provider {
	return catalog.Provider{ID: d.ID, Name: d.Name, Country: d.Country}
}

func (d fieldDoc) toDomain() catalog.Field {
	return catalog.Field{ID: d.ID, Name: d.Name}
}

func (d pricingDoc) toDomain() pricing.Pricing {
	return pricing.Reconstruct(d.ID, pricing.Params{
		Name:        d.Name,
		Input:       d.Input,
		Output:      d.Output,
		Cached:      d.Cached,
		Training:    d.Training,
		Normalized:  d.Normalized,
		Currency:    d.Currency,
		Unit:        d.Unit,
		EffectiveAt: d.EffectiveAt,
	})
}

func (d modelDoc) toDomain(log *zap.Logger) catalog.Model {
	caps, err := capability.FromJSON(d.Capabilities)
	if err != nil {
		log.Warn("Malformed capabilities, coerced",
			zap.Int64("model_id", d.ID),
			zap.Int("kept", caps.Len()),
			zap.Error(err),
		)
	}

	var pr *pricing.Pricing
	if d.Pricing != nil {
		p := d.Pricing.toDomain()
		pr = &p
	}

	benches := make([]benchmark.Benchmark, 0, len(d.Benchmarks))
	for _, b := range d.Benchmarks {
		benches = append(benches, benchmark.Reconstruct(b.ID, d.ID, b.Type, b.Score, b.MaxScore, b.RunAt, b.Metadata))
	}
	benchmark.SortNewestFirst(benches)

	return catalog.Reconstruct(d.ID, catalog.Params{
		Name:             d.Name,
		Version:          d.Version,
		Provider:         d.Provider.toDomain(),
		Description:      d.Description,
		ReleaseDate:      d.ReleaseDate,
		Status:           d.Status,
		Deprecated:       d.Deprecated,
		Capabilities:     caps,
		Fields:           d.Fields,
		Modalities:       d.Modalities,
		SupportedFormats: d.SupportedFormats,
		Languages:        d.Languages,
		Metadata:         d.Metadata,
		Pricing:          pr,
		Benchmarks:       benches,
	})
}

func newPricingDoc(id int64, p pricing.Pricing) *pricingDoc {
	return &pricingDoc{
		ID:          id,
		Name:        p.Name(),
		Input:       p.Input(),
		Output:      p.Output(),
		Cached:      p.Cached(),
		Training:    p.Training(),
		Normalized:  p.Normalized(),
		Currency:    p.Currency(),
		Unit:        p.Unit(),
		EffectiveAt: p.EffectiveAt(),
	}
}
