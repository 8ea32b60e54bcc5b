package sqlstore

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/kailas-cloud/modelcatalog/internal/domain/benchmark"
	"github.com/kailas-cloud/modelcatalog/internal/domain/capability"
	"github.com/kailas-cloud/modelcatalog/internal/domain/catalog"
	"github.com/kailas-cloud/modelcatalog/internal/domain/pricing"
)

type providerRow struct {
	ID      int64  `gorm:"primaryKey"`
	Name    string `gorm:"size:255;not null;uniqueIndex"`
	Country string `gorm:"size:64"`
}

func (providerRow) TableName() string { return "ai_providers" }

type fieldRow struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"size:255;not null;uniqueIndex"`
}

func (fieldRow) TableName() string { return "fields" }

type pricingRow struct {
	ID          int64               `gorm:"primaryKey"`
	Name        string              `gorm:"size:255;not null;uniqueIndex"`
	Input       decimal.Decimal     `gorm:"type:decimal(20,10);not null"`
	Output      decimal.Decimal     `gorm:"type:decimal(20,10);not null"`
	Cached      decimal.NullDecimal `gorm:"type:decimal(20,10)"`
	Training    decimal.NullDecimal `gorm:"type:decimal(20,10)"`
	Normalized  decimal.NullDecimal `gorm:"type:decimal(20,10)"`
	Currency    string              `gorm:"size:8;not null;default:USD"`
	Unit        string              `gorm:"size:64;not null"`
	EffectiveAt time.Time
}

func (pricingRow) TableName() string { return "model_pricings" }

type modelRow struct {
	ID               int64       `gorm:"primaryKey"`
	Name             string      `gorm:"size:255;not null;uniqueIndex:idx_model_identity"`
	Version          string      `gorm:"size:64;not null;uniqueIndex:idx_model_identity"`
	ProviderID       int64       `gorm:"not null;index"`
	Provider         providerRow `gorm:"foreignKey:ProviderID"`
	Description      string      `gorm:"type:text"`
	ReleaseDate      *time.Time
	Status           string `gorm:"size:32;not null"`
	Deprecated       bool   `gorm:"not null;default:false"`
	Capabilities     datatypes.JSON
	Modalities       datatypes.JSON
	SupportedFormats datatypes.JSON
	Languages        datatypes.JSON
	Metadata         datatypes.JSON
	PricingID        *int64         `gorm:"uniqueIndex"`
	Pricing          *pricingRow    `gorm:"foreignKey:PricingID"`
	Fields           []fieldRow     `gorm:"many2many:model_fields;joinForeignKey:ModelID;joinReferences:FieldID"`
	Benchmarks       []benchmarkRow `gorm:"foreignKey:ModelID"`
}

func (modelRow) TableName() string { return "ai_models" }

// modelFieldRow is the join table between models and fields.
type modelFieldRow struct {
	ModelID int64 `gorm:"primaryKey"`
	FieldID int64 `gorm:"primaryKey"`
}

func (modelFieldRow) TableName() string { return "model_fields" }

type benchmarkRow struct {
	ID       int64   `gorm:"primaryKey"`
	ModelID  int64   `gorm:"not null;index"`
	Type     string  `gorm:"size:128;not null"`
	Score    float64 `gorm:"not null"`
	MaxScore *float64
	RunAt    time.Time `gorm:"not null;index"`
	Metadata datatypes.JSON
}

func (benchmarkRow) TableName() string { return "benchmarks" }

// summaryRow receives the SQL aggregate over a model's benchmarks.
type summaryRow struct {
	AvgScore *float64
	RowCount int64
}

func toProvider(r providerRow) catalog.Provider {
	return catalog.Provider{ID: r.ID, Name: r.Name, Country: r.Country}
}

func toField(r fieldRow) catalog.Field {
	return catalog.Field{ID: r.ID, Name: r.Name}
}

func toPricing(r pricingRow) pricing.Pricing {
	return pricing.Reconstruct(r.ID, pricing.Params{
		Name:        r.Name,
		Input:       r.Input,
		Output:      r.Output,
		Cached:      r.Cached,
		Training:    r.Training,
		Normalized:  r.Normalized,
		Currency:    r.Currency,
		Unit:        r.Unit,
		EffectiveAt: r.EffectiveAt,
	})
}

func toBenchmark(r benchmarkRow) benchmark.Benchmark {
	return benchmark.Reconstruct(r.ID, r.ModelID, r.Type, r.Score, r.MaxScore, r.RunAt, decodeMap(r.Metadata))
}

// toModel maps a preloaded row. Malformed capability JSON never fails the read:
// the coerced set is kept and the problem is logged.
func toModel(r modelRow, log *zap.Logger) catalog.Model {
	caps, err := capability.FromJSON(r.Capabilities)
	if err != nil {
		log.Warn("Malformed capabilities, coerced",
			zap.Int64("model_id", r.ID),
			zap.Int("kept", caps.Len()),
			zap.Error(err),
		)
	}

	fields := make([]string, 0, len(r.Fields))
	for _, f := range r.Fields {
		fields = append(fields, f.Name)
	}
	sort.Strings(fields)

	var pr *pricing.Pricing
	if r.Pricing != nil {
		p := toPricing(*r.Pricing)
		pr = &p
	}

	benches := make([]benchmark.Benchmark, 0, len(r.Benchmarks))
	for _, b := range r.Benchmarks {
		benches = append(benches, toBenchmark(b))
	}

	return catalog.Reconstruct(r.ID, catalog.Params{
		Name:             r.Name,
		Version:          r.Version,
		Provider:         toProvider(r.Provider),
		Description:      r.Description,
		ReleaseDate:      r.ReleaseDate,
		Status:           r.Status,
		Deprecated:       r.Deprecated,
		Capabilities:     caps,
		Fields:           fields,
		Modalities:       decodeStrings(r.Modalities),
		SupportedFormats: decodeStrings(r.SupportedFormats),
		Languages:        decodeStrings(r.Languages),
		Metadata:         decodeMap(r.Metadata),
		Pricing:          pr,
		Benchmarks:       benches,
	})
}

func fromPricing(p pricing.Pricing) pricingRow {
	return pricingRow{
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

func fromModel(m catalog.Model, providerID int64, pricingID *int64) (modelRow, error) {
	caps, err := json.Marshal(m.Capabilities())
	if err != nil {
		return modelRow{}, err
	}
	return modelRow{
		Name:             m.Name(),
		Version:          m.Version(),
		ProviderID:       providerID,
		Description:      m.Description(),
		ReleaseDate:      m.ReleaseDate(),
		Status:           m.Status(),
		Deprecated:       m.Deprecated(),
		Capabilities:     datatypes.JSON(caps),
		Modalities:       encodeJSON(m.Modalities()),
		SupportedFormats: encodeJSON(m.SupportedFormats()),
		Languages:        encodeJSON(m.Languages()),
		Metadata:         encodeJSON(m.Metadata()),
		PricingID:        pricingID,
	}, nil
}

func fromBenchmark(modelID int64, b benchmark.Benchmark) benchmarkRow {
	return benchmarkRow{
		ModelID:  modelID,
		Type:     b.Type(),
		Score:    b.Score(),
		MaxScore: b.MaxScore(),
		RunAt:    b.RunAt(),
		Metadata: encodeJSON(b.Metadata()),
	}
}

func encodeJSON[T any](v T) datatypes.JSON {
	raw, err := json.Marshal(v)
	if err != nil || string(raw) == "null" {
		return nil
	}
	return datatypes.JSON(raw)
}

func decodeStrings(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}

func decodeMap(raw datatypes.JSON) map[string]any {
	if len(raw) == 0 {
		return nil
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}
