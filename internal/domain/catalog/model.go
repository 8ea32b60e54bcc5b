package catalog

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kailas-cloud/modelcatalog/internal/domain/benchmark"
	"github.com/kailas-cloud/modelcatalog/internal/domain/capability"
	"github.com/kailas-cloud/modelcatalog/internal/domain/pricing"
)

// Status values observed in the catalog.
const (
	StatusActive     = "active"
	StatusPreview    = "preview"
	StatusDeprecated = "deprecated"
)

// Params carries the fields of a model.
type Params struct {
	Name             string
	Version          string
	Provider         Provider
	Description      string
	ReleaseDate      *time.Time
	Status           string
	Deprecated       bool
	Capabilities     capability.Set
	Fields           []string
	Modalities       []string
	SupportedFormats []string
	Languages        []string
	Metadata         map[string]any
	Pricing          *pricing.Pricing
	Benchmarks       []benchmark.Benchmark
}

// Model is the catalog aggregate. Immutable for the lifetime of a request.
type Model struct {
	id               int64
	name             string
	version          string
	provider         Provider
	description      string
	releaseDate      *time.Time
	status           string
	deprecated       bool
	capabilities     capability.Set
	fields           []string
	modalities       []string
	supportedFormats []string
	languages        []string
	metadata         map[string]any
	pricing          *pricing.Pricing
	benchmarks       []benchmark.Benchmark
}

// New validates params and creates a model that has not been persisted yet.
func New(p Params) (Model, error) {
	if p.Name == "" {
		return Model{}, fmt.Errorf("model name is required")
	}
	if p.Version == "" {
		return Model{}, fmt.Errorf("model %s: version is required", p.Name)
	}
	if p.Provider.Name == "" {
		return Model{}, fmt.Errorf("model %s:%s: provider is required", p.Name, p.Version)
	}
	if p.Status == "" {
		p.Status = StatusActive
	}
	return Reconstruct(0, p), nil
}

// Reconstruct restores a model from storage without validation.
// Benchmarks are kept in the given order; stores return them newest first.
func Reconstruct(id int64, p Params) Model {
	return Model{
		id:               id,
		name:             p.Name,
		version:          p.Version,
		provider:         p.Provider,
		description:      p.Description,
		releaseDate:      p.ReleaseDate,
		status:           p.Status,
		deprecated:       p.Deprecated,
		capabilities:     p.Capabilities,
		fields:           p.Fields,
		modalities:       p.Modalities,
		supportedFormats: p.SupportedFormats,
		languages:        p.Languages,
		metadata:         p.Metadata,
		pricing:          p.Pricing,
		benchmarks:       p.Benchmarks,
	}
}

func (m Model) ID() int64                         { return m.id }
func (m Model) Name() string                      { return m.name }
func (m Model) Version() string                   { return m.version }
func (m Model) Provider() Provider                { return m.provider }
func (m Model) ProviderName() string              { return m.provider.Name }
func (m Model) Description() string               { return m.description }
func (m Model) ReleaseDate() *time.Time           { return m.releaseDate }
func (m Model) Status() string                    { return m.status }
func (m Model) Deprecated() bool                  { return m.deprecated }
func (m Model) Capabilities() capability.Set      { return m.capabilities }
func (m Model) Fields() []string                  { return m.fields }
func (m Model) Modalities() []string              { return m.modalities }
func (m Model) SupportedFormats() []string        { return m.supportedFormats }
func (m Model) Languages() []string               { return m.languages }
func (m Model) Metadata() map[string]any          { return m.metadata }
func (m Model) Pricing() *pricing.Pricing         { return m.pricing }
func (m Model) Benchmarks() []benchmark.Benchmark { return m.benchmarks }

// Identity renders the unique name:version pair.
func (m Model) Identity() string {
	return m.name + ":" + m.version
}

// Label renders provider/name:version, used for fuzzy lookup.
func (m Model) Label() string {
	return m.provider.Name + "/" + m.Identity()
}

// Cost returns the ranking cost. ok is false when the model has no pricing.
func (m Model) Cost() (cost decimal.Decimal, ok bool) {
	if m.pricing == nil {
		return decimal.Decimal{}, false
	}
	return m.pricing.Cost(), true
}

// BenchmarkSummary averages the attached benchmarks. ok is false when there are none.
func (m Model) BenchmarkSummary() (benchmark.Summary, bool) {
	return benchmark.Summarize(m.benchmarks)
}

// Params returns the model fields, e.g. for persistence.
func (m Model) Params() Params {
	return Params{
		Name:             m.name,
		Version:          m.version,
		Provider:         m.provider,
		Description:      m.description,
		ReleaseDate:      m.releaseDate,
		Status:           m.status,
		Deprecated:       m.deprecated,
		Capabilities:     m.capabilities,
		Fields:           m.fields,
		Modalities:       m.modalities,
		SupportedFormats: m.supportedFormats,
		Languages:        m.languages,
		Metadata:         m.metadata,
		Pricing:          m.pricing,
		Benchmarks:       m.benchmarks,
	}
}
