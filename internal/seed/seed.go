// Package seed reads catalog snapshots from YAML files.
package seed

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/modelcatalog/internal/domain/benchmark"
	"github.com/kailas-cloud/modelcatalog/internal/domain/capability"
	"github.com/kailas-cloud/modelcatalog/internal/domain/catalog"
	"github.com/kailas-cloud/modelcatalog/internal/domain/pricing"
)

type fileDTO struct {
	Providers []providerDTO `yaml:"providers"`
	Fields    []string      `yaml:"fields"`
	Models    []modelDTO    `yaml:"models"`
}

type providerDTO struct {
	Name    string `yaml:"name"`
	Country string `yaml:"country"`
}

type modelDTO struct {
	Name             string         `yaml:"name"`
	Version          string         `yaml:"version"`
	Provider         string         `yaml:"provider"`
	Description      string         `yaml:"description"`
	ReleaseDate      string         `yaml:"release_date"`
	Status           string         `yaml:"status"`
	Deprecated       bool           `yaml:"deprecated"`
	Capabilities     any            `yaml:"capabilities"`
	Fields           []string       `yaml:"fields"`
	Modalities       []string       `yaml:"modalities"`
	SupportedFormats []string       `yaml:"supported_formats"`
	Languages        []string       `yaml:"languages"`
	Metadata         map[string]any `yaml:"metadata"`
	Pricing          *pricingDTO    `yaml:"pricing"`
	Benchmarks       []benchmarkDTO `yaml:"benchmarks"`
}

type pricingDTO struct {
	Name        string `yaml:"name"`
	Input       string `yaml:"input"`
	Output      string `yaml:"output"`
	Cached      string `yaml:"cached"`
	Training    string `yaml:"training"`
	Normalized  string `yaml:"normalized"`
	Currency    string `yaml:"currency"`
	Unit        string `yaml:"unit"`
	EffectiveAt string `yaml:"effective_at"`
}

type benchmarkDTO struct {
	Type     string         `yaml:"type"`
	Score    float64        `yaml:"score"`
	MaxScore *float64       `yaml:"max_score"`
	RunAt    string         `yaml:"run_at"`
	Metadata map[string]any `yaml:"metadata"`
}

// Load reads a YAML catalog file.
func Load(path string) (catalog.Snapshot, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return catalog.Snapshot{}, fmt.Errorf("open seed %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f)
}

// Decode parses a YAML catalog into a snapshot. Cross-reference checks are left to the importer.
func Decode(r io.Reader) (catalog.Snapshot, error) {
	var doc fileDTO
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return catalog.Snapshot{}, fmt.Errorf("parse seed: %w", err)
	}

	snap := catalog.Snapshot{
		Providers: make([]catalog.Provider, 0, len(doc.Providers)),
		Fields:    make([]catalog.Field, 0, len(doc.Fields)),
		Models:    make([]catalog.Model, 0, len(doc.Models)),
	}
	countries := make(map[string]string, len(doc.Providers))
	for _, p := range doc.Providers {
		snap.Providers = append(snap.Providers, catalog.Provider{Name: p.Name, Country: p.Country})
		countries[p.Name] = p.Country
	}
	for _, name := range doc.Fields {
		snap.Fields = append(snap.Fields, catalog.Field{Name: name})
	}

	for i, md := range doc.Models {
		m, err := md.toDomain(countries[md.Provider])
		if err != nil {
			return catalog.Snapshot{}, fmt.Errorf("models[%d]: %w", i, err)
		}
		snap.Models = append(snap.Models, m)
	}
	return snap, nil
}

func (md modelDTO) toDomain(country string) (catalog.Model, error) {
	// Capabilities go through the same coercion as stored JSON columns.
	rawCaps, err := json.Marshal(md.Capabilities)
	if err != nil {
		return catalog.Model{}, fmt.Errorf("encode capabilities: %w", err)
	}
	caps, err := capability.FromJSON(rawCaps)
	if err != nil {
		return catalog.Model{}, fmt.Errorf("model %s: %w", md.Name, err)
	}

	params := catalog.Params{
		Name:             md.Name,
		Version:          md.Version,
		Provider:         catalog.Provider{Name: md.Provider, Country: country},
		Description:      md.Description,
		Status:           md.Status,
		Deprecated:       md.Deprecated,
		Capabilities:     caps,
		Fields:           md.Fields,
		Modalities:       md.Modalities,
		SupportedFormats: md.SupportedFormats,
		Languages:        md.Languages,
		Metadata:         md.Metadata,
	}

	if md.ReleaseDate != "" {
		rd, err := time.Parse(time.DateOnly, md.ReleaseDate)
		if err != nil {
			return catalog.Model{}, fmt.Errorf("model %s: release_date: %w", md.Name, err)
		}
		params.ReleaseDate = &rd
	}

	if md.Pricing != nil {
		p, err := md.Pricing.toDomain()
		if err != nil {
			return catalog.Model{}, fmt.Errorf("model %s: %w", md.Name, err)
		}
		params.Pricing = &p
	}

	for _, bd := range md.Benchmarks {
		b, err := bd.toDomain()
		if err != nil {
			return catalog.Model{}, fmt.Errorf("model %s: %w", md.Name, err)
		}
		params.Benchmarks = append(params.Benchmarks, b)
	}
	benchmark.SortNewestFirst(params.Benchmarks)

	return catalog.New(params)
}

func (pd pricingDTO) toDomain() (pricing.Pricing, error) {
	input, err := decimal.NewFromString(pd.Input)
	if err != nil {
		return pricing.Pricing{}, fmt.Errorf("pricing %s: input: %w", pd.Name, err)
	}
	output, err := decimal.NewFromString(pd.Output)
	if err != nil {
		return pricing.Pricing{}, fmt.Errorf("pricing %s: output: %w", pd.Name, err)
	}

	params := pricing.Params{
		Name:     pd.Name,
		Input:    input,
		Output:   output,
		Currency: pd.Currency,
		Unit:     pd.Unit,
	}
	for _, opt := range []struct {
		name string
		raw  string
		dst  *decimal.NullDecimal
	}{
		{"cached", pd.Cached, &params.Cached},
		{"training", pd.Training, &params.Training},
		{"normalized", pd.Normalized, &params.Normalized},
	} {
		if opt.raw == "" {
			continue
		}
		v, err := decimal.NewFromString(opt.raw)
		if err != nil {
			return pricing.Pricing{}, fmt.Errorf("pricing %s: %s: %w", pd.Name, opt.name, err)
		}
		*opt.dst = decimal.NewNullDecimal(v)
	}

	if pd.EffectiveAt != "" {
		at, err := time.Parse(time.RFC3339, pd.EffectiveAt)
		if err != nil {
			return pricing.Pricing{}, fmt.Errorf("pricing %s: effective_at: %w", pd.Name, err)
		}
		params.EffectiveAt = at
	}

	return pricing.New(params) //nolint:wrapcheck // domain validation error
}

func (bd benchmarkDTO) toDomain() (benchmark.Benchmark, error) {
	runAt, err := time.Parse(time.RFC3339, bd.RunAt)
	if err != nil {
		return benchmark.Benchmark{}, fmt.Errorf("benchmark %s: run_at: %w", bd.Type, err)
	}
	return benchmark.New(bd.Type, bd.Score, bd.MaxScore, runAt, bd.Metadata) //nolint:wrapcheck // domain validation error
}
