package chi

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kailas-cloud/modelcatalog/internal/domain/benchmark"
	"github.com/kailas-cloud/modelcatalog/internal/domain/capability"
	"github.com/kailas-cloud/modelcatalog/internal/domain/catalog"
	"github.com/kailas-cloud/modelcatalog/internal/domain/match"
	"github.com/kailas-cloud/modelcatalog/internal/domain/pricing"
	"github.com/kailas-cloud/modelcatalog/internal/domain/suggestion"
)

// Decimals marshal as JSON strings; NullDecimal marshals as null when unknown.

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

type providerResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country,omitempty"`
}

type fieldResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type pricingResponse struct {
	ID                            int64               `json:"id"`
	Name                          string              `json:"name"`
	InputPricePerMillionTokens    decimal.Decimal     `json:"inputPricePerMillionTokens"`
	OutputPricePerMillionTokens   decimal.Decimal     `json:"outputPricePerMillionTokens"`
	CachedPricePerMillionTokens   decimal.NullDecimal `json:"cachedPricePerMillionTokens"`
	TrainingPricePerMillionTokens decimal.NullDecimal `json:"trainingPricePerMillionTokens"`
	NormalizedPricePerMillion     decimal.NullDecimal `json:"normalizedPricePerMillion"`
	Currency                      string              `json:"currency"`
	Unit                          string              `json:"unit"`
	EffectiveAt                   time.Time           `json:"effectiveAt"`
}

type modelResponse struct {
	ID               int64            `json:"id"`
	Name             string           `json:"name"`
	Version          string           `json:"version"`
	Provider         providerResponse `json:"provider"`
	Description      string           `json:"description,omitempty"`
	ReleaseDate      *time.Time       `json:"releaseDate"`
	Status           string           `json:"status"`
	Deprecated       bool             `json:"deprecated"`
	Capabilities     capability.Set   `json:"capabilities"`
	Fields           []string         `json:"fields"`
	Modalities       []string         `json:"modalities"`
	SupportedFormats []string         `json:"supportedFormats"`
	Languages        []string         `json:"languages"`
	Metadata         map[string]any   `json:"metadata,omitempty"`
	Pricing          *pricingResponse `json:"pricing"`
}

type benchmarkResponse struct {
	ID            int64          `json:"id"`
	ModelID       int64          `json:"modelId"`
	BenchmarkType string         `json:"benchmarkType"`
	Score         float64        `json:"score"`
	MaxScore      *float64       `json:"maxScore"`
	RunAt         time.Time      `json:"runAt"`
	Metadata      map[string]any `json:"metadata,omitempty"`
}

type summaryResponse struct {
	ModelID      int64   `json:"modelId"`
	AverageScore float64 `json:"averageScore"`
	Count        int     `json:"count"`
}

type aggregationResponse struct {
	ModelID      int64    `json:"modelId"`
	AverageScore *float64 `json:"averageScore"`
	Count        int      `json:"count"`
}

type matchRequest struct {
	TaskDescription string            `json:"taskDescription"`
	Constraints     *matchConstraints `json:"constraints,omitempty"`
	Preferences     *matchPreferences `json:"preferences,omitempty"`
	Limit           int               `json:"limit,omitempty"`
}

type matchConstraints struct {
	MaxPricePerMillionTokens *decimal.Decimal `json:"maxPricePerMillionTokens,omitempty"`
}

type matchPreferences struct {
	CostWeight *float64 `json:"costWeight,omitempty"`
}

type matchResultResponse struct {
	ModelID               int64               `json:"modelId"`
	ModelName             string              `json:"modelName"`
	ModelVersion          string              `json:"modelVersion"`
	ProviderName          string              `json:"providerName"`
	Score                 float64             `json:"score"`
	CostPerMillionTokens  decimal.NullDecimal `json:"costPerMillionTokens"`
	AverageBenchmarkScore *float64            `json:"averageBenchmarkScore"`
	Explanation           string              `json:"explanation"`
}

type matchResponse struct {
	TaskDescription string                `json:"taskDescription"`
	Results         []matchResultResponse `json:"results"`
}

type suggestionResponse struct {
	ModelID                   int64               `json:"modelId"`
	ModelName                 string              `json:"modelName"`
	ModelVersion              string              `json:"modelVersion"`
	ProviderName              string              `json:"providerName"`
	SimilarityScore           float64             `json:"similarityScore"`
	CostDeltaPerMillionTokens decimal.NullDecimal `json:"costDeltaPerMillionTokens"`
	BenchmarkDelta            *float64            `json:"benchmarkDelta"`
	Explanation               string              `json:"explanation"`
}

type suggestionsResponse struct {
	ModelID     int64                `json:"modelId"`
	Suggestions []suggestionResponse `json:"suggestions"`
}

func providerToResponse(p catalog.Provider) providerResponse {
	return providerResponse{ID: p.ID, Name: p.Name, Country: p.Country}
}

func fieldToResponse(f catalog.Field) fieldResponse {
	return fieldResponse{ID: f.ID, Name: f.Name}
}

func pricingToResponse(p *pricing.Pricing) *pricingResponse {
	if p == nil {
		return nil
	}
	return &pricingResponse{
		ID:                            p.ID(),
		Name:                          p.Name(),
		InputPricePerMillionTokens:    p.Input(),
		OutputPricePerMillionTokens:   p.Output(),
		CachedPricePerMillionTokens:   p.Cached(),
		TrainingPricePerMillionTokens: p.Training(),
		NormalizedPricePerMillion:     p.Normalized(),
		Currency:                      p.Currency(),
		Unit:                          p.Unit(),
		EffectiveAt:                   p.EffectiveAt(),
	}
}

func modelToResponse(m catalog.Model) modelResponse {
	return modelResponse{
		ID:               m.ID(),
		Name:             m.Name(),
		Version:          m.Version(),
		Provider:         providerToResponse(m.Provider()),
		Description:      m.Description(),
		ReleaseDate:      m.ReleaseDate(),
		Status:           m.Status(),
		Deprecated:       m.Deprecated(),
		Capabilities:     m.Capabilities(),
		Fields:           nonNil(m.Fields()),
		Modalities:       nonNil(m.Modalities()),
		SupportedFormats: nonNil(m.SupportedFormats()),
		Languages:        nonNil(m.Languages()),
		Metadata:         m.Metadata(),
		Pricing:          pricingToResponse(m.Pricing()),
	}
}

func modelsToResponse(ms []catalog.Model) []modelResponse {
	out := make([]modelResponse, len(ms))
	for i, m := range ms {
		out[i] = modelToResponse(m)
	}
	return out
}

func benchmarkToResponse(b benchmark.Benchmark) benchmarkResponse {
	return benchmarkResponse{
		ID:            b.ID(),
		ModelID:       b.ModelID(),
		BenchmarkType: b.Type(),
		Score:         b.Score(),
		MaxScore:      b.MaxScore(),
		RunAt:         b.RunAt(),
		Metadata:      b.Metadata(),
	}
}

func matchResultToResponse(r match.Result) matchResultResponse {
	return matchResultResponse{
		ModelID:               r.ModelID,
		ModelName:             r.ModelName,
		ModelVersion:          r.ModelVersion,
		ProviderName:          r.ProviderName,
		Score:                 r.Score,
		CostPerMillionTokens:  r.CostPerMillionTokens,
		AverageBenchmarkScore: r.AverageBenchmarkScore,
		Explanation:           r.Explanation,
	}
}

func suggestionToResponse(r suggestion.Result) suggestionResponse {
	return suggestionResponse{
		ModelID:                   r.ModelID,
		ModelName:                 r.ModelName,
		ModelVersion:              r.ModelVersion,
		ProviderName:              r.ProviderName,
		SimilarityScore:           r.SimilarityScore,
		CostDeltaPerMillionTokens: r.CostDeltaPerMillionTokens,
		BenchmarkDelta:            r.BenchmarkDelta,
		Explanation:               r.Explanation,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
