package modelcatalog

import (
	dombench "github.com/kailas-cloud/modelcatalog/internal/domain/benchmark"
	domcat "github.com/kailas-cloud/modelcatalog/internal/domain/catalog"
	"github.com/kailas-cloud/modelcatalog/internal/domain/match"
	dompricing "github.com/kailas-cloud/modelcatalog/internal/domain/pricing"
	domsug "github.com/kailas-cloud/modelcatalog/internal/domain/suggestion"
)

func fromDomainModel(m domcat.Model) Model {
	p := m.Provider()
	out := Model{
		ID:               m.ID(),
		Name:             m.Name(),
		Version:          m.Version(),
		Provider:         Provider{ID: p.ID, Name: p.Name, Country: p.Country},
		Description:      m.Description(),
		ReleaseDate:      m.ReleaseDate(),
		Status:           m.Status(),
		Deprecated:       m.Deprecated(),
		Capabilities:     m.Capabilities().Labels(),
		Fields:           m.Fields(),
		Modalities:       m.Modalities(),
		SupportedFormats: m.SupportedFormats(),
		Languages:        m.Languages(),
		Metadata:         m.Metadata(),
	}
	if pr := m.Pricing(); pr != nil {
		pp := fromDomainPricing(*pr)
		out.Pricing = &pp
	}
	if bs := m.Benchmarks(); len(bs) > 0 {
		out.Benchmarks = fromDomainBenchmarks(bs)
	}
	return out
}

func fromDomainModels(ms []domcat.Model) []Model {
	out := make([]Model, len(ms))
	for i, m := range ms {
		out[i] = fromDomainModel(m)
	}
	return out
}

func fromDomainPricing(p dompricing.Pricing) Pricing {
	return Pricing{
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

func fromDomainBenchmarks(bs []dombench.Benchmark) []Benchmark {
	out := make([]Benchmark, len(bs))
	for i, b := range bs {
		out[i] = Benchmark{
			ID:       b.ID(),
			ModelID:  b.ModelID(),
			Type:     b.Type(),
			Score:    b.Score(),
			MaxScore: b.MaxScore(),
			RunAt:    b.RunAt(),
			Metadata: b.Metadata(),
		}
	}
	return out
}

func fromDomainProviders(ps []domcat.Provider) []Provider {
	out := make([]Provider, len(ps))
	for i, p := range ps {
		out[i] = Provider{ID: p.ID, Name: p.Name, Country: p.Country}
	}
	return out
}

func fromDomainFields(fs []domcat.Field) []Field {
	out := make([]Field, len(fs))
	for i, f := range fs {
		out[i] = Field{ID: f.ID, Name: f.Name}
	}
	return out
}

func fromMatchResults(rs []match.Result) []MatchResult {
	out := make([]MatchResult, len(rs))
	for i, r := range rs {
		out[i] = MatchResult{
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
	return out
}

func fromSuggestionResults(rs []domsug.Result) []Suggestion {
	out := make([]Suggestion, len(rs))
	for i, r := range rs {
		out[i] = Suggestion{
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
	return out
}

func toDomainRange(field string, b PriceBounds) (dompricing.Range, error) {
	return dompricing.NewRange(field, b.Min, b.Max) //nolint:wrapcheck // validation error is already descriptive
}
