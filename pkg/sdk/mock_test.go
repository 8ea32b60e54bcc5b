package modelcatalog

import (
	"context"

	dombench "github.com/kailas-cloud/modelcatalog/internal/domain/benchmark"
	domcat "github.com/kailas-cloud/modelcatalog/internal/domain/catalog"
	"github.com/kailas-cloud/modelcatalog/internal/domain/match"
	dompricing "github.com/kailas-cloud/modelcatalog/internal/domain/pricing"
	domsug "github.com/kailas-cloud/modelcatalog/internal/domain/suggestion"
	healthuc "github.com/kailas-cloud/modelcatalog/internal/usecase/health"
	importeruc "github.com/kailas-cloud/modelcatalog/internal/usecase/importer"
)

// --- catalogUseCase mock ---

type mockCatalogUC struct {
	modelsFn    func(ctx context.Context, name string) ([]domcat.Model, error)
	searchFn    func(ctx context.Context, query string, limit int) ([]domcat.Model, error)
	modelFn     func(ctx context.Context, id int64) (domcat.Model, error)
	identityFn  func(ctx context.Context, name, version string) (domcat.Model, error)
	providersFn func(ctx context.Context) ([]domcat.Provider, error)
	fieldsFn    func(ctx context.Context) ([]domcat.Field, error)
}

func (m *mockCatalogUC) Models(ctx context.Context, name string) ([]domcat.Model, error) {
	return m.modelsFn(ctx, name)
}

func (m *mockCatalogUC) SearchModels(ctx context.Context, query string, limit int) ([]domcat.Model, error) {
	return m.searchFn(ctx, query, limit)
}

func (m *mockCatalogUC) Model(ctx context.Context, id int64) (domcat.Model, error) {
	return m.modelFn(ctx, id)
}

func (m *mockCatalogUC) ModelByIdentity(ctx context.Context, name, version string) (domcat.Model, error) {
	return m.identityFn(ctx, name, version)
}

func (m *mockCatalogUC) Providers(ctx context.Context) ([]domcat.Provider, error) {
	return m.providersFn(ctx)
}

func (m *mockCatalogUC) Fields(ctx context.Context) ([]domcat.Field, error) {
	return m.fieldsFn(ctx)
}

// --- pricingUseCase mock ---

type mockPricingUC struct {
	inputFn   func(ctx context.Context, r dompricing.Range) ([]domcat.Model, error)
	outputFn  func(ctx context.Context, r dompricing.Range) ([]domcat.Model, error)
	bothFn    func(ctx context.Context, in, out dompricing.Range) ([]domcat.Model, error)
	similarFn func(ctx context.Context, name string) ([]domcat.Model, error)
}

func (m *mockPricingUC) FilterByInputRange(ctx context.Context, r dompricing.Range) ([]domcat.Model, error) {
	return m.inputFn(ctx, r)
}

func (m *mockPricingUC) FilterByOutputRange(ctx context.Context, r dompricing.Range) ([]domcat.Model, error) {
	return m.outputFn(ctx, r)
}

func (m *mockPricingUC) FilterByInputOutputRange(
	ctx context.Context, in, out dompricing.Range,
) ([]domcat.Model, error) {
	return m.bothFn(ctx, in, out)
}

func (m *mockPricingUC) FindSimilarPrices(ctx context.Context, name string) ([]domcat.Model, error) {
	return m.similarFn(ctx, name)
}

// --- benchmarkUseCase mock ---

type mockBenchmarkUC struct {
	listFn    func(ctx context.Context, modelID int64) ([]dombench.Benchmark, error)
	summaryFn func(ctx context.Context, modelID int64) (dombench.Summary, error)
}

func (m *mockBenchmarkUC) ListForModel(ctx context.Context, modelID int64) ([]dombench.Benchmark, error) {
	return m.listFn(ctx, modelID)
}

func (m *mockBenchmarkUC) SummaryForModel(ctx context.Context, modelID int64) (dombench.Summary, error) {
	return m.summaryFn(ctx, modelID)
}

// --- matchingUseCase mock ---

type mockMatchingUC struct {
	matchFn func(ctx context.Context, req match.Request) ([]match.Result, error)
}

func (m *mockMatchingUC) MatchModelsForTask(ctx context.Context, req match.Request) ([]match.Result, error) {
	return m.matchFn(ctx, req)
}

// --- suggestionUseCase mock ---

type mockSuggestionUC struct {
	byIDFn       func(ctx context.Context, id int64) ([]domsug.Result, error)
	byIdentityFn func(ctx context.Context, name, version string) ([]domsug.Result, error)
}

func (m *mockSuggestionUC) SuggestionsForID(ctx context.Context, id int64) ([]domsug.Result, error) {
	return m.byIDFn(ctx, id)
}

func (m *mockSuggestionUC) SuggestionsForIdentity(
	ctx context.Context, name, version string,
) ([]domsug.Result, error) {
	return m.byIdentityFn(ctx, name, version)
}

// --- importUseCase mock ---

type mockImportUC struct {
	importFn func(ctx context.Context, snap domcat.Snapshot) (importeruc.Stats, error)
}

func (m *mockImportUC) Import(ctx context.Context, snap domcat.Snapshot) (importeruc.Stats, error) {
	return m.importFn(ctx, snap)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(_ context.Context) healthuc.Report {
	return m.report
}
