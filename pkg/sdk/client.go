package modelcatalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/modelcatalog/internal/domain"
	dombench "github.com/kailas-cloud/modelcatalog/internal/domain/benchmark"
	domcat "github.com/kailas-cloud/modelcatalog/internal/domain/catalog"
	"github.com/kailas-cloud/modelcatalog/internal/domain/match"
	dompricing "github.com/kailas-cloud/modelcatalog/internal/domain/pricing"
	domsug "github.com/kailas-cloud/modelcatalog/internal/domain/suggestion"
	"github.com/kailas-cloud/modelcatalog/internal/storage"
	benchmarkuc "github.com/kailas-cloud/modelcatalog/internal/usecase/benchmark"
	cataloguc "github.com/kailas-cloud/modelcatalog/internal/usecase/catalog"
	healthuc "github.com/kailas-cloud/modelcatalog/internal/usecase/health"
	importeruc "github.com/kailas-cloud/modelcatalog/internal/usecase/importer"
	matchinguc "github.com/kailas-cloud/modelcatalog/internal/usecase/matching"
	pricinguc "github.com/kailas-cloud/modelcatalog/internal/usecase/pricing"
	suggestionuc "github.com/kailas-cloud/modelcatalog/internal/usecase/suggestion"
)

const defaultReadinessTimeout = 10 * time.Second

// Use case contracts, narrowed so tests can substitute them.
type catalogUseCase interface {
	Models(ctx context.Context, name string) ([]domcat.Model, error)
	SearchModels(ctx context.Context, query string, limit int) ([]domcat.Model, error)
	Model(ctx context.Context, id int64) (domcat.Model, error)
	ModelByIdentity(ctx context.Context, name, version string) (domcat.Model, error)
	Providers(ctx context.Context) ([]domcat.Provider, error)
	Fields(ctx context.Context) ([]domcat.Field, error)
}

type pricingUseCase interface {
	FilterByInputRange(ctx context.Context, r dompricing.Range) ([]domcat.Model, error)
	FilterByOutputRange(ctx context.Context, r dompricing.Range) ([]domcat.Model, error)
	FilterByInputOutputRange(ctx context.Context, in, out dompricing.Range) ([]domcat.Model, error)
	FindSimilarPrices(ctx context.Context, pricingName string) ([]domcat.Model, error)
}

type benchmarkUseCase interface {
	ListForModel(ctx context.Context, modelID int64) ([]dombench.Benchmark, error)
	SummaryForModel(ctx context.Context, modelID int64) (dombench.Summary, error)
}

type matchingUseCase interface {
	MatchModelsForTask(ctx context.Context, req match.Request) ([]match.Result, error)
}

type suggestionUseCase interface {
	SuggestionsForID(ctx context.Context, id int64) ([]domsug.Result, error)
	SuggestionsForIdentity(ctx context.Context, name, version string) ([]domsug.Result, error)
}

type importUseCase interface {
	Import(ctx context.Context, snap domcat.Snapshot) (importeruc.Stats, error)
}

// Client is the model catalog entry point.
type Client struct {
	backend    *storage.Backend
	catalogSvc catalogUseCase
	pricingSvc pricingUseCase
	benchSvc   benchmarkUseCase
	matchSvc   matchingUseCase
	suggestSvc suggestionUseCase
	importSvc  importUseCase
	healthSvc  healthUseCase
	obs        *observer
}

// New opens the configured store and wires the catalog services.
// SQL schemas are migrated unless WithoutMigrations is given.
// The provided context bounds the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	cfg.db.AutoMigrate = true
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.db.Driver == "" {
		return nil, errors.New(
			"modelcatalog: store required (use WithSQLite, WithPostgres, WithMySQL or WithValkey)",
		)
	}
	if w := cfg.costWeight; w != nil && !match.ValidCostWeight(*w) {
		return nil, fmt.Errorf("modelcatalog: %w",
			domain.NewValidationError("defaultCostWeight", fmt.Sprintf("must be within [0,1], got %v", *w)))
	}
	if cfg.db.KeyPrefix == "" {
		cfg.db.KeyPrefix = "modelcatalog:"
	}
	if cfg.db.ReadinessTimeout <= 0 {
		cfg.db.ReadinessTimeout = int(defaultReadinessTimeout / time.Second)
	}

	logger := cfg.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	backend, err := storage.Open(ctx, cfg.db, logger)
	if err != nil {
		return nil, fmt.Errorf("modelcatalog: %w", err)
	}

	return wireClient(backend, cfg, logger, obs), nil
}

func wireClient(backend *storage.Backend, cfg *clientConfig, logger *zap.Logger, obs *observer) *Client {
	repo := backend.Repo

	matchSvc := matchinguc.New(repo).WithLogger(logger)
	if cfg.costWeight != nil {
		matchSvc = matchSvc.WithDefaultCostWeight(*cfg.costWeight)
	}

	return &Client{
		backend:    backend,
		catalogSvc: cataloguc.New(repo),
		pricingSvc: pricinguc.New(repo),
		benchSvc:   benchmarkuc.New(repo),
		matchSvc:   matchSvc,
		suggestSvc: suggestionuc.New(repo).WithLogger(logger),
		importSvc:  importeruc.New(repo, logger),
		healthSvc:  healthuc.New(backend, repo, logger),
		obs:        obs,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.backend != nil {
		c.backend.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.backend.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}
