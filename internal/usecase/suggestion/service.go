package suggestion

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/modelcatalog/internal/domain"
	"github.com/kailas-cloud/modelcatalog/internal/domain/catalog"
	domsug "github.com/kailas-cloud/modelcatalog/internal/domain/suggestion"
)

const rankingKind = "suggestion"

// Service recommends alternatives to a reference model.
type Service struct {
	catalog  CatalogReader
	recorder Recorder
	logger   *zap.Logger
}

// New creates a suggestion service.
func New(catalog CatalogReader) *Service {
	return &Service{catalog: catalog, recorder: nopRecorder{}, logger: zap.NewNop()}
}

// WithRecorder sets the ranking metrics recorder.
func (s *Service) WithRecorder(r Recorder) *Service {
	if r != nil {
		s.recorder = r
	}
	return s
}

// WithLogger sets the logger.
func (s *Service) WithLogger(l *zap.Logger) *Service {
	if l != nil {
		s.logger = l
	}
	return s
}

// SuggestionsForID ranks alternatives to the model with the given id.
func (s *Service) SuggestionsForID(ctx context.Context, id int64) ([]domsug.Result, error) {
	target, err := domsug.ByID(id)
	if err != nil {
		return nil, err
	}
	return s.SuggestionsForModel(ctx, target)
}

// SuggestionsForIdentity ranks alternatives to the model with the given name and version.
func (s *Service) SuggestionsForIdentity(ctx context.Context, name, version string) ([]domsug.Result, error) {
	target, err := domsug.ByIdentity(name, version)
	if err != nil {
		return nil, err
	}
	return s.SuggestionsForModel(ctx, target)
}

// SuggestionsForModel resolves the reference and ranks the rest of the catalog against it.
// The reference lookup and the catalog read run concurrently; either failing fails the call.
// Ranking uses the reference as it appears in the catalog read, so both sides come
// from one snapshot. A reference missing from that snapshot is ErrModelNotFound.
func (s *Service) SuggestionsForModel(ctx context.Context, target domsug.Target) (results []domsug.Result, err error) {
	start := time.Now()
	defer func() {
		s.recorder.ObserveRanking(rankingKind, len(results), 0, time.Since(start), err)
	}()

	var (
		ref    catalog.Model
		models []catalog.Model
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		m, err := s.resolve(gctx, target)
		if err != nil {
			return fmt.Errorf("get reference model: %w", err)
		}
		ref = m
		return nil
	})
	g.Go(func() error {
		ms, err := s.catalog.AllModels(gctx)
		if err != nil {
			return fmt.Errorf("list models: %w", err)
		}
		models = ms
		return nil
	})
	if err = g.Wait(); err != nil {
		return nil, fmt.Errorf("suggest models: %w", err)
	}

	ref, err = inSnapshot(ref.ID(), models)
	if err != nil {
		return nil, fmt.Errorf("suggest models: %w", err)
	}

	ranked := rankAgainst(ref, models)

	if err = ctx.Err(); err != nil {
		return nil, fmt.Errorf("suggest models: %w", err)
	}

	s.logger.Debug("Suggestions ranked",
		zap.Int64("model_id", ref.ID()),
		zap.String("model", ref.Identity()),
		zap.Int("returned", len(ranked)),
	)
	return ranked, nil
}

func inSnapshot(id int64, models []catalog.Model) (catalog.Model, error) {
	for _, m := range models {
		if m.ID() == id {
			return m, nil
		}
	}
	return catalog.Model{}, fmt.Errorf("model %d left the catalog: %w", id, domain.ErrModelNotFound)
}

func (s *Service) resolve(ctx context.Context, target domsug.Target) (catalog.Model, error) {
	if id := target.ID(); id > 0 {
		return s.catalog.ModelByID(ctx, id) //nolint:wrapcheck // wrapped by caller
	}
	name, version := target.Identity()
	return s.catalog.ModelByIdentity(ctx, name, version) //nolint:wrapcheck // wrapped by caller
}
