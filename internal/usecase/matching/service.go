package matching

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/modelcatalog/internal/domain/match"
)

const rankingKind = "matching"

// Service ranks the catalog against a task by cost and benchmark quality.
type Service struct {
	catalog           CatalogReader
	defaultCostWeight float64
	recorder          Recorder
	logger            *zap.Logger
}

// New creates a matching service with the default cost weight of 0.5.
func New(catalog CatalogReader) *Service {
	return &Service{
		catalog:           catalog,
		defaultCostWeight: match.DefaultCostWeight,
		recorder:          nopRecorder{},
		logger:            zap.NewNop(),
	}
}

// WithDefaultCostWeight sets the weight used when a request does not carry one.
// Values outside [0,1] are clamped and NaN falls back to DefaultCostWeight;
// either case is logged, so set the logger first.
func (s *Service) WithDefaultCostWeight(w float64) *Service {
	if !match.ValidCostWeight(w) {
		clamped := clampCostWeight(w)
		s.logger.Warn("Default cost weight out of range",
			zap.Float64("weight", w),
			zap.Float64("using", clamped),
		)
		w = clamped
	}
	s.defaultCostWeight = w
	return s
}

func clampCostWeight(w float64) float64 {
	switch {
	case math.IsNaN(w):
		return match.DefaultCostWeight
	case w < 0:
		return 0
	case w > 1:
		return 1
	default:
		return w
	}
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

// MatchModelsForTask ranks every catalog model for the task. Models priced above
// the request's ceiling, and models without pricing, are left out entirely.
// A store failure or a cancelled context yields no ranking at all.
func (s *Service) MatchModelsForTask(ctx context.Context, req match.Request) (results []match.Result, err error) {
	start := time.Now()
	var excluded int
	defer func() {
		s.recorder.ObserveRanking(rankingKind, len(results), excluded, time.Since(start), err)
	}()

	models, err := s.catalog.AllModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("match models: %w", err)
	}

	ranked, excluded := rank(models, req, req.CostWeight(s.defaultCostWeight))

	if err = ctx.Err(); err != nil {
		return nil, fmt.Errorf("match models: %w", err)
	}

	if limit := req.Limit(); limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	s.logger.Debug("Models matched",
		zap.String("task", req.TaskDescription()),
		zap.Int("candidates", len(models)),
		zap.Int("excluded", excluded),
		zap.Int("returned", len(ranked)),
	)

	return ranked, nil
}
