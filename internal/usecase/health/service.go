package health

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckEmpty indicates a reachable catalog without providers (not seeded).
	CheckEmpty CheckResult = "empty"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// DefaultCheckTimeout bounds each component check.
const DefaultCheckTimeout = 2 * time.Second

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	db      DBPinger
	catalog CatalogReader
	timeout time.Duration
	logger  *zap.Logger
}

// New creates a Service. catalog can be nil.
func New(db DBPinger, catalog CatalogReader, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{db: db, catalog: catalog, timeout: DefaultCheckTimeout, logger: logger}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	checks["database"] = s.run(ctx, "database", func(ctx context.Context) (CheckResult, error) {
		if err := s.db.Ping(ctx); err != nil {
			return CheckError, err
		}
		return CheckOK, nil
	})

	if s.catalog != nil {
		checks["catalog"] = s.run(ctx, "catalog", func(ctx context.Context) (CheckResult, error) {
			providers, err := s.catalog.Providers(ctx)
			if err != nil {
				return CheckError, err
			}
			if len(providers) == 0 {
				return CheckEmpty, nil
			}
			return CheckOK, nil
		})
	}

	status := Healthy
	for _, v := range checks {
		if v != CheckOK {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Checks: checks}
}

func (s *Service) run(
	ctx context.Context, name string, check func(context.Context) (CheckResult, error),
) CheckResult {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	res, err := check(ctx)
	if err != nil {
		s.logger.Warn("Health check failed", zap.String("component", name), zap.Error(err))
	}
	return res
}
