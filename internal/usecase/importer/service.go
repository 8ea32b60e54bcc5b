package importer

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/modelcatalog/internal/domain"
	"github.com/kailas-cloud/modelcatalog/internal/domain/catalog"
)

// Stats counts what an import wrote.
type Stats struct {
	Providers  int
	Fields     int
	Models     int
	Benchmarks int
}

// Service validates and imports catalog snapshots.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// New creates an import service.
func New(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// Import validates the snapshot and writes it. Nothing is written when validation fails.
func (s *Service) Import(ctx context.Context, snap catalog.Snapshot) (Stats, error) {
	if err := Validate(snap); err != nil {
		return Stats{}, fmt.Errorf("%w: %w", domain.ErrInvalidCatalog, err)
	}

	if err := s.repo.Import(ctx, snap); err != nil {
		return Stats{}, fmt.Errorf("import catalog: %w", err)
	}

	stats := Stats{
		Providers: len(snap.Providers),
		Fields:    len(snap.Fields),
		Models:    len(snap.Models),
	}
	for _, m := range snap.Models {
		stats.Benchmarks += len(m.Benchmarks())
	}

	s.logger.Info("Catalog imported",
		zap.Int("providers", stats.Providers),
		zap.Int("fields", stats.Fields),
		zap.Int("models", stats.Models),
		zap.Int("benchmarks", stats.Benchmarks),
	)
	return stats, nil
}

// Validate checks cross-references and uniqueness inside a snapshot.
func Validate(snap catalog.Snapshot) error {
	var errs []error

	providers := make(map[string]bool, len(snap.Providers))
	for _, p := range snap.Providers {
		switch {
		case p.Name == "":
			errs = append(errs, errors.New("provider name is required"))
		case providers[p.Name]:
			errs = append(errs, fmt.Errorf("duplicate provider %q", p.Name))
		}
		providers[p.Name] = true
	}

	fields := make(map[string]bool, len(snap.Fields))
	for _, f := range snap.Fields {
		switch {
		case f.Name == "":
			errs = append(errs, errors.New("field name is required"))
		case fields[f.Name]:
			errs = append(errs, fmt.Errorf("duplicate field %q", f.Name))
		}
		fields[f.Name] = true
	}

	identities := make(map[string]bool, len(snap.Models))
	pricings := make(map[string]string, len(snap.Models))
	for _, m := range snap.Models {
		id := m.Identity()
		if identities[id] {
			errs = append(errs, fmt.Errorf("duplicate model %s", id))
		}
		identities[id] = true

		if !providers[m.ProviderName()] {
			errs = append(errs, fmt.Errorf("model %s: unknown provider %q", id, m.ProviderName()))
		}
		for _, f := range m.Fields() {
			if !fields[f] {
				errs = append(errs, fmt.Errorf("model %s: unknown field %q", id, f))
			}
		}
		if p := m.Pricing(); p != nil {
			if owner, ok := pricings[p.Name()]; ok {
				errs = append(errs, fmt.Errorf("model %s: pricing %q already used by %s", id, p.Name(), owner))
			}
			pricings[p.Name()] = id
		}
	}

	return errors.Join(errs...)
}
