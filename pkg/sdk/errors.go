package modelcatalog

import "github.com/kailas-cloud/modelcatalog/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidInput     = domain.ErrInvalidInput
	ErrModelNotFound    = domain.ErrModelNotFound
	ErrNotFound         = domain.ErrNotFound
	ErrNoBenchmarkData  = domain.ErrNoBenchmarkData
	ErrStoreUnavailable = domain.ErrStoreUnavailable
	ErrInvalidCatalog   = domain.ErrInvalidCatalog
)
