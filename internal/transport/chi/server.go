package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/modelcatalog/internal/domain"
	logpkg "github.com/kailas-cloud/modelcatalog/internal/logger"
	benchmarkuc "github.com/kailas-cloud/modelcatalog/internal/usecase/benchmark"
	cataloguc "github.com/kailas-cloud/modelcatalog/internal/usecase/catalog"
	healthuc "github.com/kailas-cloud/modelcatalog/internal/usecase/health"
	matchinguc "github.com/kailas-cloud/modelcatalog/internal/usecase/matching"
	pricinguc "github.com/kailas-cloud/modelcatalog/internal/usecase/pricing"
	suggestionuc "github.com/kailas-cloud/modelcatalog/internal/usecase/suggestion"
)

// ErrorCode is the machine-readable error code of an ErrorResponse.
type ErrorCode string

// Error codes returned by the API.
const (
	ErrorCodeBadRequest       ErrorCode = "bad_request"
	ErrorCodeUnauthorized     ErrorCode = "unauthorized"
	ErrorCodeModelNotFound    ErrorCode = "model_not_found"
	ErrorCodeNotFound         ErrorCode = "not_found"
	ErrorCodeNoBenchmarkData  ErrorCode = "no_benchmark_data"
	ErrorCodeStoreUnavailable ErrorCode = "store_unavailable"
	ErrorCodeInternalError    ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

const noBenchmarkDataMessage = "No benchmark data found for model"

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the catalog HTTP API.
type Server struct {
	catalog       *cataloguc.Service
	pricing       *pricinguc.Service
	benchmarks    *benchmarkuc.Service
	matching      *matchinguc.Service
	suggestions   *suggestionuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// Services groups the use cases served over HTTP.
type Services struct {
	Catalog     *cataloguc.Service
	Pricing     *pricinguc.Service
	Benchmarks  *benchmarkuc.Service
	Matching    *matchinguc.Service
	Suggestions *suggestionuc.Service
	Health      *healthuc.Service
}

// NewServer creates an HTTP API server.
func NewServer(svc Services, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		catalog:     svc.Catalog,
		pricing:     svc.Pricing,
		benchmarks:  svc.Benchmarks,
		matching:    svc.Matching,
		suggestions: svc.Suggestions,
		health:      svc.Health,
		logger:      logger,
	}
	s.errorHandlers = []errorHandler{
		validationHandler,
		sentinelHandler(domain.ErrModelNotFound, http.StatusNotFound, ErrorCodeModelNotFound),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, ErrorCodeNotFound),
		noBenchmarkDataHandler,
		sentinelHandler(domain.ErrStoreUnavailable, http.StatusServiceUnavailable, ErrorCodeStoreUnavailable),
	}
	return s
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidInput,
		domain.ErrModelNotFound,
		domain.ErrNotFound,
		domain.ErrNoBenchmarkData,
		domain.ErrStoreUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// validationHandler reports the offending parameter of an invalid input error.
func validationHandler(w http.ResponseWriter, err error, msg string) bool {
	if !errors.Is(err, domain.ErrInvalidInput) {
		return false
	}
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		msg = ve.Error()
	}
	writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, msg)
	return true
}

func noBenchmarkDataHandler(w http.ResponseWriter, err error, _ string) bool {
	if !errors.Is(err, domain.ErrNoBenchmarkData) {
		return false
	}
	writeError(w, http.StatusNotFound, ErrorCodeNoBenchmarkData, noBenchmarkDataMessage)
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logpkg.FromContext(r.Context(), s.logger)
	msg := safeDomainMessage(err)

	if errors.Is(err, domain.ErrStoreUnavailable) {
		log.Error("catalog store error", zap.Error(err))
	} else if msg != "internal error" {
		log.Warn("domain error", zap.Error(err))
	}

	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}

// badParam answers 400 for a malformed path or query parameter.
func (s *Server) badParam(w http.ResponseWriter, r *http.Request, name string, err error) {
	logpkg.FromContext(r.Context(), s.logger).Warn("invalid parameter",
		zap.String("param", name), zap.Error(err))
	writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "invalid parameter "+name)
}
