package chi

import (
	"net/http"

	"github.com/shopspring/decimal"

	dompricing "github.com/kailas-cloud/modelcatalog/internal/domain/pricing"
)

// Defaults of the input price-range route when a bound is missing.
var (
	defaultRangeMin = decimal.Zero
	defaultRangeMax = decimal.NewFromInt(10)
)

// PriceRangeInput handles GET /pricing/price-range/input?minInput=&maxOutput=.
// Both bounds apply to the input price.
func (s *Server) PriceRangeInput(w http.ResponseWriter, r *http.Request) {
	minInput, err := queryDecimal(r, "minInput")
	if err != nil {
		s.badParam(w, r, "minInput", err)
		return
	}
	maxOutput, err := queryDecimal(r, "maxOutput")
	if err != nil {
		s.badParam(w, r, "maxOutput", err)
		return
	}

	models, err := s.pricing.FilterByPriceRange(r.Context(),
		decimalOr(minInput, defaultRangeMin), decimalOr(maxOutput, defaultRangeMax))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, modelsToResponse(models))
}

// PriceRangeOutput handles GET /pricing/price-range/output?min=&max=.
func (s *Server) PriceRangeOutput(w http.ResponseWriter, r *http.Request) {
	rng, ok := s.rangeParams(w, r, "output", "min", "max")
	if !ok {
		return
	}

	models, err := s.pricing.FilterByOutputRange(r.Context(), rng)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, modelsToResponse(models))
}

// PriceRange handles GET /pricing/price-range?inputMin=&inputMax=&outputMin=&outputMax=.
func (s *Server) PriceRange(w http.ResponseWriter, r *http.Request) {
	in, ok := s.rangeParams(w, r, "input", "inputMin", "inputMax")
	if !ok {
		return
	}
	out, ok := s.rangeParams(w, r, "output", "outputMin", "outputMax")
	if !ok {
		return
	}

	models, err := s.pricing.FilterByInputOutputRange(r.Context(), in, out)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, modelsToResponse(models))
}

// SimilarPrices handles GET /pricing/similar/{name}.
func (s *Server) SimilarPrices(w http.ResponseWriter, r *http.Request) {
	name, err := pathParam[string](r, "name")
	if err != nil {
		s.badParam(w, r, "name", err)
		return
	}

	models, err := s.pricing.FindSimilarPrices(r.Context(), name)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, modelsToResponse(models))
}

// rangeParams binds an inclusive range. A missing min is 0, a missing max is unbounded.
func (s *Server) rangeParams(
	w http.ResponseWriter, r *http.Request, field, minName, maxName string,
) (dompricing.Range, bool) {
	minVal, err := queryDecimal(r, minName)
	if err != nil {
		s.badParam(w, r, minName, err)
		return dompricing.Range{}, false
	}
	maxVal, err := queryDecimal(r, maxName)
	if err != nil {
		s.badParam(w, r, maxName, err)
		return dompricing.Range{}, false
	}

	rng, err := dompricing.NewRange(field, decimalOr(minVal, decimal.Zero), maxVal)
	if err != nil {
		s.handleDomainError(w, r, err)
		return dompricing.Range{}, false
	}
	return rng, true
}
