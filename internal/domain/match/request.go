// Package match holds the task-matching request and its ranked results.
package match

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/kailas-cloud/modelcatalog/internal/domain"
)

// DefaultCostWeight balances cost and benchmark quality equally.
const DefaultCostWeight = 0.5

// ValidCostWeight reports whether w is a finite weight within [0,1].
func ValidCostWeight(w float64) bool {
	return !math.IsNaN(w) && !math.IsInf(w, 0) && w >= 0 && w <= 1
}

// Params are the raw request parameters. Nil pointers mean "not supplied".
type Params struct {
	TaskDescription string
	MaxPrice        *decimal.Decimal
	CostWeight      *float64
	Limit           int
}

// Request is a validated task-matching request.
type Request struct {
	task       string
	maxPrice   decimal.NullDecimal
	costWeight *float64
	limit      int
}

// NewRequest validates params. Errors wrap domain.ErrInvalidInput.
func NewRequest(p Params) (Request, error) {
	r := Request{task: p.TaskDescription, limit: p.Limit}

	if p.MaxPrice != nil {
		if p.MaxPrice.IsNegative() {
			return Request{}, domain.NewValidationError("constraints.maxPricePerMillionTokens", "must be non-negative")
		}
		r.maxPrice = decimal.NewNullDecimal(*p.MaxPrice)
	}

	if p.CostWeight != nil {
		w := *p.CostWeight
		if !ValidCostWeight(w) {
			return Request{}, domain.NewValidationError("preferences.costWeight", "must be within [0,1]")
		}
		r.costWeight = &w
	}

	if p.Limit < 0 {
		return Request{}, domain.NewValidationError("limit", "must be non-negative")
	}

	return r, nil
}

// TaskDescription is echoed back to callers; it does not influence ranking.
func (r Request) TaskDescription() string { return r.task }

// MaxPrice returns the hard cost ceiling, if any.
func (r Request) MaxPrice() decimal.NullDecimal { return r.maxPrice }

// CostWeight returns the requested weight, or fallback when none was supplied.
func (r Request) CostWeight(fallback float64) float64 {
	if r.costWeight == nil {
		return fallback
	}
	return *r.costWeight
}

// Limit caps the number of results. Zero means no cap.
func (r Request) Limit() int { return r.limit }
