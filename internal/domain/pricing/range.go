package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/kailas-cloud/modelcatalog/internal/domain"
)

// SimilarityTolerance returns the relative band used to find similarly priced models: 0.1.
func SimilarityTolerance() decimal.Decimal {
	return decimal.New(1, -1)
}

// Range is an inclusive [min, max] bound on a monetary field. Max may be unbounded.
type Range struct {
	min     decimal.Decimal
	max     decimal.Decimal
	bounded bool
}

// NewRange validates bounds for the named field. A nil max means no upper bound.
// Only negative bounds are rejected; a min above max is a range that contains nothing.
func NewRange(field string, minVal decimal.Decimal, maxVal *decimal.Decimal) (Range, error) {
	if minVal.IsNegative() {
		return Range{}, domain.NewValidationError(field+".min", "must be non-negative")
	}
	if maxVal == nil {
		return Range{min: minVal}, nil
	}
	if maxVal.IsNegative() {
		return Range{}, domain.NewValidationError(field+".max", "must be non-negative")
	}
	return Range{min: minVal, max: *maxVal, bounded: true}, nil
}

// Between is NewRange with a finite upper bound.
func Between(field string, minVal, maxVal decimal.Decimal) (Range, error) {
	return NewRange(field, minVal, &maxVal)
}

// Unbounded matches every non-negative price: [0, +inf].
func Unbounded() Range {
	return Range{}
}

// Band returns [center*(1-tolerance), center*(1+tolerance)], computed exactly.
func Band(center, tolerance decimal.Decimal) Range {
	one := decimal.NewFromInt(1)
	return Range{
		min:     center.Mul(one.Sub(tolerance)),
		max:     center.Mul(one.Add(tolerance)),
		bounded: true,
	}
}

// Contains reports whether v lies within the range, both ends inclusive.
// It is false for every v when min exceeds max.
func (r Range) Contains(v decimal.Decimal) bool {
	if v.LessThan(r.min) {
		return false
	}
	return !r.bounded || v.LessThanOrEqual(r.max)
}

// Min returns the lower bound.
func (r Range) Min() decimal.Decimal { return r.min }

// Max returns the upper bound and whether it is finite.
func (r Range) Max() (decimal.Decimal, bool) { return r.max, r.bounded }

func (r Range) String() string {
	if !r.bounded {
		return "[" + r.min.String() + ", +inf]"
	}
	return "[" + r.min.String() + ", " + r.max.String() + "]"
}
