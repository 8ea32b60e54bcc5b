// Package pricing holds per-million-token prices and the inclusive ranges used to filter them.
package pricing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Params carries the fields of a pricing record.
type Params struct {
	Name        string
	Input       decimal.Decimal
	Output      decimal.Decimal
	Cached      decimal.NullDecimal
	Training    decimal.NullDecimal
	Normalized  decimal.NullDecimal
	Currency    string
	Unit        string
	EffectiveAt time.Time
}

// Pricing is a priced tier attached to exactly one model (immutable value object).
type Pricing struct {
	id          int64
	name        string
	input       decimal.Decimal
	output      decimal.Decimal
	cached      decimal.NullDecimal
	training    decimal.NullDecimal
	normalized  decimal.NullDecimal
	currency    string
	unit        string
	effectiveAt time.Time
}

// New validates params and creates a pricing record that has not been persisted yet.
func New(p Params) (Pricing, error) {
	if p.Name == "" {
		return Pricing{}, fmt.Errorf("pricing name is required")
	}
	if p.Input.IsNegative() || p.Output.IsNegative() {
		return Pricing{}, fmt.Errorf("pricing %q: prices must be non-negative", p.Name)
	}
	for _, opt := range []decimal.NullDecimal{p.Cached, p.Training, p.Normalized} {
		if opt.Valid && opt.Decimal.IsNegative() {
			return Pricing{}, fmt.Errorf("pricing %q: prices must be non-negative", p.Name)
		}
	}
	if p.Currency == "" {
		p.Currency = "USD"
	}
	if p.Unit == "" {
		p.Unit = "per_million_tokens"
	}
	return Reconstruct(0, p), nil
}

// Reconstruct restores a pricing record from storage without validation.
func Reconstruct(id int64, p Params) Pricing {
	return Pricing{
		id:          id,
		name:        p.Name,
		input:       p.Input,
		output:      p.Output,
		cached:      p.Cached,
		training:    p.Training,
		normalized:  p.Normalized,
		currency:    p.Currency,
		unit:        p.Unit,
		effectiveAt: p.EffectiveAt,
	}
}

func (p Pricing) ID() int64                       { return p.id }
func (p Pricing) Name() string                    { return p.name }
func (p Pricing) Input() decimal.Decimal          { return p.input }
func (p Pricing) Output() decimal.Decimal         { return p.output }
func (p Pricing) Cached() decimal.NullDecimal     { return p.cached }
func (p Pricing) Training() decimal.NullDecimal   { return p.training }
func (p Pricing) Normalized() decimal.NullDecimal { return p.normalized }
func (p Pricing) Currency() string                { return p.currency }
func (p Pricing) Unit() string                    { return p.unit }
func (p Pricing) EffectiveAt() time.Time          { return p.effectiveAt }

// Cost is the price used for ranking: the normalized price when present, else the input price.
func (p Pricing) Cost() decimal.Decimal {
	if p.normalized.Valid {
		return p.normalized.Decimal
	}
	return p.input
}

// Params returns the record fields, e.g. for persistence.
func (p Pricing) Params() Params {
	return Params{
		Name:        p.name,
		Input:       p.input,
		Output:      p.output,
		Cached:      p.cached,
		Training:    p.training,
		Normalized:  p.normalized,
		Currency:    p.currency,
		Unit:        p.unit,
		EffectiveAt: p.effectiveAt,
	}
}
