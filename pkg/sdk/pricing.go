package modelcatalog

import (
	"context"
	"fmt"
	"time"
)

// ModelsByInputPrice keeps models whose input price lies within b.
func (c *Client) ModelsByInputPrice(ctx context.Context, b PriceBounds) (_ []Model, err error) {
	start := time.Now()
	defer func() { c.obs.observe("models_by_input_price", start, err) }()

	r, err := toDomainRange("input", b)
	if err != nil {
		return nil, err
	}
	ms, err := c.pricingSvc.FilterByInputRange(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("filter by input price: %w", err)
	}
	return fromDomainModels(ms), nil
}

// ModelsByOutputPrice keeps models whose output price lies within b.
func (c *Client) ModelsByOutputPrice(ctx context.Context, b PriceBounds) (_ []Model, err error) {
	start := time.Now()
	defer func() { c.obs.observe("models_by_output_price", start, err) }()

	r, err := toDomainRange("output", b)
	if err != nil {
		return nil, err
	}
	ms, err := c.pricingSvc.FilterByOutputRange(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("filter by output price: %w", err)
	}
	return fromDomainModels(ms), nil
}

// ModelsByPrice keeps models whose input price lies within in and output price within out.
func (c *Client) ModelsByPrice(ctx context.Context, in, out PriceBounds) (_ []Model, err error) {
	start := time.Now()
	defer func() { c.obs.observe("models_by_price", start, err) }()

	inRange, err := toDomainRange("input", in)
	if err != nil {
		return nil, err
	}
	outRange, err := toDomainRange("output", out)
	if err != nil {
		return nil, err
	}
	ms, err := c.pricingSvc.FilterByInputOutputRange(ctx, inRange, outRange)
	if err != nil {
		return nil, fmt.Errorf("filter by price: %w", err)
	}
	return fromDomainModels(ms), nil
}

// SimilarPrices returns models priced within 10% of the named pricing record,
// the reference model included.
func (c *Client) SimilarPrices(ctx context.Context, pricingName string) (_ []Model, err error) {
	start := time.Now()
	defer func() { c.obs.observe("similar_prices", start, err) }()

	ms, err := c.pricingSvc.FindSimilarPrices(ctx, pricingName)
	if err != nil {
		return nil, fmt.Errorf("similar prices: %w", err)
	}
	return fromDomainModels(ms), nil
}
