package modelcatalog

import (
	"context"
	"fmt"
	"time"
)

// Suggestions ranks alternatives to the model with the given id.
func (c *Client) Suggestions(ctx context.Context, modelID int64) (_ []Suggestion, err error) {
	start := time.Now()
	defer func() { c.obs.observe("suggestions", start, err) }()

	rs, err := c.suggestSvc.SuggestionsForID(ctx, modelID)
	if err != nil {
		return nil, fmt.Errorf("suggestions: %w", err)
	}
	return fromSuggestionResults(rs), nil
}

// SuggestionsFor ranks alternatives to the model identified by name and version.
func (c *Client) SuggestionsFor(ctx context.Context, name, version string) (_ []Suggestion, err error) {
	start := time.Now()
	defer func() { c.obs.observe("suggestions", start, err) }()

	rs, err := c.suggestSvc.SuggestionsForIdentity(ctx, name, version)
	if err != nil {
		return nil, fmt.Errorf("suggestions: %w", err)
	}
	return fromSuggestionResults(rs), nil
}
