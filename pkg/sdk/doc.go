// Package modelcatalog is an embeddable Go client for the model catalog.
// It opens the catalog store directly (SQLite, PostgreSQL, MySQL or Valkey)
// and exposes the same browsing, pricing, benchmark, matching and suggestion
// operations as the HTTP API.
//
//	client, _ := modelcatalog.New(ctx, modelcatalog.WithSQLite("catalog.db"))
//	defer client.Close()
//	_, _ = client.ImportFile(ctx, "seed/catalog.yaml")
//
//	results, _ := client.Match("summarize support tickets").
//	    MaxPrice(decimal.NewFromInt(8)).
//	    CostWeight(0.7).
//	    Limit(5).
//	    Do(ctx)
//
//	alts, _ := client.SuggestionsFor(ctx, "gpt-4.1", "2024-11")
package modelcatalog
