// Package catalog holds the catalog aggregates: models, providers and capability fields.
package catalog

// Provider is a model vendor.
type Provider struct {
	ID      int64
	Name    string
	Country string
}

// Field is a taxonomy entry that models can be tagged with.
type Field struct {
	ID   int64
	Name string
}

// Snapshot is a complete catalog, as produced by a seed file and consumed by Import.
type Snapshot struct {
	Providers []Provider
	Fields    []Field
	Models    []Model
}
