package gene

import (
	"context"
	"errors"
)

// ErrNotFound indicates the gene id is absent from the metadata table.
var ErrNotFound = errors.New("gene not found")

// Store provides access to gene metadata records.
type Store interface {
	Get(ctx context.Context, id string) (Gene, error)
	All(ctx context.Context) ([]Gene, error)
	SaveBatch(ctx context.Context, genes []Gene) error
}

// Lookup is an immutable in-memory gene metadata table. It is built once
// before scoring starts and shared read-only across all workers.
type Lookup struct {
	genes map[string]Gene
}

// NewLookup creates a Lookup over the given genes.
func NewLookup(genes []Gene) Lookup {
	m := make(map[string]Gene, len(genes))
	for _, g := range genes {
		m[g.ID()] = g
	}
	return Lookup{genes: m}
}

// BuildLookup loads every gene from the store into memory.
func BuildLookup(ctx context.Context, store Store) (Lookup, error) {
	genes, err := store.All(ctx)
	if err != nil {
		return Lookup{}, err
	}
	return NewLookup(genes), nil
}

// Get returns the gene for an id.
func (l Lookup) Get(id string) (Gene, bool) {
	g, ok := l.genes[id]
	return g, ok
}

// Len returns the number of genes in the lookup.
func (l Lookup) Len() int { return len(l.genes) }
