package disease

import (
	"context"
	"errors"
)

// ErrNotFound indicates the disease id is absent from the metadata table.
var ErrNotFound = errors.New("disease not found")

// Store provides access to disease metadata records.
type Store interface {
	Get(ctx context.Context, id string) (Disease, error)
	All(ctx context.Context) ([]Disease, error)
	SaveBatch(ctx context.Context, diseases []Disease) error
}

// Lookup is an immutable in-memory disease metadata table, built once
// before scoring starts and shared read-only across workers.
type Lookup struct {
	diseases map[string]Disease
}

// NewLookup creates a Lookup over the given diseases.
func NewLookup(diseases []Disease) Lookup {
	m := make(map[string]Disease, len(diseases))
	for _, d := range diseases {
		m[d.ID()] = d
	}
	return Lookup{diseases: m}
}

// BuildLookup loads every disease from the store into memory.
func BuildLookup(ctx context.Context, store Store) (Lookup, error) {
	diseases, err := store.All(ctx)
	if err != nil {
		return Lookup{}, err
	}
	return NewLookup(diseases), nil
}

// Get returns the disease for an id.
func (l Lookup) Get(id string) (Disease, bool) {
	d, ok := l.diseases[id]
	return d, ok
}

// Len returns the number of diseases in the lookup.
func (l Lookup) Len() int { return len(l.diseases) }
