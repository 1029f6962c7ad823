package association

import (
	"context"
	"errors"
)

// ErrNotFound indicates the requested association does not exist.
var ErrNotFound = errors.New("association not found")

// Store persists scored associations. Writes are keyed by the deterministic
// association id; a re-run overwrites previous documents in place.
type Store interface {
	// SaveBatch upserts a batch of associations.
	SaveBatch(ctx context.Context, batch []Association) error

	// Get returns an association by id.
	Get(ctx context.Context, id string) (Association, error)

	// FindByTarget returns all associations for a target, ordered by
	// harmonic-sum overall score descending.
	FindByTarget(ctx context.Context, targetID string) ([]Association, error)

	// Count returns the number of stored associations.
	Count(ctx context.Context) (int64, error)

	// DeleteAll removes every stored association.
	DeleteAll(ctx context.Context) error

	// Flush blocks until all written associations are visible to readers.
	Flush(ctx context.Context) error
}
