package evidence

import "context"

// Store provides read access to validated evidence records.
type Store interface {
	// CountForTarget returns the number of evidence records for a target.
	CountForTarget(ctx context.Context, targetID string) (int64, error)

	// ForTarget streams every evidence record for a target to fn. Iteration
	// stops early when fn returns an error.
	ForTarget(ctx context.Context, targetID string, fn func(Evidence) error) error

	// TargetIDs returns all target ids that have at least one evidence record.
	TargetIDs(ctx context.Context) ([]string, error)

	// SaveBatch persists a batch of evidence records.
	SaveBatch(ctx context.Context, records []Evidence) error
}
