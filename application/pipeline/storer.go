package pipeline

import (
	"context"
	"sync/atomic"

	"github.com/targetlink/targetlink/domain/association"
	"github.com/targetlink/targetlink/internal/log"
)

// storer drains scored associations into the store in fixed-size batches.
type storer struct {
	store     association.Store
	chunkSize int
	metrics   *Metrics
	logger    *log.Logger
	stored    *atomic.Int64
}

// run buffers associations until a full batch accumulates, writing partial
// batches on channel close.
func (s storer) run(ctx context.Context, in <-chan association.Association) error {
	batch := make([]association.Association, 0, s.chunkSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := s.store.SaveBatch(ctx, batch); err != nil {
			return err
		}
		s.metrics.storedTotal.Add(float64(len(batch)))
		s.stored.Add(int64(len(batch)))
		batch = batch[:0]
		return nil
	}

	for {
		select {
		case a, ok := <-in:
			if !ok {
				return flush()
			}
			if a.Empty() {
				s.logger.Warn("dropping empty association", "association_id", a.ID())
				continue
			}
			batch = append(batch, a)
			if len(batch) >= s.chunkSize {
				if err := flush(); err != nil {
					return err
				}
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
