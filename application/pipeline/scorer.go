package pipeline

import (
	"context"

	"github.com/targetlink/targetlink/domain/association"
	"github.com/targetlink/targetlink/domain/disease"
	"github.com/targetlink/targetlink/domain/gene"
	"github.com/targetlink/targetlink/internal/log"
)

// scorer consumes bundles, computes associations, and enriches them with
// gene and disease metadata before passing them on for storage.
type scorer struct {
	scorer   association.Scorer
	genes    gene.Lookup
	diseases disease.Lookup
	metrics  *Metrics
	logger   *log.Logger
}

// run scores bundles until in is closed or the context is cancelled.
func (s scorer) run(ctx context.Context, in <-chan Bundle, out chan<- association.Association) error {
	for {
		select {
		case bundle, ok := <-in:
			if !ok {
				return nil
			}
			a := s.scorer.Score(bundle.TargetID, bundle.DiseaseID, bundle.Scores, bundle.IsDirect)
			s.metrics.scoredTotal.Inc()

			if a.Empty() {
				s.metrics.emptyTotal.Inc()
				continue
			}

			select {
			case out <- s.enrich(a):
			case <-ctx.Done():
				return ctx.Err()
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// enrich attaches descriptive metadata. A missing lookup entry degrades the
// association to ids only rather than dropping it.
func (s scorer) enrich(a association.Association) association.Association {
	target := a.Target()
	dis := a.Disease()
	missed := false

	if g, ok := s.genes.Get(target.ID); ok {
		target = association.Target{
			ID:              g.ID(),
			Symbol:          g.ApprovedSymbol(),
			Name:            g.ApprovedName(),
			Biotype:         g.Biotype(),
			PathwayCodes:    g.PathwayCodes(),
			GOTerms:         g.GOTerms(),
			UniprotKeywords: g.UniprotKeywords(),
		}
	} else {
		missed = true
		s.logger.Warn("gene metadata missing", "target_id", target.ID)
	}

	if d, ok := s.diseases.Get(dis.ID); ok {
		dis = association.Disease{
			ID:               d.ID(),
			Label:            d.Label(),
			Path:             d.Path(),
			TherapeuticAreas: d.TherapeuticAreas(),
		}
	} else {
		missed = true
		s.logger.Warn("disease metadata missing", "disease_id", dis.ID)
	}

	if missed {
		s.metrics.enrichmentMisses.Inc()
	}
	return a.WithEnrichment(target, dis)
}
