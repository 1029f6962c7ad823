package pipeline

import (
	"context"
	"math"
	"sync/atomic"

	"github.com/targetlink/targetlink/domain/datasource"
	"github.com/targetlink/targetlink/domain/evidence"
	"github.com/targetlink/targetlink/internal/log"
)

// otherDatatype tags evidence from datasources absent from the registry so
// their signal still reaches the overall score.
const otherDatatype = "other"

// producer reads one target's evidence, groups it by expanded disease id,
// and emits one Bundle per (target, disease) pair.
type producer struct {
	evidence evidence.Store
	registry datasource.Registry
	metrics  *Metrics
	logger   *log.Logger
	bundles  *atomic.Int64
}

// produce processes a single target. Targets without evidence are skipped.
func (p producer) produce(ctx context.Context, targetID string, out chan<- Bundle) error {
	count, err := p.evidence.CountForTarget(ctx, targetID)
	if err != nil {
		return err
	}
	if count == 0 {
		return nil
	}

	groups := make(map[string][]evidence.Score)
	direct := make(map[string]bool)

	err = p.evidence.ForTarget(ctx, targetID, func(e evidence.Evidence) error {
		p.metrics.evidenceTotal.Inc()

		if !p.valid(e) {
			p.metrics.malformedTotal.Inc()
			p.logger.Warn("skipping malformed evidence record",
				"evidence_id", e.ID(),
				"target_id", e.TargetID(),
				"disease_id", e.DiseaseID(),
				"datasource", e.Datasource(),
			)
			return nil
		}

		weighted := e.RawScore() * p.registry.WeightOf(e.Datasource())
		if weighted > 1 {
			weighted = 1
		}

		datatype, ok := p.registry.DatatypeOf(e.Datasource())
		if !ok {
			datatype = otherDatatype
			p.logger.Warn("datasource missing from scoring registry",
				"datasource", e.Datasource(),
			)
		}

		for _, code := range e.EFOCodes() {
			isDirect := code == e.DiseaseID()
			groups[code] = append(groups[code], evidence.NewScore(weighted, datatype, e.Datasource(), isDirect))
			if isDirect {
				direct[code] = true
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	p.metrics.targetsTotal.Inc()

	for diseaseID, scores := range groups {
		bundle := Bundle{
			TargetID:  targetID,
			DiseaseID: diseaseID,
			IsDirect:  direct[diseaseID],
			Scores:    scores,
		}
		select {
		case out <- bundle:
			p.metrics.bundlesTotal.Inc()
			p.bundles.Add(1)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// valid rejects records that cannot be scored: missing identifiers, an
// empty expansion set, or a non-finite or negative score.
func (p producer) valid(e evidence.Evidence) bool {
	if e.TargetID() == "" || e.DiseaseID() == "" || e.Datasource() == "" {
		return false
	}
	if len(e.EFOCodes()) == 0 {
		return false
	}
	score := e.RawScore()
	if math.IsNaN(score) || math.IsInf(score, 0) || score < 0 {
		return false
	}
	return true
}
