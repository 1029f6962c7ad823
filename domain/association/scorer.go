package association

import (
	"github.com/targetlink/targetlink/domain/datasource"
	"github.com/targetlink/targetlink/domain/evidence"
)

// Scorer turns one (target, disease) evidence bundle into an Association.
// It is a pure computation: no I/O, safe for concurrent use.
type Scorer struct {
	registry    datasource.Registry
	buffer      int
	scaleFactor float64
}

// ScorerOption configures a Scorer.
type ScorerOption func(*Scorer)

// WithBuffer sets the HarmonicSumScorer buffer capacity.
func WithBuffer(buffer int) ScorerOption {
	return func(s *Scorer) {
		if buffer > 0 {
			s.buffer = buffer
		}
	}
}

// WithScaleFactor sets the rank-decay exponent.
func WithScaleFactor(scaleFactor float64) ScorerOption {
	return func(s *Scorer) {
		if scaleFactor > 0 {
			s.scaleFactor = scaleFactor
		}
	}
}

// NewScorer creates a Scorer over the given datasource registry.
func NewScorer(registry datasource.Registry, options ...ScorerOption) Scorer {
	s := Scorer{
		registry:    registry,
		buffer:      DefaultBuffer,
		scaleFactor: DefaultScaleFactor,
	}
	for _, opt := range options {
		opt(&s)
	}
	return s
}

// Score computes an Association for the bundle. When no methods are given,
// all methods run. Evidence scores are expected to already carry their
// per-datasource weight; the scorer never re-weights.
func (s Scorer) Score(targetID, diseaseID string, bundle []evidence.Score, isDirect bool, methods ...Method) Association {
	if len(methods) == 0 {
		methods = Methods()
	}

	a := Association{
		target:   Target{ID: targetID},
		disease:  Disease{ID: diseaseID},
		isDirect: isDirect,
		scores:   make(map[Method]Score, len(methods)),
		counts:   NewEvidenceCount(s.registry),
		facets:   NewFacets(),
	}

	for _, e := range bundle {
		a.counts.total++
		a.counts.datatypes[e.Datatype()]++
		a.counts.datasources[e.Datasource()]++
		a.facets.Add(e.Datatype(), e.Datasource())
	}

	for _, m := range methods {
		switch m {
		case MethodHarmonicSum:
			a.scores[m] = s.harmonicSum(bundle)
		case MethodSum:
			a.scores[m] = s.sum(bundle)
		case MethodMax:
			a.scores[m] = s.max(bundle)
		}
	}

	return a
}

// harmonicSum runs the rank-decayed aggregation: evidence scores feed
// per-datasource pools, each datasource's capped score (cap 1) feeds both
// the shared overall pool and its datatype pool, and the overall and
// datatype results are left uncapped. Datasources absent from the registry
// use the datatype tagged on their evidence, so all methods surface the
// same datatype keys.
func (s Scorer) harmonicSum(bundle []evidence.Score) Score {
	result := NewScore(s.registry)

	pools := make(map[string]*HarmonicSumScorer)
	tagged := make(map[string]string)
	for _, e := range bundle {
		pool, ok := pools[e.Datasource()]
		if !ok {
			pool = NewHarmonicSumScorer(s.buffer, s.scaleFactor, capOf(1))
			pools[e.Datasource()] = pool
			tagged[e.Datasource()] = e.Datatype()
		}
		pool.Add(e.Score())
	}

	overall := NewHarmonicSumScorer(s.buffer, s.scaleFactor, nil)
	datatypePools := make(map[string]*HarmonicSumScorer)

	for name, pool := range pools {
		dsScore := pool.Score()
		result.datasources[name] = dsScore
		overall.Add(dsScore)

		datatype, ok := s.registry.DatatypeOf(name)
		if !ok {
			datatype = tagged[name]
		}
		if datatype == "" {
			continue
		}
		dtPool, ok := datatypePools[datatype]
		if !ok {
			dtPool = NewHarmonicSumScorer(s.buffer, s.scaleFactor, nil)
			datatypePools[datatype] = dtPool
		}
		dtPool.Add(dsScore)
	}

	for datatype, pool := range datatypePools {
		result.datatypes[datatype] = pool.Score()
	}
	result.overall = overall.Score()

	return result
}

// sum runs plain unbounded summation with no decay and no cap.
func (s Scorer) sum(bundle []evidence.Score) Score {
	result := NewScore(s.registry)
	for _, e := range bundle {
		result.overall += e.Score()
		result.datatypes[e.Datatype()] += e.Score()
		result.datasources[e.Datasource()] += e.Score()
	}
	return result
}

// max tracks running maxima independently per datasource, per datatype, and
// overall. The upstream implementation coupled datatype and overall
// promotion to new datasource-level maxima (and wrote datasource maxima
// under the datatype key); here each level is evaluated on its own.
func (s Scorer) max(bundle []evidence.Score) Score {
	result := NewScore(s.registry)
	for _, e := range bundle {
		if e.Score() > result.datasources[e.Datasource()] {
			result.datasources[e.Datasource()] = e.Score()
		}
		if e.Score() > result.datatypes[e.Datatype()] {
			result.datatypes[e.Datatype()] = e.Score()
		}
		if e.Score() > result.overall {
			result.overall = e.Score()
		}
	}
	return result
}
