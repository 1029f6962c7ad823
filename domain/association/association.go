// Package association holds the target-disease association aggregate and
// the scoring algebra that produces it from evidence.
package association

import (
	"sort"

	"github.com/targetlink/targetlink/domain/datasource"
)

// Score holds the result of one scoring method: an overall value plus
// per-datatype and per-datasource breakdowns. The key sets of both maps are
// fixed at construction from the datasource registry; only values change.
type Score struct {
	overall     float64
	datatypes   map[string]float64
	datasources map[string]float64
}

// NewScore creates a zero-initialized Score with one entry per known
// datatype and datasource.
func NewScore(registry datasource.Registry) Score {
	datatypes := make(map[string]float64, len(registry.Datatypes()))
	for _, dt := range registry.Datatypes() {
		datatypes[dt] = 0
	}
	datasources := make(map[string]float64, registry.Len())
	for _, ds := range registry.Datasources() {
		datasources[ds] = 0
	}
	return Score{datatypes: datatypes, datasources: datasources}
}

// ReconstructScore rebuilds a Score from stored values (used by mappers).
func ReconstructScore(overall float64, datatypes, datasources map[string]float64) Score {
	return Score{overall: overall, datatypes: datatypes, datasources: datasources}
}

// Overall returns the overall score.
func (s Score) Overall() float64 { return s.overall }

// Datatype returns the score for a datatype.
func (s Score) Datatype(name string) float64 { return s.datatypes[name] }

// Datasource returns the score for a datasource.
func (s Score) Datasource(name string) float64 { return s.datasources[name] }

// Datatypes returns a copy of the per-datatype scores.
func (s Score) Datatypes() map[string]float64 { return copyFloatMap(s.datatypes) }

// Datasources returns a copy of the per-datasource scores.
func (s Score) Datasources() map[string]float64 { return copyFloatMap(s.datasources) }

// EvidenceCount tracks how many evidence records contributed to an
// association, overall and per datatype/datasource. Counts are float64 to
// match the stored document format, which downstream consumers treat as
// numeric aggregations.
type EvidenceCount struct {
	total       float64
	datatypes   map[string]float64
	datasources map[string]float64
}

// NewEvidenceCount creates a zero-initialized EvidenceCount over the
// registry's closed key set.
func NewEvidenceCount(registry datasource.Registry) EvidenceCount {
	datatypes := make(map[string]float64, len(registry.Datatypes()))
	for _, dt := range registry.Datatypes() {
		datatypes[dt] = 0
	}
	datasources := make(map[string]float64, registry.Len())
	for _, ds := range registry.Datasources() {
		datasources[ds] = 0
	}
	return EvidenceCount{datatypes: datatypes, datasources: datasources}
}

// ReconstructEvidenceCount rebuilds an EvidenceCount from stored values.
func ReconstructEvidenceCount(total float64, datatypes, datasources map[string]float64) EvidenceCount {
	return EvidenceCount{total: total, datatypes: datatypes, datasources: datasources}
}

// Total returns the total number of contributing evidence records.
func (c EvidenceCount) Total() float64 { return c.total }

// Datatype returns the count for a datatype.
func (c EvidenceCount) Datatype(name string) float64 { return c.datatypes[name] }

// Datasource returns the count for a datasource.
func (c EvidenceCount) Datasource(name string) float64 { return c.datasources[name] }

// Datatypes returns a copy of the per-datatype counts.
func (c EvidenceCount) Datatypes() map[string]float64 { return copyFloatMap(c.datatypes) }

// Datasources returns a copy of the per-datasource counts.
func (c EvidenceCount) Datasources() map[string]float64 { return copyFloatMap(c.datasources) }

// Facets are the deduplicated datatype/datasource tags observed on an
// association, used for faceted search. Order-insensitive; accessors
// return sorted copies so stored documents are deterministic across runs.
type Facets struct {
	datatypes   map[string]struct{}
	datasources map[string]struct{}
}

// NewFacets creates empty facet sets.
func NewFacets() Facets {
	return Facets{
		datatypes:   make(map[string]struct{}),
		datasources: make(map[string]struct{}),
	}
}

// ReconstructFacets rebuilds facets from stored tag lists.
func ReconstructFacets(datatypes, datasources []string) Facets {
	f := NewFacets()
	for _, dt := range datatypes {
		f.datatypes[dt] = struct{}{}
	}
	for _, ds := range datasources {
		f.datasources[ds] = struct{}{}
	}
	return f
}

// Add registers a datatype/datasource pair. Idempotent.
func (f Facets) Add(datatype, ds string) {
	f.datatypes[datatype] = struct{}{}
	f.datasources[ds] = struct{}{}
}

// Datatypes returns the observed datatype tags, sorted.
func (f Facets) Datatypes() []string { return sortedKeys(f.datatypes) }

// Datasources returns the observed datasource tags, sorted.
func (f Facets) Datasources() []string { return sortedKeys(f.datasources) }

// Target is the descriptive target side of an association. Only the id is
// required; the remaining fields are enrichment from the gene metadata
// lookup and may be absent on a degraded association.
type Target struct {
	ID              string
	Symbol          string
	Name            string
	Biotype         string
	PathwayCodes    []string
	GOTerms         []string
	UniprotKeywords []string
}

// Disease is the descriptive disease side of an association.
type Disease struct {
	ID               string
	Label            string
	Path             []string
	TherapeuticAreas []string
}

// Association is the scored summary of all evidence connecting one target
// to one disease. It is fully populated in a single pass by the Scorer and
// never mutated afterwards; re-runs recompute and overwrite the stored copy.
type Association struct {
	target   Target
	disease  Disease
	isDirect bool
	scores   map[Method]Score
	counts   EvidenceCount
	facets   Facets
}

// ReconstructAssociation rebuilds an Association from stored parts.
func ReconstructAssociation(
	target Target,
	disease Disease,
	isDirect bool,
	scores map[Method]Score,
	counts EvidenceCount,
	facets Facets,
) Association {
	return Association{
		target:   target,
		disease:  disease,
		isDirect: isDirect,
		scores:   scores,
		counts:   counts,
		facets:   facets,
	}
}

// ID returns the deterministic association id "<target>-<disease>".
func (a Association) ID() string { return a.target.ID + "-" + a.disease.ID }

// Target returns the target side of the association.
func (a Association) Target() Target { return a.target }

// Disease returns the disease side of the association.
func (a Association) Disease() Disease { return a.disease }

// IsDirect reports whether at least one contributing evidence record named
// the association's disease directly rather than via ontology expansion.
func (a Association) IsDirect() bool { return a.isDirect }

// ScoreFor returns the Score computed by the given method.
func (a Association) ScoreFor(method Method) (Score, bool) {
	s, ok := a.scores[method]
	return s, ok
}

// Scores returns a copy of the per-method score map.
func (a Association) Scores() map[Method]Score {
	out := make(map[Method]Score, len(a.scores))
	for m, s := range a.scores {
		out[m] = s
	}
	return out
}

// EvidenceCount returns the evidence count breakdown.
func (a Association) EvidenceCount() EvidenceCount { return a.counts }

// Facets returns the faceting metadata.
func (a Association) Facets() Facets { return a.facets }

// Empty reports whether the association carries no signal: the harmonic-sum
// overall score is zero. Empty associations are never persisted.
func (a Association) Empty() bool {
	hs, ok := a.scores[MethodHarmonicSum]
	return !ok || hs.overall == 0
}

// WithEnrichment returns a copy of the association with descriptive target
// and disease metadata attached. The ids must not change.
func (a Association) WithEnrichment(target Target, disease Disease) Association {
	target.ID = a.target.ID
	disease.ID = a.disease.ID
	a.target = target
	a.disease = disease
	return a
}

func copyFloatMap(m map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
