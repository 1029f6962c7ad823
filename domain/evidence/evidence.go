// Package evidence provides the evidence record domain types. An evidence
// record is one source-provided assertion linking a target to a disease,
// carrying a pre-computed resource-level score and the ontology-expanded
// disease codes the record applies to.
package evidence

// Evidence is a validated, ontology-expanded evidence record as read from
// storage. Records are immutable once loaded.
type Evidence struct {
	id         int64
	targetID   string
	diseaseID  string
	datasource string
	score      float64
	efoCodes   []string
}

// NewEvidence creates an evidence record. efoCodes is the ontology-expanded
// set of disease ids the record applies to; the record's own diseaseID is
// expected to be among them.
func NewEvidence(targetID, diseaseID, datasource string, score float64, efoCodes []string) Evidence {
	return Evidence{
		targetID:   targetID,
		diseaseID:  diseaseID,
		datasource: datasource,
		score:      score,
		efoCodes:   copyStrings(efoCodes),
	}
}

// ReconstructEvidence rebuilds an evidence record with its storage id.
func ReconstructEvidence(id int64, targetID, diseaseID, datasource string, score float64, efoCodes []string) Evidence {
	e := NewEvidence(targetID, diseaseID, datasource, score, efoCodes)
	e.id = id
	return e
}

// ID returns the storage id.
func (e Evidence) ID() int64 { return e.id }

// TargetID returns the target id.
func (e Evidence) TargetID() string { return e.targetID }

// DiseaseID returns the record's own primary disease id.
func (e Evidence) DiseaseID() string { return e.diseaseID }

// Datasource returns the providing datasource id.
func (e Evidence) Datasource() string { return e.datasource }

// RawScore returns the resource-level score before weighting.
func (e Evidence) RawScore() float64 { return e.score }

// EFOCodes returns a copy of the ontology-expanded disease ids.
func (e Evidence) EFOCodes() []string { return copyStrings(e.efoCodes) }

// Score is the scoring-ready value extracted from one evidence record for
// one expanded disease id: the weighted (and capped at 1.0) scalar score,
// its datatype and datasource tags, and whether the record named the
// grouping disease directly.
type Score struct {
	score      float64
	datatype   string
	datasource string
	isDirect   bool
}

// NewScore creates a scoring-ready evidence value.
func NewScore(score float64, datatype, ds string, isDirect bool) Score {
	return Score{score: score, datatype: datatype, datasource: ds, isDirect: isDirect}
}

// Score returns the weighted scalar score.
func (s Score) Score() float64 { return s.score }

// Datatype returns the datatype tag.
func (s Score) Datatype() string { return s.datatype }

// Datasource returns the datasource tag.
func (s Score) Datasource() string { return s.datasource }

// IsDirect reports whether the evidence named the grouping disease exactly.
func (s Score) IsDirect() bool { return s.isDirect }

func copyStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
