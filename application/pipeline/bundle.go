// Package pipeline runs the evidence-to-association scoring pipeline: a
// producer pool groups evidence into per-pair bundles, a scoring pool turns
// bundles into associations, and a storage pool batches them into the store.
package pipeline

import "github.com/targetlink/targetlink/domain/evidence"

// Bundle is the unit of scoring work: every weighted evidence score linking
// one target to one (ontology-expanded) disease id.
type Bundle struct {
	TargetID  string
	DiseaseID string
	IsDirect  bool
	Scores    []evidence.Score
}
