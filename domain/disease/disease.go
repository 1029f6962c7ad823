// Package disease provides disease (EFO) metadata used to enrich associations.
package disease

// Disease is the descriptive metadata for one disease.
type Disease struct {
	id               string
	label            string
	path             []string
	therapeuticAreas []string
}

// NewDisease creates a disease metadata record. path is the ontology path
// from the EFO root to this term; therapeuticAreas are the top-level EFO
// codes the disease belongs to.
func NewDisease(id, label string, path, therapeuticAreas []string) Disease {
	return Disease{
		id:               id,
		label:            label,
		path:             copyStrings(path),
		therapeuticAreas: copyStrings(therapeuticAreas),
	}
}

// ID returns the disease id (EFO code).
func (d Disease) ID() string { return d.id }

// Label returns the human-readable label.
func (d Disease) Label() string { return d.label }

// Path returns a copy of the ontology path.
func (d Disease) Path() []string { return copyStrings(d.path) }

// TherapeuticAreas returns a copy of the therapeutic-area codes.
func (d Disease) TherapeuticAreas() []string { return copyStrings(d.therapeuticAreas) }

func copyStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
