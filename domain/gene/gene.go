// Package gene provides target (gene) metadata used to enrich associations.
package gene

// Gene is the descriptive metadata for one target.
type Gene struct {
	id              string
	approvedSymbol  string
	approvedName    string
	biotype         string
	pathwayCodes    []string
	goTerms         []string
	uniprotKeywords []string
}

// NewGene creates a gene metadata record.
func NewGene(id, approvedSymbol, approvedName, biotype string, pathwayCodes, goTerms, uniprotKeywords []string) Gene {
	return Gene{
		id:              id,
		approvedSymbol:  approvedSymbol,
		approvedName:    approvedName,
		biotype:         biotype,
		pathwayCodes:    copyStrings(pathwayCodes),
		goTerms:         copyStrings(goTerms),
		uniprotKeywords: copyStrings(uniprotKeywords),
	}
}

// ID returns the gene id (Ensembl id).
func (g Gene) ID() string { return g.id }

// ApprovedSymbol returns the HGNC approved symbol.
func (g Gene) ApprovedSymbol() string { return g.approvedSymbol }

// ApprovedName returns the HGNC approved name.
func (g Gene) ApprovedName() string { return g.approvedName }

// Biotype returns the gene biotype.
func (g Gene) Biotype() string { return g.biotype }

// PathwayCodes returns a copy of the pathway facet codes.
func (g Gene) PathwayCodes() []string { return copyStrings(g.pathwayCodes) }

// GOTerms returns a copy of the GO term facet codes.
func (g Gene) GOTerms() []string { return copyStrings(g.goTerms) }

// UniprotKeywords returns a copy of the uniprot keyword facets.
func (g Gene) UniprotKeywords() []string { return copyStrings(g.uniprotKeywords) }

func copyStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
