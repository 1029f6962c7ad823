// Package datasource describes the closed world of evidence providers.
//
// Every evidence record carries a datasource identifier (for example
// "gwas_catalog"). Each datasource maps to exactly one coarse datatype
// (for example "genetic_association") and carries a score weight that is
// applied to raw evidence scores before any aggregation. The registry is
// static for the duration of a run: association score maps are
// zero-initialized from it and never grow new keys afterwards.
package datasource

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Entry holds the per-datasource scoring configuration.
type Entry struct {
	datatype string
	weight   float64
}

// Datatype returns the datatype the datasource maps into.
func (e Entry) Datatype() string { return e.datatype }

// Weight returns the score multiplier applied before aggregation.
func (e Entry) Weight() float64 { return e.weight }

// Registry is the immutable datasource -> datatype mapping plus weights.
type Registry struct {
	entries     map[string]Entry
	datasources []string
	datatypes   []string
}

// registryFile is the YAML representation of a registry.
type registryFile struct {
	Datasources map[string]struct {
		Datatype string  `yaml:"datatype"`
		Weight   float64 `yaml:"weight"`
	} `yaml:"datasources"`
}

// NewRegistry builds a Registry from datasource entries.
// Entries with a zero weight default to weight 1.0.
func NewRegistry(entries map[string]Entry) Registry {
	normalized := make(map[string]Entry, len(entries))
	datatypeSet := make(map[string]struct{})
	datasources := make([]string, 0, len(entries))

	for name, e := range entries {
		if e.weight == 0 {
			e.weight = 1.0
		}
		normalized[name] = e
		datasources = append(datasources, name)
		datatypeSet[e.datatype] = struct{}{}
	}
	sort.Strings(datasources)

	datatypes := make([]string, 0, len(datatypeSet))
	for dt := range datatypeSet {
		datatypes = append(datatypes, dt)
	}
	sort.Strings(datatypes)

	return Registry{
		entries:     normalized,
		datasources: datasources,
		datatypes:   datatypes,
	}
}

// NewEntry creates a datasource entry.
func NewEntry(datatype string, weight float64) Entry {
	return Entry{datatype: datatype, weight: weight}
}

// ParseRegistry parses a YAML registry document.
func ParseRegistry(data []byte) (Registry, error) {
	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Registry{}, fmt.Errorf("parse datasource registry: %w", err)
	}
	if len(file.Datasources) == 0 {
		return Registry{}, fmt.Errorf("parse datasource registry: no datasources defined")
	}

	entries := make(map[string]Entry, len(file.Datasources))
	for name, d := range file.Datasources {
		if d.Datatype == "" {
			return Registry{}, fmt.Errorf("parse datasource registry: datasource %q has no datatype", name)
		}
		entries[name] = Entry{datatype: d.Datatype, weight: d.Weight}
	}
	return NewRegistry(entries), nil
}

// LoadRegistry reads a registry from a YAML file.
func LoadRegistry(path string) (Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Registry{}, fmt.Errorf("read datasource registry: %w", err)
	}
	return ParseRegistry(data)
}

// DefaultRegistry returns the built-in datasource registry.
func DefaultRegistry() Registry {
	return NewRegistry(map[string]Entry{
		"gwas_catalog":       NewEntry("genetic_association", 1.0),
		"phewas_catalog":     NewEntry("genetic_association", 1.0),
		"uniprot_literature": NewEntry("genetic_association", 1.0),
		"genomics_england":   NewEntry("genetic_association", 1.0),
		"gene2phenotype":     NewEntry("genetic_association", 1.0),
		"eva":                NewEntry("genetic_association", 1.0),
		"cancer_gene_census": NewEntry("somatic_mutation", 1.0),
		"intogen":            NewEntry("somatic_mutation", 1.0),
		"eva_somatic":        NewEntry("somatic_mutation", 1.0),
		"chembl":             NewEntry("known_drug", 1.0),
		"reactome":           NewEntry("affected_pathway", 1.0),
		"slapenrich":         NewEntry("affected_pathway", 0.5),
		"progeny":            NewEntry("affected_pathway", 0.5),
		"crispr":             NewEntry("affected_pathway", 1.0),
		"expression_atlas":   NewEntry("rna_expression", 0.2),
		"europepmc":          NewEntry("literature", 0.2),
		"phenodigm":          NewEntry("animal_model", 0.2),
	})
}

// Datasources returns all datasource names in sorted order.
func (r Registry) Datasources() []string {
	out := make([]string, len(r.datasources))
	copy(out, r.datasources)
	return out
}

// Datatypes returns all datatype names in sorted order.
func (r Registry) Datatypes() []string {
	out := make([]string, len(r.datatypes))
	copy(out, r.datatypes)
	return out
}

// DatatypeOf returns the datatype a datasource maps into.
func (r Registry) DatatypeOf(name string) (string, bool) {
	e, ok := r.entries[name]
	return e.datatype, ok
}

// WeightOf returns the score weight of a datasource, defaulting to 1.0
// for unknown datasources.
func (r Registry) WeightOf(name string) float64 {
	e, ok := r.entries[name]
	if !ok {
		return 1.0
	}
	return e.weight
}

// Known reports whether the datasource is part of the registry.
func (r Registry) Known(name string) bool {
	_, ok := r.entries[name]
	return ok
}

// Len returns the number of registered datasources.
func (r Registry) Len() int { return len(r.entries) }
