package datasource

import "testing"

func TestParseRegistry(t *testing.T) {
	data := []byte(`
datasources:
  gwas_catalog:
    datatype: genetic_association
    weight: 1.5
  chembl:
    datatype: known_drug
`)
	r, err := ParseRegistry(data)
	if err != nil {
		t.Fatalf("ParseRegistry: %v", err)
	}

	if dt, ok := r.DatatypeOf("gwas_catalog"); !ok || dt != "genetic_association" {
		t.Errorf("expected genetic_association, got %q (ok=%v)", dt, ok)
	}
	if w := r.WeightOf("gwas_catalog"); w != 1.5 {
		t.Errorf("expected weight 1.5, got %f", w)
	}
	// Missing weight defaults to 1.0.
	if w := r.WeightOf("chembl"); w != 1.0 {
		t.Errorf("expected default weight 1.0, got %f", w)
	}
	// Unknown datasources fall back to weight 1.0.
	if w := r.WeightOf("nope"); w != 1.0 {
		t.Errorf("expected fallback weight 1.0, got %f", w)
	}
}

func TestParseRegistry_Errors(t *testing.T) {
	if _, err := ParseRegistry([]byte("datasources: {}")); err == nil {
		t.Error("expected error for empty registry")
	}
	if _, err := ParseRegistry([]byte("datasources:\n  x: {weight: 1}")); err == nil {
		t.Error("expected error for missing datatype")
	}
	if _, err := ParseRegistry([]byte("datasources: [")); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestRegistry_SortedNames(t *testing.T) {
	r := NewRegistry(map[string]Entry{
		"zz": NewEntry("b_type", 1),
		"aa": NewEntry("a_type", 1),
		"mm": NewEntry("b_type", 1),
	})

	ds := r.Datasources()
	if len(ds) != 3 || ds[0] != "aa" || ds[1] != "mm" || ds[2] != "zz" {
		t.Errorf("expected sorted datasources, got %v", ds)
	}
	dt := r.Datatypes()
	if len(dt) != 2 || dt[0] != "a_type" || dt[1] != "b_type" {
		t.Errorf("expected sorted deduplicated datatypes, got %v", dt)
	}
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	if r.Len() == 0 {
		t.Fatal("expected non-empty default registry")
	}
	if dt, ok := r.DatatypeOf("chembl"); !ok || dt != "known_drug" {
		t.Errorf("expected chembl -> known_drug, got %q", dt)
	}
	if !r.Known("gwas_catalog") {
		t.Error("expected gwas_catalog in default registry")
	}
}
