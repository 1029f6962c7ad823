package persistence

import (
	"encoding/json"
	"fmt"

	"github.com/targetlink/targetlink/domain/association"
	"github.com/targetlink/targetlink/domain/disease"
	"github.com/targetlink/targetlink/domain/evidence"
	"github.com/targetlink/targetlink/domain/gene"
)

// EvidenceMapper maps between domain Evidence and EvidenceModel.
type EvidenceMapper struct{}

// ToDomain converts an EvidenceModel to a domain Evidence.
func (m EvidenceMapper) ToDomain(e EvidenceModel) evidence.Evidence {
	return evidence.ReconstructEvidence(
		e.ID,
		e.TargetID,
		e.DiseaseID,
		e.Datasource,
		e.Score,
		decodeStrings(e.EFOCodes),
	)
}

// ToModel converts a domain Evidence to an EvidenceModel.
func (m EvidenceMapper) ToModel(e evidence.Evidence) EvidenceModel {
	return EvidenceModel{
		ID:         e.ID(),
		TargetID:   e.TargetID(),
		DiseaseID:  e.DiseaseID(),
		Datasource: e.Datasource(),
		Score:      e.RawScore(),
		EFOCodes:   encodeStrings(e.EFOCodes()),
	}
}

// GeneMapper maps between domain Gene and GeneModel.
type GeneMapper struct{}

// ToDomain converts a GeneModel to a domain Gene.
func (m GeneMapper) ToDomain(e GeneModel) gene.Gene {
	return gene.NewGene(
		e.ID,
		e.ApprovedSymbol,
		e.ApprovedName,
		e.Biotype,
		decodeStrings(e.PathwayCodes),
		decodeStrings(e.GOTerms),
		decodeStrings(e.UniprotKeywords),
	)
}

// ToModel converts a domain Gene to a GeneModel.
func (m GeneMapper) ToModel(g gene.Gene) GeneModel {
	return GeneModel{
		ID:              g.ID(),
		ApprovedSymbol:  g.ApprovedSymbol(),
		ApprovedName:    g.ApprovedName(),
		Biotype:         g.Biotype(),
		PathwayCodes:    encodeStrings(g.PathwayCodes()),
		GOTerms:         encodeStrings(g.GOTerms()),
		UniprotKeywords: encodeStrings(g.UniprotKeywords()),
	}
}

// DiseaseMapper maps between domain Disease and DiseaseModel.
type DiseaseMapper struct{}

// ToDomain converts a DiseaseModel to a domain Disease.
func (m DiseaseMapper) ToDomain(e DiseaseModel) disease.Disease {
	return disease.NewDisease(
		e.ID,
		e.Label,
		decodeStrings(e.Path),
		decodeStrings(e.TherapeuticAreas),
	)
}

// ToModel converts a domain Disease to a DiseaseModel.
func (m DiseaseMapper) ToModel(d disease.Disease) DiseaseModel {
	return DiseaseModel{
		ID:               d.ID(),
		Label:            d.Label(),
		Path:             encodeStrings(d.Path()),
		TherapeuticAreas: encodeStrings(d.TherapeuticAreas()),
	}
}

// associationDoc is the JSON document stored in AssociationModel.Body. Its
// shape is what downstream search consumers index: per-method scores,
// evidence counts, and the private facet block.
type associationDoc struct {
	ID       string             `json:"id"`
	IsDirect bool               `json:"is_direct"`
	Target   targetDoc          `json:"target"`
	Disease  diseaseDoc         `json:"disease"`
	Scores   map[string]scoreDoc `json:"association_score"`
	Counts   countDoc           `json:"evidence_count"`
	Private  privateDoc         `json:"private"`
}

type targetDoc struct {
	ID              string   `json:"id"`
	Symbol          string   `json:"approved_symbol,omitempty"`
	Name            string   `json:"approved_name,omitempty"`
	Biotype         string   `json:"biotype,omitempty"`
	PathwayCodes    []string `json:"pathway_codes,omitempty"`
	GOTerms         []string `json:"go_terms,omitempty"`
	UniprotKeywords []string `json:"uniprot_keywords,omitempty"`
}

type diseaseDoc struct {
	ID               string   `json:"id"`
	Label            string   `json:"label,omitempty"`
	Path             []string `json:"path,omitempty"`
	TherapeuticAreas []string `json:"therapeutic_areas,omitempty"`
}

type scoreDoc struct {
	Overall     float64            `json:"overall"`
	Datatypes   map[string]float64 `json:"datatypes"`
	Datasources map[string]float64 `json:"datasources"`
}

type countDoc struct {
	Total       float64            `json:"total"`
	Datatypes   map[string]float64 `json:"datatypes"`
	Datasources map[string]float64 `json:"datasources"`
}

type privateDoc struct {
	Facets facetsDoc `json:"facets"`
}

type facetsDoc struct {
	Datatype   []string `json:"datatype"`
	Datasource []string `json:"datasource"`
}

// AssociationMapper maps between domain Association and AssociationModel.
type AssociationMapper struct{}

// ToModel converts a domain Association to an AssociationModel.
func (m AssociationMapper) ToModel(a association.Association) (AssociationModel, error) {
	scores := make(map[string]scoreDoc, 3)
	for method, s := range a.Scores() {
		scores[method.String()] = scoreDoc{
			Overall:     s.Overall(),
			Datatypes:   s.Datatypes(),
			Datasources: s.Datasources(),
		}
	}

	counts := a.EvidenceCount()
	target := a.Target()
	dis := a.Disease()

	doc := associationDoc{
		ID:       a.ID(),
		IsDirect: a.IsDirect(),
		Target: targetDoc{
			ID:              target.ID,
			Symbol:          target.Symbol,
			Name:            target.Name,
			Biotype:         target.Biotype,
			PathwayCodes:    target.PathwayCodes,
			GOTerms:         target.GOTerms,
			UniprotKeywords: target.UniprotKeywords,
		},
		Disease: diseaseDoc{
			ID:               dis.ID,
			Label:            dis.Label,
			Path:             dis.Path,
			TherapeuticAreas: dis.TherapeuticAreas,
		},
		Scores: scores,
		Counts: countDoc{
			Total:       counts.Total(),
			Datatypes:   counts.Datatypes(),
			Datasources: counts.Datasources(),
		},
		Private: privateDoc{
			Facets: facetsDoc{
				Datatype:   a.Facets().Datatypes(),
				Datasource: a.Facets().Datasources(),
			},
		},
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return AssociationModel{}, fmt.Errorf("marshal association %s: %w", a.ID(), err)
	}

	var overall float64
	if hs, ok := a.ScoreFor(association.MethodHarmonicSum); ok {
		overall = hs.Overall()
	}

	return AssociationModel{
		ID:                 a.ID(),
		TargetID:           target.ID,
		DiseaseID:          dis.ID,
		IsDirect:           a.IsDirect(),
		HarmonicSumOverall: overall,
		Body:               string(body),
	}, nil
}

// ToDomain converts an AssociationModel back to a domain Association.
func (m AssociationMapper) ToDomain(e AssociationModel) (association.Association, error) {
	var doc associationDoc
	if err := json.Unmarshal([]byte(e.Body), &doc); err != nil {
		return association.Association{}, fmt.Errorf("unmarshal association %s: %w", e.ID, err)
	}

	scores := make(map[association.Method]association.Score, len(doc.Scores))
	for name, s := range doc.Scores {
		method, err := association.ParseMethod(name)
		if err != nil {
			return association.Association{}, fmt.Errorf("association %s: %w", e.ID, err)
		}
		scores[method] = association.ReconstructScore(s.Overall, s.Datatypes, s.Datasources)
	}

	return association.ReconstructAssociation(
		association.Target{
			ID:              doc.Target.ID,
			Symbol:          doc.Target.Symbol,
			Name:            doc.Target.Name,
			Biotype:         doc.Target.Biotype,
			PathwayCodes:    doc.Target.PathwayCodes,
			GOTerms:         doc.Target.GOTerms,
			UniprotKeywords: doc.Target.UniprotKeywords,
		},
		association.Disease{
			ID:               doc.Disease.ID,
			Label:            doc.Disease.Label,
			Path:             doc.Disease.Path,
			TherapeuticAreas: doc.Disease.TherapeuticAreas,
		},
		doc.IsDirect,
		scores,
		association.ReconstructEvidenceCount(doc.Counts.Total, doc.Counts.Datatypes, doc.Counts.Datasources),
		association.ReconstructFacets(doc.Private.Facets.Datatype, doc.Private.Facets.Datasource),
	), nil
}

func encodeStrings(values []string) string {
	if len(values) == 0 {
		return "[]"
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "[]"
	}
	return string(data)
}

func decodeStrings(data string) []string {
	if data == "" {
		return nil
	}
	var values []string
	if err := json.Unmarshal([]byte(data), &values); err != nil {
		return nil
	}
	return values
}
