// Package persistence provides database storage implementations.
package persistence

import "time"

// EvidenceModel is the database representation of an evidence record.
type EvidenceModel struct {
	ID         int64   `gorm:"primaryKey;autoIncrement"`
	TargetID   string  `gorm:"column:target_id;index:idx_evidence_target;not null"`
	DiseaseID  string  `gorm:"column:disease_id;not null"`
	Datasource string  `gorm:"column:datasource;not null"`
	Score      float64 `gorm:"column:score"`
	EFOCodes   string  `gorm:"column:efo_codes"` // JSON-encoded string list
	CreatedAt  time.Time
}

// TableName returns the evidence table name.
func (EvidenceModel) TableName() string { return "evidence" }

// AssociationModel is the database representation of a scored association.
// The full association document is stored as JSON in Body; the scalar
// columns exist for indexing and ordering.
type AssociationModel struct {
	ID                 string  `gorm:"primaryKey"`
	TargetID           string  `gorm:"column:target_id;index:idx_associations_target;not null"`
	DiseaseID          string  `gorm:"column:disease_id;index:idx_associations_disease;not null"`
	IsDirect           bool    `gorm:"column:is_direct"`
	HarmonicSumOverall float64 `gorm:"column:harmonic_sum_overall;index:idx_associations_score"`
	Body               string  `gorm:"column:body;not null"`
	UpdatedAt          time.Time
}

// TableName returns the associations table name.
func (AssociationModel) TableName() string { return "associations" }

// GeneModel is the database representation of gene metadata.
type GeneModel struct {
	ID              string `gorm:"primaryKey"`
	ApprovedSymbol  string `gorm:"column:approved_symbol"`
	ApprovedName    string `gorm:"column:approved_name"`
	Biotype         string `gorm:"column:biotype"`
	PathwayCodes    string `gorm:"column:pathway_codes"`    // JSON-encoded string list
	GOTerms         string `gorm:"column:go_terms"`         // JSON-encoded string list
	UniprotKeywords string `gorm:"column:uniprot_keywords"` // JSON-encoded string list
}

// TableName returns the genes table name.
func (GeneModel) TableName() string { return "genes" }

// DiseaseModel is the database representation of disease metadata.
type DiseaseModel struct {
	ID               string `gorm:"primaryKey"`
	Label            string `gorm:"column:label"`
	Path             string `gorm:"column:path"`              // JSON-encoded string list
	TherapeuticAreas string `gorm:"column:therapeutic_areas"` // JSON-encoded string list
}

// TableName returns the diseases table name.
func (DiseaseModel) TableName() string { return "diseases" }
