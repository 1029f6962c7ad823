package persistence

import (
	"fmt"

	"github.com/targetlink/targetlink/internal/database"
)

// AutoMigrate creates or updates the schema for all persistence models.
func AutoMigrate(db database.Database) error {
	if err := db.GORM().AutoMigrate(
		&EvidenceModel{},
		&AssociationModel{},
		&GeneModel{},
		&DiseaseModel{},
	); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}
