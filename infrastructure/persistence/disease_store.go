package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm/clause"

	"github.com/targetlink/targetlink/domain/disease"
	"github.com/targetlink/targetlink/internal/database"
)

// DiseaseStore is the GORM-backed disease.Store implementation.
type DiseaseStore struct {
	repo database.Repository[disease.Disease, DiseaseModel]
}

// NewDiseaseStore creates a DiseaseStore.
func NewDiseaseStore(db database.Database) *DiseaseStore {
	return &DiseaseStore{
		repo: database.NewRepository[disease.Disease, DiseaseModel](db, DiseaseMapper{}, "disease"),
	}
}

// Get returns a disease by id.
func (s *DiseaseStore) Get(ctx context.Context, id string) (disease.Disease, error) {
	d, err := s.repo.FindOne(ctx, database.Where("id", id))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return disease.Disease{}, fmt.Errorf("%w: %s", disease.ErrNotFound, id)
		}
		return disease.Disease{}, err
	}
	return d, nil
}

// All returns every stored disease.
func (s *DiseaseStore) All(ctx context.Context) ([]disease.Disease, error) {
	return s.repo.Find(ctx)
}

// SaveBatch upserts a batch of diseases.
func (s *DiseaseStore) SaveBatch(ctx context.Context, diseases []disease.Disease) error {
	if len(diseases) == 0 {
		return nil
	}

	models := make([]DiseaseModel, len(diseases))
	mapper := DiseaseMapper{}
	for i, d := range diseases {
		models[i] = mapper.ToModel(d)
	}

	result := s.repo.DB(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		CreateInBatches(models, evidenceBatchSize)
	if result.Error != nil {
		return fmt.Errorf("save disease batch: %w", result.Error)
	}
	return nil
}
