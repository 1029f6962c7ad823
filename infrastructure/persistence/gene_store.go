package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm/clause"

	"github.com/targetlink/targetlink/domain/gene"
	"github.com/targetlink/targetlink/internal/database"
)

// GeneStore is the GORM-backed gene.Store implementation.
type GeneStore struct {
	repo database.Repository[gene.Gene, GeneModel]
}

// NewGeneStore creates a GeneStore.
func NewGeneStore(db database.Database) *GeneStore {
	return &GeneStore{
		repo: database.NewRepository[gene.Gene, GeneModel](db, GeneMapper{}, "gene"),
	}
}

// Get returns a gene by id.
func (s *GeneStore) Get(ctx context.Context, id string) (gene.Gene, error) {
	g, err := s.repo.FindOne(ctx, database.Where("id", id))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return gene.Gene{}, fmt.Errorf("%w: %s", gene.ErrNotFound, id)
		}
		return gene.Gene{}, err
	}
	return g, nil
}

// All returns every stored gene.
func (s *GeneStore) All(ctx context.Context) ([]gene.Gene, error) {
	return s.repo.Find(ctx)
}

// SaveBatch upserts a batch of genes.
func (s *GeneStore) SaveBatch(ctx context.Context, genes []gene.Gene) error {
	if len(genes) == 0 {
		return nil
	}

	models := make([]GeneModel, len(genes))
	mapper := GeneMapper{}
	for i, g := range genes {
		models[i] = mapper.ToModel(g)
	}

	result := s.repo.DB(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		CreateInBatches(models, evidenceBatchSize)
	if result.Error != nil {
		return fmt.Errorf("save gene batch: %w", result.Error)
	}
	return nil
}
