package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/targetlink/targetlink/domain/association"
	"github.com/targetlink/targetlink/internal/database"
)

const associationBatchSize = 500

// AssociationStore is the GORM-backed association.Store implementation.
// Associations are upserted by their deterministic id, so re-running a
// scoring pass overwrites the previous documents in place.
type AssociationStore struct {
	db     database.Database
	mapper AssociationMapper
}

// NewAssociationStore creates an AssociationStore.
func NewAssociationStore(db database.Database) *AssociationStore {
	return &AssociationStore{db: db}
}

// SaveBatch upserts a batch of associations. The whole batch is written in
// one transaction, so a failed write leaves no partial state behind.
func (s *AssociationStore) SaveBatch(ctx context.Context, batch []association.Association) error {
	if len(batch) == 0 {
		return nil
	}

	models := make([]AssociationModel, 0, len(batch))
	for _, a := range batch {
		model, err := s.mapper.ToModel(a)
		if err != nil {
			return err
		}
		models = append(models, model)
	}

	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		return tx.
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				UpdateAll: true,
			}).
			CreateInBatches(models, associationBatchSize).Error
	})
	if err != nil {
		return fmt.Errorf("save association batch: %w", err)
	}
	return nil
}

// Get returns an association by id.
func (s *AssociationStore) Get(ctx context.Context, id string) (association.Association, error) {
	var model AssociationModel
	result := s.db.Session(ctx).Where("id = ?", id).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return association.Association{}, fmt.Errorf("%w: %s", association.ErrNotFound, id)
		}
		return association.Association{}, fmt.Errorf("get association %s: %w", id, result.Error)
	}
	return s.mapper.ToDomain(model)
}

// FindByTarget returns all associations for a target, strongest first.
func (s *AssociationStore) FindByTarget(ctx context.Context, targetID string) ([]association.Association, error) {
	var models []AssociationModel
	result := s.db.Session(ctx).
		Where("target_id = ?", targetID).
		Order("harmonic_sum_overall DESC").
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("find associations for %s: %w", targetID, result.Error)
	}

	out := make([]association.Association, 0, len(models))
	for _, model := range models {
		a, err := s.mapper.ToDomain(model)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// Count returns the number of stored associations.
func (s *AssociationStore) Count(ctx context.Context) (int64, error) {
	var count int64
	result := s.db.Session(ctx).Model(&AssociationModel{}).Count(&count)
	if result.Error != nil {
		return 0, fmt.Errorf("count associations: %w", result.Error)
	}
	return count, nil
}

// DeleteAll removes every stored association.
func (s *AssociationStore) DeleteAll(ctx context.Context) error {
	result := s.db.Session(ctx).Where("1 = 1").Delete(&AssociationModel{})
	if result.Error != nil {
		return fmt.Errorf("delete associations: %w", result.Error)
	}
	return nil
}

// Flush makes all written associations durable and visible to readers. On
// SQLite this checkpoints the write-ahead log; PostgreSQL commits are
// already visible, so a ping is enough to surface connection errors.
func (s *AssociationStore) Flush(ctx context.Context) error {
	if s.db.IsPostgres() {
		return s.db.Ping(ctx)
	}
	if err := s.db.Session(ctx).Exec("PRAGMA wal_checkpoint(TRUNCATE)").Error; err != nil {
		return fmt.Errorf("flush associations: %w", err)
	}
	return nil
}
