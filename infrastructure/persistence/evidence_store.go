package persistence

import (
	"context"
	"fmt"

	"github.com/targetlink/targetlink/domain/evidence"
	"github.com/targetlink/targetlink/internal/database"
)

const evidenceBatchSize = 500

// EvidenceStore is the GORM-backed evidence.Store implementation.
type EvidenceStore struct {
	repo database.Repository[evidence.Evidence, EvidenceModel]
}

// NewEvidenceStore creates an EvidenceStore.
func NewEvidenceStore(db database.Database) *EvidenceStore {
	return &EvidenceStore{
		repo: database.NewRepository[evidence.Evidence, EvidenceModel](db, EvidenceMapper{}, "evidence"),
	}
}

// CountForTarget returns the number of evidence records for a target.
func (s *EvidenceStore) CountForTarget(ctx context.Context, targetID string) (int64, error) {
	return s.repo.Count(ctx, database.Where("target_id", targetID))
}

// ForTarget streams every evidence record for a target to fn.
func (s *EvidenceStore) ForTarget(ctx context.Context, targetID string, fn func(evidence.Evidence) error) error {
	rows, err := s.repo.DB(ctx).
		Model(&EvidenceModel{}).
		Where("target_id = ?", targetID).
		Rows()
	if err != nil {
		return fmt.Errorf("stream evidence for %s: %w", targetID, err)
	}
	defer func() { _ = rows.Close() }()

	mapper := EvidenceMapper{}
	for rows.Next() {
		var model EvidenceModel
		if err := s.repo.DB(ctx).ScanRows(rows, &model); err != nil {
			return fmt.Errorf("scan evidence row: %w", err)
		}
		if err := fn(mapper.ToDomain(model)); err != nil {
			return err
		}
	}
	return rows.Err()
}

// TargetIDs returns the distinct target ids present in the evidence table.
func (s *EvidenceStore) TargetIDs(ctx context.Context) ([]string, error) {
	var ids []string
	result := s.repo.DB(ctx).
		Model(&EvidenceModel{}).
		Distinct("target_id").
		Order("target_id").
		Pluck("target_id", &ids)
	if result.Error != nil {
		return nil, fmt.Errorf("list evidence targets: %w", result.Error)
	}
	return ids, nil
}

// SaveBatch persists a batch of evidence records.
func (s *EvidenceStore) SaveBatch(ctx context.Context, records []evidence.Evidence) error {
	if len(records) == 0 {
		return nil
	}

	models := make([]EvidenceModel, len(records))
	mapper := EvidenceMapper{}
	for i, record := range records {
		models[i] = mapper.ToModel(record)
	}

	if result := s.repo.DB(ctx).CreateInBatches(models, evidenceBatchSize); result.Error != nil {
		return fmt.Errorf("save evidence batch: %w", result.Error)
	}
	return nil
}
