package database

import (
	"context"
	"errors"

	"shrike/internal/domain"
)

// ListEvidence returns the evidence attached to an entity. Confidential
// records are filtered out unless the caller's permission context allows
// them; that decision is made by the caller, not here.
func ListEvidence(ctx context.Context, entityID uint64, includeConfidential bool) ([]domain.Evidence, error) {
	if DB == nil {
		return nil, errors.New("database not initialised")
	}

	query := DB.WithContext(ctx).Where("entity_id = ?", entityID)
	if !includeConfidential {
		query = query.Where("confidential = ?", false)
	}

	var records []domain.Evidence
	if err := query.Order("created_at ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func CreateEvidence(ctx context.Context, evidence *domain.Evidence) error {
	if DB == nil {
		return errors.New("database not initialised")
	}
	return DB.WithContext(ctx).Create(evidence).Error
}

func GetEvidenceByUUID(ctx context.Context, uuid string) (*domain.Evidence, error) {
	if DB == nil {
		return nil, errors.New("database not initialised")
	}

	var evidence domain.Evidence
	if err := DB.WithContext(ctx).Where("uuid = ?", uuid).First(&evidence).Error; err != nil {
		return nil, err
	}
	return &evidence, nil
}
