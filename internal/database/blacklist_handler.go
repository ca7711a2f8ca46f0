package database

import (
	"context"
	"errors"

	"shrike/internal/domain"

	"gorm.io/gorm"
)

// ListBlacklistRecords returns every blacklist record of an entity, lifted and
// expired ones included, so the caller can compute activity itself.
func ListBlacklistRecords(ctx context.Context, entityID uint64) ([]domain.BlacklistRecord, error) {
	if DB == nil {
		return nil, errors.New("database not initialised")
	}

	var records []domain.BlacklistRecord
	err := DB.WithContext(ctx).
		Where("entity_id = ?", entityID).
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func CreateBlacklistRecord(ctx context.Context, record *domain.BlacklistRecord) error {
	if DB == nil {
		return errors.New("database not initialised")
	}
	if !domain.IsValidBlacklistType(record.Type) {
		return errors.New("invalid blacklist type " + record.Type)
	}

	return DB.WithContext(ctx).Create(record).Error
}

// LiftBlacklistRecord marks a record as lifted by the given operator. Lifting
// an already-lifted record is a no-op.
func LiftBlacklistRecord(ctx context.Context, uuid string, operatorID uint) (*domain.BlacklistRecord, error) {
	if DB == nil {
		return nil, errors.New("database not initialised")
	}

	var record domain.BlacklistRecord
	if err := DB.WithContext(ctx).Where("uuid = ?", uuid).First(&record).Error; err != nil {
		return nil, err
	}

	if record.Lifted {
		return &record, nil
	}

	record.Lifted = true
	record.LiftedByID = &operatorID

	err := DB.WithContext(ctx).Model(&domain.BlacklistRecord{}).
		Where("uuid = ?", uuid).
		Updates(map[string]any{"lifted": true, "lifted_by_id": operatorID}).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// GetBlacklistRecordEntity resolves the entity a blacklist record belongs to.
func GetBlacklistRecordEntity(ctx context.Context, recordUUID string) (*domain.Entity, error) {
	if DB == nil {
		return nil, errors.New("database not initialised")
	}

	var record domain.BlacklistRecord
	if err := DB.WithContext(ctx).Where("uuid = ?", recordUUID).First(&record).Error; err != nil {
		return nil, err
	}

	var entity domain.Entity
	if err := DB.WithContext(ctx).First(&entity, record.EntityID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, err
	}
	return &entity, nil
}
