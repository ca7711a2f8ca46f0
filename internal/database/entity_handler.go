package database

import (
	"context"
	"errors"
	"net"

	"shrike/internal/domain"

	"gorm.io/gorm"
)

// LookupEntityByHash fetches the entity whose identity hash matches exactly.
// The hash column carries a unique index, so this is a single index probe.
func LookupEntityByHash(ctx context.Context, hash []byte) (*domain.Entity, error) {
	if DB == nil {
		return nil, errors.New("database not initialised")
	}

	var entity domain.Entity
	err := DB.WithContext(ctx).Where("hash = ?", hash).First(&entity).Error
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

func GetEntityByUUID(ctx context.Context, uuid string) (*domain.Entity, error) {
	if DB == nil {
		return nil, errors.New("database not initialised")
	}

	var entity domain.Entity
	err := DB.WithContext(ctx).Where("uuid = ?", uuid).First(&entity).Error
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

// CreateEntity persists a new entity. The identity hash and UUID are filled
// by the model's BeforeSave hook; IP hosts get their country filled from
// GeoLite when available.
func CreateEntity(ctx context.Context, entity *domain.Entity) error {
	if DB == nil {
		return errors.New("database not initialised")
	}

	if entity.Country == "" && net.ParseIP(entity.Host) != nil {
		entity.Country = GetCountryCode(entity.Host)
	}

	return DB.WithContext(ctx).Create(entity).Error
}

func DeleteEntityByUUID(ctx context.Context, uuid string) error {
	if DB == nil {
		return errors.New("database not initialised")
	}

	result := DB.WithContext(ctx).Where("uuid = ?", uuid).Delete(&domain.Entity{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
