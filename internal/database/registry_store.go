package database

import (
	"context"
	"errors"

	"shrike/internal/domain"
	"shrike/internal/scan"

	"gorm.io/gorm"
)

// RegistryStore adapts the database handlers to the scan engine's Store
// interface.
type RegistryStore struct{}

func (RegistryStore) LookupEntity(ctx context.Context, hash []byte) (*domain.Entity, error) {
	entity, err := LookupEntityByHash(ctx, hash)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, scan.ErrEntityNotFound
		}
		return nil, err
	}
	return entity, nil
}

func (RegistryStore) ListBlacklistRecords(ctx context.Context, entityID uint64) ([]domain.BlacklistRecord, error) {
	return ListBlacklistRecords(ctx, entityID)
}

func (RegistryStore) ListEvidence(ctx context.Context, entityID uint64, includeConfidential bool) ([]domain.Evidence, error) {
	return ListEvidence(ctx, entityID, includeConfidential)
}

func (RegistryStore) ListAuditLogs(ctx context.Context, entityID uint64) ([]domain.AuditLog, error) {
	return ListAuditLogs(ctx, entityID)
}
