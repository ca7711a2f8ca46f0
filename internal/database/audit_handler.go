package database

import (
	"context"
	"errors"

	"shrike/internal/domain"

	"github.com/charmbracelet/log"
)

func ListAuditLogs(ctx context.Context, entityID uint64) ([]domain.AuditLog, error) {
	if DB == nil {
		return nil, errors.New("database not initialised")
	}

	var entries []domain.AuditLog
	err := DB.WithContext(ctx).
		Where("entity_id = ?", entityID).
		Order("created_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// AppendAuditLog records an operator action. Audit writes must never block a
// request from completing, so failures are logged and swallowed.
func AppendAuditLog(ctx context.Context, entityID uint64, operatorID uint, action, detail string) {
	if DB == nil {
		return
	}

	entry := domain.AuditLog{
		EntityID:   entityID,
		OperatorID: operatorID,
		Action:     action,
		Detail:     detail,
	}

	if err := DB.WithContext(ctx).Create(&entry).Error; err != nil {
		log.Warn("Failed to append audit log", "entity_id", entityID, "action", action, "error", err)
	}
}
