package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditLog records every mutating operator action against an entity.
type AuditLog struct {
	ID   uint64 `gorm:"primaryKey;autoIncrement" json:"-"`
	UUID string `gorm:"size:36;uniqueIndex;not null" json:"uuid"`

	EntityID   uint64 `gorm:"not null;index" json:"-"`
	OperatorID uint   `gorm:"not null" json:"operator_id"`

	Action string `gorm:"size:64;not null" json:"action"`
	Detail string `gorm:"type:text;not null;default:''" json:"detail,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (entry *AuditLog) BeforeCreate(_ *gorm.DB) error {
	if entry.UUID == "" {
		entry.UUID = uuid.NewString()
	}
	return nil
}
