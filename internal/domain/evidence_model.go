package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Evidence is a record attached to an entity backing a moderation decision.
// File payloads live in external storage; only metadata is kept here.
type Evidence struct {
	ID   uint64 `gorm:"primaryKey;autoIncrement" json:"-"`
	UUID string `gorm:"size:36;uniqueIndex;not null" json:"uuid"`

	EntityID uint64 `gorm:"not null;index" json:"-"`

	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text;not null;default:''" json:"description"`
	ContentHash string `gorm:"size:64;not null;default:''" json:"content_hash,omitempty"`

	// Confidential evidence is only returned to callers whose permission
	// context allows it.
	Confidential bool `gorm:"not null;default:false" json:"confidential"`

	CreatedByID uint      `gorm:"not null" json:"created_by_id"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (evidence *Evidence) BeforeCreate(_ *gorm.DB) error {
	if evidence.UUID == "" {
		evidence.UUID = uuid.NewString()
	}
	return nil
}
