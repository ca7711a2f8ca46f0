package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Closed set of blacklist type tags.
const (
	BlacklistTypeSpam           = "SPAM"
	BlacklistTypeScam           = "SCAM"
	BlacklistTypeServiceAbuse   = "SERVICE_ABUSE"
	BlacklistTypeIllegalContent = "ILLEGAL_CONTENT"
	BlacklistTypeMalware        = "MALWARE"
	BlacklistTypePhishing       = "PHISHING"
	BlacklistTypeCSAM           = "CSAM"
	BlacklistTypeOther          = "OTHER"
)

var BlacklistTypes = []string{
	BlacklistTypeSpam,
	BlacklistTypeScam,
	BlacklistTypeServiceAbuse,
	BlacklistTypeIllegalContent,
	BlacklistTypeMalware,
	BlacklistTypePhishing,
	BlacklistTypeCSAM,
	BlacklistTypeOther,
}

func IsValidBlacklistType(tag string) bool {
	for _, t := range BlacklistTypes {
		if t == tag {
			return true
		}
	}
	return false
}

// BlacklistRecord marks an entity as blacklisted, either permanently or until
// ExpiresAt. A record stops counting once it is lifted or past its expiry.
type BlacklistRecord struct {
	ID   uint64 `gorm:"primaryKey;autoIncrement" json:"-"`
	UUID string `gorm:"size:36;uniqueIndex;not null" json:"uuid"`

	EntityID   uint64  `gorm:"not null;index" json:"-"`
	EvidenceID *uint64 `gorm:"index" json:"-"`

	Type string `gorm:"size:20;not null;check:type IN ('SPAM','SCAM','SERVICE_ABUSE','ILLEGAL_CONTENT','MALWARE','PHISHING','CSAM','OTHER')" json:"type"`

	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	Lifted     bool       `gorm:"not null;default:false" json:"lifted"`
	LiftedByID *uint      `json:"lifted_by_id,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (record *BlacklistRecord) BeforeCreate(_ *gorm.DB) error {
	if record.UUID == "" {
		record.UUID = uuid.NewString()
	}
	return nil
}

// IsActive reports whether the record still counts against the entity:
// not lifted and either permanent or not yet expired.
func (record *BlacklistRecord) IsActive(now time.Time) bool {
	if record.Lifted {
		return false
	}
	return record.ExpiresAt == nil || record.ExpiresAt.After(now)
}
