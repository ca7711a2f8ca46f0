package domain

import (
	"crypto/sha256"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Entity is a registered real-world addressable thing: a domain, URL host,
// email address or IP. The Hash column is the canonical identity used to join
// scanned text against the registry.
type Entity struct {
	ID   uint64 `gorm:"primaryKey;autoIncrement" json:"-"`
	UUID string `gorm:"size:36;uniqueIndex;not null" json:"uuid"`

	Host    string `gorm:"size:255;not null;index:idx_entity_addr,priority:1" json:"host"`
	LocalID string `gorm:"size:255;not null;default:'';index:idx_entity_addr,priority:2" json:"local_id,omitempty"`

	// Country is filled from GeoLite when Host parses as an IP address.
	Country string `gorm:"size:56;not null;default:''" json:"country,omitempty"`

	Hash []byte `gorm:"type:bytea;uniqueIndex;size:32" json:"-"` // SHA-256 of lower(LocalID@Host) or lower(Host)

	// Relationships
	BlacklistRecords []BlacklistRecord `gorm:"foreignKey:EntityID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Evidence         []Evidence        `gorm:"foreignKey:EntityID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	AuditLogs        []AuditLog        `gorm:"foreignKey:EntityID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (entity *Entity) BeforeSave(_ *gorm.DB) error {
	if entity.UUID == "" {
		entity.UUID = uuid.NewString()
	}
	if len(entity.Hash) == 0 {
		entity.GenerateHash()
	}
	return nil
}

func (entity *Entity) GenerateHash() {
	entity.Hash = IdentityHash(entity.Host, entity.LocalID)
}

// IdentityHash computes the canonical identity digest for a (host, local id)
// pair. The digest is pure and stable: identical input always yields the
// identical hash, which lets the store expose a unique index over it.
func IdentityHash(host, localID string) []byte {
	input := strings.ToLower(host) // entity addresses are case-insensitive
	if localID != "" {
		input = strings.ToLower(localID) + "@" + input
	}
	sum := sha256.Sum256([]byte(input))
	return sum[:]
}
