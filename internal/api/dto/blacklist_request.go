package dto

import "time"

// BlacklistRequest marks an entity as blacklisted. EvidenceUUID optionally
// links the record to a previously submitted evidence item; a nil ExpiresAt
// makes the record permanent.
type BlacklistRequest struct {
	EntityUUID   string     `json:"entity_uuid"`
	Type         string     `json:"type"`
	EvidenceUUID string     `json:"evidence_uuid,omitempty"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
}
