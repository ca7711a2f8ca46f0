package dto

// EvidenceRequest attaches a piece of evidence to an entity.
type EvidenceRequest struct {
	EntityUUID   string `json:"entity_uuid"`
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	ContentHash  string `json:"content_hash,omitempty"`
	Confidential bool   `json:"confidential"`
}
