package dto

// EntityRequest registers an addressable entity. LocalID is only set for
// mailbox-style addresses (the part before the @).
type EntityRequest struct {
	Host    string `json:"host"`
	LocalID string `json:"local_id,omitempty"`
}
