package scan

import (
	"encoding/json"
	"fmt"

	"shrike/internal/domain"
)

// EntityType tags the kind of entity a pattern match represents. The set is
// closed; descriptors for every type are registered at engine construction.
type EntityType int

const (
	TypeDomain EntityType = iota
	TypeURL
	TypeEmail
	TypeIPv4
	TypeIPv6
)

func (t EntityType) String() string {
	switch t {
	case TypeDomain:
		return "DOMAIN"
	case TypeURL:
		return "URL"
	case TypeEmail:
		return "EMAIL"
	case TypeIPv4:
		return "IPV4"
	case TypeIPv6:
		return "IPV6"
	default:
		return fmt.Sprintf("EntityType(%d)", int(t))
	}
}

func (t EntityType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// MatchCandidate is a raw pattern match before overlap resolution and
// validation. It only lives for the duration of one scan call.
type MatchCandidate struct {
	Type   EntityType
	Start  int
	Length int
	Value  string
}

// NamedEntityPosition is a candidate that survived overlap resolution and
// validation. Value always equals the input substring at [Offset, Offset+Length).
type NamedEntityPosition struct {
	Type   EntityType `json:"type"`
	Offset int        `json:"offset"`
	Length int        `json:"length"`
	Value  string     `json:"value"`
}

// BlacklistStatus pairs a persisted blacklist record with its activity at the
// time of the scan.
type BlacklistStatus struct {
	domain.BlacklistRecord
	Active bool `json:"active"`
}

// EntityQueryResult aggregates everything the registry knows about one
// correlated entity. It is computed fresh on every scan so expiry is always
// evaluated against the current time.
type EntityQueryResult struct {
	Entity           domain.Entity     `json:"entity_record"`
	IsBlacklisted    bool              `json:"is_blacklisted"`
	BlacklistRecords []BlacklistStatus `json:"blacklist_records"`
	EvidenceRecords  []domain.Evidence `json:"evidence_records"`
	AuditLogs        []domain.AuditLog `json:"audit_logs"`
}

// NamedEntity is the engine's output unit. QueryResult is nil when the
// scanned value has no matching registry entry or its lookup failed.
type NamedEntity struct {
	Position    NamedEntityPosition `json:"entity_position"`
	QueryResult *EntityQueryResult  `json:"query_result"`
}
