package scan

import (
	"context"
	"encoding/hex"
	"errors"
	"testing"
	"time"

	"shrike/internal/domain"
)

// fakeStore is an in-memory Store for engine tests. Entities are keyed by
// their hex identity hash; failures can be injected per hash or globally.
type fakeStore struct {
	entities  map[string]*domain.Entity
	blacklist map[uint64][]domain.BlacklistRecord
	evidence  map[uint64][]domain.Evidence
	auditLogs map[uint64][]domain.AuditLog

	failAll    bool
	failHashes map[string]bool

	lastIncludeConfidential bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		entities:   make(map[string]*domain.Entity),
		blacklist:  make(map[uint64][]domain.BlacklistRecord),
		evidence:   make(map[uint64][]domain.Evidence),
		auditLogs:  make(map[uint64][]domain.AuditLog),
		failHashes: make(map[string]bool),
	}
}

func (store *fakeStore) addEntity(id uint64, host, localID string) *domain.Entity {
	entity := &domain.Entity{ID: id, UUID: "uuid-" + host + localID, Host: host, LocalID: localID}
	entity.GenerateHash()
	store.entities[hex.EncodeToString(entity.Hash)] = entity
	return entity
}

func (store *fakeStore) LookupEntity(_ context.Context, hash []byte) (*domain.Entity, error) {
	key := hex.EncodeToString(hash)
	if store.failAll || store.failHashes[key] {
		return nil, errors.New("connection refused")
	}
	entity, ok := store.entities[key]
	if !ok {
		return nil, ErrEntityNotFound
	}
	return entity, nil
}

func (store *fakeStore) ListBlacklistRecords(_ context.Context, entityID uint64) ([]domain.BlacklistRecord, error) {
	return store.blacklist[entityID], nil
}

func (store *fakeStore) ListEvidence(_ context.Context, entityID uint64, includeConfidential bool) ([]domain.Evidence, error) {
	store.lastIncludeConfidential = includeConfidential
	records := store.evidence[entityID]
	if includeConfidential {
		return records, nil
	}
	visible := make([]domain.Evidence, 0, len(records))
	for _, record := range records {
		if !record.Confidential {
			visible = append(visible, record)
		}
	}
	return visible, nil
}

func (store *fakeStore) ListAuditLogs(_ context.Context, entityID uint64) ([]domain.AuditLog, error) {
	return store.auditLogs[entityID], nil
}

func newEngineWithStore(t *testing.T, store Store) *Engine {
	t.Helper()
	engine, err := New(store)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return engine
}

func TestScanContentURLAndEmailSuppressContainedDomain(t *testing.T) {
	engine := newEngineWithStore(t, newFakeStore())

	text := "Visit https://example.com or email us at contact@example.com"
	entities, err := engine.ScanContent(context.Background(), text, false)
	if err != nil {
		t.Fatalf("ScanContent() failed: %v", err)
	}

	if len(entities) != 2 {
		t.Fatalf("ScanContent() = %d entities, want 2 (URL and EMAIL only)", len(entities))
	}

	if entities[0].Position.Type != TypeURL || entities[0].Position.Value != "https://example.com" {
		t.Errorf("first match = %+v, want the URL", entities[0].Position)
	}
	if entities[1].Position.Type != TypeEmail || entities[1].Position.Value != "contact@example.com" {
		t.Errorf("second match = %+v, want the EMAIL", entities[1].Position)
	}
	for _, entity := range entities {
		if entity.QueryResult != nil {
			t.Errorf("unknown entity %q carries a query result", entity.Position.Value)
		}
		if got := text[entity.Position.Offset : entity.Position.Offset+entity.Position.Length]; got != entity.Position.Value {
			t.Errorf("position value %q does not equal input slice %q", entity.Position.Value, got)
		}
	}
}

func TestScanContentActiveBlacklist(t *testing.T) {
	store := newFakeStore()
	entity := store.addEntity(1, "192.168.1.1", "")
	store.blacklist[entity.ID] = []domain.BlacklistRecord{
		{UUID: "bl-1", EntityID: entity.ID, Type: domain.BlacklistTypeSpam},
	}

	engine := newEngineWithStore(t, store)

	entities, err := engine.ScanContent(context.Background(), "192.168.1.1", false)
	if err != nil {
		t.Fatalf("ScanContent() failed: %v", err)
	}
	if len(entities) != 1 || entities[0].Position.Type != TypeIPv4 {
		t.Fatalf("ScanContent() = %+v, want one IPV4 entity", entities)
	}

	result := entities[0].QueryResult
	if result == nil {
		t.Fatal("registered entity has no query result")
	}
	if !result.IsBlacklisted {
		t.Error("is_blacklisted = false, want true for an active SPAM record")
	}
	if len(result.BlacklistRecords) != 1 || result.BlacklistRecords[0].Type != domain.BlacklistTypeSpam {
		t.Errorf("blacklist records = %+v, want one SPAM record", result.BlacklistRecords)
	}
	if result.BlacklistRecords[0].Lifted {
		t.Error("record reported as lifted")
	}
}

func TestScanContentExpiredRecordNotActive(t *testing.T) {
	store := newFakeStore()
	entity := store.addEntity(7, "expired.example.com", "")
	past := time.Now().UTC().Add(-time.Hour)
	store.blacklist[entity.ID] = []domain.BlacklistRecord{
		{UUID: "bl-2", EntityID: entity.ID, Type: domain.BlacklistTypeScam, ExpiresAt: &past, Lifted: false},
	}

	engine := newEngineWithStore(t, store)

	entities, err := engine.ScanContent(context.Background(), "expired.example.com", false)
	if err != nil {
		t.Fatalf("ScanContent() failed: %v", err)
	}

	result := entities[0].QueryResult
	if result == nil {
		t.Fatal("registered entity has no query result")
	}
	if result.IsBlacklisted {
		t.Error("is_blacklisted = true for a record past its expiry")
	}
	if len(result.BlacklistRecords) != 1 || result.BlacklistRecords[0].Active {
		t.Errorf("expired record reported active: %+v", result.BlacklistRecords)
	}
}

func TestScanContentDuplicateEmailsShareIdentity(t *testing.T) {
	store := newFakeStore()
	store.addEntity(3, "example.com", "admin")

	engine := newEngineWithStore(t, store)

	entities, err := engine.ScanContent(context.Background(), "admin@example.com admin@example.com", false)
	if err != nil {
		t.Fatalf("ScanContent() failed: %v", err)
	}

	if len(entities) != 2 {
		t.Fatalf("ScanContent() = %d entities, want 2", len(entities))
	}
	if entities[0].Position.Offset == entities[1].Position.Offset {
		t.Error("duplicate matches share an offset")
	}
	for _, entity := range entities {
		if entity.QueryResult == nil {
			t.Fatalf("match %q did not correlate", entity.Position.Value)
		}
		if entity.QueryResult.Entity.UUID != "uuid-example.comadmin" {
			t.Errorf("match %q correlated to %q", entity.Position.Value, entity.QueryResult.Entity.UUID)
		}
	}
}

func TestScanContentURLCorrelatesByHost(t *testing.T) {
	store := newFakeStore()
	store.addEntity(4, "example.com", "")

	engine := newEngineWithStore(t, store)

	entities, err := engine.ScanContent(context.Background(), "https://example.com/some/path?x=1", false)
	if err != nil {
		t.Fatalf("ScanContent() failed: %v", err)
	}
	if len(entities) != 1 || entities[0].QueryResult == nil {
		t.Fatalf("URL did not correlate against its bare-domain entity: %+v", entities)
	}
}

func TestScanContentEmptyInput(t *testing.T) {
	engine := newEngineWithStore(t, newFakeStore())

	entities, err := engine.ScanContent(context.Background(), "", false)
	if err != nil {
		t.Fatalf("ScanContent(\"\") failed: %v", err)
	}
	if len(entities) != 0 {
		t.Errorf("ScanContent(\"\") = %v, want empty list", entities)
	}
}

func TestScanContentIdempotentPositions(t *testing.T) {
	engine := newEngineWithStore(t, newFakeStore())

	text := "ping 10.1.2.3 and mail ops@example.com about https://example.org/x"
	first, err := engine.ScanContent(context.Background(), text, false)
	if err != nil {
		t.Fatalf("ScanContent() failed: %v", err)
	}
	second, err := engine.ScanContent(context.Background(), text, false)
	if err != nil {
		t.Fatalf("ScanContent() failed: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("result sizes differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Position != second[i].Position {
			t.Errorf("position %d differs between runs: %+v vs %+v", i, first[i].Position, second[i].Position)
		}
	}
}

func TestScanContentPartialLookupFailure(t *testing.T) {
	store := newFakeStore()
	known := store.addEntity(5, "example.com", "")
	store.failHashes[hex.EncodeToString(domain.IdentityHash("198.51.100.9", ""))] = true

	engine := newEngineWithStore(t, store)

	entities, err := engine.ScanContent(context.Background(), "example.com 198.51.100.9", false)
	if err != nil {
		t.Fatalf("ScanContent() failed on a partial lookup failure: %v", err)
	}
	if len(entities) != 2 {
		t.Fatalf("ScanContent() = %d entities, want 2", len(entities))
	}
	if entities[0].QueryResult == nil || entities[0].QueryResult.Entity.UUID != known.UUID {
		t.Errorf("healthy lookup degraded: %+v", entities[0])
	}
	if entities[1].QueryResult != nil {
		t.Errorf("failed lookup should carry no query result: %+v", entities[1])
	}
}

func TestScanContentAllLookupsFail(t *testing.T) {
	store := newFakeStore()
	store.failAll = true

	engine := newEngineWithStore(t, store)

	_, err := engine.ScanContent(context.Background(), "example.com 198.51.100.9", false)
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("ScanContent() error = %v, want ErrStoreUnavailable", err)
	}
}

func TestScanContentConfidentialFlag(t *testing.T) {
	store := newFakeStore()
	entity := store.addEntity(6, "example.com", "")
	store.evidence[entity.ID] = []domain.Evidence{
		{UUID: "ev-public", EntityID: entity.ID, Title: "public"},
		{UUID: "ev-secret", EntityID: entity.ID, Title: "secret", Confidential: true},
	}

	engine := newEngineWithStore(t, store)

	entities, err := engine.ScanContent(context.Background(), "example.com", false)
	if err != nil {
		t.Fatalf("ScanContent() failed: %v", err)
	}
	if got := len(entities[0].QueryResult.EvidenceRecords); got != 1 {
		t.Errorf("without confidential access: %d evidence records, want 1", got)
	}

	entities, err = engine.ScanContent(context.Background(), "example.com", true)
	if err != nil {
		t.Fatalf("ScanContent() failed: %v", err)
	}
	if got := len(entities[0].QueryResult.EvidenceRecords); got != 2 {
		t.Errorf("with confidential access: %d evidence records, want 2", got)
	}
	if !store.lastIncludeConfidential {
		t.Error("include_confidential flag was not passed through to the store")
	}
}
