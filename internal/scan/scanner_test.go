package scan

import (
	"context"
	"testing"

	"shrike/internal/domain"
)

// nullStore knows no entities; every lookup reports not found.
type nullStore struct{}

func (nullStore) LookupEntity(_ context.Context, _ []byte) (*domain.Entity, error) {
	return nil, ErrEntityNotFound
}

func (nullStore) ListBlacklistRecords(_ context.Context, _ uint64) ([]domain.BlacklistRecord, error) {
	return nil, nil
}

func (nullStore) ListEvidence(_ context.Context, _ uint64, _ bool) ([]domain.Evidence, error) {
	return nil, nil
}

func (nullStore) ListAuditLogs(_ context.Context, _ uint64) ([]domain.AuditLog, error) {
	return nil, nil
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := New(nullStore{})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return engine
}

func TestScanFindsCandidatesOfEveryType(t *testing.T) {
	engine := newTestEngine(t)

	text := "report: https://evil.example.com/login from sender@example.org, " +
		"hosts 203.0.113.7 and 2001:db8::beef, also see badsite.net"

	candidates := engine.scan(text)

	found := make(map[EntityType][]string)
	for _, candidate := range candidates {
		found[candidate.Type] = append(found[candidate.Type], candidate.Value)
	}

	expected := map[EntityType]string{
		TypeURL:    "https://evil.example.com/login",
		TypeEmail:  "sender@example.org",
		TypeIPv4:   "203.0.113.7",
		TypeIPv6:   "2001:db8::beef",
		TypeDomain: "badsite.net",
	}

	for entityType, want := range expected {
		values := found[entityType]
		ok := false
		for _, value := range values {
			if value == want {
				ok = true
			}
		}
		if !ok {
			t.Errorf("scan() type %s: want candidate %q, got %v", entityType, want, values)
		}
	}
}

func TestScanCandidateSpansMatchInput(t *testing.T) {
	engine := newTestEngine(t)

	text := "mail admin@example.com or visit https://example.com and 10.0.0.1"
	for _, candidate := range engine.scan(text) {
		end := candidate.Start + candidate.Length
		if end > len(text) {
			t.Fatalf("candidate %+v exceeds input length %d", candidate, len(text))
		}
		if got := text[candidate.Start:end]; got != candidate.Value {
			t.Errorf("candidate value %q does not equal input slice %q", candidate.Value, got)
		}
	}
}

func TestScanEmptyInput(t *testing.T) {
	engine := newTestEngine(t)

	if candidates := engine.scan(""); len(candidates) != 0 {
		t.Errorf("scan(\"\") = %v, want no candidates", candidates)
	}
}

func TestScanBinaryNoise(t *testing.T) {
	engine := newTestEngine(t)

	noise := string([]byte{0x00, 0xff, 0xfe, 0x01, '\n', 0x7f, 0x80, 0x00})
	// Absence of matches is the correct response, not an error.
	if candidates := engine.scan(noise); len(candidates) != 0 {
		t.Errorf("scan(binary noise) = %v, want no candidates", candidates)
	}
}

func TestScanDeterministic(t *testing.T) {
	engine := newTestEngine(t)

	text := "a@example.com https://example.com 192.0.2.1 b.example.org"
	first := engine.scan(text)
	second := engine.scan(text)

	if len(first) != len(second) {
		t.Fatalf("scan() candidate counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("candidate %d differs between runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}
