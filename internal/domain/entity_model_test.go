package domain

import (
	"bytes"
	"testing"
	"time"
)

func TestIdentityHashStable(t *testing.T) {
	first := IdentityHash("example.com", "admin")
	second := IdentityHash("example.com", "admin")

	if !bytes.Equal(first, second) {
		t.Error("IdentityHash() is not stable for identical input")
	}
	if len(first) != 32 {
		t.Errorf("IdentityHash() length = %d, want 32", len(first))
	}
}

func TestIdentityHashCaseInsensitive(t *testing.T) {
	lower := IdentityHash("example.com", "admin")
	mixed := IdentityHash("Example.COM", "Admin")

	if !bytes.Equal(lower, mixed) {
		t.Error("IdentityHash() differs for case variants of the same address")
	}
}

func TestIdentityHashDistinct(t *testing.T) {
	pairs := [][2]string{
		{"example.com", ""},
		{"example.com", "admin"},
		{"example.com", "contact"},
		{"example.org", ""},
		{"192.168.1.1", ""},
	}

	seen := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key := string(IdentityHash(pair[0], pair[1]))
		if other, ok := seen[key]; ok {
			t.Errorf("hash collision between (%s, %s) and %s", pair[0], pair[1], other)
		}
		seen[key] = pair[0] + "/" + pair[1]
	}
}

func TestEntityGenerateHashMatchesIdentityHash(t *testing.T) {
	entity := Entity{Host: "Example.com", LocalID: "Admin"}
	entity.GenerateHash()

	if !bytes.Equal(entity.Hash, IdentityHash("example.com", "admin")) {
		t.Error("Entity.GenerateHash() disagrees with IdentityHash()")
	}
}

func TestBlacklistRecordIsActive(t *testing.T) {
	now := time.Now().UTC()
	past := now.Add(-time.Minute)
	future := now.Add(time.Hour)

	testCases := []struct {
		name     string
		record   BlacklistRecord
		expected bool
	}{
		{"permanent", BlacklistRecord{Type: BlacklistTypeSpam}, true},
		{"future expiry", BlacklistRecord{Type: BlacklistTypeSpam, ExpiresAt: &future}, true},
		{"expired, not lifted", BlacklistRecord{Type: BlacklistTypeSpam, ExpiresAt: &past}, false},
		{"lifted", BlacklistRecord{Type: BlacklistTypeSpam, Lifted: true}, false},
		{"lifted with future expiry", BlacklistRecord{Type: BlacklistTypeSpam, ExpiresAt: &future, Lifted: true}, false},
	}

	for _, tc := range testCases {
		if got := tc.record.IsActive(now); got != tc.expected {
			t.Errorf("%s: IsActive() = %v, want %v", tc.name, got, tc.expected)
		}
	}
}

func TestIsValidBlacklistType(t *testing.T) {
	for _, tag := range BlacklistTypes {
		if !IsValidBlacklistType(tag) {
			t.Errorf("IsValidBlacklistType(%q) = false for a known tag", tag)
		}
	}
	if IsValidBlacklistType("BANANA") {
		t.Error("IsValidBlacklistType accepted an unknown tag")
	}
}
