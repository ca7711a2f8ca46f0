package scan

import "testing"

func TestResolveURLSuppressesContainedDomain(t *testing.T) {
	engine := newTestEngine(t)

	text := "see https://example.com/path now"
	positions := engine.resolveOverlaps(engine.scan(text))

	if len(positions) != 1 {
		t.Fatalf("resolveOverlaps() = %v, want exactly one match", positions)
	}
	if positions[0].Type != TypeURL {
		t.Errorf("kept match type = %s, want URL", positions[0].Type)
	}
	if positions[0].Value != "https://example.com/path" {
		t.Errorf("kept match value = %q", positions[0].Value)
	}
}

func TestResolveEmailSuppressesHostDomain(t *testing.T) {
	engine := newTestEngine(t)

	text := "write to contact@example.com please"
	positions := engine.resolveOverlaps(engine.scan(text))

	if len(positions) != 1 {
		t.Fatalf("resolveOverlaps() = %v, want exactly one match", positions)
	}
	if positions[0].Type != TypeEmail || positions[0].Value != "contact@example.com" {
		t.Errorf("kept match = %+v, want the EMAIL match", positions[0])
	}
}

func TestResolveKeepsTouchingSpans(t *testing.T) {
	engine := newTestEngine(t)

	// Spans [0,7) and [7,14) share a boundary but no character.
	candidates := []MatchCandidate{
		{Type: TypeIPv4, Start: 0, Length: 7, Value: "1.2.3.4"},
		{Type: TypeIPv4, Start: 7, Length: 7, Value: "5.6.7.8"},
	}

	positions := engine.resolveOverlaps(candidates)
	if len(positions) != 2 {
		t.Fatalf("resolveOverlaps() kept %d spans, want both touching spans", len(positions))
	}
}

func TestResolveLongerMatchWinsSamePriority(t *testing.T) {
	engine := newTestEngine(t)

	candidates := []MatchCandidate{
		{Type: TypeDomain, Start: 0, Length: 11, Value: "example.com"},
		{Type: TypeDomain, Start: 0, Length: 15, Value: "example.com.org"},
	}

	positions := engine.resolveOverlaps(candidates)
	if len(positions) != 1 {
		t.Fatalf("resolveOverlaps() = %v, want one match", positions)
	}
	if positions[0].Length != 15 {
		t.Errorf("kept match length = %d, want the longer match", positions[0].Length)
	}
}

// IPv4 and IPv6 share priority 3. For identical spans the stable sort keeps
// discovery order, and the scanner visits IPV4 before IPV6, so the IPv4
// candidate wins. The tie-break is deterministic by construction.
func TestResolveIPv4BeatsIPv6OnIdenticalSpan(t *testing.T) {
	engine := newTestEngine(t)

	candidates := []MatchCandidate{
		{Type: TypeIPv4, Start: 4, Length: 9, Value: "1.2.3.4.5"},
		{Type: TypeIPv6, Start: 4, Length: 9, Value: "1.2.3.4.5"},
	}

	positions := engine.resolveOverlaps(candidates)
	if len(positions) != 1 {
		t.Fatalf("resolveOverlaps() = %v, want one match", positions)
	}
	if positions[0].Type != TypeIPv4 {
		t.Errorf("kept match type = %s, want IPV4 by discovery order", positions[0].Type)
	}
}

func TestResolveOutputSortedAndDisjoint(t *testing.T) {
	engine := newTestEngine(t)

	text := "1.1.1.1 contact@example.com https://a.example.org/x b.example.net 8.8.8.8"
	positions := engine.resolveOverlaps(engine.scan(text))

	if len(positions) == 0 {
		t.Fatal("resolveOverlaps() returned no matches")
	}

	lastEnd := 0
	lastStart := -1
	for _, position := range positions {
		if position.Offset < lastStart {
			t.Errorf("positions not sorted by offset: %v", positions)
		}
		if position.Offset < lastEnd {
			t.Errorf("positions overlap: %v", positions)
		}
		lastStart = position.Offset
		lastEnd = position.Offset + position.Length
	}
}
