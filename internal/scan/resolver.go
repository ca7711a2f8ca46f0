package scan

import "sort"

// resolveOverlaps selects a pairwise non-overlapping subset of the raw
// candidates, ordered by ascending start offset.
//
// Candidates are stable-sorted by start offset, then descending priority,
// then descending length, and accepted greedily when their span does not
// intersect any already-accepted span. This makes a URL suppress the DOMAIN
// and EMAIL matches contained in it, an EMAIL suppress the DOMAIN over its
// host portion, and the longer of two same-priority matches win. Candidates
// that merely touch at a boundary are both kept. Same-priority, same-span
// ties (IPv4 vs IPv6) fall back to discovery order via the sort stability.
func (engine *Engine) resolveOverlaps(candidates []MatchCandidate) []NamedEntityPosition {
	if len(candidates) == 0 {
		return nil
	}

	sorted := make([]MatchCandidate, len(candidates))
	copy(sorted, candidates)

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		pi := engine.registry[sorted[i].Type].priority
		pj := engine.registry[sorted[j].Type].priority
		if pi != pj {
			return pi > pj
		}
		return sorted[i].Length > sorted[j].Length
	})

	accepted := make([]NamedEntityPosition, 0, len(sorted))
	lastEnd := 0

	// Accepted spans are disjoint with ascending starts, so a candidate
	// overlaps one iff it starts before the furthest accepted end.
	for _, candidate := range sorted {
		if candidate.Start < lastEnd {
			continue
		}
		accepted = append(accepted, NamedEntityPosition{
			Type:   candidate.Type,
			Offset: candidate.Start,
			Length: candidate.Length,
			Value:  candidate.Value,
		})
		lastEnd = candidate.Start + candidate.Length
	}

	return accepted
}

// filterValid re-checks each accepted match with its type's strict validator.
// Failures are silently dropped; order is preserved.
func (engine *Engine) filterValid(positions []NamedEntityPosition) []NamedEntityPosition {
	confirmed := make([]NamedEntityPosition, 0, len(positions))
	for _, position := range positions {
		if engine.registry[position.Type].validate(position.Value) {
			confirmed = append(confirmed, position)
		}
	}
	return confirmed
}
