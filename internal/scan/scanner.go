package scan

// scan runs every type's discovery pattern over the full text and returns the
// union of all per-type matches. Matches of the same type never overlap each
// other (regexp finds leftmost-longest disjoint occurrences); overlaps across
// types are expected and left for the resolver. The result is deterministic
// for identical input.
func (engine *Engine) scan(text string) []MatchCandidate {
	if text == "" {
		return nil
	}

	var candidates []MatchCandidate
	for _, entityType := range typeOrder {
		desc := engine.registry[entityType]
		for _, loc := range desc.pattern.FindAllStringIndex(text, -1) {
			candidates = append(candidates, MatchCandidate{
				Type:   entityType,
				Start:  loc[0],
				Length: loc[1] - loc[0],
				Value:  text[loc[0]:loc[1]],
			})
		}
	}

	return candidates
}
