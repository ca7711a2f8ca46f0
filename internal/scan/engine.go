// Package scan implements the content scanning and entity correlation engine:
// it finds domain, URL, email and IP substrings in free text, arbitrates
// overlapping matches, validates the survivors and enriches them with the
// registry's blacklist, evidence and audit records.
package scan

import (
	"context"
	"errors"
)

const defaultLookupWorkers = 16

// Engine holds the immutable descriptor table and the store handle. It keeps
// no per-call state, so one Engine is safely shared across concurrent callers.
type Engine struct {
	store         Store
	registry      map[EntityType]descriptor
	lookupWorkers int
}

type Option func(*Engine)

// WithLookupWorkers bounds the number of concurrent registry lookups per scan.
func WithLookupWorkers(workers int) Option {
	return func(engine *Engine) {
		if workers > 0 {
			engine.lookupWorkers = workers
		}
	}
}

func New(store Store, opts ...Option) (*Engine, error) {
	if store == nil {
		return nil, errors.New("scan: store is required")
	}

	engine := &Engine{
		store:         store,
		registry:      defaultRegistry(),
		lookupWorkers: defaultLookupWorkers,
	}

	for _, opt := range opts {
		opt(engine)
	}

	if err := checkRegistry(engine.registry); err != nil {
		return nil, err
	}

	return engine, nil
}

// ScanContent identifies every entity-shaped substring in text, resolves
// overlaps, validates the survivors and correlates them against the registry.
// The result is ordered by ascending offset with pairwise non-overlapping
// spans. Empty input yields an empty list; per-candidate lookup failures are
// logged and degrade only that candidate unless every lookup fails.
func (engine *Engine) ScanContent(ctx context.Context, text string, includeConfidential bool) ([]NamedEntity, error) {
	candidates := engine.scan(text)
	positions := engine.filterValid(engine.resolveOverlaps(candidates))

	if len(positions) == 0 {
		return []NamedEntity{}, nil
	}

	return engine.correlate(ctx, positions, includeConfidential)
}
