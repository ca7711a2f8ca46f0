package scan

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"shrike/internal/domain"
)

var (
	// ErrEntityNotFound is returned by a Store when no entity matches an
	// identity hash. The engine treats it as "unknown entity", not a failure.
	ErrEntityNotFound = errors.New("entity not found")

	// ErrStoreUnavailable is surfaced when every lookup of a scan failed.
	ErrStoreUnavailable = errors.New("entity store unavailable")
)

// Store is the persistence collaborator the correlator reads from. It is
// presumed backed by an indexed store keyed by entity ID and by the unique
// identity hash.
type Store interface {
	LookupEntity(ctx context.Context, hash []byte) (*domain.Entity, error)
	ListBlacklistRecords(ctx context.Context, entityID uint64) ([]domain.BlacklistRecord, error)
	ListEvidence(ctx context.Context, entityID uint64, includeConfidential bool) ([]domain.Evidence, error)
	ListAuditLogs(ctx context.Context, entityID uint64) ([]domain.AuditLog, error)
}

// correlate resolves each confirmed position against the registry. Lookups
// are independent and fan out concurrently; assembly preserves the offset
// order of the input regardless of completion order. A failed lookup degrades
// that one entity to a nil query result unless every lookup failed.
func (engine *Engine) correlate(ctx context.Context, positions []NamedEntityPosition, includeConfidential bool) ([]NamedEntity, error) {
	results := make([]NamedEntity, len(positions))
	for i, position := range positions {
		results[i] = NamedEntity{Position: position}
	}

	var failed atomic.Int64

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(engine.lookupWorkers)

	for i, position := range positions {
		group.Go(func() error {
			queryResult, err := engine.lookup(groupCtx, position, includeConfidential)
			if err != nil {
				if errors.Is(err, ErrEntityNotFound) {
					return nil
				}
				log.Warn("entity lookup failed, returning partial result",
					"type", position.Type.String(), "value", position.Value, "error", err)
				failed.Add(1)
				return nil
			}
			results[i].QueryResult = queryResult
			return nil
		})
	}

	// Workers never return errors; Wait only synchronizes.
	_ = group.Wait()

	if n := failed.Load(); n > 0 && n == int64(len(positions)) {
		return nil, ErrStoreUnavailable
	}

	return results, nil
}

func (engine *Engine) lookup(ctx context.Context, position NamedEntityPosition, includeConfidential bool) (*EntityQueryResult, error) {
	host, localID := identityParts(position)
	hash := domain.IdentityHash(host, localID)

	entity, err := engine.store.LookupEntity(ctx, hash)
	if err != nil {
		return nil, err
	}

	records, err := engine.store.ListBlacklistRecords(ctx, entity.ID)
	if err != nil {
		return nil, err
	}

	evidence, err := engine.store.ListEvidence(ctx, entity.ID, includeConfidential)
	if err != nil {
		return nil, err
	}

	auditLogs, err := engine.store.ListAuditLogs(ctx, entity.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	statuses := make([]BlacklistStatus, 0, len(records))
	blacklisted := false
	for _, record := range records {
		active := record.IsActive(now)
		blacklisted = blacklisted || active
		statuses = append(statuses, BlacklistStatus{BlacklistRecord: record, Active: active})
	}

	return &EntityQueryResult{
		Entity:           *entity,
		IsBlacklisted:    blacklisted,
		BlacklistRecords: statuses,
		EvidenceRecords:  evidence,
		AuditLogs:        auditLogs,
	}, nil
}

// identityParts derives the (host, local id) pair the identity hash is built
// from. Emails split into host and local part; URLs correlate by their host
// component alone, so a URL shares its registry entry with the bare domain.
func identityParts(position NamedEntityPosition) (host, localID string) {
	switch position.Type {
	case TypeEmail:
		at := strings.LastIndex(position.Value, "@")
		if at < 0 {
			return position.Value, ""
		}
		return position.Value[at+1:], position.Value[:at]
	case TypeURL:
		if u, err := url.Parse(position.Value); err == nil && u.Hostname() != "" {
			return u.Hostname(), ""
		}
		return position.Value, ""
	default:
		return position.Value, ""
	}
}
