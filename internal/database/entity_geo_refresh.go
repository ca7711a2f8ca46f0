package database

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"shrike/internal/domain"
)

const (
	entityGeoRefreshBatchSize   = 2000
	entityGeoRefreshUpdateChunk = 500
	entityGeoRefreshWorkerLimit = 16
)

var (
	ErrEntityGeoRefreshDatabaseNotInitialized = errors.New("entity geo refresh: database not initialized")
	ErrEntityGeoRefreshGeoLiteUnavailable     = errors.New("entity geo refresh: geolite database unavailable")
)

type entityGeoUpdate struct {
	ID      uint64 `gorm:"primaryKey"`
	Country string
}

func (entityGeoUpdate) TableName() string {
	return "entities"
}

// RunEntityGeoRefresh re-resolves the country of every IP-addressed entity.
// Hosts that are not IP literals are skipped. Returns how many entities were
// scanned and how many received a new country.
func RunEntityGeoRefresh(ctx context.Context, batchSize int) (int64, int64, error) {
	if DB == nil {
		return 0, 0, ErrEntityGeoRefreshDatabaseNotInitialized
	}
	if !GeoLiteAvailable() {
		return 0, 0, ErrEntityGeoRefreshGeoLiteUnavailable
	}

	if batchSize <= 0 {
		batchSize = entityGeoRefreshBatchSize
	}

	var (
		scanned int64
		updated int64
	)

	entities := make([]domain.Entity, 0, batchSize)

	result := DB.WithContext(ctx).
		Model(&domain.Entity{}).
		Select("id", "host", "country").
		FindInBatches(&entities, batchSize, func(tx *gorm.DB, batch int) error {
			if len(entities) == 0 {
				return nil
			}

			currentBatch := make([]domain.Entity, len(entities))
			copy(currentBatch, entities)

			updates, err := buildEntityGeoUpdates(ctx, currentBatch)
			scanned += int64(len(currentBatch))
			if err != nil {
				return err
			}
			if len(updates) == 0 {
				return nil
			}
			if err := applyEntityGeoUpdates(ctx, updates); err != nil {
				return err
			}
			updated += int64(len(updates))
			return nil
		})

	if result.Error != nil {
		return scanned, updated, result.Error
	}

	return scanned, updated, nil
}

func buildEntityGeoUpdates(ctx context.Context, entities []domain.Entity) ([]entityGeoUpdate, error) {
	if len(entities) == 0 {
		return nil, nil
	}

	updates := make([]entityGeoUpdate, 0, len(entities))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(entityGeoRefreshWorkerLimit)

	for _, entity := range entities {
		entity := entity
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			if net.ParseIP(entity.Host) == nil {
				return nil
			}

			country := GetCountryCode(entity.Host)
			if country == "" {
				country = "N/A"
			}

			if country == entity.Country {
				return nil
			}

			mu.Lock()
			updates = append(updates, entityGeoUpdate{
				ID:      entity.ID,
				Country: country,
			})
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return updates, nil
}

func applyEntityGeoUpdates(ctx context.Context, updates []entityGeoUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	for start := 0; start < len(updates); start += entityGeoRefreshUpdateChunk {
		end := start + entityGeoRefreshUpdateChunk
		if end > len(updates) {
			end = len(updates)
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		batch := updates[start:end]
		placeholders := make([]string, len(batch))
		args := make([]any, 0, len(batch)*2)

		for i, u := range batch {
			placeholders[i] = "(?::bigint, ?::text)"
			args = append(args, u.ID, u.Country)
		}

		query := fmt.Sprintf(
			`UPDATE entities AS e SET country = data.country `+
				`FROM (VALUES %s) AS data(id, country) WHERE e.id = data.id`,
			strings.Join(placeholders, ","),
		)

		if err := DB.WithContext(ctx).Exec(query, args...).Error; err != nil {
			return err
		}
	}

	return nil
}
