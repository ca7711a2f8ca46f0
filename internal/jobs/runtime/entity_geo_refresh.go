package runtime

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"shrike/internal/config"
	"shrike/internal/database"
	"shrike/internal/support"
)

const (
	entityGeoRefreshLockKey        = "shrike:leader:entity_geo_refresh"
	entityGeoRefreshFallbackTicker = 24 * time.Hour
)

// StartEntityGeoRefreshRoutine periodically re-resolves the country of every
// IP-addressed entity. Only the cluster leader runs the refresh.
func StartEntityGeoRefreshRoutine(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}

	var intervalValue atomic.Value
	initialInterval := config.GetEntityGeoRefreshInterval()
	if initialInterval <= 0 {
		initialInterval = entityGeoRefreshFallbackTicker
	}
	intervalValue.Store(initialInterval)

	updateSignal := make(chan struct{}, 1)
	updates := config.EntityGeoRefreshIntervalUpdates()

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case newInterval := <-updates:
				if newInterval <= 0 {
					newInterval = entityGeoRefreshFallbackTicker
				}
				intervalValue.Store(newInterval)
				select {
				case updateSignal <- struct{}{}:
				default:
				}
			}
		}
	}()

	err := support.RunWithLeader(ctx, entityGeoRefreshLockKey, support.DefaultLeadershipTTL, func(leaderCtx context.Context) {
		runEntityGeoRefreshLoop(leaderCtx, &intervalValue, updateSignal)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error("Entity geo refresh routine stopped", "error", err)
	}
}

func runEntityGeoRefreshLoop(ctx context.Context, intervalValue *atomic.Value, updateSignal <-chan struct{}) {
	currentInterval := intervalValue.Load().(time.Duration)
	if currentInterval <= 0 {
		currentInterval = entityGeoRefreshFallbackTicker
	}

	ticker := time.NewTicker(currentInterval)
	defer ticker.Stop()

	refreshOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			refreshOnce(ctx)
		case <-updateSignal:
			newInterval := intervalValue.Load().(time.Duration)
			if newInterval <= 0 {
				newInterval = entityGeoRefreshFallbackTicker
			}
			if newInterval == currentInterval {
				continue
			}
			drainTicker(ticker)
			currentInterval = newInterval
			ticker.Reset(currentInterval)
		}
	}
}

func drainTicker(ticker *time.Ticker) {
	for {
		select {
		case <-ticker.C:
		default:
			return
		}
	}
}

func refreshOnce(ctx context.Context) {
	start := time.Now()

	scanned, updated, err := database.RunEntityGeoRefresh(ctx, 0)
	if err != nil {
		switch {
		case errors.Is(err, database.ErrEntityGeoRefreshDatabaseNotInitialized):
			log.Warn("Entity geo refresh skipped: database not initialized")
		case errors.Is(err, database.ErrEntityGeoRefreshGeoLiteUnavailable):
			log.Warn("Entity geo refresh skipped: GeoLite database unavailable")
		case errors.Is(err, context.Canceled):
			log.Info("Entity geo refresh canceled", "duration", time.Since(start))
		default:
			log.Error("Entity geo refresh failed", "error", err)
		}
		return
	}

	log.Info("Entity geo refresh completed", "scanned", scanned, "updated", updated, "duration", time.Since(start))
}
