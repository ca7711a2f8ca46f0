package config

import (
	"sync"
	"sync/atomic"
	"time"
)

const (
	defaultEntityGeoRefreshInterval = 24 * time.Hour
	defaultGeoLiteUpdateInterval    = 24 * time.Hour
)

var (
	entityGeoRefreshInterval  atomic.Value
	entityGeoRefreshListeners []chan time.Duration
	geoLiteUpdateInterval     atomic.Value
	geoLiteUpdateListeners    []chan time.Duration
	listenersMu               sync.Mutex
)

func init() {
	entityGeoRefreshInterval.Store(defaultEntityGeoRefreshInterval)
	geoLiteUpdateInterval.Store(defaultGeoLiteUpdateInterval)
}

// SetIntervals recomputes the runtime intervals from the current configuration
// and notifies subscribed routines of changes.
func SetIntervals() {
	cfg := GetConfig()
	setEntityGeoRefreshInterval(calculateEntityGeoRefreshInterval(cfg))
	setGeoLiteUpdateInterval(calculateGeoLiteUpdateInterval(cfg))
}

func CalculateBetweenTime(timer Timer) time.Duration {
	intervalMs := CalculateMillisecondsOfTimerPeriod(timer)

	// Enforce minimum interval (e.g., 1 second)
	minInterval := uint64(1000)
	if intervalMs < minInterval {
		intervalMs = minInterval
	}

	return time.Duration(intervalMs) * time.Millisecond
}

func CalculateMillisecondsOfTimerPeriod(timer Timer) uint64 {
	return uint64(timer.Days)*24*60*60*1000 +
		uint64(timer.Hours)*60*60*1000 +
		uint64(timer.Minutes)*60*1000 +
		uint64(timer.Seconds)*1000
}

func GetEntityGeoRefreshInterval() time.Duration {
	return entityGeoRefreshInterval.Load().(time.Duration)
}

func EntityGeoRefreshIntervalUpdates() <-chan time.Duration {
	ch := make(chan time.Duration, 1)
	listenersMu.Lock()
	entityGeoRefreshListeners = append(entityGeoRefreshListeners, ch)
	listenersMu.Unlock()

	ch <- GetEntityGeoRefreshInterval()
	return ch
}

func setEntityGeoRefreshInterval(interval time.Duration) {
	if interval <= 0 {
		interval = defaultEntityGeoRefreshInterval
	}
	current := GetEntityGeoRefreshInterval()
	if current == interval {
		return
	}
	entityGeoRefreshInterval.Store(interval)

	listenersMu.Lock()
	defer listenersMu.Unlock()
	for _, ch := range entityGeoRefreshListeners {
		select {
		case ch <- interval:
		default:
		}
	}
}

func calculateEntityGeoRefreshInterval(cfg Config) time.Duration {
	timer := cfg.Runtime.EntityGeoRefreshTimer
	if timer.Days == 0 && timer.Hours == 0 && timer.Minutes == 0 && timer.Seconds == 0 {
		return defaultEntityGeoRefreshInterval
	}
	return CalculateBetweenTime(timer)
}

func GetGeoLiteUpdateInterval() time.Duration {
	return geoLiteUpdateInterval.Load().(time.Duration)
}

func GeoLiteUpdateIntervalUpdates() <-chan time.Duration {
	ch := make(chan time.Duration, 1)
	listenersMu.Lock()
	geoLiteUpdateListeners = append(geoLiteUpdateListeners, ch)
	listenersMu.Unlock()

	ch <- GetGeoLiteUpdateInterval()
	return ch
}

func setGeoLiteUpdateInterval(interval time.Duration) {
	if interval <= 0 {
		interval = defaultGeoLiteUpdateInterval
	}
	current := GetGeoLiteUpdateInterval()
	if current == interval {
		return
	}
	geoLiteUpdateInterval.Store(interval)

	listenersMu.Lock()
	defer listenersMu.Unlock()
	for _, ch := range geoLiteUpdateListeners {
		select {
		case ch <- interval:
		default:
		}
	}
}

func calculateGeoLiteUpdateInterval(cfg Config) time.Duration {
	timer := cfg.GeoLite.UpdateTimer
	if timer.Days == 0 && timer.Hours == 0 && timer.Minutes == 0 && timer.Seconds == 0 {
		return defaultGeoLiteUpdateInterval
	}
	return CalculateBetweenTime(timer)
}
