package config

import (
	"testing"
	"time"
)

func TestCalculateMillisecondsOfTimerPeriod(t *testing.T) {
	timer := Timer{Days: 1, Hours: 2, Minutes: 3, Seconds: 4}
	want := uint64((24*60*60 + 2*60*60 + 3*60 + 4) * 1000)

	if got := CalculateMillisecondsOfTimerPeriod(timer); got != want {
		t.Fatalf("CalculateMillisecondsOfTimerPeriod returned %d, want %d", got, want)
	}
}

func TestCalculateBetweenTime(t *testing.T) {
	t.Run("enforces minimum interval", func(t *testing.T) {
		if got := CalculateBetweenTime(Timer{}); got != time.Second {
			t.Fatalf("CalculateBetweenTime returned %s, want 1s", got)
		}
	})

	t.Run("returns configured duration", func(t *testing.T) {
		if got := CalculateBetweenTime(Timer{Minutes: 1, Seconds: 30}); got != 90*time.Second {
			t.Fatalf("CalculateBetweenTime returned %s, want 1m30s", got)
		}
	})
}

func TestSetIntervals(t *testing.T) {
	origCfg := GetConfig()
	origRefresh := GetEntityGeoRefreshInterval()
	origGeoLite := GetGeoLiteUpdateInterval()
	origRefreshListeners := entityGeoRefreshListeners
	origGeoLiteListeners := geoLiteUpdateListeners

	t.Cleanup(func() {
		configValue.Store(origCfg)
		entityGeoRefreshInterval.Store(origRefresh)
		geoLiteUpdateInterval.Store(origGeoLite)
		entityGeoRefreshListeners = origRefreshListeners
		geoLiteUpdateListeners = origGeoLiteListeners
	})

	testCfg := Config{}
	testCfg.Runtime.EntityGeoRefreshTimer = Timer{Hours: 6}
	testCfg.GeoLite.UpdateTimer = Timer{Days: 2}

	configValue.Store(testCfg)
	entityGeoRefreshListeners = nil
	geoLiteUpdateListeners = nil

	SetIntervals()

	if got := GetEntityGeoRefreshInterval(); got != 6*time.Hour {
		t.Fatalf("GetEntityGeoRefreshInterval returned %s, want 6h", got)
	}
	if got := GetGeoLiteUpdateInterval(); got != 48*time.Hour {
		t.Fatalf("GetGeoLiteUpdateInterval returned %s, want 48h", got)
	}
}

func TestSetIntervalsZeroTimerFallsBack(t *testing.T) {
	origCfg := GetConfig()
	origRefresh := GetEntityGeoRefreshInterval()
	origListeners := entityGeoRefreshListeners

	t.Cleanup(func() {
		configValue.Store(origCfg)
		entityGeoRefreshInterval.Store(origRefresh)
		entityGeoRefreshListeners = origListeners
	})

	configValue.Store(Config{})
	entityGeoRefreshListeners = nil

	SetIntervals()

	if got := GetEntityGeoRefreshInterval(); got != defaultEntityGeoRefreshInterval {
		t.Fatalf("GetEntityGeoRefreshInterval returned %s, want %s", got, defaultEntityGeoRefreshInterval)
	}
}

func TestEntityGeoRefreshIntervalUpdates(t *testing.T) {
	origRefresh := GetEntityGeoRefreshInterval()
	origListeners := entityGeoRefreshListeners

	t.Cleanup(func() {
		entityGeoRefreshInterval.Store(origRefresh)
		entityGeoRefreshListeners = origListeners
	})

	entityGeoRefreshInterval.Store(time.Second)
	entityGeoRefreshListeners = nil

	ch := EntityGeoRefreshIntervalUpdates()
	first := <-ch
	if first != time.Second {
		t.Fatalf("initial update = %s, want 1s", first)
	}

	setEntityGeoRefreshInterval(5 * time.Second)

	select {
	case next := <-ch:
		if next != 5*time.Second {
			t.Fatalf("next update = %s, want 5s", next)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for interval update")
	}

	// Verify no duplicate notification when same interval is set.
	setEntityGeoRefreshInterval(5 * time.Second)
	select {
	case <-ch:
		t.Fatal("unexpected update when interval unchanged")
	case <-time.After(50 * time.Millisecond):
	}
}
