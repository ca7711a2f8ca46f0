package bootstrap

import (
	"context"

	"github.com/charmbracelet/log"

	"shrike/internal/config"
	"shrike/internal/database"
	jobruntime "shrike/internal/jobs/runtime"
	"shrike/internal/scan"
)

// Setup initialises configuration, storage and the scan engine, and launches
// the background routines. A broken engine configuration is fatal: the
// registry must not come up half-scanning.
func Setup() *scan.Engine {
	config.ReadSettings()

	if _, err := database.SetupDB(); err != nil {
		log.Fatalf("failed to set up database: %v", err)
	}
	config.SetIntervals()

	cfg := config.GetConfig()
	engine, err := scan.New(database.RegistryStore{},
		scan.WithLookupWorkers(int(cfg.Scanner.LookupWorkers)))
	if err != nil {
		log.Fatalf("failed to construct scan engine: %v", err)
	}

	if database.GeoLiteAvailable() {
		log.Debug("GeoLite country database loaded")
	}

	// Routines
	go jobruntime.StartEntityGeoRefreshRoutine(context.Background())
	go jobruntime.StartGeoLiteUpdateRoutine(context.Background())

	return engine
}
