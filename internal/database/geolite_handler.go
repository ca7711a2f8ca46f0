package database

import (
	"net"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/oschwald/geoip2-golang"
	"golang.org/x/sync/singleflight"

	"shrike/internal/support"
)

const GeoLiteCountryFileName = "GeoLite2-Country.mmdb"

var (
	geoMu       sync.RWMutex
	countryDB   *geoip2.Reader
	geoInitOnce sync.Once
	reloadGroup singleflight.Group
)

func GeoLiteDataDir() string {
	return support.GetEnv("GEOLITE_DATA_DIR", "data")
}

func GeoLiteFilePath(filename string) string {
	return filepath.Join(GeoLiteDataDir(), filename)
}

func EnsureGeoLiteDataDir() error {
	return os.MkdirAll(GeoLiteDataDir(), 0o755)
}

func initGeoLite() {
	geoInitOnce.Do(func() {
		if err := openGeoLite(); err != nil {
			log.Warn("GeoLite country database unavailable, IP entities will not be geo-enriched", "error", err)
		}
	})
}

func openGeoLite() error {
	data, err := os.ReadFile(GeoLiteFilePath(GeoLiteCountryFileName))
	if err != nil {
		return err
	}

	reader, err := geoip2.FromBytes(data)
	if err != nil {
		return err
	}

	geoMu.Lock()
	if countryDB != nil {
		_ = countryDB.Close()
	}
	countryDB = reader
	geoMu.Unlock()
	return nil
}

// ReloadGeoLiteFromDisk re-opens the country database, e.g. after an on-disk
// update. Concurrent callers share a single reload.
func ReloadGeoLiteFromDisk() error {
	_, err, _ := reloadGroup.Do("geolite-reload", func() (interface{}, error) {
		return nil, openGeoLite()
	})
	return err
}

func GeoLiteAvailable() bool {
	initGeoLite()
	geoMu.RLock()
	defer geoMu.RUnlock()
	return countryDB != nil
}

// GetCountryCode resolves an IP address to its ISO country code, or "" when
// the database is unavailable or the address is unknown.
func GetCountryCode(ipAddress string) string {
	initGeoLite()

	geoMu.RLock()
	reader := countryDB
	geoMu.RUnlock()
	if reader == nil {
		return ""
	}

	ip := net.ParseIP(ipAddress)
	if ip == nil {
		return ""
	}

	record, err := reader.Country(ip)
	if err != nil {
		return ""
	}

	return record.Country.IsoCode
}
