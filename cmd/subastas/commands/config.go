package commands

import (
	"errors"
	"fmt"
	"os"
	"time"

	"subastas-ingest/internal/geocoder"
	"subastas-ingest/internal/pipeline"
	"subastas-ingest/internal/scrapers/boe"
	"subastas-ingest/lib/configutil"
	"subastas-ingest/pkg/migrations"
)

const defaultConfigName = "subastas.json5"

type DatabaseConfig struct {
	// Driver is "sqlite" or "pgx".
	Driver string `json:"driver"`
	DSN    string `json:"dsn"`
}

type BoeConfig struct {
	BaseURL          string `json:"base_url"`
	Concurrency      int    `json:"concurrency"`
	TimeoutSeconds   int    `json:"timeout_seconds"`
	Retries          int    `json:"retries"`
	UserAgent        string `json:"user_agent"`
	BrowserTransport bool   `json:"browser_transport"`
}

type GeocoderConfig struct {
	Disabled          bool    `json:"disabled"`
	BaseURL           string  `json:"base_url"`
	Country           string  `json:"country"`
	RequestsPerSecond float64 `json:"requests_per_second"`
	CacheSize         int     `json:"cache_size"`
	CacheTTLMinutes   int     `json:"cache_ttl_minutes"`
}

type ExportConfig struct {
	Output   string `json:"output"`
	S3Bucket string `json:"s3_bucket"`
	S3Key    string `json:"s3_key"`
	S3Region string `json:"s3_region"`
}

// DaemonConfig holds cron specs in Europe/Madrid time, an empty spec disables
// that pass. The defaults are used only when every spec is empty.
type DaemonConfig struct {
	InitSpec   string `json:"init_spec"`
	UpdateSpec string `json:"update_spec"`
	EnrichSpec string `json:"enrich_spec"`
	ExportSpec string `json:"export_spec"`
}

type Config struct {
	Database DatabaseConfig `json:"database"`
	Boe      BoeConfig      `json:"boe"`
	Geocoder GeocoderConfig `json:"geocoder"`
	Export   ExportConfig   `json:"export"`
	Daemon   DaemonConfig   `json:"daemon"`
}

func (c Config) withDefaults() Config {
	if c.Database.Driver == "" {
		c.Database.Driver = migrations.DriverSqlite
	}
	if c.Database.DSN == "" && c.Database.Driver == migrations.DriverSqlite {
		c.Database.DSN = "data/subastas.db"
	}
	if c.Boe.BaseURL == "" {
		c.Boe.BaseURL = boe.DefaultBaseURL
	}
	if c.Boe.Concurrency <= 0 {
		c.Boe.Concurrency = pipeline.DefaultConcurrency
	}
	if c.Boe.TimeoutSeconds <= 0 {
		c.Boe.TimeoutSeconds = int(boe.DefaultTimeout / time.Second)
	}
	if c.Boe.Retries <= 0 {
		c.Boe.Retries = boe.DefaultAttempts - 1
	}
	if c.Geocoder.BaseURL == "" {
		c.Geocoder.BaseURL = geocoder.DefaultBaseURL
	}
	if c.Geocoder.Country == "" {
		c.Geocoder.Country = geocoder.DefaultCountry
	}
	if c.Daemon == (DaemonConfig{}) {
		c.Daemon = DaemonConfig{
			InitSpec:   "0 3 * * *",
			UpdateSpec: "15 */2 * * *",
			EnrichSpec: "30 4 * * *",
			ExportSpec: "45 * * * *",
		}
	}
	if c.Export.Output == "" {
		c.Export.Output = "data/snapshot.pb.zst"
	}
	if c.Export.S3Key == "" {
		c.Export.S3Key = "subastas/snapshot.pb.zst"
	}
	return c
}

func (c Config) boeOptions() boe.Options {
	return boe.Options{
		BaseURL:          c.Boe.BaseURL,
		UserAgent:        c.Boe.UserAgent,
		Timeout:          time.Duration(c.Boe.TimeoutSeconds) * time.Second,
		Attempts:         c.Boe.Retries + 1,
		BrowserTransport: c.Boe.BrowserTransport,
	}
}

func (c Config) geocoderOptions() geocoder.Options {
	return geocoder.Options{
		BaseURL:           c.Geocoder.BaseURL,
		Country:           c.Geocoder.Country,
		UserAgent:         c.Boe.UserAgent,
		RequestsPerSecond: c.Geocoder.RequestsPerSecond,
		CacheSize:         c.Geocoder.CacheSize,
		CacheTTL:          time.Duration(c.Geocoder.CacheTTLMinutes) * time.Minute,
	}
}

// loadConfig reads the config at path. The default name is searched for in
// parent directories and falls back to the defaults when there is none, any
// other path must exist.
func loadConfig(path string) (Config, error) {
	if path == defaultConfigName {
		cfg, err := configutil.ReadRecursively[Config](path)
		if errors.Is(err, os.ErrNotExist) {
			return Config{}.withDefaults(), nil
		}
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		return cfg.withDefaults(), nil
	}

	cfg, err := configutil.ReadConfig[Config](path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return cfg.withDefaults(), nil
}
