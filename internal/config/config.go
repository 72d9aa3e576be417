package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/i474232898/aqi-explorer/internal/chart"
)

type AppConfig struct {
	Port string

	// DataCSVPath is the readings file loaded at startup and on every reload.
	DataCSVPath string

	// DatabaseURL, when set, makes Postgres the primary source; the CSV file
	// is still tried if it fails.
	DatabaseURL   string
	DatabaseTable string

	// Redis backs the derived-series cache when RedisAddr is set; otherwise
	// an in-memory cache is used.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// In-memory cache retention.
	CacheMaxEntries int           // 0 = unlimited
	CacheMaxAge     time.Duration // 0 = unlimited

	ReloadInterval     time.Duration
	LoadTimeout        time.Duration
	SessionIdleTimeout time.Duration

	Layout chart.Layout
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.Port = getenvDefault("PORT", "8080")
	cfg.DataCSVPath = getenvDefault("DATA_CSV_PATH", "pollution_2000_2023.csv")
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	cfg.DatabaseTable = getenvDefault("DATABASE_TABLE", "pollution")

	cfg.RedisAddr = os.Getenv("REDIS_ADDR")
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	cfg.RedisDB = getenvInt("REDIS_DB", 0)

	cfg.CacheMaxEntries = getenvInt("CACHE_MAX_ENTRIES", 256)

	var err error
	if cfg.CacheMaxAge, err = getenvDuration("CACHE_MAX_AGE", "10m"); err != nil {
		return nil, err
	}
	if cfg.ReloadInterval, err = getenvDuration("RELOAD_INTERVAL", "60m"); err != nil {
		return nil, err
	}
	if cfg.LoadTimeout, err = getenvDuration("LOAD_TIMEOUT", "30s"); err != nil {
		return nil, err
	}
	if cfg.SessionIdleTimeout, err = getenvDuration("SESSION_IDLE_TIMEOUT", "30m"); err != nil {
		return nil, err
	}

	def := chart.DefaultLayout()
	cfg.Layout = chart.Layout{
		Width:          getenvFloat("CANVAS_WIDTH", def.Width),
		Height:         getenvFloat("CANVAS_HEIGHT", def.Height),
		Margin:         getenvFloat("CANVAS_MARGIN", def.Margin),
		HandleDiameter: getenvFloat("HANDLE_DIAMETER", def.HandleDiameter),
	}
	if _, err := cfg.Layout.NewController(); err != nil {
		return nil, fmt.Errorf("invalid canvas geometry: %w", err)
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
