package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server  ServerConfig
	Worker  WorkerConfig
	Feeds   FeedsConfig
	Ingest  IngestConfig
	DB      DatabaseConfig
	Logging LoggingConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type WorkerConfig struct {
	Count      int
	BufferSize int
}

type FeedsConfig struct {
	FIRMSURL          string
	USGSURL           string
	GDACSURL          string
	OpenWeatherAPIKey string
	GeocodeURL        string
	GeocodeUserAgent  string
	OpenAQURL         string
	NASAPowerURL      string
	NOAAURL           string
	RequestTimeout    time.Duration
}

type IngestConfig struct {
	FireEnabled      bool
	FireInterval     time.Duration
	DisasterEnabled  bool
	DisasterInterval time.Duration
	RetryBackoff     time.Duration
	DedupWindow      int
}

type DatabaseConfig struct {
	Path string
}

type LoggingConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "localhost"),
			Port: getEnvInt("SERVER_PORT", 8080),
		},
		Worker: WorkerConfig{
			Count:      getEnvInt("WORKER_COUNT", 2),
			BufferSize: getEnvInt("WORKER_BUFFER_SIZE", 20),
		},
		Feeds: FeedsConfig{
			FIRMSURL:          getEnv("FIRMS_URL", "https://firms.modaps.eosdis.nasa.gov/data/active_fire/c6.1/csv/MODIS_C6_1_Global_24h.csv"),
			USGSURL:           getEnv("USGS_URL", "https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary/significant_month.geojson"),
			GDACSURL:          getEnv("GDACS_URL", "https://www.gdacs.org/xml/rss.xml"),
			OpenWeatherAPIKey: os.Getenv("OPENWEATHER_API_KEY"),
			GeocodeURL:        getEnv("GEOCODE_URL", "https://nominatim.openstreetmap.org/reverse"),
			GeocodeUserAgent:  getEnv("GEOCODE_USER_AGENT", "digital_earth"),
			OpenAQURL:         getEnv("OPENAQ_URL", "https://api.openaq.org/v2/latest"),
			NASAPowerURL:      getEnv("NASA_POWER_URL", "https://power.larc.nasa.gov/api/temporal/daily/point"),
			NOAAURL:           getEnv("NOAA_URL", "https://api.weather.gov/points"),
			RequestTimeout:    getEnvDuration("FEED_REQUEST_TIMEOUT", 10*time.Second),
		},
		Ingest: IngestConfig{
			FireEnabled:      getEnvBool("FIRE_INGEST_ENABLED", true),
			FireInterval:     getEnvDuration("FIRE_INGEST_INTERVAL", 6*time.Hour),
			DisasterEnabled:  getEnvBool("DISASTER_INGEST_ENABLED", true),
			DisasterInterval: getEnvDuration("DISASTER_INGEST_INTERVAL", 15*time.Minute),
			RetryBackoff:     getEnvDuration("INGEST_RETRY_BACKOFF", 5*time.Minute),
			DedupWindow:      getEnvInt("FIRE_DEDUP_WINDOW", 25),
		},
		DB: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/digital-earth.db"),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Feeds.OpenWeatherAPIKey == "" {
		return fmt.Errorf("OPENWEATHER_API_KEY is required but not set")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "text" {
		return fmt.Errorf("invalid log format: %s", c.Logging.Format)
	}

	if c.Ingest.DisasterInterval < time.Minute {
		return fmt.Errorf("disaster ingest interval must be at least 1 minute")
	}
	if c.Ingest.RetryBackoff < time.Minute {
		return fmt.Errorf("ingest retry backoff must be at least 1 minute")
	}
	if c.Ingest.DedupWindow < 1 {
		return fmt.Errorf("fire dedup window must be at least 1, got %d", c.Ingest.DedupWindow)
	}

	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}
