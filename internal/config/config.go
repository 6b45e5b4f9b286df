package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/mitchellh/go-homedir"
)

// DefaultBaseURL is the OpenWeather current-weather endpoint.
const DefaultBaseURL = "https://api.openweathermap.org/data/2.5/weather"

// Config holds all settings for the weather and median commands, populated
// from environment variables.
type Config struct {
	APIKey     string
	BaseURL    string
	APITimeout time.Duration

	CacheSize int
	CacheTTL  time.Duration

	FavouritesPath   string
	FavouritesMax    int
	FetchConcurrency int
	DotenvPath       string

	MetricsAddr     string
	ShutdownTimeout time.Duration

	// Optional observation publishing; disabled when KafkaBrokers is empty.
	KafkaBrokers []string
	KafkaTopic   string

	LogLevel  string
	LogFormat string
}

// Load reads configuration from environment variables, applying defaults where unset.
// The API key may be empty here; the weather command prompts for it.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	apiTimeout, err := parsePositiveDuration("OPENWEATHER_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}

	cacheTTL, err := parsePositiveDuration("WEATHER_CACHE_TTL", "5m")
	if err != nil {
		return nil, err
	}

	favouritesMax, err := parseIntInRange("FAVOURITES_MAX", 3, 1, 50)
	if err != nil {
		return nil, err
	}

	concurrency, err := parseIntInRange("FETCH_CONCURRENCY", 4, 1, 64)
	if err != nil {
		return nil, err
	}

	favPath, err := homedir.Expand(sharedcfg.EnvOrDefault("FAVOURITES_PATH", "./favourites.json"))
	if err != nil {
		return nil, fmt.Errorf("invalid FAVOURITES_PATH: %w", err)
	}

	cfg := &Config{
		APIKey:     strings.TrimSpace(os.Getenv("OPENWEATHER_API_KEY")),
		BaseURL:    sharedcfg.EnvOrDefault("OPENWEATHER_BASE_URL", DefaultBaseURL),
		APITimeout: apiTimeout,

		CacheSize: parseCacheSize(),
		CacheTTL:  cacheTTL,

		FavouritesPath:   favPath,
		FavouritesMax:    favouritesMax,
		FetchConcurrency: concurrency,
		DotenvPath:       sharedcfg.EnvOrDefault("DOTENV_PATH", ".env"),

		MetricsAddr:     os.Getenv("METRICS_ADDR"),
		ShutdownTimeout: shutdownTimeout,

		KafkaBrokers: sharedcfg.ParseBrokers(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:   sharedcfg.EnvOrDefault("KAFKA_TOPIC", "weather-observations"),

		LogLevel:  sharedcfg.EnvOrDefault("LOG_LEVEL", "warn"),
		LogFormat: sharedcfg.EnvOrDefault("LOG_FORMAT", "text"),
	}

	if cfg.BaseURL == "" {
		return nil, errors.New("OPENWEATHER_BASE_URL is required")
	}
	if len(cfg.KafkaBrokers) > 0 && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_TOPIC is required when KAFKA_BROKERS is set")
	}

	return cfg, nil
}

// PublishEnabled reports whether observations should be written to Kafka.
func (c *Config) PublishEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func parsePositiveDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseIntInRange(key string, def, lo, hi int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < lo || n > hi {
		return 0, fmt.Errorf("invalid %s: must be between %d and %d", key, lo, hi)
	}
	return n, nil
}

func parseCacheSize() int {
	if s := os.Getenv("WEATHER_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 100
}
