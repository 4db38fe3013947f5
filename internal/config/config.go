package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the runtime configuration for the server and the ingestion
// loop, sourced from environment variables with local-development defaults.
type Config struct {
	ServerPort string

	// Scraping
	ScrapeInterval time.Duration // minimum spacing between cycle starts
	FetchTimeout   time.Duration // per-request timeout for one source
	CycleTimeout   time.Duration // upper bound on a whole ingestion cycle
	BrsAPIKey      string        // optional JSON gold source; empty disables it

	// Analytics
	RateTTL time.Duration // reference-rate cache lifetime
}

// New reads the configuration from the environment.
func New() *Config {
	return &Config{
		ServerPort:     getEnv("SERVER_PORT", "8050"),
		ScrapeInterval: getDuration("SCRAPE_INTERVAL", 15*time.Minute),
		FetchTimeout:   getDuration("FETCH_TIMEOUT", 20*time.Second),
		CycleTimeout:   getDuration("CYCLE_TIMEOUT", 2*time.Minute),
		BrsAPIKey:      os.Getenv("BRSAPI_KEY"),
		RateTTL:        getDuration("RATE_TTL", 5*time.Minute),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return d
	}
	// Plain integers are taken as minutes, matching the original deployment
	// which configured the interval as "15".
	if n, err := strconv.Atoi(raw); err == nil && n > 0 {
		return time.Duration(n) * time.Minute
	}
	return defaultValue
}
