package config

import (
	"log"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
)

// Config holds the non-secret server settings. Secrets (JWT_SECRET,
// DATABASE_URL, OAuth client credentials) are read from the environment
// where they are needed.
type Config struct {
	Port           string   `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	TokenTTLHours  int      `yaml:"token_ttl_hours"`
	RateLimit      struct {
		PerSecond float64 `yaml:"per_second"`
		Burst     int     `yaml:"burst"`
	} `yaml:"rate_limit"`
}

func defaults() *Config {
	cfg := &Config{
		Port:           "5000",
		AllowedOrigins: []string{"*"},
		TokenTTLHours:  24,
	}
	cfg.RateLimit.PerSecond = 5
	cfg.RateLimit.Burst = 10
	return cfg
}

// Load reads CONFIG_PATH (default config.yaml) if it exists and applies
// environment overrides on top. A missing file is not an error.
func Load() *Config {
	cfg := defaults()

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config.yaml"
	}
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			log.Fatal("Failed to parse config file: ", err)
		}
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Port = port
	}
	if origin := os.Getenv("FRONTEND_ORIGIN"); origin != "" {
		cfg.AllowedOrigins = strings.Split(origin, ",")
	}

	return cfg
}
