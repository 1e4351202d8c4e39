// NextPick - Movie and Book Recommendation API
// Copyright 2026 NextPick Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nextpick/nextpick

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order
// of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/nextpick/config.yaml",
	"/etc/nextpick/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config with all default values. The CORS origins
// default to the local dev servers plus the deployed frontend.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8000,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			Environment:     "development",
		},
		API: APIConfig{
			DefaultCount: 5,
			MaxCount:     20,
		},
		Artifacts: ArtifactsConfig{
			Dir:                 "/data/artifacts",
			MovieIndexVersion:   0, // latest
			BookIndexVersion:    0,
			PopularBooksVersion: 0,
		},
		CORS: CORSConfig{
			Origins: []string{
				"http://localhost:5174",
				"http://localhost:5173",
				"http://localhost:3000",
				"https://next-pick.vercel.app",
			},
			AllowCredentials: true,
		},
		RateLimit: RateLimitConfig{
			Requests: 100,
			Window:   1 * time.Minute,
			Disabled: false,
		},
		TMDB: TMDBConfig{
			Enabled:       false, // opt-in, requires an API key
			APIKey:        "",
			BaseURL:       "https://api.themoviedb.org/3",
			ImageBaseURL:  "https://image.tmdb.org/t/p/w500",
			Timeout:       2 * time.Second,
			CacheSize:     2048,
			CacheTTL:      24 * time.Hour,
			RatePerSecond: 20,
			Burst:         40,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Load loads configuration using Koanf v2 with layered sources:
//  1. Defaults: built-in values
//  2. Config file: optional YAML file (if one exists)
//  3. Environment variables: override any setting
func Load() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: optional config file
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment variables (highest priority)
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Env vars arrive as strings; split known slice fields on commas.
	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices.
var sliceConfigPaths = []string{
	"cors.origins",
}

// processSliceFields converts comma-separated string values to slices for
// known slice fields.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		// Already a slice (from YAML or defaults): nothing to do.
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envPrefix is an optional namespace for environment variables. Both the
// prefixed and bare forms are accepted so NEXTPICK_TMDB_API_KEY and
// TMDB_API_KEY configure the same setting.
const envPrefix = "nextpick_"

// envTransformFunc maps environment variable names to koanf config paths.
// Unknown variables map to empty string and are skipped, so unrelated
// environment variables cannot pollute the configuration.
//
// Examples:
//   - HTTP_PORT -> server.port
//   - CORS_ORIGINS -> cors.origins
//   - NEXTPICK_TMDB_API_KEY -> tmdb.api_key
//   - NEXTPICK_LOGGING_FORMAT -> logging.format
func envTransformFunc(key string) string {
	envMappings := map[string]string{
		// Server
		"http_host":             "server.host",
		"http_port":             "server.port",
		"http_read_timeout":     "server.read_timeout",
		"http_write_timeout":    "server.write_timeout",
		"http_idle_timeout":     "server.idle_timeout",
		"http_shutdown_timeout": "server.shutdown_timeout",
		"environment":           "server.environment",

		// API
		"api_default_count": "api.default_count",
		"api_max_count":     "api.max_count",

		// Artifacts
		"artifacts_dir":         "artifacts.dir",
		"movie_index_version":   "artifacts.movie_index_version",
		"book_index_version":    "artifacts.book_index_version",
		"popular_books_version": "artifacts.popular_books_version",

		// CORS
		"cors_origins":           "cors.origins",
		"cors_allow_credentials": "cors.allow_credentials",

		// Rate limiting
		"rate_limit_requests": "rate_limit.requests",
		"rate_limit_window":   "rate_limit.window",
		"disable_rate_limit":  "rate_limit.disabled",

		// TMDB
		"tmdb_enabled":         "tmdb.enabled",
		"tmdb_api_key":         "tmdb.api_key",
		"tmdb_base_url":        "tmdb.base_url",
		"tmdb_image_base_url":  "tmdb.image_base_url",
		"tmdb_timeout":         "tmdb.timeout",
		"tmdb_cache_size":      "tmdb.cache_size",
		"tmdb_cache_ttl":       "tmdb.cache_ttl",
		"tmdb_rate_per_second": "tmdb.rate_per_second",
		"tmdb_burst":           "tmdb.burst",

		// Logging
		"log_level":      "logging.level",
		"log_format":     "logging.format",
		"log_caller":     "logging.caller",
		"logging_level":  "logging.level",
		"logging_format": "logging.format",
		"logging_caller": "logging.caller",
	}

	name := strings.TrimPrefix(strings.ToLower(key), envPrefix)
	if mapped, ok := envMappings[name]; ok {
		return mapped
	}
	return ""
}
