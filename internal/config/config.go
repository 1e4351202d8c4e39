// NextPick - Movie and Book Recommendation API
// Copyright 2026 NextPick Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nextpick/nextpick

// Package config provides layered configuration for NextPick using Koanf v2.
//
// Configuration is loaded from three sources with clear precedence:
// environment variables override an optional YAML config file, which
// overrides built-in defaults. The loaded Config is validated once and
// treated as immutable afterwards.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the root configuration for the NextPick server.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	API       APIConfig       `koanf:"api"`
	Artifacts ArtifactsConfig `koanf:"artifacts"`
	CORS      CORSConfig      `koanf:"cors"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
	TMDB      TMDBConfig      `koanf:"tmdb"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"`
}

// Addr returns the host:port listen address.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// APIConfig holds request handling settings.
type APIConfig struct {
	// DefaultCount is the recommendation count used when a request omits it.
	DefaultCount int `koanf:"default_count"`
	// MaxCount is the largest recommendation count a request may ask for.
	MaxCount int `koanf:"max_count"`
}

// ArtifactsConfig locates the precomputed index artifacts loaded at startup.
type ArtifactsConfig struct {
	// Dir is the directory containing the artifact files.
	Dir string `koanf:"dir"`
	// MovieIndexVersion selects the movie index version; 0 means latest.
	MovieIndexVersion int `koanf:"movie_index_version"`
	// BookIndexVersion selects the book index version; 0 means latest.
	BookIndexVersion int `koanf:"book_index_version"`
	// PopularBooksVersion selects the popular books version; 0 means latest.
	PopularBooksVersion int `koanf:"popular_books_version"`
}

// CORSConfig holds cross-origin settings for browser frontends.
type CORSConfig struct {
	Origins          []string `koanf:"origins"`
	AllowCredentials bool     `koanf:"allow_credentials"`
}

// RateLimitConfig holds per-IP request rate limiting settings.
type RateLimitConfig struct {
	Requests int           `koanf:"requests"`
	Window   time.Duration `koanf:"window"`
	Disabled bool          `koanf:"disabled"`
}

// TMDBConfig holds settings for the optional TMDB poster lookup client.
type TMDBConfig struct {
	Enabled      bool          `koanf:"enabled"`
	APIKey       string        `koanf:"api_key"`
	BaseURL      string        `koanf:"base_url"`
	ImageBaseURL string        `koanf:"image_base_url"`
	Timeout      time.Duration `koanf:"timeout"`
	CacheSize    int           `koanf:"cache_size"`
	CacheTTL     time.Duration `koanf:"cache_ttl"`
	// RatePerSecond caps outbound TMDB requests; Burst is the token bucket size.
	RatePerSecond float64 `koanf:"rate_per_second"`
	Burst         int     `koanf:"burst"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Validate checks the configuration for invalid or inconsistent values.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in [1, 65535], got %d", c.Server.Port)
	}

	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("logging.level %q is not a valid level", c.Logging.Level)
	}

	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}

	if c.Artifacts.Dir == "" {
		return fmt.Errorf("artifacts.dir must not be empty")
	}

	if c.API.MaxCount < 1 {
		return fmt.Errorf("api.max_count must be positive, got %d", c.API.MaxCount)
	}
	if c.API.DefaultCount < 1 || c.API.DefaultCount > c.API.MaxCount {
		return fmt.Errorf("api.default_count must be in [1, %d], got %d",
			c.API.MaxCount, c.API.DefaultCount)
	}

	if !c.RateLimit.Disabled {
		if c.RateLimit.Requests < 1 {
			return fmt.Errorf("rate_limit.requests must be positive, got %d", c.RateLimit.Requests)
		}
		if c.RateLimit.Window <= 0 {
			return fmt.Errorf("rate_limit.window must be positive, got %s", c.RateLimit.Window)
		}
	}

	if c.TMDB.Enabled {
		if c.TMDB.APIKey == "" {
			return fmt.Errorf("tmdb.api_key is required when tmdb.enabled is true")
		}
		if c.TMDB.Timeout <= 0 {
			return fmt.Errorf("tmdb.timeout must be positive, got %s", c.TMDB.Timeout)
		}
		if c.TMDB.RatePerSecond <= 0 {
			return fmt.Errorf("tmdb.rate_per_second must be positive, got %f", c.TMDB.RatePerSecond)
		}
	}

	return nil
}
