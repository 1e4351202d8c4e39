// NextPick - Movie and Book Recommendation API
// Copyright 2026 NextPick Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nextpick/nextpick

// Package main is the entry point for the NextPick recommendation server.
//
// NextPick serves precomputed movie and book recommendations over a REST
// API. The server is read-only: all similarity data is built offline by
// cmd/buildindex and loaded from versioned artifacts at startup.
//
// # Startup Order
//
//  1. Configuration: layered defaults, optional YAML file, environment
//     variables (Koanf v2)
//  2. Logging: zerolog, JSON or console format
//  3. Artifacts: movie index, book index, popular books table - any missing
//     or corrupt artifact aborts startup before the listener opens
//  4. Recommenders: validated in-memory catalogs with similarity matrices
//  5. TMDB client: optional poster enrichment, disabled without an API key
//  6. HTTP server: chi router under a suture supervision tree
//
// # Signal Handling
//
// SIGINT and SIGTERM trigger graceful shutdown: the listener stops accepting
// connections and in-flight requests get a bounded drain window.
//
// # Example Usage
//
// Development with console logs:
//
//	export NEXTPICK_LOGGING_FORMAT=console
//	export NEXTPICK_ARTIFACTS_DIR=./data
//	./nextpick
//
// Production with poster enrichment:
//
//	export NEXTPICK_ARTIFACTS_DIR=/var/lib/nextpick
//	export NEXTPICK_TMDB_ENABLED=true
//	export NEXTPICK_TMDB_API_KEY=your-tmdb-api-key
//	./nextpick
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/nextpick/nextpick/internal/api"
	"github.com/nextpick/nextpick/internal/artifact"
	"github.com/nextpick/nextpick/internal/config"
	"github.com/nextpick/nextpick/internal/logging"
	"github.com/nextpick/nextpick/internal/metrics"
	"github.com/nextpick/nextpick/internal/recommend"
	"github.com/nextpick/nextpick/internal/supervisor"
	"github.com/nextpick/nextpick/internal/supervisor/services"
	"github.com/nextpick/nextpick/internal/tmdb"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("version", version).
		Str("artifacts_dir", cfg.Artifacts.Dir).
		Str("addr", cfg.Server.Addr()).
		Msg("Starting NextPick")

	movies, books, popular := loadArtifacts(cfg)

	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)
	metrics.CatalogEntries.WithLabelValues("movies").Set(float64(movies.Catalog().Size()))
	metrics.CatalogEntries.WithLabelValues("books").Set(float64(books.Catalog().Size()))
	metrics.CatalogEntries.WithLabelValues("popular_books").Set(float64(len(popular.Books)))

	var posters tmdb.PosterProvider = tmdb.NoopProvider{}
	if cfg.TMDB.Enabled {
		posters = tmdb.NewClient(&cfg.TMDB)
		logging.Info().
			Str("base_url", cfg.TMDB.BaseURL).
			Float64("rate_per_second", cfg.TMDB.RatePerSecond).
			Msg("TMDB poster enrichment enabled")
	} else {
		logging.Info().Msg("TMDB poster enrichment disabled, poster fields will be null")
	}

	handler := api.NewHandler(cfg, version, movies, books, popular.Books, posters)
	router := api.NewRouter(cfg, handler)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	treeCfg := supervisor.DefaultTreeConfig()
	treeCfg.ShutdownTimeout = cfg.Server.ShutdownTimeout
	tree := supervisor.NewTree(logging.NewSlogLogger(), treeCfg)
	tree.Add(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Str("addr", server.Addr).Msg("Serving")
	errCh := tree.ServeBackground(ctx)

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Stopped gracefully")
}

// loadArtifacts loads and validates all three artifacts. Any failure is
// fatal: the server must never start with a partial catalog.
func loadArtifacts(cfg *config.Config) (movies, books *recommend.Recommender, popular *artifact.PopularBooks) {
	store, err := artifact.NewStore(cfg.Artifacts.Dir)
	if err != nil {
		logging.Fatal().Err(err).Str("dir", cfg.Artifacts.Dir).Msg("Failed to open artifact store")
	}

	ctx := context.Background()

	var movieIndex artifact.MovieIndex
	movieMeta, err := store.Load(ctx, artifact.MovieIndexName, cfg.Artifacts.MovieIndexVersion, &movieIndex)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load movie index artifact")
	}
	movieCatalog, err := movieIndex.Catalog()
	if err != nil {
		logging.Fatal().Err(err).Msg("Movie index artifact is invalid")
	}

	var bookIndex artifact.BookIndex
	bookMeta, err := store.Load(ctx, artifact.BookIndexName, cfg.Artifacts.BookIndexVersion, &bookIndex)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load book index artifact")
	}
	bookCatalog, err := bookIndex.Catalog()
	if err != nil {
		logging.Fatal().Err(err).Msg("Book index artifact is invalid")
	}

	var popularBooks artifact.PopularBooks
	popularMeta, err := store.Load(ctx, artifact.PopularBooksName, cfg.Artifacts.PopularBooksVersion, &popularBooks)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load popular books artifact")
	}
	if err := popularBooks.Validate(); err != nil {
		logging.Fatal().Err(err).Msg("Popular books artifact is invalid")
	}

	metrics.ArtifactVersion.WithLabelValues(artifact.MovieIndexName).Set(float64(movieMeta.Version))
	metrics.ArtifactVersion.WithLabelValues(artifact.BookIndexName).Set(float64(bookMeta.Version))
	metrics.ArtifactVersion.WithLabelValues(artifact.PopularBooksName).Set(float64(popularMeta.Version))

	logging.Info().
		Int("movies", movieCatalog.Size()).
		Int("movie_index_version", movieMeta.Version).
		Int("books", bookCatalog.Size()).
		Int("book_index_version", bookMeta.Version).
		Int("popular_books", len(popularBooks.Books)).
		Msg("Artifacts loaded")

	return recommend.NewRecommender(movieCatalog), recommend.NewRecommender(bookCatalog), &popularBooks
}
