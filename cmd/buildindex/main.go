// NextPick - Movie and Book Recommendation API
// Copyright 2026 NextPick Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nextpick/nextpick

// Package main is the offline artifact builder. It reads the raw movie and
// book CSV datasets, computes the similarity matrices and the popular books
// table, and writes versioned artifacts for cmd/server to load.
//
// Usage:
//
//	buildindex -movies movies.csv -ratings ratings.csv -books books.csv -out ./data
//
// Each run writes the next version of every artifact; the server loads the
// latest version by default.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/nextpick/nextpick/internal/artifact"
	"github.com/nextpick/nextpick/internal/dataset"
	"github.com/nextpick/nextpick/internal/logging"
)

func main() {
	var (
		moviesPath  = flag.String("movies", "", "movies CSV (title,tmdb_id,tags)")
		ratingsPath = flag.String("ratings", "", "ratings CSV (user_id,title,rating)")
		booksPath   = flag.String("books", "", "books CSV (title,author,image_url)")
		outDir      = flag.String("out", "./data", "artifact output directory")
		logLevel    = flag.String("log-level", "info", "log level")

		minUserRatings    = flag.Int("min-user-ratings", 200, "minimum ratings per user to count as active")
		minBookRatings    = flag.Int("min-book-ratings", 50, "minimum active-user ratings per book")
		popularMinRatings = flag.Int("popular-min-ratings", 250, "minimum ratings for the popular table")
		popularLimit      = flag.Int("popular-limit", 100, "popular table size cap")
	)
	flag.Parse()

	logging.Init(logging.Config{Level: *logLevel, Format: "console"})

	if *moviesPath == "" || *ratingsPath == "" || *booksPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := dataset.BookPipelineConfig{
		MinUserRatings:    *minUserRatings,
		MinBookRatings:    *minBookRatings,
		PopularMinRatings: *popularMinRatings,
		PopularLimit:      *popularLimit,
	}

	if err := run(*moviesPath, *ratingsPath, *booksPath, *outDir, cfg); err != nil {
		logging.Fatal().Err(err).Msg("Build failed")
	}
}

func run(moviesPath, ratingsPath, booksPath, outDir string, cfg dataset.BookPipelineConfig) error {
	store, err := artifact.NewStore(outDir)
	if err != nil {
		return fmt.Errorf("open artifact store: %w", err)
	}
	ctx := context.Background()
	builtAt := time.Now().UTC()

	// Movie pipeline.
	start := time.Now()
	movieRecords, err := readFile(moviesPath, dataset.ReadMovies)
	if err != nil {
		return err
	}
	movieIndex, err := dataset.BuildMovieIndex(movieRecords)
	if err != nil {
		return fmt.Errorf("build movie index: %w", err)
	}
	if err := save(ctx, store, artifact.MovieIndexName, movieIndex, len(movieIndex.Titles), builtAt); err != nil {
		return err
	}
	logging.Info().
		Int("movies", len(movieIndex.Titles)).
		Dur("took", time.Since(start)).
		Msg("Movie index built")

	// Book pipeline.
	start = time.Now()
	ratings, err := readFile(ratingsPath, dataset.ReadRatings)
	if err != nil {
		return err
	}
	books, err := readFile(booksPath, dataset.ReadBooks)
	if err != nil {
		return err
	}

	bookIndex, err := dataset.BuildBookIndex(ratings, books, cfg)
	if err != nil {
		return fmt.Errorf("build book index: %w", err)
	}
	if err := save(ctx, store, artifact.BookIndexName, bookIndex, len(bookIndex.Titles), builtAt); err != nil {
		return err
	}

	popular, err := dataset.BuildPopularBooks(ratings, books, cfg)
	if err != nil {
		return fmt.Errorf("build popular books: %w", err)
	}
	if err := save(ctx, store, artifact.PopularBooksName, popular, len(popular.Books), builtAt); err != nil {
		return err
	}
	logging.Info().
		Int("books", len(bookIndex.Titles)).
		Int("popular", len(popular.Books)).
		Dur("took", time.Since(start)).
		Msg("Book artifacts built")

	return nil
}

// readFile opens path and parses it with the given reader function.
func readFile[T any](path string, read func(r io.Reader) (T, error)) (T, error) {
	var zero T
	f, err := os.Open(path) //nolint:gosec // paths come from CLI flags
	if err != nil {
		return zero, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	out, err := read(f)
	if err != nil {
		return zero, fmt.Errorf("parse %s: %w", path, err)
	}
	return out, nil
}

// save writes data as the next version of the named artifact.
func save(ctx context.Context, store *artifact.Store, name string, data interface{}, count int, builtAt time.Time) error {
	version, _ := store.LatestVersion(name)
	version++

	meta := artifact.Metadata{
		Name:       name,
		Version:    version,
		BuiltAt:    builtAt,
		EntryCount: count,
	}
	if err := store.Save(ctx, name, version, data, meta); err != nil {
		return fmt.Errorf("save %s v%d: %w", name, version, err)
	}

	logging.Info().Str("artifact", name).Int("version", version).Int("entries", count).Msg("Artifact written")
	return nil
}
