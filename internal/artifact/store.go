// NextPick - Movie and Book Recommendation API
// Copyright 2026 NextPick Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nextpick/nextpick

// Package artifact persists and loads the precomputed index artifacts the
// server depends on.
//
// Artifacts are gob-encoded, checksummed with SHA-256, gzip-compressed, and
// written as versioned files named {name}_v{version}.gob.gz. Load verifies
// the checksum before decoding; a mismatch means the file is corrupt and the
// load fails. The server treats any load failure as fatal at startup.
package artifact

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// Metadata describes a stored artifact.
type Metadata struct {
	// Name identifies the artifact (e.g. "movie_index").
	Name string `json:"name"`

	// Version is the artifact version (monotonically increasing).
	Version int `json:"version"`

	// BuiltAt is when the builder produced the artifact.
	BuiltAt time.Time `json:"built_at"`

	// SavedAt is when the artifact was written to disk.
	SavedAt time.Time `json:"saved_at"`

	// EntryCount is the number of catalog entries in the artifact.
	EntryCount int `json:"entry_count"`

	// Checksum is the SHA-256 checksum of the uncompressed payload.
	Checksum string `json:"checksum"`

	// SizeBytes is the compressed payload size in bytes.
	SizeBytes int64 `json:"size_bytes"`
}

// storedFile is the on-disk format for artifact files.
type storedFile struct {
	Metadata       Metadata
	CompressedData []byte
}

// Store manages artifact persistence in a single directory.
type Store struct {
	baseDir string
	mu      sync.RWMutex

	// latest version per artifact name
	versions map[string]int
}

// NewStore creates an artifact store at the given directory, creating it if
// needed, and scans for existing artifact files.
func NewStore(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0o750); err != nil { //nolint:gosec // 0750 is acceptable for artifact storage
		return nil, fmt.Errorf("create artifact directory: %w", err)
	}

	s := &Store{
		baseDir:  baseDir,
		versions: make(map[string]int),
	}

	if err := s.scan(); err != nil {
		return nil, fmt.Errorf("scan existing artifacts: %w", err)
	}

	return s, nil
}

// scan walks the storage directory and records the latest version per name.
func (s *Store) scan() error {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name, version, ok := parseArtifactFilename(entry.Name())
		if !ok {
			continue
		}
		if current, tracked := s.versions[name]; !tracked || version > current {
			s.versions[name] = version
		}
	}

	return nil
}

// parseArtifactFilename extracts name and version from a filename like
// "movie_index_v3.gob.gz".
func parseArtifactFilename(filename string) (name string, version int, ok bool) {
	base, found := strings.CutSuffix(filename, ".gob.gz")
	if !found {
		return "", 0, false
	}

	idx := strings.LastIndex(base, "_v")
	if idx < 1 {
		return "", 0, false
	}

	if _, err := fmt.Sscanf(base[idx+2:], "%d", &version); err != nil || version < 1 {
		return "", 0, false
	}

	return base[:idx], version, true
}

// Save encodes, checksums, compresses, and writes an artifact.
//
//nolint:gocritic // meta passed by value is acceptable for this write operation
func (s *Store) Save(ctx context.Context, name string, version int, data interface{}, meta Metadata) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(data); err != nil {
		return fmt.Errorf("encode artifact: %w", err)
	}
	rawData := buf.Bytes()

	hash := sha256.Sum256(rawData)
	meta.Checksum = hex.EncodeToString(hash[:])

	var compressed bytes.Buffer
	gzw := gzip.NewWriter(&compressed)
	if _, err := gzw.Write(rawData); err != nil {
		return fmt.Errorf("compress artifact: %w", err)
	}
	if err := gzw.Close(); err != nil {
		return fmt.Errorf("finalize compression: %w", err)
	}

	meta.SizeBytes = int64(compressed.Len())
	meta.SavedAt = time.Now()
	meta.Name = name
	meta.Version = version

	filename := s.artifactPath(name, version)
	f, err := os.Create(filename) //nolint:gosec // filename is constructed from trusted name parameter
	if err != nil {
		return fmt.Errorf("create artifact file: %w", err)
	}
	defer func() { _ = f.Close() }() //nolint:errcheck // close error after write is not actionable

	sf := storedFile{
		Metadata:       meta,
		CompressedData: compressed.Bytes(),
	}
	if err := gob.NewEncoder(f).Encode(sf); err != nil {
		return fmt.Errorf("write artifact file: %w", err)
	}

	if current, ok := s.versions[name]; !ok || version > current {
		s.versions[name] = version
	}

	return nil
}

// Load reads an artifact by name and version into target.
// Version 0 loads the latest stored version.
func (s *Store) Load(ctx context.Context, name string, version int, target interface{}) (*Metadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if version == 0 {
		var ok bool
		version, ok = s.versions[name]
		if !ok {
			return nil, fmt.Errorf("no artifact found for %s", name)
		}
	}

	filename := s.artifactPath(name, version)
	f, err := os.Open(filename) //nolint:gosec // filename is constructed from trusted name parameter
	if err != nil {
		return nil, fmt.Errorf("open artifact file: %w", err)
	}
	defer func() { _ = f.Close() }() //nolint:errcheck // close error after read is not actionable

	var sf storedFile
	if err := gob.NewDecoder(f).Decode(&sf); err != nil {
		return nil, fmt.Errorf("read artifact file: %w", err)
	}

	gzr, err := gzip.NewReader(bytes.NewReader(sf.CompressedData))
	if err != nil {
		return nil, fmt.Errorf("decompress artifact: %w", err)
	}
	defer func() { _ = gzr.Close() }() //nolint:errcheck // close error after read is not actionable

	rawData, err := io.ReadAll(gzr)
	if err != nil {
		return nil, fmt.Errorf("read decompressed data: %w", err)
	}

	hash := sha256.Sum256(rawData)
	if checksum := hex.EncodeToString(hash[:]); checksum != sf.Metadata.Checksum {
		return nil, fmt.Errorf("checksum mismatch for %s v%d: expected %s, got %s",
			name, version, sf.Metadata.Checksum, checksum)
	}

	if err := gob.NewDecoder(bytes.NewReader(rawData)).Decode(target); err != nil {
		return nil, fmt.Errorf("decode artifact: %w", err)
	}

	return &sf.Metadata, nil
}

// LatestVersion returns the latest stored version for an artifact name.
func (s *Store) LatestVersion(name string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	version, ok := s.versions[name]
	return version, ok
}

// List returns metadata for the latest version of every stored artifact.
func (s *Store) List(ctx context.Context) ([]Metadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var metas []Metadata
	for name, version := range s.versions {
		f, err := os.Open(s.artifactPath(name, version)) //nolint:gosec // path from tracked names
		if err != nil {
			continue
		}

		var sf storedFile
		err = gob.NewDecoder(f).Decode(&sf)
		_ = f.Close() //nolint:errcheck // close error after read is not actionable
		if err != nil {
			continue
		}

		metas = append(metas, sf.Metadata)
	}

	sort.Slice(metas, func(i, j int) bool { return metas[i].Name < metas[j].Name })
	return metas, nil
}

// Prune removes old versions of an artifact, keeping the latest keepVersions.
func (s *Store) Prune(ctx context.Context, name string, keepVersions int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if keepVersions < 1 {
		keepVersions = 1
	}

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return fmt.Errorf("read directory: %w", err)
	}

	var versions []int
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		entryName, v, ok := parseArtifactFilename(entry.Name())
		if !ok || entryName != name {
			continue
		}
		versions = append(versions, v)
	}

	sort.Sort(sort.Reverse(sort.IntSlice(versions)))

	for i := keepVersions; i < len(versions); i++ {
		_ = os.Remove(s.artifactPath(name, versions[i])) //nolint:errcheck // best-effort cleanup
	}

	return nil
}

// artifactPath returns the file path for an artifact version.
func (s *Store) artifactPath(name string, version int) string {
	return filepath.Join(s.baseDir, fmt.Sprintf("%s_v%d.gob.gz", name, version))
}
