// Package cache persists the most recent search results as a single JSON snapshot.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/justestif/music-fetcher/internal/spotify"
)

// Cache handles persistent storage of the last fetched tracks.
// Every Save replaces the whole file; there is no history and no merging.
type Cache struct {
	path string
}

// New creates a Cache backed by the file at path.
func New(path string) *Cache {
	return &Cache{path: path}
}

// Path returns the file path where results are stored.
func (c *Cache) Path() string {
	return c.path
}

// Load reads the cached tracks from disk. It always returns a non-nil slice.
// A missing file yields an empty slice and a nil error. Any other read or parse
// failure yields an empty slice together with the error so the caller can report it.
func (c *Cache) Load() ([]spotify.Track, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []spotify.Track{}, nil
		}
		return []spotify.Track{}, fmt.Errorf("reading cached tracks: %w", err)
	}

	var tracks []spotify.Track
	if err := json.Unmarshal(data, &tracks); err != nil {
		return []spotify.Track{}, fmt.Errorf("parsing cached tracks: %w", err)
	}
	if tracks == nil {
		tracks = []spotify.Track{}
	}
	return tracks, nil
}

// Save overwrites the cache file with tracks, creating the parent directory if needed.
// A nil slice is written as an empty list.
func (c *Cache) Save(tracks []spotify.Track) error {
	if tracks == nil {
		tracks = []spotify.Track{}
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0700); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	data, err := json.MarshalIndent(tracks, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding cached tracks: %w", err)
	}

	if err := os.WriteFile(c.path, data, 0600); err != nil {
		return fmt.Errorf("writing cached tracks: %w", err)
	}
	return nil
}
