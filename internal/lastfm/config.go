// Package lastfm looks up Last.fm top tags to use as genres when the Spotify
// catalog has none for a track.
package lastfm

import (
	"errors"
)

// ErrMissingAPIKey is returned when no Last.fm API key is configured.
var ErrMissingAPIKey = errors.New("missing LASTFM_API_KEY environment variable")

// Config holds Last.fm API configuration.
type Config struct {
	APIKey string
}

// NewConfig validates apiKey and returns a Config.
// Returns ErrMissingAPIKey if apiKey is empty.
func NewConfig(apiKey string) (*Config, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	return &Config{APIKey: apiKey}, nil
}
