package spotify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/zmb3/spotify/v2"
)

const (
	// DefaultSearchType is used when no --type is given.
	DefaultSearchType = "track"
	// DefaultLimit is the number of results requested when no --limit is given.
	DefaultLimit = 10
	// MaxLimit is the largest page size the search endpoint accepts.
	MaxLimit = 50
)

var (
	// ErrEmptyQuery is returned when the search text is blank.
	ErrEmptyQuery = errors.New("search query is empty")

	// ErrInvalidLimit is returned when the limit is outside 1..MaxLimit.
	ErrInvalidLimit = errors.New("invalid result limit")

	// ErrUnsupportedType is returned for unknown search types or ones that exclude tracks.
	ErrUnsupportedType = errors.New("unsupported search type")
)

var searchTypes = map[string]spotify.SearchType{
	"album":    spotify.SearchTypeAlbum,
	"artist":   spotify.SearchTypeArtist,
	"playlist": spotify.SearchTypePlaylist,
	"track":    spotify.SearchTypeTrack,
	"show":     spotify.SearchTypeShow,
	"episode":  spotify.SearchTypeEpisode,
}

// SearchParams describes one catalog search.
type SearchParams struct {
	Query string
	Type  string // comma-separated provider types, must include "track"
	Genre string // optional, appended as a genre: filter
	Limit int
}

// Validate checks the parameters without touching the network.
func (p SearchParams) Validate() error {
	if strings.TrimSpace(p.Query) == "" {
		return ErrEmptyQuery
	}
	if p.Limit < 1 || p.Limit > MaxLimit {
		return fmt.Errorf("%w: %d (must be between 1 and %d)", ErrInvalidLimit, p.Limit, MaxLimit)
	}
	if _, err := ParseSearchType(p.Type); err != nil {
		return err
	}
	return nil
}

// QueryText returns the free-text query with the optional genre filter applied.
func (p SearchParams) QueryText() string {
	if p.Genre == "" {
		return p.Query
	}
	return p.Query + " genre:" + p.Genre
}

// ParseSearchType converts a comma-separated list such as "track,album" to a
// spotify.SearchType. Only track results are listed and cached, so the list
// must contain "track". An empty string means DefaultSearchType.
func ParseSearchType(s string) (spotify.SearchType, error) {
	if strings.TrimSpace(s) == "" {
		s = DefaultSearchType
	}

	var t spotify.SearchType
	hasTrack := false
	for _, part := range strings.Split(s, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		st, ok := searchTypes[name]
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrUnsupportedType, name)
		}
		if st == spotify.SearchTypeTrack {
			hasTrack = true
		}
		t |= st
	}
	if !hasTrack {
		return 0, fmt.Errorf("%w: %q does not return tracks", ErrUnsupportedType, s)
	}
	return t, nil
}

// SearchTracks runs a single search request and returns the track results in the
// order the provider ranked them.
func (c *Client) SearchTracks(ctx context.Context, p SearchParams) ([]Track, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	st, _ := ParseSearchType(p.Type)

	result, err := c.api.Search(ctx, p.QueryText(), st, spotify.Limit(p.Limit))
	if err != nil {
		return nil, fmt.Errorf("searching catalog: %w", err)
	}

	tracks := []Track{}
	if result.Tracks == nil {
		return tracks, nil
	}
	for _, ft := range result.Tracks.Tracks {
		tracks = append(tracks, convertTrack(ft))
	}
	return tracks, nil
}

// convertTrack converts a Spotify FullTrack to a cacheable Track.
func convertTrack(ft spotify.FullTrack) Track {
	artists := make([]Artist, len(ft.Artists))
	for i, a := range ft.Artists {
		artists[i] = Artist{
			ID:           a.ID.String(),
			Name:         a.Name,
			ExternalURLs: a.ExternalURLs,
		}
	}

	return Track{
		ID:      ft.ID.String(),
		Name:    ft.Name,
		Artists: artists,
		Album: Album{
			ID:          ft.Album.ID.String(),
			Name:        ft.Album.Name,
			ReleaseDate: ft.Album.ReleaseDate,
		},
		ExternalURLs: ft.ExternalURLs,
		DurationMs:   int(ft.Duration),
		Popularity:   int(ft.Popularity),
	}
}
