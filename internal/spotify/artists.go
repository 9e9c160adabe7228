package spotify

import (
	"context"
	"fmt"

	"github.com/zmb3/spotify/v2"
)

// maxArtistsPerRequest is the Spotify limit for the several-artists endpoint.
const maxArtistsPerRequest = 50

// ApplyArtistGenres fills Genres on tracks that have none with the genres of their
// primary artist. Updates tracks in-place. Tracks without artists are skipped.
func (c *Client) ApplyArtistGenres(ctx context.Context, tracks []Track) error {
	// Collect distinct primary artist IDs in first-seen order
	var ids []spotify.ID
	seen := make(map[string]bool)
	for _, t := range tracks {
		if len(t.Genres) > 0 || len(t.Artists) == 0 || t.Artists[0].ID == "" {
			continue
		}
		id := t.Artists[0].ID
		if !seen[id] {
			seen[id] = true
			ids = append(ids, spotify.ID(id))
		}
	}
	if len(ids) == 0 {
		return nil
	}

	genresByArtist := make(map[string][]string, len(ids))
	for i := 0; i < len(ids); i += maxArtistsPerRequest {
		end := min(i+maxArtistsPerRequest, len(ids))

		artists, err := c.api.GetArtists(ctx, ids[i:end]...)
		if err != nil {
			return fmt.Errorf("fetching artists (batch %d-%d): %w", i+1, end, err)
		}
		for _, a := range artists {
			if a == nil {
				continue
			}
			genresByArtist[a.ID.String()] = a.Genres
		}
	}

	for i := range tracks {
		if len(tracks[i].Genres) > 0 || len(tracks[i].Artists) == 0 {
			continue
		}
		if g := genresByArtist[tracks[i].Artists[0].ID]; len(g) > 0 {
			tracks[i].Genres = append([]string(nil), g...)
		}
	}
	return nil
}
