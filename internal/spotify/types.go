package spotify

// UnknownGenre is recorded for tracks the catalog supplied no genre for.
const UnknownGenre = "unknown"

// Track is a search result snapshot. Field names match the Spotify API so the
// result cache reads like the provider's own payload.
type Track struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Artists      []Artist          `json:"artists"`
	Album        Album             `json:"album"`
	ExternalURLs map[string]string `json:"external_urls"`
	DurationMs   int               `json:"duration_ms"`
	Popularity   int               `json:"popularity"`
	Genres       []string          `json:"genres,omitempty"`
}

// Artist is a credited artist on a track.
type Artist struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	ExternalURLs map[string]string `json:"external_urls,omitempty"`
}

// Album is the album a track appears on.
type Album struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ReleaseDate string `json:"release_date,omitempty"`
}

// URL returns the track's open.spotify.com link, which identifies a saved item.
func (t Track) URL() string {
	return t.ExternalURLs["spotify"]
}

// PrimaryArtist returns the first credited artist's name, or "" when there is none.
func (t Track) PrimaryArtist() string {
	if len(t.Artists) == 0 {
		return ""
	}
	return t.Artists[0].Name
}

// Genre returns the first known genre, or UnknownGenre.
func (t Track) Genre() string {
	if len(t.Genres) == 0 || t.Genres[0] == "" {
		return UnknownGenre
	}
	return t.Genres[0]
}
