package library

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/justestif/music-fetcher/internal/auth"
	"github.com/justestif/music-fetcher/internal/cache"
	"github.com/justestif/music-fetcher/internal/config"
	"github.com/justestif/music-fetcher/internal/db"
	"github.com/justestif/music-fetcher/internal/spotify"
)

const catalogSearchResponse = `{
  "tracks": {
    "items": [
      {
        "id": "0DiWol3AO6WpXZgp0goxAV",
        "name": "One More Time",
        "artists": [{"id": "4tZwfgrHOc3mvqYlEYSvVi", "name": "Daft Punk"}],
        "album": {"id": "2noRn2Aes5aoNVsU6iWThc", "name": "Discovery"},
        "external_urls": {"spotify": "https://open.spotify.com/track/0DiWol3AO6WpXZgp0goxAV"}
      },
      {
        "id": "2Fxmhks0bxGSBdJ92vM42m",
        "name": "bad guy",
        "artists": [{"id": "6qqNVTkY8uBg9cP3Jd7DAH", "name": "Billie Eilish"}],
        "album": {"id": "0S0KGZnfBGSIssfF54WSJh", "name": "WHEN WE ALL FALL ASLEEP, WHERE DO WE GO?"},
        "external_urls": {"spotify": "https://open.spotify.com/track/2Fxmhks0bxGSBdJ92vM42m"}
      }
    ],
    "limit": 2,
    "offset": 0,
    "total": 2
  }
}`

const catalogArtistsResponse = `{
  "artists": [
    {"id": "4tZwfgrHOc3mvqYlEYSvVi", "name": "Daft Punk", "genres": ["french house", "electro"]},
    {"id": "6qqNVTkY8uBg9cP3Jd7DAH", "name": "Billie Eilish", "genres": []}
  ]
}`

// newCatalogServer serves the token, search and artists endpoints.
func newCatalogServer(t *testing.T, tokenRequests *atomic.Int32) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/token", func(w http.ResponseWriter, r *http.Request) {
		tokenRequests.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"test-token","token_type":"Bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/v1/search", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(catalogSearchResponse))
	})
	mux.HandleFunc("/v1/artists", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(catalogArtistsResponse))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestNewSpotifySearcher_MissingCredentials(t *testing.T) {
	var tokenRequests atomic.Int32
	server := newCatalogServer(t, &tokenRequests)

	factory := NewSpotifySearcher(&config.Config{}, WithTokenURL(server.URL+"/api/token"))
	if _, err := factory(context.Background()); !errors.Is(err, config.ErrMissingCredentials) {
		t.Errorf("factory() error = %v, want ErrMissingCredentials", err)
	}
	if n := tokenRequests.Load(); n != 0 {
		t.Errorf("token endpoint called %d times, want 0", n)
	}
}

func TestNewSpotifySearcher_AuthFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"invalid_client","error_description":"Invalid client"}`))
	}))
	t.Cleanup(server.Close)

	cfg := &config.Config{Spotify: config.Spotify{ClientID: "id", ClientSecret: "bad"}}
	factory := NewSpotifySearcher(cfg, WithTokenURL(server.URL))
	if _, err := factory(context.Background()); !errors.Is(err, auth.ErrAuthentication) {
		t.Errorf("factory() error = %v, want ErrAuthentication", err)
	}
}

// TestEndToEnd runs search, save, list-saved and play against a fake catalog and a
// real SQLite store.
func TestEndToEnd(t *testing.T) {
	ctx := context.Background()
	var tokenRequests atomic.Int32
	server := newCatalogServer(t, &tokenRequests)

	dir := t.TempDir()
	cfg := &config.Config{
		Spotify:   config.Spotify{ClientID: "id", ClientSecret: "secret"},
		Database:  config.Database{Driver: config.DriverSQLite, Path: filepath.Join(dir, "music.db")},
		CachePath: filepath.Join(dir, "last-fetched-tracks.json"),
	}

	var opened []string
	svc := New(
		NewSpotifySearcher(cfg, WithTokenURL(server.URL+"/api/token"), WithAPIBaseURL(server.URL+"/v1/")),
		cache.New(cfg.CachePath),
		func(ctx context.Context) (db.Store, error) { return db.Open(ctx, cfg.Database) },
		WithURLOpener(func(url string) error {
			opened = append(opened, url)
			return nil
		}),
		WithLogger(log.New(io.Discard)),
	)

	res, err := svc.Search(ctx, spotify.SearchParams{Query: "anything", Limit: 2})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(res.Tracks) != 2 {
		t.Fatalf("Search() returned %d tracks, want 2", len(res.Tracks))
	}
	if res.Tracks[0].Genre() != "french house" || res.Tracks[1].Genre() != spotify.UnknownGenre {
		t.Errorf("genres = %q, %q", res.Tracks[0].Genre(), res.Tracks[1].Genre())
	}

	// Search again: every search fetches a fresh token.
	if _, err := svc.Search(ctx, spotify.SearchParams{Query: "anything", Limit: 2}); err != nil {
		t.Fatalf("second Search() error = %v", err)
	}
	if n := tokenRequests.Load(); n != 2 {
		t.Errorf("token requests = %d, want 2", n)
	}

	first, err := svc.Save(ctx, 1)
	if err != nil {
		t.Fatalf("Save(1) error = %v", err)
	}
	if first.AlreadySaved || first.Item.ID == 0 {
		t.Errorf("Save(1) = %+v, want new item", first)
	}

	again, err := svc.Save(ctx, 1)
	if err != nil {
		t.Fatalf("second Save(1) error = %v", err)
	}
	if !again.AlreadySaved || again.Item.ID != first.Item.ID {
		t.Errorf("second Save(1) = %+v, want already saved with ID %d", again, first.Item.ID)
	}

	if _, err := svc.Save(ctx, 2); err != nil {
		t.Fatalf("Save(2) error = %v", err)
	}

	all, err := svc.ListSaved(ctx, "")
	if err != nil {
		t.Fatalf("ListSaved() error = %v", err)
	}
	if len(all) != 2 {
		t.Errorf("ListSaved() returned %d items, want 2", len(all))
	}

	house, err := svc.ListSaved(ctx, "HOUSE")
	if err != nil {
		t.Fatalf("ListSaved(HOUSE) error = %v", err)
	}
	if len(house) != 1 || house[0].Title != "One More Time" {
		t.Errorf("ListSaved(HOUSE) = %+v", house)
	}

	play, err := svc.Play(ctx, first.Item.ID)
	if err != nil {
		t.Fatalf("Play() error = %v", err)
	}
	if play.URL != "https://open.spotify.com/track/0DiWol3AO6WpXZgp0goxAV" {
		t.Errorf("Play() URL = %q", play.URL)
	}
	if len(opened) != 1 || opened[0] != play.URL {
		t.Errorf("opened = %v, want [%s]", opened, play.URL)
	}

	if _, err := svc.Play(ctx, 999); !errors.Is(err, db.ErrNotFound) {
		t.Errorf("Play(999) error = %v, want ErrNotFound", err)
	}
}
