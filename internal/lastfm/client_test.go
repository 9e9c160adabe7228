package lastfm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func tagsResponse(tags ...Tag) topTagsResponse {
	var resp topTagsResponse
	resp.TopTags.Tag = tags
	return resp
}

// newTestClient returns a Client pointed at an httptest server running handler.
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return &Client{
		apiKey:     "test-api-key",
		httpClient: server.Client(),
		baseURL:    server.URL + "/",
		cache:      make(map[string][]Tag),
	}
}

func TestGetTags(t *testing.T) {
	tests := []struct {
		name           string
		trackResponse  any
		artistResponse any
		wantTags       []Tag
		wantErr        error
	}{
		{
			name: "track has tags",
			trackResponse: tagsResponse(
				Tag{Name: "alternative", Count: 100, URL: "http://last.fm/tag/alternative"},
				Tag{Name: "rock", Count: 80, URL: "http://last.fm/tag/rock"},
			),
			wantTags: []Tag{
				{Name: "alternative", Count: 100, URL: "http://last.fm/tag/alternative"},
				{Name: "rock", Count: 80, URL: "http://last.fm/tag/rock"},
			},
		},
		{
			name:          "track empty falls back to artist",
			trackResponse: tagsResponse(),
			artistResponse: tagsResponse(
				Tag{Name: "pop", URL: "http://last.fm/tag/pop"},
				Tag{Name: "dance", URL: "http://last.fm/tag/dance"},
			),
			wantTags: []Tag{
				{Name: "pop", URL: "http://last.fm/tag/pop"},
				{Name: "dance", URL: "http://last.fm/tag/dance"},
			},
		},
		{
			name:           "both empty returns empty slice",
			trackResponse:  tagsResponse(),
			artistResponse: tagsResponse(),
			wantTags:       []Tag{},
		},
		{
			name:          "invalid API key",
			trackResponse: apiError{Error: 10, Message: "Invalid API key"},
			wantErr:       ErrInvalidAPIKey,
		},
		{
			name:          "rate limited is not retried",
			trackResponse: apiError{Error: 29, Message: "Rate limit exceeded"},
			wantErr:       ErrRateLimited,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				q := r.URL.Query()
				if q.Get("api_key") != "test-api-key" || q.Get("format") != "json" {
					t.Errorf("unexpected query: %s", r.URL.RawQuery)
				}

				var resp any
				switch q.Get("method") {
				case "track.getTopTags":
					resp = tt.trackResponse
				case "artist.getTopTags":
					if q.Has("track") {
						t.Errorf("artist lookup sent track parameter")
					}
					resp = tt.artistResponse
				default:
					t.Fatalf("unexpected method: %s", q.Get("method"))
				}

				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(resp)
			})

			tags, err := client.GetTags(context.Background(), "Some Artist", "Some Track")

			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("GetTags() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr == nil {
				if diff := cmp.Diff(tt.wantTags, tags); diff != "" {
					t.Errorf("GetTags() mismatch (-want +got):\n%s", diff)
				}
			}
		})
	}
}

func TestGetTags_Caching(t *testing.T) {
	var requestCount atomic.Int32

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requestCount.Add(1)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(tagsResponse(Tag{Name: "rock", Count: 100}))
	})

	for i := 0; i < 2; i++ {
		tags, err := client.GetTags(context.Background(), "Artist", "Track")
		if err != nil {
			t.Fatalf("GetTags() call %d error = %v", i+1, err)
		}
		if len(tags) != 1 {
			t.Fatalf("GetTags() call %d got %d tags, want 1", i+1, len(tags))
		}
	}

	if count := requestCount.Load(); count != 1 {
		t.Errorf("Expected 1 request, got %d", count)
	}
}

func TestGenres(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(tagsResponse(
			Tag{Name: "French House", Count: 100},
			Tag{Name: "  ", Count: 90},
			Tag{Name: "Electronic", Count: 80},
			Tag{Name: "Dance", Count: 70},
		))
	})

	tests := []struct {
		name  string
		limit int
		want  []string
	}{
		{"limit one", 1, []string{"french house"}},
		{"skips blank names", 2, []string{"french house", "electronic"}},
		{"limit above available", 10, []string{"french house", "electronic", "dance"}},
		{"zero limit", 0, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := client.Genres(context.Background(), "Daft Punk", "One More Time", tt.limit)
			if err != nil {
				t.Fatalf("Genres() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Genres() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDoRequest_HTTPError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	if _, err := client.GetTags(context.Background(), "Artist", "Track"); err == nil {
		t.Error("GetTags() error = nil, want error for 502 response")
	}
}

func TestNewClient(t *testing.T) {
	client := NewClient(&Config{APIKey: "test-key"})

	if client.apiKey != "test-key" {
		t.Errorf("NewClient() apiKey = %s, want test-key", client.apiKey)
	}
	if client.httpClient == nil {
		t.Error("NewClient() httpClient is nil")
	}
	if client.cache == nil {
		t.Error("NewClient() cache is nil")
	}
	if client.baseURL != baseURL {
		t.Errorf("NewClient() baseURL = %s, want %s", client.baseURL, baseURL)
	}
}
