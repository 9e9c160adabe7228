package lastfm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-querystring/query"
)

const (
	baseURL   = "https://ws.audioscrobbler.com/2.0/"
	userAgent = "music-fetcher/1.0"
)

// Last.fm API error codes.
const (
	errCodeInvalidAPIKey = 10
	errCodeRateLimited   = 29
)

// Sentinel errors.
var (
	// ErrRateLimited is returned when the API rate limit is exceeded.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrInvalidAPIKey is returned when the API key is invalid.
	ErrInvalidAPIKey = errors.New("invalid API key")
)

// Client is a Last.fm API client. Lookups are memoised for the client's lifetime,
// which is a single command invocation.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string

	// key = "track:{artist}:{track}" or "artist:{artist}"
	cache map[string][]Tag
}

// NewClient creates a new Last.fm API client from the provided configuration.
func NewClient(cfg *Config) *Client {
	return &Client{
		apiKey: cfg.APIKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: baseURL,
		cache:   make(map[string][]Tag),
	}
}

// Genres returns up to limit lower-cased tag names for a track, falling back to the
// artist's tags when the track has none. Returns an empty slice when nothing is tagged.
func (c *Client) Genres(ctx context.Context, artist, track string, limit int) ([]string, error) {
	if limit <= 0 {
		return []string{}, nil
	}

	tags, err := c.GetTags(ctx, artist, track)
	if err != nil {
		return nil, err
	}

	genres := make([]string, 0, min(limit, len(tags)))
	for _, t := range tags {
		if len(genres) == limit {
			break
		}
		if name := strings.ToLower(strings.TrimSpace(t.Name)); name != "" {
			genres = append(genres, name)
		}
	}
	return genres, nil
}

// GetTags fetches tags for a track, falling back to artist tags if track has none.
// Returns an empty slice (not nil) if no tags are found.
func (c *Client) GetTags(ctx context.Context, artist, track string) ([]Tag, error) {
	tags, err := c.topTags(ctx, "track.getTopTags", artist, track)
	if err != nil {
		return nil, fmt.Errorf("fetching track tags: %w", err)
	}
	if len(tags) > 0 {
		return tags, nil
	}

	tags, err = c.topTags(ctx, "artist.getTopTags", artist, "")
	if err != nil {
		return nil, fmt.Errorf("fetching artist tags: %w", err)
	}
	return tags, nil
}

// topTags runs one getTopTags method, consulting the memo first.
func (c *Client) topTags(ctx context.Context, method, artist, track string) ([]Tag, error) {
	cacheKey := "artist:" + artist
	if track != "" {
		cacheKey = fmt.Sprintf("track:%s:%s", artist, track)
	}
	if cached, ok := c.cache[cacheKey]; ok {
		return cached, nil
	}

	params, err := query.Values(requestParams{
		Method:      method,
		Artist:      artist,
		Track:       track,
		Autocorrect: 1,
		Format:      "json",
		APIKey:      c.apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding parameters: %w", err)
	}

	body, err := c.doRequest(ctx, c.baseURL+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var resp topTagsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}

	tags := resp.TopTags.Tag
	if tags == nil {
		tags = []Tag{}
	}
	c.cache[cacheKey] = tags
	return tags, nil
}

// doRequest performs a single HTTP GET and maps Last.fm error payloads to errors.
func (c *Client) doRequest(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	var apiErr apiError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error != 0 {
		switch apiErr.Error {
		case errCodeRateLimited:
			return nil, ErrRateLimited
		case errCodeInvalidAPIKey:
			return nil, ErrInvalidAPIKey
		default:
			return nil, fmt.Errorf("API error %d: %s", apiErr.Error, apiErr.Message)
		}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	return body, nil
}
