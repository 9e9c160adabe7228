package library

import (
	"context"

	zspotify "github.com/zmb3/spotify/v2"

	"github.com/justestif/music-fetcher/internal/auth"
	"github.com/justestif/music-fetcher/internal/config"
	"github.com/justestif/music-fetcher/internal/spotify"
)

type searcherOptions struct {
	authOpts   []auth.Option
	clientOpts []zspotify.ClientOption
}

// SearcherOption configures the factory returned by NewSpotifySearcher.
type SearcherOption func(*searcherOptions)

// WithTokenURL overrides the token endpoint.
func WithTokenURL(u string) SearcherOption {
	return func(o *searcherOptions) {
		o.authOpts = append(o.authOpts, auth.WithTokenURL(u))
	}
}

// WithAPIBaseURL overrides the Web API base URL. It must end with a slash.
func WithAPIBaseURL(u string) SearcherOption {
	return func(o *searcherOptions) {
		o.clientOpts = append(o.clientOpts, zspotify.WithBaseURL(u))
	}
}

// NewSpotifySearcher returns a SearcherFactory that checks credentials, fetches a
// fresh token and wraps it in a catalog client. Missing credentials fail before any
// request is made.
func NewSpotifySearcher(cfg *config.Config, opts ...SearcherOption) SearcherFactory {
	var o searcherOptions
	for _, opt := range opts {
		opt(&o)
	}

	return func(ctx context.Context) (Searcher, error) {
		creds, err := cfg.Credentials()
		if err != nil {
			return nil, err
		}

		token, err := auth.NewTokenFetcher(creds, o.authOpts...).Token(ctx)
		if err != nil {
			return nil, err
		}

		return spotify.NewFromToken(ctx, token, o.clientOpts...), nil
	}
}
