// Package spotify provides a wrapper around the Spotify Web API catalog endpoints.
package spotify

import (
	"context"

	"github.com/zmb3/spotify/v2"
	"golang.org/x/oauth2"
)

// Client wraps the Spotify API client with convenience methods.
type Client struct {
	api *spotify.Client
}

// New creates a new Spotify client wrapper.
// The underlying client should already be authenticated.
func New(api *spotify.Client) *Client {
	return &Client{api: api}
}

// NewFromToken creates a client that sends the given bearer token on every request.
// The token is used as-is and never refreshed.
func NewFromToken(ctx context.Context, token *oauth2.Token, opts ...spotify.ClientOption) *Client {
	httpClient := oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))
	return New(spotify.New(httpClient, opts...))
}
