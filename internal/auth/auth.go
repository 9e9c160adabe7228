// Package auth obtains Spotify bearer tokens with the OAuth2 client-credentials grant.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/justestif/music-fetcher/internal/config"
)

// ErrAuthentication is returned when the token exchange fails for any reason.
var ErrAuthentication = errors.New("fetching access token")

// TokenFetcher exchanges client credentials for a short-lived bearer token.
// Tokens are neither cached nor refreshed; every call hits the token endpoint.
type TokenFetcher struct {
	cfg        clientcredentials.Config
	httpClient *http.Client
}

// Option configures a TokenFetcher.
type Option func(*TokenFetcher)

// WithTokenURL overrides the token endpoint.
func WithTokenURL(u string) Option {
	return func(f *TokenFetcher) {
		f.cfg.TokenURL = u
	}
}

// WithHTTPClient sets the HTTP client used for the token request.
func WithHTTPClient(c *http.Client) Option {
	return func(f *TokenFetcher) {
		f.httpClient = c
	}
}

// NewTokenFetcher creates a TokenFetcher for the given credentials.
func NewTokenFetcher(creds config.Credentials, opts ...Option) *TokenFetcher {
	f := &TokenFetcher{
		cfg: clientcredentials.Config{
			ClientID:     creds.ClientID,
			ClientSecret: creds.ClientSecret,
			TokenURL:     spotifyauth.TokenURL,
			// Spotify expects the client pair as HTTP Basic credentials.
			AuthStyle: oauth2.AuthStyleInHeader,
		},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Token performs the client-credentials grant and returns the issued token.
// Any transport or non-success response is wrapped in ErrAuthentication.
func (f *TokenFetcher) Token(ctx context.Context) (*oauth2.Token, error) {
	if f.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, f.httpClient)
	}

	token, err := f.cfg.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrAuthentication, upstreamMessage(err))
	}
	if token.AccessToken == "" {
		return nil, fmt.Errorf("%w: empty access token in response", ErrAuthentication)
	}
	return token, nil
}

// upstreamMessage extracts the provider's error description when one was returned.
func upstreamMessage(err error) string {
	var rerr *oauth2.RetrieveError
	if errors.As(err, &rerr) {
		switch {
		case rerr.ErrorDescription != "":
			return fmt.Sprintf("%s (%s)", rerr.ErrorDescription, rerr.ErrorCode)
		case rerr.ErrorCode != "":
			return rerr.ErrorCode
		case rerr.Response != nil:
			return rerr.Response.Status
		}
	}
	return err.Error()
}
