// Package library implements the music-fetcher operations: searching the catalog,
// saving cached results, listing saved items and opening them for playback.
package library

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/pkg/browser"

	"github.com/justestif/music-fetcher/internal/cache"
	"github.com/justestif/music-fetcher/internal/db"
	"github.com/justestif/music-fetcher/internal/spotify"
)

// Common errors.
var (
	// ErrNoCachedTracks is returned by Save when no search results are cached.
	ErrNoCachedTracks = errors.New("no tracks available to save")

	// ErrTrackNotFound is returned by Save when the index is outside the cached results.
	ErrTrackNotFound = errors.New("track not found")
)

// maxTaggedGenres is how many Last.fm tags are kept per track.
const maxTaggedGenres = 3

// Searcher is the catalog client used by Search.
type Searcher interface {
	SearchTracks(ctx context.Context, p spotify.SearchParams) ([]spotify.Track, error)
	ApplyArtistGenres(ctx context.Context, tracks []spotify.Track) error
}

// SearcherFactory authenticates and returns a ready Searcher.
type SearcherFactory func(ctx context.Context) (Searcher, error)

// GenreTagger supplies genres for tracks the catalog left untagged.
type GenreTagger interface {
	Genres(ctx context.Context, artist, track string, limit int) ([]string, error)
}

// StoreOpener opens one store connection for the duration of an operation.
type StoreOpener func(ctx context.Context) (db.Store, error)

// URLOpener opens a URL in the operator's default handler.
type URLOpener func(url string) error

// Service runs music-fetcher operations.
type Service struct {
	newSearcher SearcherFactory
	cache       *cache.Cache
	openStore   StoreOpener
	tagger      GenreTagger
	openURL     URLOpener
	logger      *log.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithGenreTagger enables genre lookups for tracks without catalog genres.
func WithGenreTagger(t GenreTagger) Option {
	return func(s *Service) {
		s.tagger = t
	}
}

// WithURLOpener replaces the default browser launcher.
func WithURLOpener(fn URLOpener) Option {
	return func(s *Service) {
		s.openURL = fn
	}
}

// WithLogger sets the logger used for non-fatal problems and debug output.
func WithLogger(l *log.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// New creates a new library service.
func New(newSearcher SearcherFactory, c *cache.Cache, openStore StoreOpener, opts ...Option) *Service {
	s := &Service{
		newSearcher: newSearcher,
		cache:       c,
		openStore:   openStore,
		openURL:     browser.OpenURL,
		logger:      log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SearchResult contains the outcome of a search.
type SearchResult struct {
	Tracks []spotify.Track // Provider order; empty when nothing matched
}

// Search queries the catalog and replaces the result cache with the returned
// tracks, even when there are none. Cache write failures are logged, not returned.
func (s *Service) Search(ctx context.Context, p spotify.SearchParams) (*SearchResult, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	searcher, err := s.newSearcher(ctx)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("searching catalog", "q", p.QueryText(), "type", p.Type, "limit", p.Limit)
	tracks, err := searcher.SearchTracks(ctx, p)
	if err != nil {
		return nil, err
	}

	if len(tracks) > 0 {
		s.enrichGenres(ctx, searcher, tracks)
	}

	if err := s.cache.Save(tracks); err != nil {
		s.logger.Error("Error saving cached tracks", "err", err)
	} else {
		s.logger.Debug("cached search results", "path", s.cache.Path(), "tracks", len(tracks))
	}

	return &SearchResult{Tracks: tracks}, nil
}

// enrichGenres fills in genres from the primary artist and, when configured, the
// genre tagger. Failures only cost genre data, so they are logged as warnings.
func (s *Service) enrichGenres(ctx context.Context, searcher Searcher, tracks []spotify.Track) {
	if err := searcher.ApplyArtistGenres(ctx, tracks); err != nil {
		s.logger.Warn("Could not fetch artist genres", "err", err)
	}

	if s.tagger == nil {
		return
	}
	for i := range tracks {
		t := &tracks[i]
		if len(t.Genres) > 0 || t.PrimaryArtist() == "" {
			continue
		}
		genres, err := s.tagger.Genres(ctx, t.PrimaryArtist(), t.Name, maxTaggedGenres)
		if err != nil {
			// Stop after the first failure; the rest would most likely fail the same way.
			s.logger.Warn("Could not fetch genre tags", "err", err)
			return
		}
		if len(genres) > 0 {
			t.Genres = genres
		}
	}
}

// SaveResult contains the outcome of a save.
type SaveResult struct {
	Track        spotify.Track
	Item         db.SavedItem
	AlreadySaved bool // Item is the existing row; nothing was inserted
}

// Save persists the track at the 1-based index of the cached search results.
// The store is not contacted when the cache is empty or the index is out of range.
// Saving a track whose URL is already stored is a no-op reported via AlreadySaved.
func (s *Service) Save(ctx context.Context, index int) (*SaveResult, error) {
	tracks, err := s.cache.Load()
	if err != nil {
		s.logger.Error("Error loading cached tracks", "err", err)
	}
	if len(tracks) == 0 {
		return nil, ErrNoCachedTracks
	}
	if index < 1 || index > len(tracks) {
		return nil, fmt.Errorf("%w: index %d", ErrTrackNotFound, index)
	}

	track := tracks[index-1]
	if track.URL() == "" {
		return nil, fmt.Errorf("track %q has no external URL", track.Name)
	}

	store, err := s.openStore(ctx)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	defer s.closeStore(ctx, store)

	existing, err := store.FindByURL(ctx, track.URL())
	if err == nil {
		return &SaveResult{Track: track, Item: *existing, AlreadySaved: true}, nil
	}
	if !errors.Is(err, db.ErrNotFound) {
		return nil, fmt.Errorf("checking for saved track: %w", err)
	}

	item := db.SavedItem{
		Title:  track.Name,
		Artist: track.PrimaryArtist(),
		Album:  track.Album.Name,
		Genre:  track.Genre(),
		URL:    track.URL(),
	}
	if err := store.Insert(ctx, &item); err != nil {
		return nil, fmt.Errorf("saving track: %w", err)
	}

	s.logger.Debug("saved track", "id", item.ID, "url", item.URL)
	return &SaveResult{Track: track, Item: item}, nil
}

// ListSaved returns saved items whose genre contains genre (case-insensitive).
// An empty genre lists everything.
func (s *Service) ListSaved(ctx context.Context, genre string) ([]db.SavedItem, error) {
	store, err := s.openStore(ctx)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	defer s.closeStore(ctx, store)

	items, err := store.List(ctx, genre)
	if err != nil {
		return nil, fmt.Errorf("listing tracks: %w", err)
	}
	return items, nil
}

// PlayResult contains the outcome of a play request.
type PlayResult struct {
	URL     string
	OpenErr error // Non-nil if the URL could not be opened; the URL is still valid
}

// Play looks up the saved item with the given ID and opens its URL.
// Returns db.ErrNotFound if there is no such item. Failing to launch a browser is
// not an error; it is reported through PlayResult.OpenErr.
func (s *Service) Play(ctx context.Context, id int64) (*PlayResult, error) {
	url, err := s.lookupURL(ctx, id)
	if err != nil {
		return nil, err
	}

	return &PlayResult{URL: url, OpenErr: s.openURL(url)}, nil
}

// lookupURL fetches a saved item's URL with its own short-lived connection so the
// store is released before a browser is launched.
func (s *Service) lookupURL(ctx context.Context, id int64) (string, error) {
	store, err := s.openStore(ctx)
	if err != nil {
		return "", fmt.Errorf("connecting to database: %w", err)
	}
	defer s.closeStore(ctx, store)

	url, err := store.URLByID(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return "", fmt.Errorf("track with ID %d: %w", id, err)
		}
		return "", fmt.Errorf("looking up track: %w", err)
	}
	return url, nil
}

// InitDB creates the music_items table if it does not exist.
func (s *Service) InitDB(ctx context.Context) error {
	store, err := s.openStore(ctx)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer s.closeStore(ctx, store)

	return store.EnsureSchema(ctx)
}

func (s *Service) closeStore(ctx context.Context, store db.Store) {
	if err := store.Close(ctx); err != nil {
		s.logger.Warn("Error closing database connection", "err", err)
	}
}
