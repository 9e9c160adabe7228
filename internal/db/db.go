// Package db provides relational storage for saved music items.
//
// Two backends implement Store: PostgreSQL through pgx and SQLite through sqlx with
// the pure Go modernc driver. Both hold exactly one connection, opened per operation
// and closed when the operation ends.
package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/justestif/music-fetcher/internal/config"
)

// Common errors.
var (
	ErrNotFound = errors.New("not found")
)

// Store is the set of statements music-fetcher runs against the music_items table.
type Store interface {
	// FindByURL returns the item saved under url, or ErrNotFound.
	FindByURL(ctx context.Context, url string) (*SavedItem, error)
	// Insert adds item and fills in the store-assigned ID and SavedAt.
	Insert(ctx context.Context, item *SavedItem) error
	// List returns saved items whose genre contains genre, case-insensitively.
	// An empty genre returns every item. Rows come back in the store's natural order.
	List(ctx context.Context, genre string) ([]SavedItem, error)
	// URLByID returns the external URL of the item with the given ID, or ErrNotFound.
	URLByID(ctx context.Context, id int64) (string, error)
	// EnsureSchema creates the music_items table if it does not exist.
	EnsureSchema(ctx context.Context) error
	// Close releases the connection.
	Close(ctx context.Context) error
}

// Open connects to the configured backend.
func Open(ctx context.Context, cfg config.Database) (Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Driver {
	case config.DriverPostgres:
		s, err := OpenPostgres(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.DriverSQLite:
		s, err := OpenSQLite(ctx, cfg.Path)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownDriver, cfg.Driver)
	}
}

// likePattern wraps a genre filter for a substring match.
func likePattern(genre string) string {
	return "%" + genre + "%"
}
