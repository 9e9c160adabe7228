package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/justestif/music-fetcher/internal/config"
)

// SQLiteStore runs statements over a single-connection sqlx handle.
type SQLiteStore struct {
	db *sqlx.DB
}

// OpenSQLite opens the database file at path, creating it and the schema if needed.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, config.ErrEmptyPath
	}

	dataSource := path
	if !strings.Contains(path, ":memory:") {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
		dataSource = fmt.Sprintf("%s?_pragma=busy_timeout(5000)", path)
	}

	sqlDB, err := sql.Open("sqlite", dataSource)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("connecting to sqlite: %w", err)
	}

	// Wrap the standard library *sql.DB with sqlx.
	s := &SQLiteStore{db: sqlx.NewDb(sqlDB, "sqlite")}

	if err := s.EnsureSchema(ctx); err != nil {
		_ = s.db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the connection.
func (s *SQLiteStore) Close(_ context.Context) error {
	return s.db.Close()
}

// EnsureSchema creates the music_items table if needed.
func (s *SQLiteStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// FindByURL retrieves an item by its external URL.
func (s *SQLiteStore) FindByURL(ctx context.Context, spotifyURL string) (*SavedItem, error) {
	query := `SELECT ` + selectColumns + ` FROM music_items WHERE spotify_url = ?`

	var item SavedItem
	err := s.db.GetContext(ctx, &item, query, spotifyURL)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying item: %w", err)
	}
	return &item, nil
}

// Insert adds a new item. The row is read back so SavedAt carries the stored value.
func (s *SQLiteStore) Insert(ctx context.Context, item *SavedItem) error {
	query := `
		INSERT INTO music_items (title, artist, album, genre, spotify_url)
		VALUES (?, ?, ?, ?, ?)
	`
	result, err := s.db.ExecContext(ctx, query,
		item.Title,
		item.Artist,
		item.Album,
		item.Genre,
		item.URL,
	)
	if err != nil {
		return fmt.Errorf("inserting item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading inserted id: %w", err)
	}

	var stored SavedItem
	if err := s.db.GetContext(ctx, &stored, `SELECT `+selectColumns+` FROM music_items WHERE id = ?`, id); err != nil {
		return fmt.Errorf("reading inserted item: %w", err)
	}
	*item = stored
	return nil
}

// List retrieves saved items, optionally filtered by genre substring.
// SQLite's LIKE is case-insensitive for ASCII.
func (s *SQLiteStore) List(ctx context.Context, genre string) ([]SavedItem, error) {
	query := `SELECT ` + selectColumns + ` FROM music_items`
	var args []any
	if genre != "" {
		query += ` WHERE genre LIKE ?`
		args = append(args, likePattern(genre))
	}

	// Use sqlx to scan results into the provided slice.
	var items []SavedItem
	if err := s.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("querying items: %w", err)
	}
	return items, nil
}

// URLByID retrieves the external URL of an item.
func (s *SQLiteStore) URLByID(ctx context.Context, id int64) (string, error) {
	var spotifyURL string
	err := s.db.GetContext(ctx, &spotifyURL, `SELECT spotify_url FROM music_items WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("querying item url: %w", err)
	}
	return spotifyURL, nil
}
