package db

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/justestif/music-fetcher/internal/config"
)

// PostgresStore runs statements over a single pgx connection.
type PostgresStore struct {
	conn *pgx.Conn
}

// ConnString builds a postgres:// URL from the database settings.
func ConnString(cfg config.Database) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.User, cfg.Password),
		Host:   net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:   "/" + cfg.Name,
	}
	return u.String()
}

// OpenPostgres opens one connection to PostgreSQL. The schema is assumed to exist;
// run EnsureSchema (the init-db command) to create it.
func OpenPostgres(ctx context.Context, cfg config.Database) (*PostgresStore, error) {
	connConfig, err := pgx.ParseConfig(ConnString(cfg))
	if err != nil {
		return nil, fmt.Errorf("parsing database URL: %w", err)
	}

	conn, err := pgx.ConnectConfig(ctx, connConfig)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}

	return &PostgresStore{conn: conn}, nil
}

// Close closes the connection.
func (s *PostgresStore) Close(ctx context.Context) error {
	return s.conn.Close(ctx)
}

// EnsureSchema creates the music_items table if needed.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.conn.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// FindByURL retrieves an item by its external URL.
func (s *PostgresStore) FindByURL(ctx context.Context, spotifyURL string) (*SavedItem, error) {
	query := `SELECT ` + selectColumns + ` FROM music_items WHERE spotify_url = $1`

	var item SavedItem
	err := s.conn.QueryRow(ctx, query, spotifyURL).Scan(
		&item.ID,
		&item.Title,
		&item.Artist,
		&item.Album,
		&item.Genre,
		&item.URL,
		&item.SavedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying item: %w", err)
	}
	return &item, nil
}

// Insert adds a new item.
func (s *PostgresStore) Insert(ctx context.Context, item *SavedItem) error {
	query := `
		INSERT INTO music_items (title, artist, album, genre, spotify_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, saved_at
	`
	err := s.conn.QueryRow(ctx, query,
		item.Title,
		item.Artist,
		item.Album,
		item.Genre,
		item.URL,
	).Scan(&item.ID, &item.SavedAt)
	if err != nil {
		return fmt.Errorf("inserting item: %w", err)
	}
	return nil
}

// List retrieves saved items, optionally filtered by genre substring.
func (s *PostgresStore) List(ctx context.Context, genre string) ([]SavedItem, error) {
	query := `SELECT ` + selectColumns + ` FROM music_items`
	var args []any
	if genre != "" {
		query += ` WHERE genre ILIKE $1`
		args = append(args, likePattern(genre))
	}

	rows, err := s.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying items: %w", err)
	}
	defer rows.Close()

	var items []SavedItem
	for rows.Next() {
		var item SavedItem
		if err := rows.Scan(
			&item.ID,
			&item.Title,
			&item.Artist,
			&item.Album,
			&item.Genre,
			&item.URL,
			&item.SavedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// URLByID retrieves the external URL of an item.
func (s *PostgresStore) URLByID(ctx context.Context, id int64) (string, error) {
	query := `SELECT spotify_url FROM music_items WHERE id = $1`

	var spotifyURL string
	err := s.conn.QueryRow(ctx, query, id).Scan(&spotifyURL)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("querying item url: %w", err)
	}
	return spotifyURL, nil
}
