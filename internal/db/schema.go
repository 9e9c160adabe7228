package db

// postgresSchema creates the music_items table on PostgreSQL.
// It is idempotent using `CREATE TABLE IF NOT EXISTS`.
const postgresSchema = `
CREATE TABLE IF NOT EXISTS music_items (
	id          BIGSERIAL PRIMARY KEY,
	title       TEXT NOT NULL,
	artist      TEXT NOT NULL,
	album       TEXT NOT NULL,
	genre       TEXT NOT NULL DEFAULT 'unknown',
	spotify_url TEXT NOT NULL UNIQUE,
	saved_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// sqliteSchema is the SQLite equivalent of postgresSchema.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS music_items (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	title       TEXT NOT NULL,
	artist      TEXT NOT NULL,
	album       TEXT NOT NULL,
	genre       TEXT NOT NULL DEFAULT 'unknown',
	spotify_url TEXT NOT NULL UNIQUE,
	saved_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

const selectColumns = `id, title, artist, album, genre, spotify_url, saved_at`
