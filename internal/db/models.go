package db

import "time"

// SavedItem represents a track persisted by the save command.
type SavedItem struct {
	ID      int64     `db:"id"`
	Title   string    `db:"title"`
	Artist  string    `db:"artist"`
	Album   string    `db:"album"`
	Genre   string    `db:"genre"`
	URL     string    `db:"spotify_url"` // unique
	SavedAt time.Time `db:"saved_at"`
}
