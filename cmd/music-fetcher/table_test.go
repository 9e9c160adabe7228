package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/justestif/music-fetcher/internal/db"
	"github.com/justestif/music-fetcher/internal/spotify"
)

func TestRenderTable_Empty(t *testing.T) {
	if got := renderTable(nil, [][]string{{"x"}}, nil, false); got != "" {
		t.Errorf("renderTable() with no headers = %q, want empty", got)
	}
}

func TestRenderTable_PadsShortRows(t *testing.T) {
	got := renderTable([]string{"A", "B"}, [][]string{{"only"}}, nil, false)
	lines := strings.Split(got, "\n")
	if len(lines) < 4 {
		t.Fatalf("renderTable() produced %d lines:\n%s", len(lines), got)
	}
	if !strings.Contains(got, "only") {
		t.Errorf("renderTable() missing cell:\n%s", got)
	}
}

func TestRenderTable_Style(t *testing.T) {
	headers := []string{"A"}
	rows := [][]string{{"x"}}

	if plain := renderTable(headers, rows, nil, false); strings.Contains(plain, "╭") {
		t.Errorf("non-terminal table uses box drawing:\n%s", plain)
	}
	if rounded := renderTable(headers, rows, nil, true); !strings.Contains(rounded, "╭") {
		t.Errorf("terminal table is not rounded:\n%s", rounded)
	}
}

func TestRenderTracks(t *testing.T) {
	tracks := []spotify.Track{
		{
			Name:         "One More Time",
			Artists:      []spotify.Artist{{Name: "Daft Punk"}, {Name: "Romanthony"}},
			Album:        spotify.Album{Name: "Discovery"},
			ExternalURLs: map[string]string{"spotify": "https://open.spotify.com/track/1"},
		},
		{
			Name:         "Untitled",
			ExternalURLs: map[string]string{"spotify": "https://open.spotify.com/track/2"},
		},
	}

	got := renderTracks(tracks, false)
	for _, want := range []string{"One More Time", "Daft Punk", "Discovery", "https://open.spotify.com/track/1", "Untitled"} {
		if !strings.Contains(got, want) {
			t.Errorf("renderTracks() missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Romanthony") {
		t.Errorf("renderTracks() lists secondary artist:\n%s", got)
	}
	if !strings.Contains(got, " 2 ") {
		t.Errorf("renderTracks() missing 1-based index 2:\n%s", got)
	}
}

func TestRenderSavedItems_Timestamps(t *testing.T) {
	saved := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	items := []db.SavedItem{{ID: 12, Title: "Get Lucky", Genre: "unknown", SavedAt: saved}}

	plain := renderSavedItems(items, false)
	if !strings.Contains(plain, "2026-03-04T05:06:07Z") {
		t.Errorf("non-terminal output missing RFC 3339 time:\n%s", plain)
	}

	items[0].SavedAt = time.Now().Add(-2 * time.Hour)
	if rel := renderSavedItems(items, true); !strings.Contains(rel, "2 hours ago") {
		t.Errorf("terminal output missing relative time:\n%s", rel)
	}
}

func TestIsTerminal_Buffer(t *testing.T) {
	if isTerminal(&bytes.Buffer{}) {
		t.Error("isTerminal(bytes.Buffer) = true, want false")
	}
}
