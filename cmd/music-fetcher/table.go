package main

import (
	"io"
	"os"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"github.com/justestif/music-fetcher/internal/db"
	"github.com/justestif/music-fetcher/internal/spotify"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// renderTable draws rounded box tables for terminals and plain ASCII otherwise.
func renderTable(headers []string, rows [][]string, aligns []columnAlignment, terminal bool) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	if terminal {
		tw.SetStyle(table.StyleRounded)
	} else {
		tw.SetStyle(table.StyleDefault)
	}

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

func renderTracks(tracks []spotify.Track, terminal bool) string {
	headers := []string{"#", "Track", "Artist", "Album", "URL"}
	aligns := []columnAlignment{alignRight}

	rows := make([][]string, 0, len(tracks))
	for i, t := range tracks {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			t.Name,
			t.PrimaryArtist(),
			t.Album.Name,
			t.URL(),
		})
	}
	return renderTable(headers, rows, aligns, terminal)
}

// renderSavedItems shows relative save times on a terminal and RFC 3339 timestamps
// when the output is piped.
func renderSavedItems(items []db.SavedItem, terminal bool) string {
	headers := []string{"ID", "Track", "Artist", "Album", "Genre", "URL", "Saved"}
	aligns := []columnAlignment{alignRight}

	rows := make([][]string, 0, len(items))
	for _, item := range items {
		saved := item.SavedAt.UTC().Format(time.RFC3339)
		if terminal {
			saved = humanize.Time(item.SavedAt)
		}
		rows = append(rows, []string{
			strconv.FormatInt(item.ID, 10),
			item.Title,
			item.Artist,
			item.Album,
			item.Genre,
			item.URL,
			saved,
		})
	}
	return renderTable(headers, rows, aligns, terminal)
}
