package feed

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"podium/internal/concert"
)

// ExportJSON writes the feed as an indented JSON array. Nil performer and
// piece slices are written as empty arrays so consumers never see null.
func ExportJSON(w io.Writer, concerts []concert.Concert) error {
	out := make([]concert.Concert, len(concerts))
	for i, c := range concerts {
		if c.Performers == nil {
			c.Performers = []concert.Performer{}
		}
		if c.Pieces == nil {
			c.Pieces = []concert.Piece{}
		}
		out[i] = c
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode feed: %w", err)
	}
	return nil
}

// WriteJSON exports the feed to path, replacing any existing file atomically.
func WriteJSON(path string, concerts []concert.Concert) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".feed-*.json")
	if err != nil {
		return fmt.Errorf("create temp feed file: %w", err)
	}
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
	}()

	if err := ExportJSON(tmp, concerts); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp feed file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace feed file: %w", err)
	}
	return nil
}
