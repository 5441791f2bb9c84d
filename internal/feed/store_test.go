package feed_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"podium/internal/concert"
	"podium/internal/feed"
)

func sampleConcerts(t *testing.T) []concert.Concert {
	t.Helper()
	early := concert.Concert{
		Datetime: time.Date(2030, time.May, 10, 12, 0, 0, 0, time.UTC),
		URL:      "https://wigmore-hall.org.uk/whats-on/lunchtime",
		Venue:    "Wigmore Hall",
		Title:    "Lunchtime Recital",
		Subtitle: "Mitsuko Uchida",
		Performers: []concert.Performer{
			{Name: "Mitsuko Uchida", Instrument: "piano"},
		},
		Pieces: []concert.Piece{
			{Composer: "Franz Schubert", Title: "Piano Sonata in B flat major D960"},
		},
		MinPence: concert.Pence(1800),
		MaxPence: concert.Pence(4500),
		Under35:  true,
	}
	late := concert.Concert{
		Datetime:   time.Date(2030, time.July, 19, 18, 30, 0, 0, time.UTC),
		URL:        "https://www.bbc.co.uk/events/e55555",
		Venue:      "Royal Albert Hall",
		Title:      "Prom 1: First Night of the Proms",
		Performers: []concert.Performer{},
		Pieces:     []concert.Piece{},
		MinPence:   concert.Pence(800),
		MaxPence:   concert.Pence(6000),
		Prom:       true,
	}
	return []concert.Concert{
		concert.WithID(early),
		concert.WithID(late),
	}
}

func openStore(t *testing.T) *feed.Store {
	t.Helper()
	store, err := feed.Open(filepath.Join(t.TempDir(), "feed.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestReplaceAllRoundTrip(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	concerts := sampleConcerts(t)

	if err := store.ReplaceAll(ctx, "run-1", concerts); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}

	got, err := store.All(ctx)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if got[0].Title != "Lunchtime Recital" || got[1].Title != "Prom 1: First Night of the Proms" {
		t.Fatalf("unexpected order: %q then %q", got[0].Title, got[1].Title)
	}
	first := got[0]
	if !first.Datetime.Equal(concerts[0].Datetime) {
		t.Fatalf("datetime drift: %v != %v", first.Datetime, concerts[0].Datetime)
	}
	if first.MinPence == nil || *first.MinPence != 1800 || first.MaxPence == nil || *first.MaxPence != 4500 {
		t.Fatalf("price drift: %v/%v", first.MinPence, first.MaxPence)
	}
	if !first.Under35 || first.Prom {
		t.Fatalf("flag drift: %+v", first)
	}
	if len(first.Performers) != 1 || first.Performers[0].Instrument != "piano" {
		t.Fatalf("performer drift: %+v", first.Performers)
	}
	if len(first.Pieces) != 1 || first.Pieces[0].Composer != "Franz Schubert" {
		t.Fatalf("piece drift: %+v", first.Pieces)
	}
}

func TestReplaceAllReplacesPreviousRun(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	concerts := sampleConcerts(t)

	if err := store.ReplaceAll(ctx, "run-1", concerts); err != nil {
		t.Fatalf("first ReplaceAll: %v", err)
	}
	if err := store.ReplaceAll(ctx, "run-2", concerts[:1]); err != nil {
		t.Fatalf("second ReplaceAll: %v", err)
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected previous run replaced, got %d records", count)
	}

	_, runCount, ok, err := store.LastRun(ctx)
	if err != nil {
		t.Fatalf("LastRun: %v", err)
	}
	if !ok || runCount != 1 {
		t.Fatalf("expected last run with 1 record, got ok=%v count=%d", ok, runCount)
	}
}

func TestReplaceAllRejectsMissingID(t *testing.T) {
	store := openStore(t)
	err := store.ReplaceAll(context.Background(), "run-1", []concert.Concert{
		{Title: "Unidentified", Datetime: time.Now().UTC()},
	})
	if err == nil {
		t.Fatal("expected error for record without identifier")
	}
}

func TestLastRunEmptyDatabase(t *testing.T) {
	store := openStore(t)
	_, _, ok, err := store.LastRun(context.Background())
	if err != nil {
		t.Fatalf("LastRun: %v", err)
	}
	if ok {
		t.Fatal("expected no run recorded in fresh database")
	}
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feed.json")
	concerts := sampleConcerts(t)
	// Strip the empty slices down to nil to prove the export normalizes them.
	concerts[1].Performers = nil
	concerts[1].Pieces = nil

	if err := feed.WriteJSON(path, concerts); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if strings.Contains(string(raw), "null") {
		t.Fatalf("export contains null: %s", raw)
	}

	var decoded []concert.Concert
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal export: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("expected 2 records, got %d", len(decoded))
	}
	if decoded[0].ID == "" {
		t.Fatal("export lost identifiers")
	}
	if !strings.Contains(string(raw), `"isPromsEvent": true`) {
		t.Fatalf("expected proms flag in export: %s", raw)
	}
}
