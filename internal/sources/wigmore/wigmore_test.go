package wigmore

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"podium/internal/concert"
	"podium/internal/fetch"
	"podium/internal/sources"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSplitOverride(t *testing.T) {
	tests := []struct {
		name          string
		override      string
		subtitle      string
		wantPerformer string
		wantTitle     string
	}{
		{
			name:          "subtitle present",
			override:      "Mitsuko Uchida",
			subtitle:      "Schubert Piano Sonatas",
			wantPerformer: "Mitsuko Uchida",
			wantTitle:     "Schubert Piano Sonatas",
		},
		{
			// Empty subtitle means the override text was the performer name
			// standing in as the title.
			name:      "subtitle absent",
			override:  "Castalian String Quartet",
			wantTitle: "Castalian String Quartet",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			performer, title := splitOverride(tc.override, tc.subtitle)
			if performer != tc.wantPerformer || title != tc.wantTitle {
				t.Fatalf("splitOverride(%q, %q) = (%q, %q), want (%q, %q)",
					tc.override, tc.subtitle, performer, title, tc.wantPerformer, tc.wantTitle)
			}
		})
	}
}

func TestParsePriceText(t *testing.T) {
	tests := []struct {
		name string
		text string
		min  *int
		max  *int
	}{
		{name: "single", text: "£15", min: concert.Pence(1500), max: concert.Pence(1500)},
		{name: "range", text: "£10 – £25", min: concert.Pence(1000), max: concert.Pence(2500)},
		{name: "free", text: "Free", min: concert.Pence(0), max: concert.Pence(0)},
		{name: "unknown", text: "Booking opens soon"},
		{name: "empty", text: ""},
		{name: "prose", text: "Tickets from £18, concessions £12, premium £45",
			min: concert.Pence(1200), max: concert.Pence(4500)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parsePriceText(tc.text)
			if err != nil {
				t.Fatalf("parsePriceText(%q): %v", tc.text, err)
			}
			assertBound(t, "min", got.Min, tc.min)
			assertBound(t, "max", got.Max, tc.max)
		})
	}
}

func assertBound(t *testing.T, label string, got, want *int) {
	t.Helper()
	switch {
	case want == nil && got != nil:
		t.Fatalf("%s: expected absent, got %d", label, *got)
	case want != nil && got == nil:
		t.Fatalf("%s: expected %d, got absent", label, *want)
	case want != nil && *got != *want:
		t.Fatalf("%s: got %d, want %d", label, *got, *want)
	}
}

func TestExtractPayloadMissingMarker(t *testing.T) {
	if _, err := extractPayload([]byte("<html><body>redesigned page</body></html>")); err == nil {
		t.Fatal("expected error for page without payload marker")
	}
}

const detailPage = `<!doctype html><html><head>` + payloadOpen + `
{
  "event": {
    "description": "An evening of Schubert.",
    "programmePdf": {"url": "https://example.org/programme.pdf"},
    "bookingInformation": "Tickets for Under 35s are available at £5.",
    "ticketText": "£18 – £40",
    "performers": [
      {"name": "Mitsuko Uchida", "instrument": "piano"},
      {"name": "Jonas Kaufmann", "instrument": ""}
    ],
    "programme": [
      {"composer": "Franz Schubert", "work": "Impromptu in G flat", "cycle": {"title": "", "composer": ""}},
      {"composer": "", "work": "Der Lindenbaum", "cycle": {"title": "Winterreise", "composer": "Franz Schubert"}}
    ]
  }
}
</script></head><body></body></html>`

func TestScanEndToEnd(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/api/v1/listings/whats-on", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("page") {
		case "1":
			fmt.Fprint(w, `{"totalPages": 2, "items": [
				{"node": {"date": "2030-06-01T19:30:00+01:00", "url": "/whats-on/uchida",
				 "titleOverrideText": "Mitsuko Uchida", "subtitleText": "Schubert Sonatas"}}
			]}`)
		case "2":
			fmt.Fprint(w, `{"totalPages": 2, "items": [
				{"node": {"date": "2030-06-02T13:00:00+01:00", "url": "/whats-on/broken",
				 "titleOverrideText": "Broken Entry", "subtitleText": ""}}
			]}`)
		default:
			http.NotFound(w, r)
		}
	})
	mux.HandleFunc("/whats-on/uchida", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, detailPage)
	})
	mux.HandleFunc("/whats-on/broken", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body>no payload here</body></html>")
	})

	client := fetch.NewClient(5*time.Second, "podium/test")
	adapter := New(client, server.URL, sources.Limits{DetailConcurrency: 4}, discardLogger())

	concerts, err := adapter.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(concerts) != 1 {
		t.Fatalf("expected 1 concert (broken entry dropped), got %d", len(concerts))
	}

	c := concerts[0]
	if c.Title != "Schubert Sonatas" {
		t.Fatalf("unexpected title %q", c.Title)
	}
	if c.Subtitle != "Mitsuko Uchida" {
		t.Fatalf("unexpected subtitle %q", c.Subtitle)
	}
	if c.Venue != Venue {
		t.Fatalf("unexpected venue %q", c.Venue)
	}
	want := time.Date(2030, time.June, 1, 18, 30, 0, 0, time.UTC)
	if !c.Datetime.Equal(want) {
		t.Fatalf("unexpected datetime %v, want %v", c.Datetime, want)
	}
	if !c.Under35 {
		t.Fatal("expected Under 35s eligibility from booking text")
	}
	if c.Prom {
		t.Fatal("Wigmore concerts are never Proms")
	}
	if c.MinPence == nil || *c.MinPence != 1800 || c.MaxPence == nil || *c.MaxPence != 4000 {
		t.Fatalf("unexpected price range %v/%v", c.MinPence, c.MaxPence)
	}
	if len(c.Pieces) != 2 {
		t.Fatalf("expected 2 pieces, got %d", len(c.Pieces))
	}
	if got := c.Pieces[1]; got.Composer != "Franz Schubert" || got.Title != "Winterreise: Der Lindenbaum" {
		t.Fatalf("unexpected cycle piece %+v", got)
	}
	if len(c.Performers) != 2 || c.Performers[0].Instrument != "piano" || c.Performers[1].Instrument != "" {
		t.Fatalf("unexpected performers %+v", c.Performers)
	}
	if c.ProgrammePDFURL != "https://example.org/programme.pdf" {
		t.Fatalf("unexpected programme pdf %q", c.ProgrammePDFURL)
	}
}

func TestScanCapsEntries(t *testing.T) {
	var detailHits int
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/api/v1/listings/whats-on", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"totalPages": 1, "items": [
			{"node": {"date": "2030-06-01T19:30:00+01:00", "url": "/whats-on/a", "titleOverrideText": "A", "subtitleText": "One"}},
			{"node": {"date": "2030-06-02T19:30:00+01:00", "url": "/whats-on/b", "titleOverrideText": "B", "subtitleText": "Two"}},
			{"node": {"date": "2030-06-03T19:30:00+01:00", "url": "/whats-on/c", "titleOverrideText": "C", "subtitleText": "Three"}}
		]}`)
	})
	mux.HandleFunc("/whats-on/", func(w http.ResponseWriter, r *http.Request) {
		detailHits++
		fmt.Fprint(w, detailPage)
	})

	client := fetch.NewClient(5*time.Second, "podium/test")
	adapter := New(client, server.URL, sources.Limits{MaxEntries: 2, DetailConcurrency: 1}, discardLogger())

	concerts, err := adapter.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(concerts) != 2 {
		t.Fatalf("expected 2 concerts under cap, got %d", len(concerts))
	}
	if detailHits != 2 {
		t.Fatalf("expected 2 detail fetches, got %d", detailHits)
	}
}
