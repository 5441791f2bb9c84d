package concert_test

import (
	"testing"
	"time"

	"podium/internal/concert"
)

func mustUTC(t *testing.T, year int, month time.Month, day, hour, minute int) time.Time {
	t.Helper()
	instant, err := concert.LondonToUTC(year, month, day, hour, minute)
	if err != nil {
		t.Fatalf("LondonToUTC: %v", err)
	}
	return instant
}

func TestAssignIDDeterministic(t *testing.T) {
	c := concert.Concert{
		Datetime: mustUTC(t, 2024, time.November, 5, 19, 30),
		Venue:    "Wigmore Hall",
		Title:    "Schubert Winterreise",
	}
	first := concert.AssignID(c)
	second := concert.AssignID(c)
	if first != second {
		t.Fatalf("AssignID not deterministic: %q vs %q", first, second)
	}
	if first == "" {
		t.Fatal("AssignID returned empty identifier")
	}
}

func TestAssignIDShape(t *testing.T) {
	c := concert.Concert{
		Datetime: time.Unix(1730834100, 0).UTC(),
		Venue:    "Wigmore Hall",
		Title:    "Schubert: Winterreise D. 911",
	}
	got := concert.AssignID(c)
	want := "1730834100__wigmore_hall__schubertwi"
	if got != want {
		t.Fatalf("AssignID = %q, want %q", got, want)
	}
}

func TestAssignIDTransliteratesVenue(t *testing.T) {
	c := concert.Concert{
		Datetime: time.Unix(1720000000, 0).UTC(),
		Venue:    "Théâtre Royal",
		Title:    "Messiaen Quartet for the End of Time",
	}
	got := concert.AssignID(c)
	for _, r := range got {
		valid := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_'
		if !valid {
			t.Fatalf("AssignID produced invalid rune %q in %q", r, got)
		}
	}
	// Accented venue characters fold to ASCII rather than being dropped.
	if want := "1720000000__theatre_royal__messiaenqu"; got != want {
		t.Fatalf("AssignID = %q, want %q", got, want)
	}
}

func TestAssignIDSkipsNonASCIITitleRunes(t *testing.T) {
	c := concert.Concert{
		Datetime: time.Unix(1720000000, 0).UTC(),
		Venue:    "Wigmore Hall",
		Title:    "Dvořák & Janáček: Œuvres",
	}
	// The title prefix keeps only ASCII alphanumerics, so accented runes do
	// not count towards the ten-character limit.
	if got, want := concert.AssignID(c), "1720000000__wigmore_hall__dvokjaneku"; got != want {
		t.Fatalf("AssignID = %q, want %q", got, want)
	}
}

func TestAssignIDUsesOnlyTitlePrefix(t *testing.T) {
	base := concert.Concert{
		Datetime: time.Unix(1730000000, 0).UTC(),
		Venue:    "Royal Albert Hall",
	}
	a := base
	a.Title = "Symphonie fantastique (matinee)"
	b := base
	b.Title = "Symphonie fantastique (evening)"
	// Titles diverge only after the 10th alphanumeric character, so the
	// derived identifiers are expected to collide. The aggregator treats
	// that collision as fatal rather than deduplicating.
	if concert.AssignID(a) != concert.AssignID(b) {
		t.Fatalf("expected identical identifiers for shared prefix, got %q and %q",
			concert.AssignID(a), concert.AssignID(b))
	}
}
