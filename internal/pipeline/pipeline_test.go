package pipeline_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"podium/internal/concert"
	"podium/internal/pipeline"
	"podium/internal/sources"
)

type stubSource struct {
	name     string
	concerts []concert.Concert
	err      error
}

func (s stubSource) Name() string { return s.name }

func (s stubSource) Scan(ctx context.Context) ([]concert.Concert, error) {
	return s.concerts, s.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func at(hour int) time.Time {
	return time.Date(2030, time.June, 1, hour, 0, 0, 0, time.UTC)
}

func TestRunMergesAllSources(t *testing.T) {
	srcs := []sources.Source{
		stubSource{name: "wigmore", concerts: []concert.Concert{
			{Datetime: at(19), Venue: "Wigmore Hall", Title: "Evening Recital"},
		}},
		stubSource{name: "proms", concerts: nil},
		stubSource{name: "southbank", concerts: []concert.Concert{
			{Datetime: at(18), Venue: "Royal Festival Hall", Title: "Season Opening"},
		}},
	}

	result, err := pipeline.Run(context.Background(), srcs, discardLogger())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.RunID == "" {
		t.Fatal("expected run identifier")
	}
	if len(result.Concerts) != 2 {
		t.Fatalf("expected 2 concerts, got %d", len(result.Concerts))
	}
	if result.Concerts[0].Title != "Season Opening" {
		t.Fatalf("expected chronological order, got %q first", result.Concerts[0].Title)
	}
	for _, c := range result.Concerts {
		if c.ID == "" {
			t.Fatalf("record missing identifier: %+v", c)
		}
	}
	if result.PerSource["wigmore"] != 1 || result.PerSource["proms"] != 0 || result.PerSource["southbank"] != 1 {
		t.Fatalf("unexpected per-source counts: %v", result.PerSource)
	}
}

func TestRunAbortsOnSourceFailure(t *testing.T) {
	boom := errors.New("listing layout changed")
	srcs := []sources.Source{
		stubSource{name: "wigmore", concerts: []concert.Concert{
			{Datetime: at(19), Venue: "Wigmore Hall", Title: "Evening Recital"},
		}},
		stubSource{name: "southbank", err: boom},
	}

	result, err := pipeline.Run(context.Background(), srcs, discardLogger())
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped source error, got %v", err)
	}
	if result != nil {
		t.Fatal("failed run must not produce a feed")
	}
}

func TestRunAbortsOnDuplicateIdentifiers(t *testing.T) {
	shared := concert.Concert{Datetime: at(19), Venue: "Wigmore Hall", Title: "Evening Recital"}
	srcs := []sources.Source{
		stubSource{name: "a", concerts: []concert.Concert{shared}},
		stubSource{name: "b", concerts: []concert.Concert{shared}},
	}

	if _, err := pipeline.Run(context.Background(), srcs, discardLogger()); err == nil {
		t.Fatal("expected duplicate identifier failure")
	}
}

func TestRunEmptySourcesIsValid(t *testing.T) {
	result, err := pipeline.Run(context.Background(), nil, discardLogger())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Concerts) != 0 {
		t.Fatalf("expected empty feed, got %d", len(result.Concerts))
	}
}
