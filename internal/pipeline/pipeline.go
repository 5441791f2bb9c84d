// Package pipeline drives a scrape run: every enabled source scans
// concurrently, results are merged chronologically, and identifiers are
// assigned and checked before anything is persisted. One structural failure
// in any source abandons the whole run; partial feeds are never produced.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"podium/internal/aggregate"
	"podium/internal/concert"
	"podium/internal/config"
	"podium/internal/fetch"
	"podium/internal/sources"
	"podium/internal/sources/proms"
	"podium/internal/sources/southbank"
	"podium/internal/sources/wigmore"
)

// Result is a completed scrape run ready for persistence.
type Result struct {
	RunID     string
	Concerts  []concert.Concert
	PerSource map[string]int
}

// BuildSources constructs the enabled source adapters from configuration.
func BuildSources(cfg *config.Config, client *fetch.Client, log *slog.Logger) []sources.Source {
	limits := sources.Limits{
		MaxEntries:        cfg.Fetch.MaxEntries,
		DetailConcurrency: cfg.Fetch.DetailConcurrency,
	}

	var srcs []sources.Source
	if cfg.Sources.Wigmore.Enabled {
		srcs = append(srcs, wigmore.New(client, cfg.Sources.Wigmore.BaseURL, limits, log))
	}
	if cfg.Sources.Proms.Enabled {
		srcs = append(srcs, proms.New(client, cfg.Sources.Proms.SeriesURL, log))
	}
	if cfg.Sources.Southbank.Enabled {
		srcs = append(srcs, southbank.New(client, cfg.Sources.Southbank.BaseURL, limits, log))
	}
	return srcs
}

// Run scans every source concurrently and aggregates the results. The
// returned error carries the first structural failure; the feed from a failed
// run is discarded.
func Run(ctx context.Context, srcs []sources.Source, log *slog.Logger) (*Result, error) {
	runID := uuid.NewString()
	log = log.With("run_id", runID)
	log.Info("scrape run starting", "sources", len(srcs))

	// Results are kept in source registration order so that records sharing
	// an instant sort deterministically across runs.
	lists := make([][]concert.Concert, len(srcs))
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for i, src := range srcs {
		wg.Add(1)
		go func(i int, src sources.Source) {
			defer wg.Done()
			concerts, err := src.Scan(ctx)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("%s: %w", src.Name(), err)
				}
				mu.Unlock()
				return
			}
			lists[i] = concerts
		}(i, src)
	}
	wg.Wait()

	if firstErr != nil {
		log.Error("scrape run aborted", "error", firstErr)
		return nil, firstErr
	}

	perSource := make(map[string]int, len(srcs))
	for i, src := range srcs {
		perSource[src.Name()] = len(lists[i])
		log.Info("source scan complete", "source", src.Name(), "entries", len(lists[i]))
	}

	merged := aggregate.Merge(lists...)
	identified, err := aggregate.AssignIDs(merged)
	if err != nil {
		log.Error("scrape run aborted", "error", err)
		return nil, err
	}

	log.Info("scrape run complete", "concerts", len(identified))
	return &Result{
		RunID:     runID,
		Concerts:  identified,
		PerSource: perSource,
	}, nil
}
