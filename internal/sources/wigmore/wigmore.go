package wigmore

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"podium/internal/concert"
	"podium/internal/fetch"
	"podium/internal/sources"
)

// Venue is the venue recorded for every Wigmore Hall listing.
const Venue = "Wigmore Hall"

// DefaultBaseURL is the production Wigmore Hall site.
const DefaultBaseURL = "https://www.wigmore-hall.org.uk"

// Adapter scans the Wigmore Hall listings API.
type Adapter struct {
	baseURL string
	client  *fetch.Client
	limits  sources.Limits
	log     *slog.Logger
}

// New constructs a Wigmore Hall adapter. baseURL is overridable for tests.
func New(client *fetch.Client, baseURL string, limits sources.Limits, log *slog.Logger) *Adapter {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Adapter{
		baseURL: baseURL,
		client:  client,
		limits:  limits,
		log:     log.With("source", "wigmore"),
	}
}

// Name identifies the adapter in logs and configuration.
func (a *Adapter) Name() string { return "wigmore" }

// Scan discovers every listing page, then fetches each entry's detail page
// under the configured concurrency cap. Entries whose detail fetch or payload
// parse fails are logged and dropped; the batch continues.
func (a *Adapter) Scan(ctx context.Context) ([]concert.Concert, error) {
	first, totalPages, err := a.fetchListingPage(ctx, 1)
	if err != nil {
		if errors.Is(err, sources.ErrStructure) {
			return nil, err
		}
		a.log.Warn("listing unavailable, skipping source", "error", err)
		return nil, nil
	}

	summaries := first
	if totalPages > 1 {
		rest := make([]int, 0, totalPages-1)
		for page := 2; page <= totalPages; page++ {
			rest = append(rest, page)
		}
		var (
			mu         sync.Mutex
			structural error
		)
		pages := fetch.Map(ctx, rest, a.limits.DetailConcurrency, func(ctx context.Context, page int) ([]summary, bool) {
			entries, _, err := a.fetchListingPage(ctx, page)
			if err != nil {
				if errors.Is(err, sources.ErrStructure) {
					mu.Lock()
					structural = err
					mu.Unlock()
					return nil, false
				}
				a.log.Warn("listing page failed", "page", page, "error", err)
				return nil, false
			}
			return entries, true
		})
		if structural != nil {
			return nil, structural
		}
		for _, entries := range pages {
			summaries = append(summaries, entries...)
		}
	}

	if capped := a.limits.Cap(len(summaries)); capped < len(summaries) {
		a.log.Info("capping entries before detail fetch", "total", len(summaries), "cap", capped)
		summaries = summaries[:capped]
	}

	concerts := fetch.Map(ctx, summaries, a.limits.DetailConcurrency, func(ctx context.Context, s summary) (concert.Concert, bool) {
		c, err := a.fetchDetail(ctx, s)
		if err != nil {
			a.log.Warn("dropping entry", "url", s.URL, "error", err)
			return concert.Concert{}, false
		}
		a.log.Debug("scanned concert", "title", c.Title, "datetime", c.Datetime)
		return c, true
	})

	a.log.Info("scan complete", "concerts", len(concerts))
	return concerts, nil
}
