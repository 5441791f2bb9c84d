package sources

import (
	"context"

	"podium/internal/concert"
)

// Source turns one upstream's raw pages into canonical concert records. Scan
// returns an unordered list: the aggregator imposes the final ordering, so
// adapters make no ordering guarantee across concurrent detail fetches.
//
// Entry-level failures (a dead link, one malformed payload) are logged and
// dropped inside Scan; the returned error is reserved for structural
// violations that make the whole source unsafe to interpret.
type Source interface {
	Name() string
	Scan(ctx context.Context) ([]concert.Concert, error)
}

// Limits bounds a scan's request volume. MaxEntries caps how many entries
// proceed to detail fetching (0 means unbounded); DetailConcurrency caps
// in-flight detail requests per source.
type Limits struct {
	MaxEntries        int
	DetailConcurrency int
}

// Cap trims entries to the configured ceiling before any detail fetch is
// issued.
func (l Limits) Cap(n int) int {
	if l.MaxEntries > 0 && n > l.MaxEntries {
		return l.MaxEntries
	}
	return n
}
