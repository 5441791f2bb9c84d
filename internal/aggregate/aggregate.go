package aggregate

import (
	"errors"
	"fmt"
	"sort"

	"podium/internal/concert"
)

// ErrDuplicateID reports two records resolving to the same identifier. That
// means either a source collision the title-prefix disambiguation failed to
// resolve, or a genuine duplicate entry; silently dropping one could hide a
// real distinct event, so the run must abort.
var ErrDuplicateID = errors.New("duplicate concert identifier")

// Merge concatenates the per-source lists and sorts ascending by start time.
// The sort is stable, so records sharing an instant keep their source order.
func Merge(lists ...[]concert.Concert) []concert.Concert {
	total := 0
	for _, list := range lists {
		total += len(list)
	}
	merged := make([]concert.Concert, 0, total)
	for _, list := range lists {
		merged = append(merged, list...)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Datetime.Before(merged[j].Datetime)
	})
	return merged
}

// AssignIDs derives an identifier for every record and verifies global
// uniqueness. An empty input is a valid empty feed.
func AssignIDs(concerts []concert.Concert) ([]concert.Concert, error) {
	identified := make([]concert.Concert, len(concerts))
	ids := make([]string, len(concerts))
	for i, c := range concerts {
		identified[i] = concert.WithID(c)
		ids[i] = identified[i].ID
	}

	sort.Strings(ids)
	for i := 1; i < len(ids); i++ {
		if ids[i] == ids[i-1] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, ids[i])
		}
	}
	return identified, nil
}
