package wigmore

import (
	"context"
	"fmt"
	"time"

	"podium/internal/sources"
)

// summary is the front-page view of one concert: enough to know when it
// happens and where to fetch the rest.
type summary struct {
	Datetime  time.Time
	URL       string
	Performer string
	Title     string
}

// listingPage mirrors the relevant slice of the listings API response.
type listingPage struct {
	Items []struct {
		Node struct {
			Date              string `json:"date"`
			URL               string `json:"url"`
			TitleOverrideText string `json:"titleOverrideText"`
			SubtitleText      string `json:"subtitleText"`
		} `json:"node"`
	} `json:"items"`
	TotalPages int `json:"totalPages"`
}

func (a *Adapter) listingURL(page int) string {
	return fmt.Sprintf("%s/api/v1/listings/whats-on?page=%d", a.baseURL, page)
}

// fetchListingPage retrieves one API page and returns its entries plus the
// declared total page count. Listing datetimes arrive as RFC 3339 with an
// offset, so no wall-clock reconstruction is needed here.
func (a *Adapter) fetchListingPage(ctx context.Context, page int) ([]summary, int, error) {
	var decoded listingPage
	if err := a.client.GetJSON(ctx, a.listingURL(page), &decoded); err != nil {
		return nil, 0, err
	}

	entries := make([]summary, 0, len(decoded.Items))
	for _, item := range decoded.Items {
		when, err := time.Parse(time.RFC3339, item.Node.Date)
		if err != nil {
			a.log.Warn("dropping entry with unparseable date", "date", item.Node.Date, "url", item.Node.URL)
			continue
		}
		performer, title := splitOverride(item.Node.TitleOverrideText, item.Node.SubtitleText)
		entries = append(entries, summary{
			Datetime:  when.UTC(),
			URL:       a.baseURL + item.Node.URL,
			Performer: performer,
			Title:     title,
		})
	}

	if decoded.TotalPages < 1 {
		return nil, 0, sources.Structural("wigmore", "listing", "missing totalPages", nil)
	}
	return entries, decoded.TotalPages, nil
}

// splitOverride resolves the listing's override/subtitle pair into performer
// and title. Upstream quirk: when an event has no subtitle, the override text
// is actually the performer's name and doubles as the display title, so the
// two fields swap.
func splitOverride(override, subtitle string) (performer, title string) {
	if subtitle == "" {
		return "", override
	}
	return override, subtitle
}
