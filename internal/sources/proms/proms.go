package proms

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/PuerkitoBio/goquery"

	"podium/internal/concert"
	"podium/internal/fetch"
	"podium/internal/sources"
)

// DefaultSeriesURL is the BBC events page for the current Proms season.
const DefaultSeriesURL = "https://www.bbc.co.uk/events/rfbp5v/series"

// bbcBaseURL prefixes the relative event links on the season page.
const bbcBaseURL = "https://www.bbc.co.uk"

// dateLayout matches the season page's date headings, e.g. "Fri 23 Aug 2024".
const dateLayout = "Mon 2 Jan 2006"

const (
	selDateGroup   = "li.ev-event-calendar__single-date-events"
	selDateHeading = "h3.ev-event-calendar__date"
	selEntry       = "li.ev-event-calendar__event-summary-container"
	selTitle       = "div.ev-event-calendar__name"
	selTitleLink   = "div.ev-event-calendar__name > a"
	selTime        = "div.ev-event-calendar__time"
	selDescription = "p.ev-event-calendar__event-description"
	selLocation    = "span.ev-event-calendar__event-location"
	selPieceRow    = "li.ev-act-schedule__performance-composer-segments"
	selPerformer   = `div[data-id-for-tests="event-schedule-artists"] li.ev-act-schedule__artist`
	selArtistName  = "div.ev-act-schedule__artist-details-container"
	selArtistRole  = "div.ev-act-schedule__artist-role-container"
	selPrice       = "div.ev-event-calendar__ticket-link-subtitle--desktop"
)

// Adapter scans the BBC Proms season page.
type Adapter struct {
	seriesURL string
	client    *fetch.Client
	log       *slog.Logger

	// Now is injectable so tests can pin the past-date cutoff.
	Now func() time.Time
}

// New constructs a Proms adapter. seriesURL is overridable for tests.
func New(client *fetch.Client, seriesURL string, log *slog.Logger) *Adapter {
	if seriesURL == "" {
		seriesURL = DefaultSeriesURL
	}
	return &Adapter{
		seriesURL: seriesURL,
		client:    client,
		log:       log.With("source", "proms"),
		Now:       time.Now,
	}
}

// Name identifies the adapter in logs and configuration.
func (a *Adapter) Name() string { return "proms" }

// Scan fetches the season page and normalizes every upcoming concert. The
// BBC retains past concerts on the page, so anything dated before today is
// discarded during the scan.
func (a *Adapter) Scan(ctx context.Context) ([]concert.Concert, error) {
	body, err := a.client.Get(ctx, a.seriesURL)
	if err != nil {
		a.log.Warn("season page unavailable, skipping source", "error", err)
		return nil, nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, sources.Structural("proms", "parse html", "", err)
	}

	today := a.Now().UTC().Truncate(24 * time.Hour)

	var (
		concerts []concert.Concert
		scanErr  error
	)
	doc.Find(selDateGroup).EachWithBreak(func(_ int, group *goquery.Selection) bool {
		dateText := sources.FirstText(group.Find(selDateHeading))
		date, err := time.Parse(dateLayout, dateText)
		if err != nil {
			scanErr = sources.Structural("proms", "parse date heading", dateText, err)
			return false
		}
		if date.Before(today) {
			return true
		}

		group.Find(selEntry).EachWithBreak(func(_ int, entry *goquery.Selection) bool {
			c, err := a.parseEntry(entry, date)
			if err != nil {
				if errors.Is(err, sources.ErrEntry) {
					a.log.Warn("dropping entry", "error", err)
					return true
				}
				scanErr = err
				return false
			}
			a.log.Debug("scanned concert", "title", c.Title, "datetime", c.Datetime)
			concerts = append(concerts, c)
			return true
		})
		return scanErr == nil
	})
	if scanErr != nil {
		return nil, scanErr
	}

	a.log.Info("scan complete", "concerts", len(concerts))
	return concerts, nil
}
