package southbank

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"podium/internal/concert"
	"podium/internal/sources"
)

// dateLayout matches the masthead's date text, e.g. "Sat 5 Oct 2024".
const dateLayout = "Mon 2 Jan 2006"

const (
	selTitle          = "h1.c-event-masthead__title"
	selDatetime       = "div.c-event-masthead__event-datetime"
	selLocation       = "span.c-event-masthead__event-location-label-text"
	selDescriptionPar = "div.c-event-section__main > p"
	selPrice          = "span.c-event-masthead__event-price"
	selFreeMarker     = "span.c-btn--free-no-ticket"
	selPerformerRow   = "p.c-event-performers__item"
	selPerformerName  = "span.c-event-performers__name"
	selPerformerRole  = "span.c-event-performers__role"
	selPieceRow       = "p.c-event-repertoire__item"
	selPieceComposer  = "span.c-event-repertoire__composer"
	// The works span carries a performers-prefixed class name upstream; kept
	// verbatim because it is what the site actually serves.
	selPieceWorks = "span.c-event-performers__work"
)

// workSeparator splits a repertoire row listing several works by the same
// composer.
const workSeparator = "; "

// fetchDetail retrieves one event page and normalizes it.
func (a *Adapter) fetchDetail(ctx context.Context, url string) (concert.Concert, error) {
	body, err := a.client.Get(ctx, url)
	if err != nil {
		return concert.Concert{}, sources.Entry("southbank", "detail fetch", err)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return concert.Concert{}, sources.Entry("southbank", "parse detail html", err)
	}

	title := strings.TrimSpace(doc.Find(selTitle).Text())
	if title == "" {
		return concert.Concert{}, sources.Entry("southbank", "missing title", nil)
	}

	datetime, err := parseMastheadDatetime(strings.TrimSpace(doc.Find(selDatetime).Text()))
	if err != nil {
		return concert.Concert{}, err
	}

	venueFragments := sources.TextFragments(doc.Find(selLocation))
	if len(venueFragments) == 0 {
		return concert.Concert{}, sources.Entry("southbank", "missing venue", nil)
	}
	venue := venueFragments[len(venueFragments)-1]

	prices, err := parsePrices(doc)
	if err != nil {
		return concert.Concert{}, err
	}

	c := concert.Concert{
		Datetime:    datetime,
		URL:         url,
		Venue:       venue,
		Title:       title,
		Description: parseDescription(doc),
		Performers:  parsePerformers(doc),
		Pieces:      parsePieces(doc),
	}
	c.SetPrices(prices)
	return c, nil
}

// parseMastheadDatetime handles the two shapes the masthead uses:
// "<date>, <time>" and "<date>" alone. A missing time becomes a midnight
// placeholder; the source simply does not publish a start time for some
// events and inventing one would be worse than a documented convention.
func parseMastheadDatetime(text string) (time.Time, error) {
	parts := strings.Split(text, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	switch len(parts) {
	case 1:
		date, err := time.Parse(dateLayout, parts[0])
		if err != nil {
			return time.Time{}, sources.Structural("southbank", "parse date", parts[0], err)
		}
		return concert.DateToUTC(date.Year(), date.Month(), date.Day())
	case 2:
		date, err := time.Parse(dateLayout, parts[0])
		if err != nil {
			return time.Time{}, sources.Structural("southbank", "parse date", parts[0], err)
		}
		hour, minute, err := parseClockTime(parts[1])
		if err != nil {
			return time.Time{}, err
		}
		return concert.LondonToUTC(date.Year(), date.Month(), date.Day(), hour, minute)
	default:
		return time.Time{}, sources.Structural("southbank", "parse datetime", text, nil)
	}
}

func parseDescription(doc *goquery.Document) string {
	var paragraphs []string
	doc.Find(selDescriptionPar).Each(func(_ int, par *goquery.Selection) {
		if text := strings.Join(sources.TextFragments(par), " "); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})
	return strings.Join(paragraphs, "\n")
}

func parsePerformers(doc *goquery.Document) []concert.Performer {
	performers := []concert.Performer{}
	doc.Find(selPerformerRow).Each(func(_ int, row *goquery.Selection) {
		name := strings.TrimSpace(row.Find(selPerformerName).Text())
		if name == "" {
			return
		}
		performers = append(performers, concert.Performer{
			Name:       name,
			Instrument: strings.TrimSpace(row.Find(selPerformerRole).Text()),
		})
	})
	return performers
}

// parsePieces reads the repertoire rows. Rows labelled "Interval" or
// "Programme includes" are markers, not works; other rows may list several
// works by one composer separated by "; ".
func parsePieces(doc *goquery.Document) []concert.Piece {
	pieces := []concert.Piece{}
	doc.Find(selPieceRow).Each(func(_ int, row *goquery.Selection) {
		composer := strings.TrimSpace(row.Find(selPieceComposer).Text())
		if composer == "" || composer == "Interval" || composer == "Programme includes" {
			return
		}
		works := strings.TrimSpace(row.Find(selPieceWorks).First().Text())
		if works == "" {
			return
		}
		for _, work := range strings.Split(works, workSeparator) {
			pieces = append(pieces, concert.Piece{
				Composer: composer,
				Title:    strings.TrimSpace(work),
			})
		}
	})
	return pieces
}
