package proms

import (
	"errors"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"podium/internal/concert"
	"podium/internal/sources"
)

// prommingPence is the day "promming" standing ticket price at the Royal
// Albert Hall. It never appears on the season page, so it is injected for
// eligible concerts whenever the scraped minimum is absent or higher.
const prommingPence = 800

// parseEntry normalizes one concert entry under an already-parsed date
// heading. Entry-scoped problems come back wrapped in ErrEntry; anything
// else aborts the scan.
func (a *Adapter) parseEntry(entry *goquery.Selection, date time.Time) (concert.Concert, error) {
	title := sources.FirstText(entry.Find(selTitle))
	if title == "" {
		return concert.Concert{}, sources.Entry("proms", "missing title", nil)
	}

	href, ok := entry.Find(selTitleLink).Attr("href")
	if !ok {
		return concert.Concert{}, sources.Entry("proms", "missing event link", nil)
	}

	venue := sources.FirstText(entry.Find(selLocation))
	if venue == "" {
		return concert.Concert{}, sources.Entry("proms", "missing venue", nil)
	}

	hour, minute, err := parseClock(sources.FirstText(entry.Find(selTime)))
	if err != nil {
		return concert.Concert{}, err
	}
	datetime, err := concert.LondonToUTC(date.Year(), date.Month(), date.Day(), hour, minute)
	if err != nil {
		return concert.Concert{}, err
	}

	prices, err := parsePriceText(sources.FirstText(entry.Find(selPrice)))
	if err != nil {
		return concert.Concert{}, err
	}
	prices = applyPrommingFloor(prices, venue, title)

	c := concert.Concert{
		Datetime:    datetime,
		URL:         bbcBaseURL + href,
		Venue:       venue,
		Title:       title,
		Description: sources.FirstText(entry.Find(selDescription)),
		Performers:  parsePerformers(entry),
		Pieces:      parsePieces(entry),
		Prom:        true,
	}
	c.SetPrices(prices)
	return c, nil
}

// knownBadTime is a literal the season page once shipped in place of a start
// time for a late-night concert spanning midnight; it maps to the concert's
// actual 23:00 start.
const knownBadTime = "26 –  27 Jul 2024"

// parseClock reads an "HH:MM" time. Any other shape means the page layout
// changed and the scan must not guess.
func parseClock(text string) (hour, minute int, err error) {
	if text == knownBadTime {
		return 23, 0, nil
	}
	hh, mm, found := strings.Cut(text, ":")
	if !found {
		return 0, 0, sources.Structural("proms", "parse time", text, nil)
	}
	hour, err1 := atoi(hh)
	minute, err2 := atoi(mm)
	if err1 != nil || err2 != nil || hour > 23 || minute > 59 {
		return 0, 0, sources.Structural("proms", "parse time", text, errors.Join(err1, err2))
	}
	return hour, minute, nil
}

func atoi(s string) (int, error) {
	n := 0
	if s == "" {
		return 0, errors.New("empty number")
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, errors.New("not a number: " + s)
		}
		n = n*10 + int(r-'0')
	}
	return n, nil
}

// parsePieces reads the paired composer/work rows of an entry's schedule.
// A row whose sole text is "interval" is a break, not a piece.
func parsePieces(entry *goquery.Selection) []concert.Piece {
	pieces := []concert.Piece{}
	entry.Find(selPieceRow).Each(func(_ int, row *goquery.Selection) {
		fragments := sources.TextFragments(row)
		switch {
		case len(fragments) == 0:
			return
		case len(fragments) == 1 && strings.EqualFold(fragments[0], "interval"):
			return
		case len(fragments) == 1:
			pieces = append(pieces, concert.Piece{Composer: fragments[0]})
		default:
			pieces = append(pieces, concert.Piece{
				Composer: fragments[0],
				Title:    strings.Join(fragments[1:], " "),
			})
		}
	})
	return pieces
}

func parsePerformers(entry *goquery.Selection) []concert.Performer {
	performers := []concert.Performer{}
	entry.Find(selPerformer).Each(func(_ int, artist *goquery.Selection) {
		name := sources.FirstText(artist.Find(selArtistName))
		if name == "" {
			return
		}
		role := strings.Join(sources.TextFragments(artist.Find(selArtistRole)), " ")
		performers = append(performers, concert.Performer{Name: name, Instrument: role})
	})
	return performers
}

// applyPrommingFloor injects the day-ticket floor for Royal Albert Hall
// Proms. Eligibility matches the main-season naming: "Prom 12", "Proms at",
// and the season opener "First Night of the Proms".
func applyPrommingFloor(prices concert.PriceRange, venue, title string) concert.PriceRange {
	if venue != "Royal Albert Hall" {
		return prices
	}
	if !strings.HasPrefix(title, "Prom") && !strings.HasPrefix(title, "First Night") {
		return prices
	}
	floor := prommingPence
	if prices.Min == nil || *prices.Min > floor {
		prices.Min = &floor
	}
	return prices
}
