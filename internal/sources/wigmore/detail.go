package wigmore

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"

	"podium/internal/concert"
	"podium/internal/sources"
)

// The event page embeds the same JSON document its client-side renderer
// consumes. Slicing it out by marker is far more stable than walking the
// rendered HTML, whose class names churn with every site redesign.
const (
	payloadOpen  = `<script type="application/json" data-role="event-payload">`
	payloadClose = `</script>`
)

// under35Marker appears in the booking text of concerts eligible for the
// hall's Under 35s ticket scheme.
const under35Marker = "under 35s"

// cycleSeparator joins a cycle grouping to a work title in programme rows.
const cycleSeparator = ": "

// detailPayload mirrors the slice of the embedded document the adapter needs.
type detailPayload struct {
	Event struct {
		Description  string `json:"description"`
		ProgrammePDF struct {
			URL string `json:"url"`
		} `json:"programmePdf"`
		BookingInformation string `json:"bookingInformation"`
		TicketText         string `json:"ticketText"`
		Performers         []struct {
			Name       string `json:"name"`
			Instrument string `json:"instrument"`
		} `json:"performers"`
		Programme []struct {
			Composer string `json:"composer"`
			Work     string `json:"work"`
			Cycle    struct {
				Title    string `json:"title"`
				Composer string `json:"composer"`
			} `json:"cycle"`
		} `json:"programme"`
	} `json:"event"`
}

// fetchDetail retrieves one entry's page and normalizes it. Every failure
// here is scoped to the single entry.
func (a *Adapter) fetchDetail(ctx context.Context, s summary) (concert.Concert, error) {
	body, err := a.client.Get(ctx, s.URL)
	if err != nil {
		return concert.Concert{}, sources.Entry("wigmore", "detail fetch", err)
	}

	raw, err := extractPayload(body)
	if err != nil {
		return concert.Concert{}, err
	}

	var payload detailPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return concert.Concert{}, sources.Entry("wigmore", "decode payload", err)
	}

	return buildConcert(s, payload)
}

// extractPayload slices the embedded JSON document out of the page body.
func extractPayload(body []byte) ([]byte, error) {
	start := bytes.Index(body, []byte(payloadOpen))
	if start < 0 {
		return nil, sources.Entry("wigmore", "locate payload", nil)
	}
	rest := body[start+len(payloadOpen):]
	end := bytes.Index(rest, []byte(payloadClose))
	if end < 0 {
		return nil, sources.Entry("wigmore", "unterminated payload", nil)
	}
	return bytes.TrimSpace(rest[:end]), nil
}

func buildConcert(s summary, payload detailPayload) (concert.Concert, error) {
	event := payload.Event

	performers := make([]concert.Performer, 0, len(event.Performers))
	for _, p := range event.Performers {
		performers = append(performers, concert.Performer{
			Name:       strings.TrimSpace(p.Name),
			Instrument: strings.TrimSpace(p.Instrument),
		})
	}

	pieces := make([]concert.Piece, 0, len(event.Programme))
	for _, row := range event.Programme {
		title := strings.TrimSpace(row.Work)
		if cycle := strings.TrimSpace(row.Cycle.Title); cycle != "" {
			title = cycle + cycleSeparator + title
		}
		composer := strings.TrimSpace(row.Composer)
		if composer == "" {
			// A row without its own composer belongs to the cycle's composer.
			composer = strings.TrimSpace(row.Cycle.Composer)
		}
		pieces = append(pieces, concert.Piece{Composer: composer, Title: title})
	}

	prices, err := parsePriceText(event.TicketText)
	if err != nil {
		return concert.Concert{}, err
	}

	c := concert.Concert{
		Datetime:        s.Datetime,
		URL:             s.URL,
		Venue:           Venue,
		Title:           s.Title,
		Subtitle:        s.Performer,
		Description:     strings.TrimSpace(event.Description),
		ProgrammePDFURL: strings.TrimSpace(event.ProgrammePDF.URL),
		Performers:      performers,
		Pieces:          pieces,
		Under35:         strings.Contains(strings.ToLower(event.BookingInformation), under35Marker),
	}
	c.SetPrices(prices)
	return c, nil
}
