package concert

import (
	"errors"
	"fmt"
	"time"
)

// Piece is a single programme entry: one work attributed to one composer.
type Piece struct {
	Composer string `json:"composer"`
	Title    string `json:"title"`
}

// Performer is an artist appearing at a concert. Instrument is empty when the
// source provides no role text.
type Performer struct {
	Name       string `json:"name"`
	Instrument string `json:"instrument,omitempty"`
}

// Concert is the canonical record shape shared by all sources. Datetime is
// always an absolute UTC instant reconstructed from the source's London
// wall-clock time. Prices are integer pence; a nil pointer means the source
// published no price. ID is derived by AssignID, never taken from a source.
type Concert struct {
	ID              string      `json:"id,omitempty"`
	Datetime        time.Time   `json:"datetime"`
	URL             string      `json:"url"`
	Venue           string      `json:"venue"`
	Title           string      `json:"title"`
	Subtitle        string      `json:"subtitle,omitempty"`
	Description     string      `json:"description,omitempty"`
	ProgrammePDFURL string      `json:"programmeDocumentUrl,omitempty"`
	Performers      []Performer `json:"performers"`
	Pieces          []Piece     `json:"pieces"`
	MinPence        *int        `json:"minPrice,omitempty"`
	MaxPence        *int        `json:"maxPrice,omitempty"`
	Under35         bool        `json:"isUnder35Discount"`
	Prom            bool        `json:"isPromsEvent"`
}

// ErrPriceRange reports a price pair whose minimum exceeds its maximum.
var ErrPriceRange = errors.New("price range minimum exceeds maximum")

// PriceRange is an optional min/max pair in pence. Either bound may be absent.
type PriceRange struct {
	Min *int
	Max *int
}

// NewPriceRange validates a min/max pence pair. Construction fails when both
// bounds are present and min exceeds max.
func NewPriceRange(min, max *int) (PriceRange, error) {
	if min != nil && max != nil && *min > *max {
		return PriceRange{}, fmt.Errorf("%w: %d > %d", ErrPriceRange, *min, *max)
	}
	return PriceRange{Min: min, Max: max}, nil
}

// SetPrices applies a validated price range to the record.
func (c *Concert) SetPrices(r PriceRange) {
	c.MinPence = r.Min
	c.MaxPence = r.Max
}

// Pence returns a pointer to v, for building optional price bounds.
func Pence(v int) *int {
	return &v
}
