package proms

import (
	"fmt"
	"regexp"
	"strconv"

	"podium/internal/concert"
	"podium/internal/sources"
)

// poundPattern matches currency-symbol-prefixed whole-pound amounts. The
// ticket subtitle copy is inconsistent prose, but it reliably carries either
// one price or a low-high pair.
var poundPattern = regexp.MustCompile(`£(\d+)`)

// parsePriceText maps the ticket subtitle to a price range: no matches means
// unknown, one match is a fixed price, two are a low-high pair. Three or more
// means the page format changed and guessing which pair is the range would
// corrupt the feed.
func parsePriceText(text string) (concert.PriceRange, error) {
	matches := poundPattern.FindAllStringSubmatch(text, -1)
	switch len(matches) {
	case 0:
		return concert.PriceRange{}, nil
	case 1:
		pence, err := poundsToPence(matches[0][1])
		if err != nil {
			return concert.PriceRange{}, sources.Structural("proms", "parse price", text, err)
		}
		return concert.NewPriceRange(concert.Pence(pence), concert.Pence(pence))
	case 2:
		low, err1 := poundsToPence(matches[0][1])
		high, err2 := poundsToPence(matches[1][1])
		if err1 != nil || err2 != nil {
			return concert.PriceRange{}, sources.Structural("proms", "parse price", text, nil)
		}
		return concert.NewPriceRange(concert.Pence(low), concert.Pence(high))
	default:
		return concert.PriceRange{}, sources.Structural("proms", "parse price",
			fmt.Sprintf("%d numeric matches in %q", len(matches), text), nil)
	}
}

func poundsToPence(s string) (int, error) {
	pounds, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return pounds * 100, nil
}
