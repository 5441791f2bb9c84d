package wigmore

import (
	"regexp"
	"strconv"
	"strings"

	"podium/internal/concert"
	"podium/internal/sources"
)

// poundPattern matches currency-symbol-prefixed whole-pound amounts anywhere
// in free text. The hall's ticket copy is too inconsistent for anything
// stricter.
var poundPattern = regexp.MustCompile(`£(\d+)`)

// parsePriceText extracts a price range from the ticket text. No matches and
// no free marker means the price is simply unknown. The literal value "free"
// is an explicit zero, which is different from unknown.
func parsePriceText(text string) (concert.PriceRange, error) {
	matches := poundPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		if strings.EqualFold(strings.TrimSpace(text), "free") {
			return concert.NewPriceRange(concert.Pence(0), concert.Pence(0))
		}
		return concert.PriceRange{}, nil
	}

	min, max := 0, 0
	for i, m := range matches {
		pounds, err := strconv.Atoi(m[1])
		if err != nil {
			return concert.PriceRange{}, sources.Entry("wigmore", "parse price", err)
		}
		pence := pounds * 100
		if i == 0 || pence < min {
			min = pence
		}
		if pence > max {
			max = pence
		}
	}
	return concert.NewPriceRange(concert.Pence(min), concert.Pence(max))
}
