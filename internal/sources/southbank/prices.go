package southbank

import (
	"regexp"
	"strconv"

	"github.com/PuerkitoBio/goquery"

	"podium/internal/concert"
)

// The site writes the same price as "£15.00" on some pages and "£15" on
// others, so both patterns run and the minimum across all matches wins.
// Prices are uniformly advertised as "from £X", so no maximum is recorded;
// the only maximum the site ever implies is zero, for free events.
var (
	pencePricePattern = regexp.MustCompile(`£(\d+)\.(\d+)`)
	poundPricePattern = regexp.MustCompile(`£(\d+)(?:[^.\d]|$)`)
)

func parsePrices(doc *goquery.Document) (concert.PriceRange, error) {
	priceNode := doc.Find(selPrice)
	if priceNode.Length() == 0 {
		// No price node at all: free if and only if the free marker button
		// is present, otherwise unknown.
		if doc.Find(selFreeMarker).Length() > 0 {
			return concert.NewPriceRange(concert.Pence(0), concert.Pence(0))
		}
		return concert.PriceRange{}, nil
	}

	text := priceNode.Text()
	var min *int
	consider := func(pence int) {
		if min == nil || pence < *min {
			v := pence
			min = &v
		}
	}

	for _, m := range pencePricePattern.FindAllStringSubmatch(text, -1) {
		pounds, err1 := strconv.Atoi(m[1])
		pence, err2 := strconv.Atoi(m[2])
		if err1 != nil || err2 != nil {
			continue
		}
		consider(pounds*100 + pence)
	}
	for _, m := range poundPricePattern.FindAllStringSubmatch(text, -1) {
		pounds, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		consider(pounds * 100)
	}

	return concert.NewPriceRange(min, nil)
}
