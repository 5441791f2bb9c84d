package concert

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// titlePrefixLen is how many ASCII-alphanumeric title characters participate
// in the identifier. Datetime plus venue used to be enough to disambiguate
// concerts until one venue began listing events held elsewhere; the title
// prefix restores uniqueness.
const titlePrefixLen = 10

// stripMarks decomposes characters and removes combining marks, mapping
// accented characters to their closest ASCII equivalents (é -> e, ö -> o).
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// AssignID derives the deterministic identifier for a record from its
// datetime, venue, and title prefix. Pure: identical inputs always produce
// identical identifiers, so re-running the pipeline over unchanged source
// data reproduces the same feed.
func AssignID(c Concert) string {
	raw := fmt.Sprintf("%d__%s__%s", c.Datetime.Unix(), c.Venue, titlePrefix(c.Title))
	if folded, _, err := transform.String(stripMarks, raw); err == nil {
		raw = folded
	}
	raw = strings.ToLower(strings.ReplaceAll(raw, " ", "_"))

	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// WithID returns a copy of the record with its derived identifier set.
func WithID(c Concert) Concert {
	c.ID = AssignID(c)
	return c
}

func titlePrefix(title string) string {
	var b strings.Builder
	for _, r := range title {
		if r < 128 && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
			if b.Len() == titlePrefixLen {
				break
			}
		}
	}
	return b.String()
}
