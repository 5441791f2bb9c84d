package sources

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// TextFragments walks a selection in document order and returns every
// non-empty, whitespace-trimmed text node. Adapters use it where a single
// element interleaves meaningful text with markup (composer/work rows,
// role labels).
func TextFragments(sel *goquery.Selection) []string {
	var out []string
	sel.Contents().Each(func(_ int, node *goquery.Selection) {
		if goquery.NodeName(node) == "#text" {
			if text := strings.TrimSpace(node.Text()); text != "" {
				out = append(out, text)
			}
			return
		}
		out = append(out, TextFragments(node)...)
	})
	return out
}

// FirstText returns the first text fragment of a selection, or "".
func FirstText(sel *goquery.Selection) string {
	fragments := TextFragments(sel)
	if len(fragments) == 0 {
		return ""
	}
	return fragments[0]
}
