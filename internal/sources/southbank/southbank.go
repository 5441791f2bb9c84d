package southbank

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"

	"podium/internal/concert"
	"podium/internal/fetch"
	"podium/internal/sources"
)

// DefaultBaseURL is the production Southbank Centre site.
const DefaultBaseURL = "https://www.southbankcentre.co.uk"

// excludedURLFragment filters a category whose event pages use a different
// layout and break the detail parser.
const excludedURLFragment = "christmas-classics"

const selListingLink = "a.c-event-card__cover-link"

// Adapter scans the Southbank Centre listing.
type Adapter struct {
	baseURL string
	client  *fetch.Client
	limits  sources.Limits
	log     *slog.Logger
}

// New constructs a Southbank Centre adapter. baseURL is overridable for tests.
func New(client *fetch.Client, baseURL string, limits sources.Limits, log *slog.Logger) *Adapter {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Adapter{
		baseURL: baseURL,
		client:  client,
		limits:  limits,
		log:     log.With("source", "southbank"),
	}
}

// Name identifies the adapter in logs and configuration.
func (a *Adapter) Name() string { return "southbank" }

func (a *Adapter) listingURL(page int) string {
	return fmt.Sprintf("%s/whats-on/page/%d/?artform-filter=classical-music", a.baseURL, page)
}

// Scan walks numbered listing pages until the first empty one, then fetches
// each candidate's detail page under the concurrency cap. There is no
// declared page count, so termination rests solely on the empty-page check.
func (a *Adapter) Scan(ctx context.Context) ([]concert.Concert, error) {
	var candidates []string
	for page := 1; ; page++ {
		links, err := a.scanListingPage(ctx, page)
		if err != nil {
			if errors.Is(err, sources.ErrStructure) {
				return nil, err
			}
			a.log.Warn("listing page failed, stopping discovery", "page", page, "error", err)
			break
		}
		if len(links) == 0 {
			break
		}
		candidates = append(candidates, links...)
	}

	if capped := a.limits.Cap(len(candidates)); capped < len(candidates) {
		a.log.Info("capping entries before detail fetch", "total", len(candidates), "cap", capped)
		candidates = candidates[:capped]
	}

	var (
		mu         sync.Mutex
		structural error
	)
	concerts := fetch.Map(ctx, candidates, a.limits.DetailConcurrency, func(ctx context.Context, url string) (concert.Concert, bool) {
		c, err := a.fetchDetail(ctx, url)
		if err != nil {
			if errors.Is(err, sources.ErrStructure) {
				mu.Lock()
				structural = err
				mu.Unlock()
				return concert.Concert{}, false
			}
			a.log.Warn("dropping entry", "url", url, "error", err)
			return concert.Concert{}, false
		}
		a.log.Debug("scanned concert", "title", c.Title, "datetime", c.Datetime)
		return c, true
	})
	if structural != nil {
		return nil, structural
	}

	a.log.Info("scan complete", "concerts", len(concerts))
	return concerts, nil
}

// scanListingPage returns the detail page URLs advertised by one listing
// page, minus the excluded category.
func (a *Adapter) scanListingPage(ctx context.Context, page int) ([]string, error) {
	body, err := a.client.Get(ctx, a.listingURL(page))
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, sources.Structural("southbank", "parse listing html", "", err)
	}

	var links []string
	doc.Find(selListingLink).Each(func(_ int, link *goquery.Selection) {
		href, ok := link.Attr("href")
		if !ok {
			return
		}
		if strings.Contains(href, excludedURLFragment) {
			return
		}
		if strings.HasPrefix(href, "/") {
			href = a.baseURL + href
		}
		links = append(links, href)
	})
	return links, nil
}
