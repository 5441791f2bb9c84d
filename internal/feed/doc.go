// Package feed persists the aggregated concert listings. Each scrape run
// replaces the stored feed wholesale, so the database always reflects the
// latest successful run, and the same records can be exported as a JSON
// document for downstream consumers.
package feed
