// Package wigmore scrapes Wigmore Hall concerts. The hall exposes a public
// JSON listings API, so the listing stage needs no HTML parsing at all; the
// detail stage re-fetches each event page and reads the machine-readable
// JSON payload the page embeds for its client-side renderer.
package wigmore
