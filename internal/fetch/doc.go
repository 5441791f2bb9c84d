// Package fetch provides the shared HTTP fetcher used by every source
// adapter, plus a bounded-concurrency fan-out helper for detail page
// retrieval. The client is read-only after construction and safe to share
// across concurrently running scans.
package fetch
