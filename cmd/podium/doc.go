// Command podium scrapes classical concert listings from London venues into
// a single chronological feed. `podium scrape` runs the pipeline and persists
// the result; `podium list`, `podium export`, and `podium status` read the
// stored feed back out.
package main
