// Package proms scrapes the BBC Proms season listing. The whole season lives
// on one page, with concerts grouped under shared date headings, so the scan
// needs no detail fetches at all.
package proms
