// Package southbank scrapes the Southbank Centre's classical-music listing.
// The listing is paginated with no declared page count, so discovery walks
// numbered pages until one comes back empty, and every field of interest
// lives in free text on the per-event detail page.
package southbank
