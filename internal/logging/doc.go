// Package logging constructs the slog loggers used across podium. The
// console format renders compact single-line records for interactive runs;
// the json format emits machine-readable records for scheduled scrapes.
package logging
