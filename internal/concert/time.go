package concert

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

var (
	// ErrNonexistentTime reports a wall-clock time skipped by the spring DST
	// transition (the clocks jump from 01:00 to 02:00).
	ErrNonexistentTime = errors.New("nonexistent London local time")
	// ErrAmbiguousTime reports a wall-clock time that occurs twice during the
	// autumn DST transition.
	ErrAmbiguousTime = errors.New("ambiguous London local time")
)

var londonOnce = sync.OnceValues(func() (*time.Location, error) {
	return time.LoadLocation("Europe/London")
})

// London returns the Europe/London location used for all wall-clock
// reconstruction.
func London() (*time.Location, error) {
	return londonOnce()
}

// LondonToUTC interprets a civil date and wall-clock time in the London
// calendar and returns the corresponding UTC instant. An ambiguous or
// nonexistent local time is an error, never silently coerced: guessing an
// offset across a DST transition would shift the event by an hour.
func LondonToUTC(year int, month time.Month, day, hour, minute int) (time.Time, error) {
	loc, err := London()
	if err != nil {
		return time.Time{}, fmt.Errorf("load London timezone: %w", err)
	}

	t := time.Date(year, month, day, hour, minute, 0, 0, loc)
	if t.Year() != year || t.Month() != month || t.Day() != day || t.Hour() != hour || t.Minute() != minute {
		return time.Time{}, fmt.Errorf("%w: %04d-%02d-%02d %02d:%02d", ErrNonexistentTime, year, month, day, hour, minute)
	}

	// The same wall clock one hour away in either direction means the offset
	// changed underneath it and the local time maps to two instants.
	for _, shifted := range []time.Time{t.Add(-time.Hour), t.Add(time.Hour)} {
		if shifted.Hour() == hour && shifted.Minute() == minute && shifted.Day() == day {
			return time.Time{}, fmt.Errorf("%w: %04d-%02d-%02d %02d:%02d", ErrAmbiguousTime, year, month, day, hour, minute)
		}
	}

	return t.UTC(), nil
}

// DateToUTC is LondonToUTC for a bare date, used when a source publishes no
// start time. Midnight is a placeholder, not a statement that the event
// starts at midnight; the limitation is inherited from the source.
func DateToUTC(year int, month time.Month, day int) (time.Time, error) {
	return LondonToUTC(year, month, day, 0, 0)
}
