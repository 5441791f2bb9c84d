package southbank

import (
	"strconv"
	"strings"
	"unicode"

	"podium/internal/sources"
)

// parseClockTime reads the listing's "H.MMam/pm" time format. The minute
// segment is optional ("9pm" means 21:00). Twelve-hour conversion follows
// the usual rules: 12am is midnight, 12pm stays noon, any other pm hour
// gains twelve. An unrecognized suffix means the page format changed and is
// fatal rather than guessable.
func parseClockTime(text string) (hour, minute int, err error) {
	rest := text

	digits := leadingDigits(rest)
	if digits == "" {
		return 0, 0, sources.Structural("southbank", "parse time", text, nil)
	}
	hour, _ = strconv.Atoi(digits)
	rest = rest[len(digits):]

	rest = strings.TrimLeft(rest, ".")
	if digits = leadingDigits(rest); digits != "" {
		minute, _ = strconv.Atoi(digits)
		rest = rest[len(digits):]
	}

	switch rest {
	case "pm":
		if hour < 12 {
			hour += 12
		}
	case "am":
		if hour == 12 {
			hour = 0
		}
	default:
		return 0, 0, sources.Structural("southbank", "parse time suffix", text, nil)
	}

	if hour > 23 || minute > 59 {
		return 0, 0, sources.Structural("southbank", "parse time", text, nil)
	}
	return hour, minute, nil
}

func leadingDigits(s string) string {
	for i, r := range s {
		if !unicode.IsDigit(r) {
			return s[:i]
		}
	}
	return s
}
