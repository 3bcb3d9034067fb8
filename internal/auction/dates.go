package auction

import (
	"strings"
	"time"
)

// SentinelDate stands for dates that are missing or could not be parsed.
var SentinelDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

const (
	dayFirstLayout  = "02-01-2006"
	yearFirstLayout = "2006-01-02"
)

// ParseDate parses "14-07-2020 18:00:00 CET (ISO: ...)" into a date, only the
// text before the first space is considered.
func ParseDate(text string) (time.Time, bool) {
	if i := strings.IndexByte(text, ' '); i >= 0 {
		text = text[:i]
	}
	date, err := time.Parse(dayFirstLayout, strings.TrimSpace(text))
	if err != nil {
		return SentinelDate, false
	}
	return date, true
}

// ParseVehicleDate accepts both year-first and day-first dates, separated
// with dashes or slashes.
func ParseVehicleDate(text string) (time.Time, bool) {
	text = strings.ReplaceAll(strings.TrimSpace(text), "/", "-")
	if date, err := time.Parse(yearFirstLayout, text); err == nil {
		return date, true
	}
	if date, err := time.Parse(dayFirstLayout, text); err == nil {
		return date, true
	}
	return SentinelDate, false
}
