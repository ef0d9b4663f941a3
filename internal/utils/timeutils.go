package utils

import (
	"fmt"
	"time"
)

// instantLayouts covers the ISO-8601-like shapes the Azure APIs emit. Zoned
// variants first; the zone-less ones are interpreted as UTC.
var instantLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseInstant parses a timestamp in any of the accepted layouts. An empty
// value or an unrecognised shape yields an error; callers treat that as an
// absent instant, never as a record failure.
func ParseInstant(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("empty time value")
	}
	for _, layout := range instantLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised time value %q", value)
}

// DayKey renders an instant as the daily-distribution bucket key, in the
// instant's own offset.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
