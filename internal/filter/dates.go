package filter

import (
	"fmt"
	"strings"
	"time"
)

const dateOnlyLayout = "2006-01-02"

// ParseBound parses a --from-date/--to-date value. It accepts an ISO 8601
// date (YYYY-MM-DD), interpreted in loc, or an RFC 3339 timestamp.
// With endOfDay set, a date-only value covers the whole day.
func ParseBound(value string, endOfDay bool, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if loc == nil {
		loc = time.Local
	}

	if t, err := time.ParseInLocation(dateOnlyLayout, value, loc); err == nil {
		if endOfDay {
			return t.AddDate(0, 0, 1).Add(-time.Nanosecond), nil
		}
		return t, nil
	}

	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("%q is not a YYYY-MM-DD date or RFC 3339 time", value)
}
