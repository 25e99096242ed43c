package model

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidDate = errors.New("invalid date format")

// Layouts accepted for due dates, most specific first. Zone-less values are
// read as UTC.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDate parses an ISO-8601 date or date-time.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

// DatePart returns the YYYY-MM-DD portion of an ISO timestamp.
func DatePart(s string) string {
	date, _, _ := strings.Cut(s, "T")
	return date
}

// FormatTimestamp renders t as a full ISO-8601 UTC timestamp with
// millisecond precision.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}
