package model

import "time"

// TimeFormat is the fixed timestamp layout used in persistence records.
const TimeFormat = "2006-01-02 15:04:05"

// FormatTime renders a timestamp in the persistence layout.
func FormatTime(t time.Time) string {
	return t.Format(TimeFormat)
}

// ParseTime parses a persisted timestamp. RFC 3339 and date-only values are
// accepted as fallbacks so data written by older tooling still loads.
func ParseTime(s string) (time.Time, error) {
	if t, err := time.Parse(TimeFormat, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
