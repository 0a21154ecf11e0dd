package util

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

const DateLayout = "2006-01-02"

const minEpochMillisDigits = 11

// ParseTimeFlexible keeps the offset written in the value; values without one are read as UTC.
func ParseTimeFlexible(timeStr string) (time.Time, error) {
	// Try parsing as RFC3339 (ISO 8601)
	t, err := time.Parse(time.RFC3339Nano, timeStr)
	if err == nil {
		return t, nil
	}

	// Anything else the dataset may carry: "2024-01-01", "20240115", "01/02/2024 10:00", "Jan 2, 2024"...
	t, err = dateparse.ParseIn(timeStr, time.UTC)
	if err == nil {
		return t, nil
	}

	// Try parsing as epoch milliseconds. Short digit runs are never epochs: "20240115" is a date.
	if len(timeStr) >= minEpochMillisDigits {
		if ms, err := strconv.ParseInt(timeStr, 10, 64); err == nil {
			return time.UnixMilli(ms).UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid time format: %s", timeStr)
}

// ParseDate parses a calendar date filter value. Full timestamps are accepted and truncated.
func ParseDate(dateStr string) (time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)
	if t, err := time.Parse(DateLayout, dateStr); err == nil {
		return t, nil
	}
	t, err := ParseTimeFlexible(dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %s", dateStr)
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}

func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}
