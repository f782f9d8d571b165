package util

import (
	"time"
)

// dateLayouts are the layouts seen across the raw CSV files. Day-first
// numeric forms come before month-first ones so 03/02/2024 reads as
// 3 February.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"02-01-2006",
	"2/1/2006",
	"2 Jan 2006",
	"Jan-06",
	"Jan 2006",
	"January 2006",
}

var monthLayouts = []string{
	"2006-01",
	"Jan 2006",
	"January 2006",
	"Jan-2006",
}

// ParseDate tries the known CSV date layouts. Returns (t, true) if any
// worked.
func ParseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseMonth parses a month selector like "2025-07" or "Jul 2025" and
// normalizes it to the first of the month.
func ParseMonth(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range monthLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return MonthStart(t), true
		}
	}
	if t, ok := ParseDate(s); ok {
		return MonthStart(t), true
	}
	return time.Time{}, false
}

// MonthStart truncates a time to the first of its month, UTC.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// MonthEnd returns the last instant of t's month, so a Through cut keeps
// every observation stamped inside the month.
func MonthEnd(t time.Time) time.Time {
	return MonthStart(t).AddDate(0, 1, 0).Add(-time.Nanosecond)
}

// FormatMonth renders a month as e.g. "July 2025".
func FormatMonth(t time.Time) string {
	return t.Format("January 2006")
}

// FormatMonthShort renders a month as e.g. "Jul_2025", used in filenames.
func FormatMonthShort(t time.Time) string {
	return t.Format("Jan_2006")
}
