package core

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	dayFirstRe = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})`)
	isoDateRe  = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})`)
)

// ParseDate normalizes the two date formats the sheets contain: day-first
// "DD/MM/YYYY" and ISO "YYYY-MM-DD".
//
// Both are anchored at 12:00 local time. Midnight-anchored dates roll back a
// day when they pass through a UTC-based formatter in a positive-offset
// timezone; noon keeps the calendar date stable in either direction. Keep
// this anchor when touching this function.
//
// Unrecognized formats fall through to a small set of generic layouts, and
// empty or hopeless input yields the current time, matching the best-effort
// stance of the rest of the parsing layer.
func ParseDate(text string) time.Time {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Now()
	}

	if m := dayFirstRe.FindStringSubmatch(text); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		return time.Date(year, time.Month(month), day, 12, 0, 0, 0, time.Local)
	}

	if m := isoDateRe.FindStringSubmatch(text); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		return time.Date(year, time.Month(month), day, 12, 0, 0, 0, time.Local)
	}

	for _, layout := range []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006/01/02",
		"Jan 2, 2006",
		"2 Jan 2006",
	} {
		if t, err := time.ParseInLocation(layout, text, time.Local); err == nil {
			return t
		}
	}
	return time.Now()
}

// FormatDate renders a canonical YYYY-MM-DD string in local time. Formatting
// in local time is the other half of the noon-anchor trick in ParseDate.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// MonthKey buckets a time into its calendar month, e.g. "2024-03".
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// SameMonth reports whether two times fall in the same calendar month.
func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}
