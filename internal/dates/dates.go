// Package dates provides the calendar boundaries used to bucket expenses.
//
// All helpers work in the location carried by their argument, so callers
// decide which time zone "today" belongs to.
package dates

import (
	"fmt"
	"time"
)

// Layout is the canonical date-only format stored on every expense.
const Layout = "2006-01-02"

// FormatDate returns t as YYYY-MM-DD in t's location.
func FormatDate(t time.Time) string {
	return t.Format(Layout)
}

// ParseDate returns midnight of the YYYY-MM-DD day s in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	d, err := time.ParseInLocation(Layout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return d, nil
}

// StartOfDay returns midnight of t's calendar day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns midnight of the Monday on or before t.
// Weeks start on Monday regardless of locale.
func StartOfWeek(t time.Time) time.Time {
	offset := int(t.Weekday()) - 1
	if t.Weekday() == time.Sunday {
		offset = 6
	}
	return StartOfDay(t).AddDate(0, 0, -offset)
}

// StartOfMonth returns midnight of the first day of t's month.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
