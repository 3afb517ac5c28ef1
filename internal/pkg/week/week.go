// Package week computes the Monday-aligned windows that bound availability
// queries and calendar navigation.
package week

import "time"

// Days is the length of one window.
const Days = 7

// Navigation limits relative to the current real week.
const (
	backWeeks    = 1
	forwardWeeks = 2
)

// StartOf returns Monday 00:00 of t's ISO week, in t's location.
func StartOf(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -offset)
}

// AddDays returns the instant exactly n calendar days after t.
func AddDays(t time.Time, n int) time.Time { return t.AddDate(0, 0, n) }

// End returns the exclusive end of the window starting at weekStart.
func End(weekStart time.Time) time.Time { return weekStart.AddDate(0, 0, Days) }

// Contains reports whether instant falls in [weekStart, weekStart+7d).
func Contains(weekStart, instant time.Time) bool {
	return !instant.Before(weekStart) && instant.Before(End(weekStart))
}

// Clamp aligns t to its week start and restricts it to the allowed
// navigation range: one week back through two weeks forward of now's week.
func Clamp(t, now time.Time) time.Time {
	w := StartOf(t)
	cur := StartOf(now)
	min := cur.AddDate(0, 0, -backWeeks*Days)
	max := cur.AddDate(0, 0, forwardWeeks*Days)
	if w.Before(min) {
		return min
	}
	if w.After(max) {
		return max
	}
	return w
}
