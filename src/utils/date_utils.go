package utils

import "time"

// ExportDateFormat renders dates the way the console screens do.
const ExportDateFormat = "01/02/2006"

// MonthKey buckets a timestamp at calendar-month granularity.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// SameCalendarDay reports whether a and b fall on the same calendar day,
// compared in a's location.
func SameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	return ay == by && am == bm && ad == bd
}

// WithinRollingWindow reports whether t is within d of now, inclusive of
// now itself. Rolling windows are relative to the evaluation moment, not
// calendar-aligned, so the same filter evaluated twice near a boundary may
// legitimately differ.
func WithinRollingWindow(t, now time.Time, d time.Duration) bool {
	return !t.After(now) && now.Sub(t) <= d
}
