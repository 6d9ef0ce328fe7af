// Package roster groups bookings into the recency buckets shown by the
// admin bookings table, the carer roster and the client bookings page.
//
// Weeks start on Monday. All boundaries are computed from the start of
// "today" in the location the Window was built for.
package roster

import "time"

// Bucket is a named date range. The labels are part of the API contract.
type Bucket string

const (
	Earlier  Bucket = "Earlier"
	LastWeek Bucket = "Last Week"
	ThisWeek Bucket = "This Week"
	NextWeek Bucket = "Next Week"
	Later    Bucket = "Later"
	NoDate   Bucket = "No Date"
)

// Order is the fixed display order of buckets.
var Order = []Bucket{Earlier, LastWeek, ThisWeek, NextWeek, Later, NoDate}

// Window holds the week boundaries around a reference day.
//
//	Earlier    t <  LastWeekStart
//	Last Week  LastWeekStart <= t < ThisWeekStart
//	This Week  ThisWeekStart <= t <= ThisWeekEnd
//	Next Week  NextWeekStart <= t <= NextWeekEnd
//	Later      t >  NextWeekEnd
type Window struct {
	Today         time.Time
	LastWeekStart time.Time
	ThisWeekStart time.Time
	ThisWeekEnd   time.Time
	NextWeekStart time.Time
	NextWeekEnd   time.Time

	loc *time.Location
}

// NewWindow builds the window for the day containing now in loc.
// A nil loc means UTC.
func NewWindow(now time.Time, loc *time.Location) Window {
	if loc == nil {
		loc = time.UTC
	}
	now = now.In(loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	// time.Weekday has Sunday as 0; shift so Monday is 0.
	offset := (int(today.Weekday()) + 6) % 7
	thisWeekStart := today.AddDate(0, 0, -offset)
	nextWeekStart := thisWeekStart.AddDate(0, 0, 7)

	return Window{
		Today:         today,
		LastWeekStart: thisWeekStart.AddDate(0, 0, -7),
		ThisWeekStart: thisWeekStart,
		ThisWeekEnd:   nextWeekStart.Add(-time.Nanosecond),
		NextWeekStart: nextWeekStart,
		NextWeekEnd:   thisWeekStart.AddDate(0, 0, 14).Add(-time.Nanosecond),
		loc:           loc,
	}
}

// Location returns the location the window was computed in.
func (w Window) Location() *time.Location {
	if w.loc == nil {
		return time.UTC
	}
	return w.loc
}

// Bucket classifies t. A nil t falls into NoDate.
func (w Window) Bucket(t *time.Time) Bucket {
	if t == nil || t.IsZero() {
		return NoDate
	}
	switch {
	case t.Before(w.LastWeekStart):
		return Earlier
	case t.Before(w.ThisWeekStart):
		return LastWeek
	case !t.After(w.ThisWeekEnd):
		return ThisWeek
	case !t.After(w.NextWeekEnd):
		return NextWeek
	default:
		return Later
	}
}

// BucketDate classifies a calendar day stored at 00:00 UTC, reading it as
// that same day in the window's location.
func (w Window) BucketDate(day *time.Time) Bucket {
	if day == nil || day.IsZero() {
		return NoDate
	}
	local := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, w.Location())
	return w.Bucket(&local)
}
