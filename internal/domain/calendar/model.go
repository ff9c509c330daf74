package calendar

import "time"

// Event is a calendar entry. Dates carry the calendar day; the time of day
// lives in the separate "HH:MM" field, matching the stored shape. IDs are
// the creation timestamp in milliseconds.
type Event struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Time        string    `json:"time"`
	Date        time.Time `json:"date"`
}

// Input carries the caller-supplied fields for a new or updated event.
type Input struct {
	Title       string
	Description string
	Time        string
	Date        time.Time
}

// sameDay compares two instants by calendar day, ignoring time of day.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
