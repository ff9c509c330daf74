package download

import "time"

// Status is the outcome of a tracked download.
type Status string

const (
	StatusCompleted Status = "Completed"
	StatusFailed    Status = "Failed"
	StatusPending   Status = "Pending"
)

// Item is one entry in the download history. Sizes are kept as the display
// strings they were recorded with.
type Item struct {
	ID     int64     `json:"id"`
	Name   string    `json:"name"`
	Size   string    `json:"size"`
	Status Status    `json:"status"`
	Date   time.Time `json:"date"`
}
