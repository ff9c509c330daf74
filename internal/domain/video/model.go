package video

import "time"

// Status tracks where a video sits in the review workflow.
type Status string

const (
	StatusUploaded      Status = "Uploaded"
	StatusPendingReview Status = "Pending Review"
	StatusDelivered     Status = "Delivered"
)

// Source identifies where an uploaded file came from.
type Source string

const (
	SourceLocal       Source = "local"
	SourceGoogleDrive Source = "Google Drive"
	SourceDropbox     Source = "Dropbox"
)

// PlaceholderURL is stored in place of transient local blob URLs, which are
// meaningless after the originating session ends.
const PlaceholderURL = "#"

// Comment is feedback attached to a video. Comments are append-only.
type Comment struct {
	User string `json:"user"`
	Text string `json:"text"`
}

// Video is one entry in the review library. IDs are unique within the
// collection and assigned as max(existing)+1.
type Video struct {
	ID         int       `json:"id"`
	Title      string    `json:"title"`
	Client     string    `json:"client"`
	Status     Status    `json:"status"`
	Comments   []Comment `json:"comments"`
	UploadedAt time.Time `json:"uploadedAt"`
	FileURL    string    `json:"fileUrl,omitempty"`
	Source     Source    `json:"source,omitempty"`
}

// Input carries the caller-supplied fields for a new video.
type Input struct {
	Title   string
	Client  string
	FileURL string
	Source  Source
}
