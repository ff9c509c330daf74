package invitation

import "time"

// Status is the lifecycle state of a sent invitation.
type Status string

const (
	StatusPending  Status = "Pending"
	StatusAccepted Status = "Accepted"
	StatusRevoked  Status = "Revoked"
)

// Invitation records an email invited to the workspace. IDs are the send
// timestamp in milliseconds, matching the stored shape.
type Invitation struct {
	ID     int64     `json:"id"`
	Email  string    `json:"email"`
	Date   time.Time `json:"date"`
	Status Status    `json:"status"`
}

// Active reports whether the invitation still counts against the
// one-active-invitation-per-email rule.
func (i Invitation) Active() bool {
	return i.Status != StatusRevoked
}
