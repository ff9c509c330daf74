package chat

import "time"

// SenderType distinguishes the two sides of a support thread.
type SenderType string

const (
	SenderClient  SenderType = "client"
	SenderSupport SenderType = "support"
)

// Message is one chat entry. IDs are the send timestamp in milliseconds;
// the synthesized support reply is stamped one past its own timestamp so it
// stays distinct even within the same millisecond.
type Message struct {
	ID         int64      `json:"id"`
	User       string     `json:"user"`
	Text       string     `json:"text"`
	Timestamp  time.Time  `json:"timestamp"`
	SenderType SenderType `json:"senderType"`
}
