package auth

import "github.com/malikebad/frameview/internal/domain/identity"

// State is the lifecycle state of the session manager.
type State string

const (
	// StateInitializing means Restore has not completed yet. Gates must show
	// a loading indicator and never redirect while in this state.
	StateInitializing State = "initializing"
	// StateAnonymous means no user is logged in.
	StateAnonymous State = "anonymous"
	// StateAuthenticated means a session is active.
	StateAuthenticated State = "authenticated"
)

// Session is the persisted projection of the authenticated account. It
// exists exactly while a user is logged in.
type Session struct {
	Email string        `json:"email"`
	Name  string        `json:"name"`
	Role  identity.Role `json:"role"`
}

// Observer is notified whenever the active session changes. A nil session
// means the user became anonymous.
type Observer func(session *Session)
