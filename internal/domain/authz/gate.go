package authz

import (
	"slices"

	"github.com/malikebad/frameview/internal/domain/auth"
	"github.com/malikebad/frameview/internal/domain/identity"
)

// Decision is the outcome of a gate check for a protected view.
type Decision string

const (
	// ShowLoading means session restore has not finished; render a loading
	// indicator and do not redirect yet.
	ShowLoading Decision = "loading"
	// RedirectToSignIn means the caller may not view the resource. Anonymous
	// callers and authenticated callers with the wrong role both land here;
	// the product never distinguished the two.
	RedirectToSignIn Decision = "redirect"
	// Allow means the protected content may render.
	Allow Decision = "allow"
)

// Gate decides whether the active session may view a protected resource.
type Gate struct {
	sessions *auth.Service
}

// NewGate creates a Gate over the session manager.
func NewGate(sessions *auth.Service) *Gate {
	return &Gate{sessions: sessions}
}

// Check evaluates the current session against allowed. An empty allowed set
// admits any authenticated role.
func (g *Gate) Check(allowed ...identity.Role) Decision {
	return Decide(g.sessions.State(), g.sessions.Current(), allowed)
}

// Decide is the pure gate rule, usable without a live session manager.
func Decide(state auth.State, session *auth.Session, allowed []identity.Role) Decision {
	if state == auth.StateInitializing {
		return ShowLoading
	}
	if session == nil {
		return RedirectToSignIn
	}
	if len(allowed) > 0 && !slices.Contains(allowed, session.Role) {
		return RedirectToSignIn
	}
	return Allow
}
