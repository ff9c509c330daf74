package auth

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/malikebad/frameview/internal/domain/identity"
	"github.com/malikebad/frameview/internal/store"
)

// sessionKey is the store key holding the current-user session object.
const sessionKey = "frameio-user"

// minPasswordLength matches the sign-up form rule.
const minPasswordLength = 6

// Service is the session manager: it owns the single active session,
// persists it across restarts and mediates every auth flow.
type Service struct {
	accounts        *identity.Repository
	store           store.Store
	superadminEmail string
	logger          *slog.Logger

	mu        sync.RWMutex
	state     State
	current   *Session
	observers []Observer
}

// NewService creates a session manager in the Initializing state.
// superadminEmail is the distinguished address always promoted to superadmin.
func NewService(accounts *identity.Repository, s store.Store, superadminEmail string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{
		accounts:        accounts,
		store:           s,
		superadminEmail: superadminEmail,
		logger:          logger,
		state:           StateInitializing,
	}
}

// Subscribe registers an observer invoked on every session change.
func (s *Service) Subscribe(observer Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, observer)
}

// State returns the current lifecycle state.
func (s *Service) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Current returns a copy of the active session, or nil when anonymous or
// still initializing.
func (s *Service) Current() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	session := *s.current
	return &session
}

// Restore loads the persisted session, moving the manager out of
// Initializing. It must run before any authorization decision is made.
// Calling it again after the first run is a no-op.
func (s *Service) Restore(ctx context.Context) (*Session, error) {
	s.mu.Lock()
	if s.state != StateInitializing {
		defer s.mu.Unlock()
		if s.current == nil {
			return nil, nil
		}
		session := *s.current
		return &session, nil
	}
	s.mu.Unlock()

	session, ok, err := store.LoadObject[Session](ctx, s.store, sessionKey)
	if err != nil {
		return nil, fmt.Errorf("restoring session: %w", err)
	}

	s.mu.Lock()
	if !ok {
		s.state = StateAnonymous
		s.current = nil
		s.mu.Unlock()
		s.logger.InfoContext(ctx, "no persisted session, starting anonymous")
		return nil, nil
	}
	s.state = StateAuthenticated
	s.current = &session
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "session restored", "email", session.Email, "role", session.Role)
	copied := session
	return &copied, nil
}

// Login authenticates email/password against the identity repository with an
// exact, case-sensitive compare. On success the session is persisted and
// observers are notified; on failure no state changes.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	accounts, err := s.accounts.List(ctx)
	if err != nil {
		return nil, err
	}

	var found *identity.Account
	for i := range accounts {
		if accounts[i].Email == email && accounts[i].Password == password {
			found = &accounts[i]
			break
		}
	}
	if found == nil {
		s.logger.WarnContext(ctx, "login failed", "email", email)
		return nil, ErrInvalidCredentials
	}

	session := Session{
		Email: found.Email,
		Name:  found.Name,
		Role:  s.effectiveRole(found.Email, found.Role),
	}
	if err := s.activate(ctx, session); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "login succeeded", "email", session.Email, "role", session.Role)
	copied := session
	return &copied, nil
}

// Signup registers a new client account and logs it in.
func (s *Service) Signup(ctx context.Context, name, email, password string) (*Session, error) {
	return s.SignupWithRole(ctx, name, email, password, identity.RoleClient)
}

// SignupWithRole registers a new account with an explicit role and logs it
// in. The distinguished email is always promoted to superadmin regardless of
// the requested role. A duplicate email rejects the signup without mutation.
func (s *Service) SignupWithRole(ctx context.Context, name, email, password string, role identity.Role) (*Session, error) {
	account, err := s.register(ctx, name, email, password, role)
	if err != nil {
		return nil, err
	}

	session := Session{Email: account.Email, Name: account.Name, Role: account.Role}
	if err := s.activate(ctx, session); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "signup succeeded", "email", session.Email, "role", session.Role)
	copied := session
	return &copied, nil
}

// CreateSubAdmin registers a subadmin account. Unlike signup it requires the
// active session to be a superadmin and does not replace that session; the
// role check lives here at the operation boundary, not only in the caller.
func (s *Service) CreateSubAdmin(ctx context.Context, name, email, password string) error {
	current := s.Current()
	if current == nil {
		return ErrNotAuthenticated
	}
	if current.Role != identity.RoleSuperAdmin {
		s.logger.WarnContext(ctx, "subadmin creation denied", "actor", current.Email, "role", current.Role)
		return ErrForbidden
	}

	if _, err := s.register(ctx, name, email, password, identity.RoleSubAdmin); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "subadmin created", "email", email, "actor", current.Email)
	return nil
}

// Logout clears the persisted and in-memory session and notifies observers.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.store.Delete(ctx, sessionKey); err != nil {
		return &store.WriteError{Key: sessionKey, Err: err}
	}

	s.mu.Lock()
	s.state = StateAnonymous
	s.current = nil
	observers := append([]Observer(nil), s.observers...)
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "logged out")
	for _, observer := range observers {
		observer(nil)
	}
	return nil
}

// UpdateProfile renames the active account and refreshes the session.
func (s *Service) UpdateProfile(ctx context.Context, name string) error {
	current := s.Current()
	if current == nil {
		return ErrNotAuthenticated
	}
	if strings.TrimSpace(name) == "" {
		return ErrInvalidInput
	}

	account, err := s.accounts.FindByEmail(ctx, current.Email)
	if err != nil {
		return err
	}
	account.Name = name
	if err := s.accounts.Upsert(ctx, account); err != nil {
		return err
	}

	session := *current
	session.Name = name
	if err := s.activate(ctx, session); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "profile updated", "email", session.Email)
	return nil
}

// ChangePassword verifies the current password and stores the new one.
func (s *Service) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	current := s.Current()
	if current == nil {
		return ErrNotAuthenticated
	}
	if len(newPassword) < minPasswordLength {
		return ErrInvalidInput
	}

	account, err := s.accounts.FindByEmail(ctx, current.Email)
	if err != nil {
		return err
	}
	if account.Password != currentPassword {
		return ErrPasswordMismatch
	}
	account.Password = newPassword
	if err := s.accounts.Upsert(ctx, account); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "password changed", "email", account.Email)
	return nil
}

// DeleteAccount removes the active account from the identity repository and
// ends the session.
func (s *Service) DeleteAccount(ctx context.Context) error {
	current := s.Current()
	if current == nil {
		return ErrNotAuthenticated
	}

	removed, err := s.accounts.Remove(ctx, current.Email)
	if err != nil {
		return err
	}
	if !removed {
		return identity.ErrNotFound
	}

	s.logger.InfoContext(ctx, "account deleted", "email", current.Email)
	return s.Logout(ctx)
}

// register validates and appends a new account without touching the session.
func (s *Service) register(ctx context.Context, name, email, password string, role identity.Role) (identity.Account, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" || password == "" {
		return identity.Account{}, ErrInvalidInput
	}
	if !strings.Contains(email, "@") {
		return identity.Account{}, ErrInvalidInput
	}
	if len(password) < minPasswordLength {
		return identity.Account{}, ErrInvalidInput
	}

	accounts, err := s.accounts.List(ctx)
	if err != nil {
		return identity.Account{}, err
	}
	for _, existing := range accounts {
		if existing.Email == email {
			s.logger.WarnContext(ctx, "signup rejected, email exists", "email", email)
			return identity.Account{}, ErrEmailTaken
		}
	}

	account := identity.Account{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     s.effectiveRole(email, role),
	}
	if err := s.accounts.Upsert(ctx, account); err != nil {
		return identity.Account{}, err
	}
	return account, nil
}

// activate persists session, makes it current and notifies observers.
func (s *Service) activate(ctx context.Context, session Session) error {
	if err := store.SaveObject(ctx, s.store, sessionKey, session); err != nil {
		return err
	}

	s.mu.Lock()
	s.state = StateAuthenticated
	s.current = &session
	observers := append([]Observer(nil), s.observers...)
	s.mu.Unlock()

	for _, observer := range observers {
		copied := session
		observer(&copied)
	}
	return nil
}

// effectiveRole promotes the distinguished email to superadmin and defaults
// everything unknown to client.
func (s *Service) effectiveRole(email string, role identity.Role) identity.Role {
	if s.superadminEmail != "" && email == s.superadminEmail {
		return identity.RoleSuperAdmin
	}
	return identity.ParseRole(string(role))
}
