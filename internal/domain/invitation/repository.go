package invitation

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/malikebad/frameview/internal/store"
)

// storageKey is the store key holding the JSON array of invitations.
const storageKey = "dashboard-invitations"

// Repository owns the sent-invitations collection. Invitations are never
// hard-deleted; revocation is a status change.
type Repository struct {
	store  store.Store
	now    func() time.Time
	logger *slog.Logger
}

// NewRepository creates a Repository over s. now may be nil for wall-clock time.
func NewRepository(s store.Store, now func() time.Time, logger *slog.Logger) *Repository {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Repository{store: s, now: now, logger: logger}
}

// List returns all sent invitations in send order.
func (r *Repository) List(ctx context.Context) ([]Invitation, error) {
	return store.LoadSlice[Invitation](ctx, r.store, storageKey)
}

// Send records a new pending invitation. The address must look like an
// email, and at most one active invitation may exist per address; the
// duplicate check runs at creation time only.
func (r *Repository) Send(ctx context.Context, email string) (Invitation, error) {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return Invitation{}, ErrInvalidEmail
	}

	invitations, err := r.List(ctx)
	if err != nil {
		return Invitation{}, err
	}
	for _, existing := range invitations {
		if existing.Email == email && existing.Active() {
			r.logger.WarnContext(ctx, "invitation rejected, active one exists", "email", email)
			return Invitation{}, ErrActiveExists
		}
	}

	now := r.now()
	created := Invitation{
		ID:     now.UnixMilli(),
		Email:  email,
		Date:   now,
		Status: StatusPending,
	}
	invitations = append(invitations, created)
	if err := store.SaveSlice(ctx, r.store, storageKey, invitations); err != nil {
		return Invitation{}, err
	}

	r.logger.InfoContext(ctx, "invitation sent", "email", email, "id", created.ID)
	return created, nil
}

// Revoke marks the invitation with the given id as revoked.
func (r *Repository) Revoke(ctx context.Context, id int64) (Invitation, error) {
	invitations, err := r.List(ctx)
	if err != nil {
		return Invitation{}, err
	}
	for i := range invitations {
		if invitations[i].ID != id {
			continue
		}
		invitations[i].Status = StatusRevoked
		if err := store.SaveSlice(ctx, r.store, storageKey, invitations); err != nil {
			return Invitation{}, err
		}
		r.logger.InfoContext(ctx, "invitation revoked", "email", invitations[i].Email, "id", id)
		return invitations[i], nil
	}
	return Invitation{}, ErrNotFound
}

// Resend is a demo action: it confirms a pending invitation exists for the
// address but sends nothing and mutates nothing.
func (r *Repository) Resend(ctx context.Context, email string) error {
	invitations, err := r.List(ctx)
	if err != nil {
		return err
	}
	for _, existing := range invitations {
		if existing.Email == email && existing.Status == StatusPending {
			r.logger.InfoContext(ctx, "invitation resent", "email", email)
			return nil
		}
	}
	return ErrNotFound
}

// PendingCount returns how many invitations are still pending.
func (r *Repository) PendingCount(ctx context.Context) (int, error) {
	invitations, err := r.List(ctx)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, existing := range invitations {
		if existing.Status == StatusPending {
			count++
		}
	}
	return count, nil
}
