package settings

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/malikebad/frameview/internal/store"
)

// storageKey is the store key holding the JSON object of boolean toggles.
const storageKey = "dashboard-notifications"

// ErrUnknownToggle indicates a toggle name outside the known set.
var ErrUnknownToggle = errors.New("unknown notification toggle")

// Notifications is the set of per-user notification toggles. Field names
// match the stored JSON shape.
type Notifications struct {
	EmailNotifications bool `json:"emailNotifications"`
	PushNotifications  bool `json:"pushNotifications"`
	WeeklyDigest       bool `json:"weeklyDigest"`
	SMSAlerts          bool `json:"smsAlerts"`
}

// DefaultNotifications are the toggles a user starts with.
func DefaultNotifications() Notifications {
	return Notifications{
		EmailNotifications: true,
		PushNotifications:  true,
		WeeklyDigest:       true,
		SMSAlerts:          false,
	}
}

// Repository owns the notification-toggle object.
type Repository struct {
	store  store.Store
	logger *slog.Logger
}

// NewRepository creates a Repository over s.
func NewRepository(s store.Store, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Repository{store: s, logger: logger}
}

// Get returns the stored toggles, or the defaults when nothing is stored.
func (r *Repository) Get(ctx context.Context) (Notifications, error) {
	stored, ok, err := store.LoadObject[Notifications](ctx, r.store, storageKey)
	if err != nil {
		return Notifications{}, err
	}
	if !ok {
		return DefaultNotifications(), nil
	}
	return stored, nil
}

// Set overwrites the stored toggles.
func (r *Repository) Set(ctx context.Context, n Notifications) error {
	if err := store.SaveObject(ctx, r.store, storageKey, n); err != nil {
		return err
	}
	r.logger.InfoContext(ctx, "notification settings updated")
	return nil
}

// Toggle flips one named toggle and returns the resulting settings.
func (r *Repository) Toggle(ctx context.Context, name string) (Notifications, error) {
	current, err := r.Get(ctx)
	if err != nil {
		return Notifications{}, err
	}
	switch name {
	case "emailNotifications":
		current.EmailNotifications = !current.EmailNotifications
	case "pushNotifications":
		current.PushNotifications = !current.PushNotifications
	case "weeklyDigest":
		current.WeeklyDigest = !current.WeeklyDigest
	case "smsAlerts":
		current.SMSAlerts = !current.SMSAlerts
	default:
		return Notifications{}, ErrUnknownToggle
	}
	if err := r.Set(ctx, current); err != nil {
		return Notifications{}, err
	}
	return current, nil
}
