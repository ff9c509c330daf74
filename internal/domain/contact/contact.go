package contact

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/malikebad/frameview/internal/store"
)

// storageKey is the store key holding the last-submitted contact request.
// Only the most recent submission is kept; each one overwrites the last.
const storageKey = "enterprise-contact-request"

var (
	// ErrMissingFields indicates a submission with required fields empty.
	ErrMissingFields = errors.New("all contact fields are required")
	// ErrInvalidEmail indicates a malformed company email.
	ErrInvalidEmail = errors.New("invalid company email")
)

// Request is an enterprise sales inquiry.
type Request struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	CompanyEmail string `json:"companyEmail"`
	Company      string `json:"company"`
	Message      string `json:"message"`
}

// Repository owns the single stored contact request.
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

// Submit validates and stores the request, replacing any earlier one.
// Last name and message are optional; the form only insists on first name,
// company email and company.
func (r *Repository) Submit(ctx context.Context, request Request) error {
	if strings.TrimSpace(request.FirstName) == "" ||
		strings.TrimSpace(request.CompanyEmail) == "" ||
		strings.TrimSpace(request.Company) == "" {
		return ErrMissingFields
	}
	if !strings.Contains(request.CompanyEmail, "@") {
		return ErrInvalidEmail
	}
	if err := store.SaveObject(ctx, r.store, storageKey, request); err != nil {
		return err
	}
	r.logger.InfoContext(ctx, "contact request submitted", "company", request.Company)
	return nil
}

// Last returns the most recent submission, if any.
func (r *Repository) Last(ctx context.Context) (Request, bool, error) {
	return store.LoadObject[Request](ctx, r.store, storageKey)
}
