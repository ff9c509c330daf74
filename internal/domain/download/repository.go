package download

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/malikebad/frameview/internal/store"
)

// storageKey is the store key holding the JSON array of download records.
const storageKey = "dashboard-downloads"

// ErrNotFound indicates no download exists with the given id.
var ErrNotFound = errors.New("download not found")

// Repository owns the read-mostly download history. When no history exists
// it is seeded with fixture rows so the page has content to render.
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

// fixtures mirror the demo history rows, with ages relative to now.
func (r *Repository) fixtures() []Item {
	now := r.now()
	return []Item{
		{ID: 1, Name: "Project_Alpha_Final.mp4", Size: "256MB", Status: StatusCompleted, Date: now.Add(-24 * time.Hour)},
		{ID: 2, Name: "Marketing_Assets_V2.zip", Size: "1.2GB", Status: StatusCompleted, Date: now.Add(-48 * time.Hour)},
		{ID: 3, Name: "Client_Feedback_Notes.pdf", Size: "2.5MB", Status: StatusFailed, Date: now.Add(-time.Hour)},
	}
}

// List returns the download history, seeding fixtures when the key is absent.
// Unlike the seeded video library, the fixture rows are not written back:
// the history stays read-mostly until a real record lands.
func (r *Repository) List(ctx context.Context) ([]Item, error) {
	raw, ok, err := r.store.Get(ctx, storageKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return r.fixtures(), nil
	}
	var items []Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, nil
	}
	return items, nil
}

// Record appends a download entry with a millisecond-timestamp id.
func (r *Repository) Record(ctx context.Context, name, size string, status Status) (Item, error) {
	items, err := r.List(ctx)
	if err != nil {
		return Item{}, err
	}

	now := r.now()
	created := Item{ID: now.UnixMilli(), Name: name, Size: size, Status: status, Date: now}
	items = append(items, created)
	if err := store.SaveSlice(ctx, r.store, storageKey, items); err != nil {
		return Item{}, err
	}
	r.logger.InfoContext(ctx, "download recorded", "name", name, "status", status)
	return created, nil
}

// Search returns history entries whose name contains term, case-insensitively.
func (r *Repository) Search(ctx context.Context, term string) ([]Item, error) {
	items, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	term = strings.ToLower(term)
	matched := make([]Item, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Name), term) {
			matched = append(matched, item)
		}
	}
	return matched, nil
}

// ClearHistory drops the stored history. The next List shows fixtures again,
// exactly as the product behaves after a clear.
func (r *Repository) ClearHistory(ctx context.Context) error {
	if err := r.store.Delete(ctx, storageKey); err != nil {
		return &store.WriteError{Key: storageKey, Err: err}
	}
	r.logger.InfoContext(ctx, "download history cleared")
	return nil
}

// Retry is a demo action: it verifies the entry exists but performs no
// transfer and mutates nothing.
func (r *Repository) Retry(ctx context.Context, id int64) error {
	items, err := r.List(ctx)
	if err != nil {
		return err
	}
	for _, item := range items {
		if item.ID == id {
			r.logger.InfoContext(ctx, "retrying download", "name", item.Name)
			return nil
		}
	}
	return ErrNotFound
}
