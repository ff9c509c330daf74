package calendar

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/malikebad/frameview/internal/store"
)

// storageKey is the store key holding the JSON array of events.
const storageKey = "calendar-events"

// Repository owns the calendar-event collection.
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

// List returns all events.
func (r *Repository) List(ctx context.Context) ([]Event, error) {
	return store.LoadSlice[Event](ctx, r.store, storageKey)
}

// Add creates a new event with a millisecond-timestamp id.
func (r *Repository) Add(ctx context.Context, input Input) (Event, error) {
	if err := validate(input); err != nil {
		return Event{}, err
	}

	events, err := r.List(ctx)
	if err != nil {
		return Event{}, err
	}

	created := Event{
		ID:          r.now().UnixMilli(),
		Title:       input.Title,
		Description: input.Description,
		Time:        input.Time,
		Date:        input.Date,
	}
	events = append(events, created)
	if err := store.SaveSlice(ctx, r.store, storageKey, events); err != nil {
		return Event{}, err
	}

	r.logger.InfoContext(ctx, "event added", "id", created.ID, "title", created.Title)
	return created, nil
}

// Update replaces the fields of the event with the given id.
func (r *Repository) Update(ctx context.Context, id int64, input Input) (Event, error) {
	if err := validate(input); err != nil {
		return Event{}, err
	}

	events, err := r.List(ctx)
	if err != nil {
		return Event{}, err
	}
	for i := range events {
		if events[i].ID != id {
			continue
		}
		events[i].Title = input.Title
		events[i].Description = input.Description
		events[i].Time = input.Time
		events[i].Date = input.Date
		if err := store.SaveSlice(ctx, r.store, storageKey, events); err != nil {
			return Event{}, err
		}
		r.logger.InfoContext(ctx, "event updated", "id", id)
		return events[i], nil
	}
	return Event{}, ErrNotFound
}

// Remove deletes the event with the given id and reports whether it existed.
func (r *Repository) Remove(ctx context.Context, id int64) (bool, error) {
	events, err := r.List(ctx)
	if err != nil {
		return false, err
	}
	kept := events[:0]
	removed := false
	for _, event := range events {
		if event.ID == id {
			removed = true
			continue
		}
		kept = append(kept, event)
	}
	if !removed {
		return false, nil
	}
	if err := store.SaveSlice(ctx, r.store, storageKey, kept); err != nil {
		return false, err
	}
	r.logger.InfoContext(ctx, "event deleted", "id", id)
	return true, nil
}

// EventsOn returns the events falling on the same calendar day as day,
// ordered by their "HH:MM" time ascending. Recomputed on every call.
func (r *Repository) EventsOn(ctx context.Context, day time.Time) ([]Event, error) {
	events, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]Event, 0, len(events))
	for _, event := range events {
		if sameDay(event.Date, day) {
			matched = append(matched, event)
		}
	}
	// Zero-padded HH:MM strings order correctly under plain string compare.
	slices.SortStableFunc(matched, func(a, b Event) int {
		return strings.Compare(a.Time, b.Time)
	})
	return matched, nil
}

func validate(input Input) error {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Time) == "" {
		return ErrMissingFields
	}
	return nil
}
