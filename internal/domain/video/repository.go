package video

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/malikebad/frameview/internal/store"
)

// storageKey is the store key holding the JSON array of videos.
const storageKey = "dashboard-videos"

// fixtures seed the library on first use so the dashboard has something to
// show before the first real upload.
var fixtures = []Video{
	{
		ID:         1,
		Title:      "Project Alpha - Final Cut",
		Client:     "Client A",
		Status:     StatusDelivered,
		Comments:   []Comment{{User: "Client A", Text: "Looks great!"}},
		UploadedAt: time.Date(2025, 5, 10, 10, 0, 0, 0, time.UTC),
		FileURL:    PlaceholderURL,
		Source:     SourceLocal,
	},
	{
		ID:         2,
		Title:      "Marketing Campaign - Version 2",
		Client:     "Client B",
		Status:     StatusPendingReview,
		Comments:   []Comment{},
		UploadedAt: time.Date(2025, 5, 15, 14, 30, 0, 0, time.UTC),
		FileURL:    PlaceholderURL,
		Source:     SourceLocal,
	},
}

// Repository owns the video collection. There is deliberately no delete
// operation; the product never removes videos from the library.
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

// List returns all videos, seeding the demo fixtures when the collection is
// absent or empty.
func (r *Repository) List(ctx context.Context) ([]Video, error) {
	videos, err := store.LoadSlice[Video](ctx, r.store, storageKey)
	if err != nil {
		return nil, err
	}
	if len(videos) == 0 {
		seeded := append([]Video(nil), fixtures...)
		if err := store.SaveSlice(ctx, r.store, storageKey, seeded); err != nil {
			return nil, err
		}
		r.logger.InfoContext(ctx, "seeded video fixtures", "count", len(seeded))
		return seeded, nil
	}
	return videos, nil
}

// Find returns the video with the given id.
func (r *Repository) Find(ctx context.Context, id int) (Video, error) {
	videos, err := r.List(ctx)
	if err != nil {
		return Video{}, err
	}
	for _, v := range videos {
		if v.ID == id {
			return v, nil
		}
	}
	return Video{}, ErrNotFound
}

// Search returns videos whose title contains term, case-insensitively.
func (r *Repository) Search(ctx context.Context, term string) ([]Video, error) {
	videos, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	term = strings.ToLower(term)
	matched := make([]Video, 0, len(videos))
	for _, v := range videos {
		if strings.Contains(strings.ToLower(v.Title), term) {
			matched = append(matched, v)
		}
	}
	return matched, nil
}

// Add appends a new video with id max(existing)+1, or 1 for an empty
// collection. Local blob URLs are replaced with the placeholder before the
// record is persisted.
func (r *Repository) Add(ctx context.Context, input Input) (Video, error) {
	if strings.TrimSpace(input.Title) == "" {
		return Video{}, ErrEmptyTitle
	}

	videos, err := store.LoadSlice[Video](ctx, r.store, storageKey)
	if err != nil {
		return Video{}, err
	}

	nextID := 1
	for _, v := range videos {
		if v.ID >= nextID {
			nextID = v.ID + 1
		}
	}

	source := input.Source
	if source == "" {
		source = SourceLocal
	}
	fileURL := input.FileURL
	if fileURL == "" || (source == SourceLocal && strings.HasPrefix(fileURL, "blob:")) {
		fileURL = PlaceholderURL
	}

	created := Video{
		ID:         nextID,
		Title:      input.Title,
		Client:     input.Client,
		Status:     StatusUploaded,
		Comments:   []Comment{},
		UploadedAt: r.now(),
		FileURL:    fileURL,
		Source:     source,
	}
	videos = append(videos, created)
	if err := store.SaveSlice(ctx, r.store, storageKey, videos); err != nil {
		return Video{}, err
	}

	r.logger.InfoContext(ctx, "video added", "id", created.ID, "title", created.Title, "source", created.Source)
	return created, nil
}

// AddComment appends a comment to the video with the given id.
func (r *Repository) AddComment(ctx context.Context, id int, user, text string) (Video, error) {
	if strings.TrimSpace(text) == "" {
		return Video{}, ErrEmptyComment
	}
	return r.update(ctx, id, func(v *Video) error {
		v.Comments = append(v.Comments, Comment{User: user, Text: text})
		return nil
	})
}

// SetStatus moves the video with the given id to a new workflow status.
func (r *Repository) SetStatus(ctx context.Context, id int, status Status) (Video, error) {
	switch status {
	case StatusUploaded, StatusPendingReview, StatusDelivered:
	default:
		return Video{}, ErrInvalidStatus
	}
	return r.update(ctx, id, func(v *Video) error {
		v.Status = status
		return nil
	})
}

// PendingCount returns how many videos await review. Recomputed on every call.
func (r *Repository) PendingCount(ctx context.Context) (int, error) {
	videos, err := r.List(ctx)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, v := range videos {
		if v.Status == StatusPendingReview {
			count++
		}
	}
	return count, nil
}

// update applies patch to the matching video and rewrites the full
// collection.
func (r *Repository) update(ctx context.Context, id int, patch func(*Video) error) (Video, error) {
	videos, err := store.LoadSlice[Video](ctx, r.store, storageKey)
	if err != nil {
		return Video{}, err
	}
	for i := range videos {
		if videos[i].ID != id {
			continue
		}
		if err := patch(&videos[i]); err != nil {
			return Video{}, err
		}
		if err := store.SaveSlice(ctx, r.store, storageKey, videos); err != nil {
			return Video{}, err
		}
		return videos[i], nil
	}
	return Video{}, ErrNotFound
}
