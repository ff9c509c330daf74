package video_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/malikebad/frameview/internal/domain/video"
	"github.com/malikebad/frameview/internal/store"
)

func fixedNow() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func TestList_SeedsFixturesOnFirstUse(t *testing.T) {
	s := store.NewMemory()
	repo := video.NewRepository(s, fixedNow, nil)
	ctx := context.Background()

	videos, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, videos, 2)
	require.Equal(t, "Project Alpha - Final Cut", videos[0].Title)
	require.Equal(t, video.StatusDelivered, videos[0].Status)
	for _, v := range videos {
		require.Equal(t, video.PlaceholderURL, v.FileURL)
		require.Equal(t, video.SourceLocal, v.Source)
	}

	// The seed is persisted with the full demo shape, not recomputed.
	raw, ok, err := s.Get(ctx, "dashboard-videos")
	require.NoError(t, err)
	require.True(t, ok)
	require.Contains(t, raw, "Marketing Campaign - Version 2")
	require.Contains(t, raw, `"fileUrl":"#"`)
	require.Contains(t, raw, `"source":"local"`)
}

func TestAdd_AssignsMaxPlusOne(t *testing.T) {
	repo := video.NewRepository(store.NewMemory(), fixedNow, nil)
	ctx := context.Background()

	// Fixtures occupy ids 1 and 2 once the library has been read.
	_, err := repo.List(ctx)
	require.NoError(t, err)

	created, err := repo.Add(ctx, video.Input{Title: "cut_03.mp4", Client: "Current Client"})
	require.NoError(t, err)
	require.Equal(t, 3, created.ID)
	require.Equal(t, video.StatusUploaded, created.Status)
	require.Empty(t, created.Comments)
	require.Equal(t, fixedNow(), created.UploadedAt)
}

func TestAdd_FirstVideoInEmptyCollectionGetsID1(t *testing.T) {
	s := store.NewMemory()
	ctx := context.Background()
	// An explicitly empty collection is not reseeded by Add.
	require.NoError(t, s.Set(ctx, "dashboard-videos", "[]"))

	repo := video.NewRepository(s, fixedNow, nil)
	created, err := repo.Add(ctx, video.Input{Title: "first.mp4"})
	require.NoError(t, err)
	require.Equal(t, 1, created.ID)
}

func TestAdd_ReplacesBlobURLWithPlaceholder(t *testing.T) {
	repo := video.NewRepository(store.NewMemory(), fixedNow, nil)
	ctx := context.Background()

	created, err := repo.Add(ctx, video.Input{Title: "local.mp4", FileURL: "blob:http://app/abc", Source: video.SourceLocal})
	require.NoError(t, err)
	require.Equal(t, video.PlaceholderURL, created.FileURL)

	cloud, err := repo.Add(ctx, video.Input{Title: "drive.mp4", FileURL: "https://drive.example/v.mp4", Source: video.SourceGoogleDrive})
	require.NoError(t, err)
	require.Equal(t, "https://drive.example/v.mp4", cloud.FileURL)
}

func TestAddComment(t *testing.T) {
	repo := video.NewRepository(store.NewMemory(), fixedNow, nil)
	ctx := context.Background()

	_, err := repo.List(ctx)
	require.NoError(t, err)

	updated, err := repo.AddComment(ctx, 2, "Current Client", "Please brighten the intro.")
	require.NoError(t, err)
	require.Len(t, updated.Comments, 1)
	require.Equal(t, "Current Client", updated.Comments[0].User)

	// Append-only: a second comment lands after the first.
	updated, err = repo.AddComment(ctx, 2, "Editor", "Done.")
	require.NoError(t, err)
	require.Len(t, updated.Comments, 2)
	require.Equal(t, "Done.", updated.Comments[1].Text)

	_, err = repo.AddComment(ctx, 2, "Current Client", "   ")
	require.ErrorIs(t, err, video.ErrEmptyComment)

	_, err = repo.AddComment(ctx, 99, "Current Client", "hello")
	require.ErrorIs(t, err, video.ErrNotFound)
}

func TestSetStatusAndPendingCount(t *testing.T) {
	repo := video.NewRepository(store.NewMemory(), fixedNow, nil)
	ctx := context.Background()

	count, err := repo.PendingCount(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	_, err = repo.SetStatus(ctx, 1, video.StatusPendingReview)
	require.NoError(t, err)
	count, err = repo.PendingCount(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, count)

	_, err = repo.SetStatus(ctx, 1, "Archived")
	require.ErrorIs(t, err, video.ErrInvalidStatus)
}

func TestSearch_CaseInsensitiveTitleSubstring(t *testing.T) {
	repo := video.NewRepository(store.NewMemory(), fixedNow, nil)
	ctx := context.Background()

	matched, err := repo.Search(ctx, "alpha")
	require.NoError(t, err)
	require.Len(t, matched, 1)
	require.Equal(t, 1, matched[0].ID)

	matched, err = repo.Search(ctx, "")
	require.NoError(t, err)
	require.Len(t, matched, 2)
}

func TestFind(t *testing.T) {
	repo := video.NewRepository(store.NewMemory(), fixedNow, nil)
	ctx := context.Background()

	found, err := repo.Find(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, "Marketing Campaign - Version 2", found.Title)

	_, err = repo.Find(ctx, 42)
	require.ErrorIs(t, err, video.ErrNotFound)
}

func TestList_ReseedsExplicitlyEmptyCollection(t *testing.T) {
	s := store.NewMemory()
	ctx := context.Background()
	// The overview page seeds whenever the stored list has no entries, so a
	// stored "[]" gets the fixtures back on the next read.
	require.NoError(t, s.Set(ctx, "dashboard-videos", "[]"))

	repo := video.NewRepository(s, fixedNow, nil)
	videos, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, videos, 2)
}

func TestMalformedCollectionActsEmptyAndReseeds(t *testing.T) {
	s := store.NewMemory()
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "dashboard-videos", "{broken"))

	repo := video.NewRepository(s, fixedNow, nil)
	videos, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, videos, 2)
}
