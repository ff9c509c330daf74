package store_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/malikebad/frameview/internal/store"
)

func TestMemory_Roundtrip(t *testing.T) {
	s := store.NewMemory()
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "missing")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.Set(ctx, "frameio-user", `{"email":"ann@x.com"}`))

	value, ok, err := s.Get(ctx, "frameio-user")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `{"email":"ann@x.com"}`, value)

	require.NoError(t, s.Delete(ctx, "frameio-user"))
	_, ok, err = s.Get(ctx, "frameio-user")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestFile_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frameview.json")
	s, err := store.NewFile(path)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "dashboard-videos", `[]`))
	require.NoError(t, s.Set(ctx, "calendar-events", `[{"id":1}]`))

	// Reopen to prove the values survive the instance.
	reopened, err := store.NewFile(path)
	require.NoError(t, err)
	value, ok, err := reopened.Get(ctx, "calendar-events")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `[{"id":1}]`, value)

	require.NoError(t, reopened.Delete(ctx, "dashboard-videos"))
	_, ok, err = reopened.Get(ctx, "dashboard-videos")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestFile_CorruptFileActsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frameview.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s, err := store.NewFile(path)
	require.NoError(t, err)

	_, ok, err := s.Get(context.Background(), "frameio-users")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestLoadSlice_MalformedValueIsEmpty(t *testing.T) {
	s := store.NewMemory()
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "dashboard-invitations", "not-json"))

	type invitation struct {
		ID int64 `json:"id"`
	}
	items, err := store.LoadSlice[invitation](ctx, s, "dashboard-invitations")
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestSaveSlice_NilBecomesEmptyArray(t *testing.T) {
	s := store.NewMemory()
	ctx := context.Background()

	require.NoError(t, store.SaveSlice[int](ctx, s, "dashboard-videos", nil))
	value, ok, err := s.Get(ctx, "dashboard-videos")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "[]", value)
}

type failingStore struct{}

var errDiskFull = errors.New("disk full")

func (failingStore) Get(context.Context, string) (string, bool, error) { return "", false, nil }
func (failingStore) Set(context.Context, string, string) error        { return errDiskFull }
func (failingStore) Delete(context.Context, string) error             { return nil }

func TestSaveSlice_WrapsWriteError(t *testing.T) {
	err := store.SaveSlice[int](context.Background(), failingStore{}, "dashboard-videos", []int{1})
	require.Error(t, err)

	var writeErr *store.WriteError
	require.ErrorAs(t, err, &writeErr)
	require.Equal(t, "dashboard-videos", writeErr.Key)
	require.ErrorIs(t, err, errDiskFull)
}

func TestLoadObject_Roundtrip(t *testing.T) {
	s := store.NewMemory()
	ctx := context.Background()

	type request struct {
		Company string `json:"company"`
	}
	_, ok, err := store.LoadObject[request](ctx, s, "enterprise-contact-request")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, store.SaveObject(ctx, s, "enterprise-contact-request", request{Company: "Acme"}))
	loaded, ok, err := store.LoadObject[request](ctx, s, "enterprise-contact-request")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "Acme", loaded.Company)
}
