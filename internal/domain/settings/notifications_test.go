package settings_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/malikebad/frameview/internal/domain/settings"
	"github.com/malikebad/frameview/internal/store"
)

func TestGet_DefaultsWhenUnset(t *testing.T) {
	repo := settings.NewRepository(store.NewMemory(), nil)

	n, err := repo.Get(context.Background())
	require.NoError(t, err)
	require.True(t, n.EmailNotifications)
	require.True(t, n.PushNotifications)
	require.True(t, n.WeeklyDigest)
	require.False(t, n.SMSAlerts)
}

func TestToggle_PersistsAcrossInstances(t *testing.T) {
	s := store.NewMemory()
	repo := settings.NewRepository(s, nil)
	ctx := context.Background()

	n, err := repo.Toggle(ctx, "smsAlerts")
	require.NoError(t, err)
	require.True(t, n.SMSAlerts)

	n, err = repo.Toggle(ctx, "weeklyDigest")
	require.NoError(t, err)
	require.False(t, n.WeeklyDigest)

	reloaded, err := settings.NewRepository(s, nil).Get(ctx)
	require.NoError(t, err)
	require.True(t, reloaded.SMSAlerts)
	require.False(t, reloaded.WeeklyDigest)
}

func TestToggle_UnknownName(t *testing.T) {
	repo := settings.NewRepository(store.NewMemory(), nil)

	_, err := repo.Toggle(context.Background(), "carrierPigeon")
	require.ErrorIs(t, err, settings.ErrUnknownToggle)
}
