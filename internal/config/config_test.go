package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "sqlite", cfg.Store.Backend)
	require.Equal(t, "ebadm7251@gmail.com", cfg.Auth.SuperadminEmail)
	require.Equal(t, 1500*time.Millisecond, cfg.Sim.ChatReplyDelay)
	require.Equal(t, 200*time.Millisecond, cfg.Sim.UploadTick)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("FRAMEVIEW_STORE_BACKEND", "memory")
	t.Setenv("FRAMEVIEW_CHAT_REPLY_DELAY", "10ms")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "memory", cfg.Store.Backend)
	require.Equal(t, 10*time.Millisecond, cfg.Sim.ChatReplyDelay)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store:\n  backend: file\n  path: /tmp/fv.json\nlog:\n  level: debug\n"), 0o644))
	t.Setenv("FRAMEVIEW_CONFIG_PATH", path)
	t.Setenv("FRAMEVIEW_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "file", cfg.Store.Backend)
	require.Equal(t, "/tmp/fv.json", cfg.Store.Path)
	// Env wins over the file.
	require.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_RejectsUnknownBackend(t *testing.T) {
	t.Setenv("FRAMEVIEW_STORE_BACKEND", "redis")
	_, err := Load()
	require.Error(t, err)
}
