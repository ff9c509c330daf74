package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config defines core configuration.
type Config struct {
	Store StoreConfig `yaml:"store"`
	Auth  AuthConfig  `yaml:"auth"`
	Sim   SimConfig   `yaml:"sim"`
	Log   LogConfig   `yaml:"log"`
}

type StoreConfig struct {
	// Backend selects the persistence backend: memory, file or sqlite.
	Backend string `yaml:"backend"`
	// Path is the store file (file backend) or database path (sqlite backend).
	Path string `yaml:"path"`
}

type AuthConfig struct {
	// SuperadminEmail is the distinguished address always promoted to superadmin.
	SuperadminEmail string `yaml:"superadmin_email"`
}

type SimConfig struct {
	// ChatReplyDelay is how long after a client message the canned support
	// reply is appended.
	ChatReplyDelay time.Duration `yaml:"chat_reply_delay"`
	// UploadTick is the interval between simulated upload progress steps.
	UploadTick time.Duration `yaml:"upload_tick"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Config{
		Store: StoreConfig{
			Backend: "sqlite",
			Path:    "frameview.db",
		},
		Auth: AuthConfig{
			SuperadminEmail: "ebadm7251@gmail.com",
		},
		Sim: SimConfig{
			ChatReplyDelay: 1500 * time.Millisecond,
			UploadTick:     200 * time.Millisecond,
		},
		Log: LogConfig{
			Level: "info",
		},
	}

	if path := os.Getenv("FRAMEVIEW_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if backend := os.Getenv("FRAMEVIEW_STORE_BACKEND"); backend != "" {
		cfg.Store.Backend = backend
	}
	if path := os.Getenv("FRAMEVIEW_STORE_PATH"); path != "" {
		cfg.Store.Path = path
	}
	if email := os.Getenv("FRAMEVIEW_SUPERADMIN_EMAIL"); email != "" {
		cfg.Auth.SuperadminEmail = email
	}
	if delay := os.Getenv("FRAMEVIEW_CHAT_REPLY_DELAY"); delay != "" {
		d, err := time.ParseDuration(delay)
		if err != nil {
			return Config{}, fmt.Errorf("invalid FRAMEVIEW_CHAT_REPLY_DELAY: %w", err)
		}
		cfg.Sim.ChatReplyDelay = d
	}
	if tick := os.Getenv("FRAMEVIEW_UPLOAD_TICK"); tick != "" {
		d, err := time.ParseDuration(tick)
		if err != nil {
			return Config{}, fmt.Errorf("invalid FRAMEVIEW_UPLOAD_TICK: %w", err)
		}
		cfg.Sim.UploadTick = d
	}
	if level := os.Getenv("FRAMEVIEW_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	switch cfg.Store.Backend {
	case "memory", "file", "sqlite":
	default:
		return Config{}, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
