package store

import (
	"context"
	"encoding/json"
)

// LoadSlice reads and decodes the JSON array stored under key. An absent or
// malformed value decodes as an empty slice, never an error: repositories
// treat unreadable state as first use.
func LoadSlice[T any](ctx context.Context, s Store, key string) ([]T, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, nil
	}
	return items, nil
}

// SaveSlice encodes items as a JSON array and rewrites the full value under
// key. Backend failures are wrapped in *WriteError.
func SaveSlice[T any](ctx context.Context, s Store, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return &WriteError{Key: key, Err: err}
	}
	if err := s.Set(ctx, key, string(data)); err != nil {
		return &WriteError{Key: key, Err: err}
	}
	return nil
}

// LoadObject reads and decodes the JSON object stored under key into zero.
// The second return reports whether a well-formed value was present.
func LoadObject[T any](ctx context.Context, s Store, key string) (T, bool, error) {
	var zero T
	raw, ok, err := s.Get(ctx, key)
	if err != nil {
		return zero, false, err
	}
	if !ok {
		return zero, false, nil
	}
	if err := json.Unmarshal([]byte(raw), &zero); err != nil {
		return zero, false, nil
	}
	return zero, true, nil
}

// SaveObject encodes value as a JSON object and overwrites key.
func SaveObject[T any](ctx context.Context, s Store, key string, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return &WriteError{Key: key, Err: err}
	}
	if err := s.Set(ctx, key, string(data)); err != nil {
		return &WriteError{Key: key, Err: err}
	}
	return nil
}
