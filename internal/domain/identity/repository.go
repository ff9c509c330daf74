package identity

import (
	"context"

	"github.com/malikebad/frameview/internal/store"
)

// storageKey is the store key holding the JSON array of accounts.
const storageKey = "frameio-users"

// Repository manages the durable list of registered accounts. Every
// mutation rewrites the full collection; email matching is exact and
// case-sensitive, matching how accounts were stored.
type Repository struct {
	store store.Store
}

// NewRepository creates a Repository over s.
func NewRepository(s store.Store) *Repository {
	return &Repository{store: s}
}

// List returns all registered accounts. An absent or unreadable value is an
// empty list.
func (r *Repository) List(ctx context.Context) ([]Account, error) {
	return store.LoadSlice[Account](ctx, r.store, storageKey)
}

// FindByEmail returns the account registered under email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (Account, error) {
	accounts, err := r.List(ctx)
	if err != nil {
		return Account{}, err
	}
	for _, account := range accounts {
		if account.Email == email {
			return account, nil
		}
	}
	return Account{}, ErrNotFound
}

// Upsert replaces the account with the same email, or appends it when new.
func (r *Repository) Upsert(ctx context.Context, account Account) error {
	accounts, err := r.List(ctx)
	if err != nil {
		return err
	}
	replaced := false
	for i := range accounts {
		if accounts[i].Email == account.Email {
			accounts[i] = account
			replaced = true
			break
		}
	}
	if !replaced {
		accounts = append(accounts, account)
	}
	return store.SaveSlice(ctx, r.store, storageKey, accounts)
}

// Remove deletes the account registered under email and reports whether
// anything was removed.
func (r *Repository) Remove(ctx context.Context, email string) (bool, error) {
	accounts, err := r.List(ctx)
	if err != nil {
		return false, err
	}
	kept := accounts[:0]
	removed := false
	for _, account := range accounts {
		if account.Email == email {
			removed = true
			continue
		}
		kept = append(kept, account)
	}
	if !removed {
		return false, nil
	}
	if err := store.SaveSlice(ctx, r.store, storageKey, kept); err != nil {
		return false, err
	}
	return true, nil
}
