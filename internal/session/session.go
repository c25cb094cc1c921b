package session

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/archiveshq/storefront/pkg/localstore"
	"github.com/archiveshq/storefront/pkg/logger"
)

const (
	// userKey holds the signed-in account snapshot. There is only ever one
	// signed-in account per device, so the key is fixed.
	userKey = "archives-user"

	// savedKeyPrefix scopes saved-item lists per account so a sign-out and
	// sign-in as someone else never mixes wishlists.
	savedKeyPrefix = "archives-saved-"
)

// User is the locally persisted snapshot of a signed-in account.
type User struct {
	Email      string   `json:"email"`
	Name       string   `json:"name"`
	SavedItems []string `json:"savedItems"`
}

// Store persists the session snapshot and per-account saved items. All
// operations are best effort: reads fail closed, write failures are logged
// and otherwise ignored.
type Store struct {
	store localstore.Store
	logg  *logger.Logger
}

// NewStore builds a session store over the given local store.
func NewStore(store localstore.Store, logg *logger.Logger) (*Store, error) {
	if store == nil {
		return nil, errors.New("local store is required")
	}
	return &Store{store: store, logg: logg}, nil
}

// Load returns the persisted user, or nil when no session is stored or the
// stored payload cannot be read.
func (s *Store) Load(ctx context.Context) *User {
	raw, err := s.store.Get(ctx, userKey)
	if err != nil {
		if !errors.Is(err, localstore.ErrNotFound) && s.logg != nil {
			s.logg.Warn(ctx, "reading stored session failed")
		}
		return nil
	}

	var user User
	if err := json.Unmarshal(raw, &user); err != nil || user.Email == "" {
		return nil
	}
	if user.SavedItems == nil {
		user.SavedItems = []string{}
	}
	return &user
}

// Save persists the user snapshot.
func (s *Store) Save(ctx context.Context, user User) {
	if user.SavedItems == nil {
		user.SavedItems = []string{}
	}
	raw, err := json.Marshal(user)
	if err != nil {
		return
	}
	if err := s.store.Set(ctx, userKey, raw); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithEmail(ctx, user.Email), "persisting session failed")
	}
}

// Clear removes the persisted session snapshot. Per-account saved item
// lists are left in place for the next sign-in.
func (s *Store) Clear(ctx context.Context) {
	if err := s.store.Delete(ctx, userKey); err != nil && s.logg != nil {
		s.logg.Warn(ctx, "clearing session failed")
	}
}

// SavedItemsFor returns the persisted saved-item list for an account, or an
// empty list when none is stored.
func (s *Store) SavedItemsFor(ctx context.Context, email string) []string {
	raw, err := s.store.Get(ctx, savedKeyPrefix+email)
	if err != nil {
		if !errors.Is(err, localstore.ErrNotFound) && s.logg != nil {
			s.logg.Warn(s.logg.WithEmail(ctx, email), "reading saved items failed")
		}
		return []string{}
	}

	var items []string
	if err := json.Unmarshal(raw, &items); err != nil || items == nil {
		return []string{}
	}
	return items
}

// SaveItemsFor persists an account's saved-item list under its own key.
func (s *Store) SaveItemsFor(ctx context.Context, email string, items []string) {
	if items == nil {
		items = []string{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return
	}
	if err := s.store.Set(ctx, savedKeyPrefix+email, raw); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithEmail(ctx, email), "persisting saved items failed")
	}
}
