package ratings

import (
	"context"
	"encoding/json"
	"errors"
	"math"

	"github.com/archiveshq/storefront/pkg/localstore"
	"github.com/archiveshq/storefront/pkg/logger"
)

// storageKey is deliberately not scoped to a user: personal ratings are a
// device preference shared across accounts.
const storageKey = "productRatings"

// Map holds a device's personal ratings keyed by product id.
type Map map[string]int

// Store reads and writes the personal rating map. Every failure path
// degrades: reads fall back to an empty map, writes are dropped.
type Store struct {
	store localstore.Store
	logg  *logger.Logger
}

// NewStore builds a rating store over the given local store.
func NewStore(store localstore.Store, logg *logger.Logger) (*Store, error) {
	if store == nil {
		return nil, errors.New("local store is required")
	}
	return &Store{store: store, logg: logg}, nil
}

// Stored returns the persisted rating map, or an empty map when the key is
// absent, the payload is corrupt, or storage is unavailable.
func (s *Store) Stored(ctx context.Context) Map {
	raw, err := s.store.Get(ctx, storageKey)
	if err != nil {
		if !errors.Is(err, localstore.ErrNotFound) && s.logg != nil {
			s.logg.Warn(ctx, "reading stored ratings failed")
		}
		return Map{}
	}

	var parsed Map
	if err := json.Unmarshal(raw, &parsed); err != nil || parsed == nil {
		return Map{}
	}
	return parsed
}

// Save clamps the rating to [1,5], rounds it to the nearest integer and
// merges it into the stored map. Storage failures are swallowed.
func (s *Store) Save(ctx context.Context, productID string, rating float64) {
	safe := int(math.Round(rating))
	if safe < 1 {
		safe = 1
	}
	if safe > 5 {
		safe = 5
	}

	updated := s.Stored(ctx)
	updated[productID] = safe

	raw, err := json.Marshal(updated)
	if err != nil {
		return
	}
	if err := s.store.Set(ctx, storageKey, raw); err != nil && s.logg != nil {
		s.logg.Warn(ctx, "persisting rating failed")
	}
}
