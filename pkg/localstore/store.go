package localstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/archiveshq/storefront/pkg/config"
	"github.com/archiveshq/storefront/pkg/logger"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("localstore: key not found")

// Store is the durable string-keyed, JSON-valued storage surface backing
// sessions, saved items and personal ratings.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Open builds the store selected by configuration.
func Open(ctx context.Context, cfg config.StoreConfig, logg *logger.Logger) (Store, error) {
	switch cfg.Driver {
	case config.StoreDriverSQLite:
		return OpenSQLite(ctx, cfg, logg)
	case config.StoreDriverRedis:
		return OpenRedis(ctx, cfg, logg)
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
}
