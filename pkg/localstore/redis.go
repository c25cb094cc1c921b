package localstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/archiveshq/storefront/pkg/config"
	"github.com/archiveshq/storefront/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const keyNamespace = "archives"

type cmdable interface {
	Ping(context.Context) *redis.StatusCmd
	Set(context.Context, string, any, time.Duration) *redis.StatusCmd
	Get(context.Context, string) *redis.StringCmd
	Del(context.Context, ...string) *redis.IntCmd
}

// RedisStore keeps entries in a shared redis instance, for deployments
// where the device-local state lives off-box.
type RedisStore struct {
	store cmdable
	raw   *redis.Client
}

// OpenRedis bootstraps a redis-backed store and verifies connectivity.
func OpenRedis(ctx context.Context, cfg config.StoreConfig, logg *logger.Logger) (*RedisStore, error) {
	opts, err := redisOptions(cfg)
	if err != nil {
		return nil, err
	}
	raw := redis.NewClient(opts)
	if err := raw.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	if logg != nil {
		logg.Info(ctx, "redis local store opened")
	}
	return &RedisStore{store: raw, raw: raw}, nil
}

func redisOptions(cfg config.StoreConfig) (*redis.Options, error) {
	if cfg.RedisURL == "" && cfg.RedisAddress == "" {
		return nil, errors.New("redis url or address is required")
	}
	var opts *redis.Options
	if cfg.RedisURL != "" {
		parsed, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("parsing redis url: %w", err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{
			Addr:     cfg.RedisAddress,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}
	}
	if opts.PoolSize == 0 {
		opts.PoolSize = cfg.RedisPoolSize
	}
	if opts.MinIdleConns == 0 {
		opts.MinIdleConns = cfg.RedisMinIdleConns
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = cfg.RedisDialTimeout
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = cfg.RedisReadTimeout
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = cfg.RedisWriteTimeout
	}
	return opts, nil
}

func namespaced(key string) string {
	return fmt.Sprintf("%s:%s", keyNamespace, key)
}

// Get returns the value stored at key, or ErrNotFound.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := s.store.Get(ctx, namespaced(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return val, nil
}

// Set stores the value at key without expiry.
func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	return s.store.Set(ctx, namespaced(key), value, 0).Err()
}

// Delete removes the entry at key if present.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.store.Del(ctx, namespaced(key)).Err()
}

// Close releases the underlying client.
func (s *RedisStore) Close() error {
	if s.raw == nil {
		return nil
	}
	return s.raw.Close()
}
