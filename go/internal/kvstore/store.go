package kvstore

import (
	"context"
	"fmt"
)

// Store is a durable string-keyed, string-valued store.
type Store interface {
	// GetString returns the value for key; ok is false when the key is absent.
	GetString(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
	Close() error
}

// Backend names accepted by New
const (
	BackendMemory   = "memory"
	BackendBadger   = "badger"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

// Config selects and configures a backend.
type Config struct {
	Backend     string
	BadgerPath  string
	SQLitePath  string
	Redis       RedisConfig
	PostgresDSN string
}

// New opens the configured backend. An empty backend selects badger when a path
// is set and memory otherwise.
func New(ctx context.Context, cfg Config) (Store, error) {
	backend := cfg.Backend
	if backend == "" {
		backend = BackendMemory
		if cfg.BadgerPath != "" {
			backend = BackendBadger
		}
	}

	switch backend {
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendBadger:
		return OpenBadgerStore(cfg.BadgerPath)
	case BackendRedis:
		return NewRedisStore(ctx, cfg.Redis)
	case BackendPostgres:
		return NewPostgresStore(ctx, cfg.PostgresDSN)
	case BackendSQLite:
		return OpenSQLiteStore(ctx, cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown kv store backend: %s (supported: memory, badger, redis, postgres, sqlite)", backend)
	}
}
