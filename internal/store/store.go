// Package store persists the serialised document under a single key.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"

	"velorace/internal/config"
)

// ErrNotFound is returned by Load when nothing is stored under the key.
var ErrNotFound = errors.New("document not found")

// Store holds one opaque document per key. Save is a full overwrite; the
// backend is responsible for never handing back a partial write.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Close() error
}

// Open builds the backend named in cfg.Store.
func Open(cfg config.Config) (Store, error) {
	switch cfg.Store {
	case "sqlite", "":
		return OpenSQLite(cfg.SQLitePath)
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr,
			DB:   cfg.RedisDB,
		})
		return NewRedis(client), nil
	case "memory":
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store)
	}
}
