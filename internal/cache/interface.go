package cache

import (
	"context"
	"time"
)

// Cache is the key-value store cart snapshots are written to. Values are JSON encoded.
type Cache interface {
	Get(ctx context.Context, key string, value any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

func Key(prefix string, id string) string {
	return prefix + ":" + id
}

const (
	CartKeyPrefix = "cart"
)
