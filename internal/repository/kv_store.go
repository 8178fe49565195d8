package repository

import (
	"context"
	"time"
)

// KVStore abstracts the durable key-value state behind the storefront:
// serialized carts and per-product favorite flags.
// Implementations: Redis (production), Postgres (durable single box),
// or in-memory (local dev / tests).
type KVStore interface {
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	// Keys returns every stored key with the given prefix. Used by the
	// favorites repair pass.
	Keys(ctx context.Context, prefix string) ([]string, error)
}
