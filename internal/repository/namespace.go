package repository

import (
	"context"
	"strings"
	"time"
)

// namespacedKVStore prefixes every key with a session scope, so each browser
// session sees its own key space with the bare storefront keys
// ("carritoLumiere", "favorito-<id>") intact.
type namespacedKVStore struct {
	inner  KVStore
	prefix string
}

// Namespace wraps a store so all keys live under the given prefix.
func Namespace(inner KVStore, prefix string) KVStore {
	return &namespacedKVStore{inner: inner, prefix: prefix}
}

func (s *namespacedKVStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.inner.Set(ctx, s.prefix+key, value, ttl)
}

func (s *namespacedKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	return s.inner.Get(ctx, s.prefix+key)
}

func (s *namespacedKVStore) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, s.prefix+key)
}

func (s *namespacedKVStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	keys, err := s.inner.Keys(ctx, s.prefix+prefix)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, strings.TrimPrefix(k, s.prefix))
	}
	return out, nil
}
