// Package favorites keeps the per-product favorite flags: optimistic local
// toggles, durable canonical "true"/"false" values, and a repair pass that
// purges anything else.
package favorites

import (
	"context"
	"sync"
	"time"

	"github.com/mario443-has/tienda-lumiere-glamour/internal/repository"
)

// KeyPrefix scopes favorite flags in the store, one key per product.
const KeyPrefix = "favorito-"

// Listener observes favorite flips. Every registered listener is invoked on
// each change, so all surfaces showing the same product stay in sync, not
// just the one that was clicked.
type Listener func(productID string, favorite bool)

type Store struct {
	mu        sync.Mutex
	store     repository.KVStore
	ttl       time.Duration
	inFlight  map[string]bool
	listeners []Listener
}

func NewStore(kv repository.KVStore, ttl time.Duration) *Store {
	return &Store{
		store:    kv,
		ttl:      ttl,
		inFlight: make(map[string]bool),
	}
}

// OnChange registers a listener for favorite flips.
func (s *Store) OnChange(fn Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// IsFavorite reads the persisted flag. Absent or corrupt values read as false.
func (s *Store) IsFavorite(ctx context.Context, productID string) bool {
	data, err := s.store.Get(ctx, KeyPrefix+productID)
	if err != nil {
		return false
	}
	return string(data) == "true"
}

// Toggle flips and persists the flag, returning the new value and a release
// func the caller must invoke once the toggle has settled (e.g. after the
// best-effort server call returns). While unsettled, further toggles for the
// same product are refused: ok is false and the current value is returned
// unchanged.
func (s *Store) Toggle(ctx context.Context, productID string) (value bool, release func(), ok bool) {
	s.mu.Lock()
	if s.inFlight[productID] {
		s.mu.Unlock()
		return s.IsFavorite(ctx, productID), func() {}, false
	}
	s.inFlight[productID] = true
	s.mu.Unlock()

	newValue := !s.IsFavorite(ctx, productID)
	s.persist(ctx, productID, newValue)
	s.broadcast(productID, newValue)

	var once sync.Once
	release = func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.inFlight, productID)
			s.mu.Unlock()
		})
	}
	return newValue, release, true
}

// Set forces the flag to the given value, persisting and broadcasting only on
// an actual change. Used when the server's authoritative answer corrects an
// optimistic toggle.
func (s *Store) Set(ctx context.Context, productID string, favorite bool) {
	if s.IsFavorite(ctx, productID) == favorite {
		return
	}
	s.persist(ctx, productID, favorite)
	s.broadcast(productID, favorite)
}

// Repair scans all persisted favorite keys and deletes any whose value is not
// exactly "true" or "false". Run once at session hydration.
func (s *Store) Repair(ctx context.Context) error {
	keys, err := s.store.Keys(ctx, KeyPrefix)
	if err != nil {
		return err
	}
	for _, key := range keys {
		data, err := s.store.Get(ctx, key)
		if err != nil {
			continue
		}
		if v := string(data); v != "true" && v != "false" {
			_ = s.store.Delete(ctx, key)
		}
	}
	return nil
}

func (s *Store) persist(ctx context.Context, productID string, favorite bool) {
	value := "false"
	if favorite {
		value = "true"
	}
	_ = s.store.Set(ctx, KeyPrefix+productID, []byte(value), s.ttl)
}

func (s *Store) broadcast(productID string, favorite bool) {
	s.mu.Lock()
	listeners := make([]Listener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(productID, favorite)
	}
}
