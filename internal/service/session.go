package service

import (
	"context"
	"sync"
	"time"

	"github.com/mario443-has/tienda-lumiere-glamour/internal/cart"
	"github.com/mario443-has/tienda-lumiere-glamour/internal/favorites"
	"github.com/mario443-has/tienda-lumiere-glamour/internal/repository"
	"github.com/mario443-has/tienda-lumiere-glamour/internal/view"
	"github.com/mario443-has/tienda-lumiere-glamour/internal/whatsapp"
)

// Session bundles the state owned by one browser session: the cart manager
// (sole writer of the cart key), the favorites store (sole writer of the
// favorite keys), and the view binder rendering cart surfaces.
type Session struct {
	ID        string
	Cart      *cart.Manager
	Favorites *favorites.Store
	View      *view.Binder
}

// SessionRegistry hands out hydrated sessions, creating them lazily. Each
// session gets a namespaced slice of the shared store, so in-session keys are
// the bare storefront keys ("carritoLumiere", "favorito-<id>"). Cached
// sessions are evicted after sitting idle for the store TTL, so a visitor
// returning later re-hydrates from the store instead of reading a stale
// in-memory cart, and the cache cannot grow without bound.
type SessionRegistry struct {
	mu               sync.Mutex
	store            repository.KVStore
	ttl              time.Duration
	placeholderImage string
	formatter        *whatsapp.Formatter
	sessions         map[string]*sessionEntry
}

type sessionEntry struct {
	session  *Session
	lastSeen time.Time
}

func NewSessionRegistry(store repository.KVStore, ttl time.Duration, placeholderImage string, formatter *whatsapp.Formatter) *SessionRegistry {
	return &SessionRegistry{
		store:            store,
		ttl:              ttl,
		placeholderImage: placeholderImage,
		formatter:        formatter,
		sessions:         make(map[string]*sessionEntry),
	}
}

// Session returns the session for the given id, hydrating it on first use:
// the cart loads and repairs its persisted state, the favorites store runs
// its repair pass, and the binder performs the first render.
func (r *SessionRegistry) Session(ctx context.Context, id string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	r.evictIdleLocked(now)

	if e, ok := r.sessions[id]; ok {
		e.lastSeen = now
		return e.session
	}

	scoped := repository.Namespace(r.store, "sess:"+id+":")

	mgr := cart.NewManager(scoped, r.ttl, r.placeholderImage)
	mgr.Hydrate(ctx)

	fav := favorites.NewStore(scoped, r.ttl)
	_ = fav.Repair(ctx)

	s := &Session{
		ID:        id,
		Cart:      mgr,
		Favorites: fav,
		View:      view.Bind(mgr, r.formatter),
	}
	r.sessions[id] = &sessionEntry{session: s, lastSeen: now}
	return s
}

// evictIdleLocked drops sessions unseen for longer than the store TTL. Their
// persisted keys carry the same TTL, so an expired session is gone either way.
func (r *SessionRegistry) evictIdleLocked(now time.Time) {
	for id, e := range r.sessions {
		if now.Sub(e.lastSeen) > r.ttl {
			delete(r.sessions, id)
		}
	}
}
