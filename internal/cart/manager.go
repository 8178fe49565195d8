package cart

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/mario443-has/tienda-lumiere-glamour/internal/repository"
)

// StorageKey is the fixed key the serialized cart lives under, scoped to a
// session by the store namespace.
const StorageKey = "carritoLumiere"

// Totals is the derived summary of a cart: total item count and total price.
type Totals struct {
	Items int     `json:"items"`
	Price float64 `json:"price"`
}

// ChangeListener observes cart mutations. It is invoked synchronously after
// the mutated cart has been persisted, with a snapshot of the new state.
type ChangeListener func(items []LineItem, totals Totals)

// Manager owns the ordered line-item collection for one session and is the
// only mutation surface. Every mutation persists to the store before change
// listeners fire, so an observer reading the store during a notification sees
// the new state.
type Manager struct {
	mu               sync.Mutex
	store            repository.KVStore
	ttl              time.Duration
	placeholderImage string

	items     []LineItem
	listeners []ChangeListener
}

// NewManager creates an empty manager. Call Hydrate to load persisted state.
func NewManager(store repository.KVStore, ttl time.Duration, placeholderImage string) *Manager {
	return &Manager{
		store:            store,
		ttl:              ttl,
		placeholderImage: placeholderImage,
	}
}

// OnChange registers a listener for subsequent mutations. Hydrate does not
// notify; callers render once explicitly after hydrating.
func (m *Manager) OnChange(fn ChangeListener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

// Hydrate loads the cart from the store, repairing malformed entries in
// place. It never fails: undecodable state yields an empty cart.
func (m *Manager) Hydrate(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items = nil
	data, err := m.store.Get(ctx, StorageKey)
	if err != nil || len(data) == 0 {
		return
	}

	var decoded []LineItem
	if err := json.Unmarshal(data, &decoded); err != nil {
		return
	}

	seen := make(map[string]int, len(decoded))
	for _, item := range decoded {
		item.normalize(m.placeholderImage)
		if idx, ok := seen[item.VariantID]; ok {
			// Duplicate variant rows collapse into one.
			m.items[idx].Quantity += item.Quantity
			continue
		}
		seen[item.VariantID] = len(m.items)
		m.items = append(m.items, item)
	}
}

// Sanitize returns the item with the repair rules applied: variant id falls
// back to the product id, quantity to a minimum of 1, negative price to 0,
// missing color and image to their placeholders. AddOrIncrement applies the
// same rules internally; callers mirroring a mutation elsewhere use this to
// report the values that were actually applied, not the raw input.
func (m *Manager) Sanitize(item LineItem) LineItem {
	item.normalize(m.placeholderImage)
	return item
}

// AddOrIncrement inserts the item at the end of the cart, or increments the
// quantity of the existing line with the same variant id.
func (m *Manager) AddOrIncrement(ctx context.Context, item LineItem) error {
	m.mu.Lock()
	item.normalize(m.placeholderImage)

	found := false
	for idx := range m.items {
		if m.items[idx].VariantID == item.VariantID {
			m.items[idx].Quantity += item.Quantity
			found = true
			break
		}
	}
	if !found {
		m.items = append(m.items, item)
	}

	err := m.persistLocked(ctx)
	items, totals := m.snapshotLocked()
	m.mu.Unlock()

	m.notify(items, totals)
	return err
}

// ChangeQuantity adds delta to the line's quantity. A delta of zero removes
// the line unconditionally; a resulting quantity of zero or less removes it
// too. Returns false, without notifying, when the variant is not in the cart.
func (m *Manager) ChangeQuantity(ctx context.Context, variantID string, delta int) (bool, error) {
	m.mu.Lock()

	idx := -1
	for j := range m.items {
		if m.items[j].VariantID == variantID {
			idx = j
			break
		}
	}
	if idx < 0 {
		m.mu.Unlock()
		return false, nil
	}

	if delta == 0 {
		m.items = append(m.items[:idx], m.items[idx+1:]...)
	} else {
		m.items[idx].Quantity += delta
		if m.items[idx].Quantity <= 0 {
			m.items = append(m.items[:idx], m.items[idx+1:]...)
		}
	}

	err := m.persistLocked(ctx)
	items, totals := m.snapshotLocked()
	m.mu.Unlock()

	m.notify(items, totals)
	return true, err
}

// Clear empties the cart, used after the checkout handoff.
func (m *Manager) Clear(ctx context.Context) error {
	m.mu.Lock()
	m.items = nil

	err := m.persistLocked(ctx)
	items, totals := m.snapshotLocked()
	m.mu.Unlock()

	m.notify(items, totals)
	return err
}

// Items returns a copy of the current line items in insertion order.
func (m *Manager) Items() []LineItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	items, _ := m.snapshotLocked()
	return items
}

// Totals recomputes the derived totals. Pure read, no side effects.
func (m *Manager) Totals() Totals {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, totals := m.snapshotLocked()
	return totals
}

func (m *Manager) persistLocked(ctx context.Context) error {
	items := m.items
	if items == nil {
		items = []LineItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return m.store.Set(ctx, StorageKey, data, m.ttl)
}

func (m *Manager) snapshotLocked() ([]LineItem, Totals) {
	items := make([]LineItem, len(m.items))
	copy(items, m.items)

	var totals Totals
	for _, item := range items {
		totals.Items += item.Quantity
		totals.Price += item.Subtotal()
	}
	return items, totals
}

func (m *Manager) notify(items []LineItem, totals Totals) {
	m.mu.Lock()
	listeners := make([]ChangeListener, len(m.listeners))
	copy(listeners, m.listeners)
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(items, totals)
	}
}
