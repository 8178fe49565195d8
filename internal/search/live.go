package search

import (
	"context"
	"time"

	"github.com/mario443-has/tienda-lumiere-glamour/internal/upstream"
)

// Searcher is the remote search surface. *upstream.Client satisfies it.
type Searcher interface {
	Search(ctx context.Context, query string) ([]upstream.Product, error)
}

// ResultFunc receives the outcome of the search that actually fired for the
// given query. err is non-nil on network failure; results are never partial.
type ResultFunc func(query string, products []upstream.Product, err error)

// Live wires keystrokes to the remote search endpoint through a debouncer:
// only the final pending query after the user pauses issues a network call.
type Live struct {
	searcher Searcher
	debounce *Debouncer
	timeout  time.Duration
	deliver  ResultFunc
}

func NewLive(searcher Searcher, delay time.Duration, deliver ResultFunc) *Live {
	return &Live{
		searcher: searcher,
		debounce: NewDebouncer(delay),
		timeout:  10 * time.Second,
		deliver:  deliver,
	}
}

// Input feeds one keystroke's worth of query text. An empty query cancels the
// pending search and delivers an empty result set without touching the
// network.
func (l *Live) Input(query string) {
	if query == "" {
		l.debounce.Stop()
		l.deliver(query, nil, nil)
		return
	}

	l.debounce.Trigger(func() {
		ctx, cancel := context.WithTimeout(context.Background(), l.timeout)
		defer cancel()
		products, err := l.searcher.Search(ctx, query)
		l.deliver(query, products, err)
	})
}

// Stop cancels any pending search.
func (l *Live) Stop() {
	l.debounce.Stop()
}
