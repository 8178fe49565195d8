// Package pagination loads a product-listing page over HTTP and extracts the
// two regions the UI splices in place: the product grid and the pagination
// controls. The page never reloads as a whole.
package pagination

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// ErrBusy means a fetch is already outstanding. The second activation is
// refused, not queued, and the outstanding request is not cancelled.
var ErrBusy = errors.New("page fetch already in flight")

// Fragments are the extracted regions, as inner HTML. A region missing from
// the fetched page yields an empty string; the caller leaves that part of the
// document untouched.
type Fragments struct {
	Grid       string `json:"grid"`
	Pagination string `json:"pagination"`
}

// Fetcher retrieves page fragments with an in-flight guard and balanced
// loading hooks.
type Fetcher struct {
	http        *http.Client
	busy        atomic.Bool
	onLoadStart func()
	onLoadEnd   func()
}

func NewFetcher(client *http.Client) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &Fetcher{http: client}
}

// OnLoading registers the loading affordance hooks. The end hook always runs
// once per started fetch, regardless of outcome.
func (f *Fetcher) OnLoading(start, end func()) {
	f.onLoadStart = start
	f.onLoadEnd = end
}

// Fetch downloads the page and extracts the grid and pagination fragments.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (*Fragments, error) {
	if !f.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer f.busy.Store(false)

	if f.onLoadStart != nil {
		f.onLoadStart()
	}
	if f.onLoadEnd != nil {
		defer f.onLoadEnd()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	res, err := f.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch page: unexpected status %d", res.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	frags := &Fragments{
		Grid:       innerHTML(doc, "#productos-grid", "#product-grid"),
		Pagination: innerHTML(doc, "#pagination-container"),
	}
	return frags, nil
}

// innerHTML returns the inner HTML of the first selector that matches.
func innerHTML(doc *goquery.Document, selectors ...string) string {
	for _, sel := range selectors {
		node := doc.Find(sel)
		if node.Length() == 0 {
			continue
		}
		html, err := node.First().Html()
		if err == nil {
			return html
		}
	}
	return ""
}
