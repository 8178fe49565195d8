package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mario443-has/tienda-lumiere-glamour/internal/upstream"
)

type stubSearcher struct {
	queries  []string
	products []upstream.Product
	err      error
}

func (s *stubSearcher) Search(_ context.Context, q string) ([]upstream.Product, error) {
	s.queries = append(s.queries, q)
	return s.products, s.err
}

func TestSearchEmptyQueryShortCircuits(t *testing.T) {
	searcher := &stubSearcher{}
	svc := NewSearchService(searcher, zap.NewNop())

	products, err := svc.Search(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, products)
	assert.Empty(t, searcher.queries)
}

func TestSearchWrapsUpstreamFailure(t *testing.T) {
	searcher := &stubSearcher{err: errors.New("boom")}
	svc := NewSearchService(searcher, zap.NewNop())

	_, err := svc.Search(context.Background(), "lamp")
	assert.ErrorIs(t, err, ErrUpstreamSearch)
}

func TestSearchNeverReturnsNilSlice(t *testing.T) {
	searcher := &stubSearcher{}
	svc := NewSearchService(searcher, zap.NewNop())

	products, err := svc.Search(context.Background(), "lamp")
	require.NoError(t, err)
	assert.NotNil(t, products)
}
