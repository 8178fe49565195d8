package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mario443-has/tienda-lumiere-glamour/internal/search"
	"github.com/mario443-has/tienda-lumiere-glamour/internal/upstream"
)

type SearchService interface {
	Search(ctx context.Context, query string) ([]upstream.Product, error)
}

type searchService struct {
	searcher search.Searcher
	logger   *zap.Logger
}

func NewSearchService(searcher search.Searcher, logger *zap.Logger) SearchService {
	return &searchService{searcher: searcher, logger: logger}
}

// Search proxies the query to the remote search endpoint. An empty query
// short-circuits to an empty result set.
func (s *searchService) Search(ctx context.Context, query string) ([]upstream.Product, error) {
	if query == "" {
		return []upstream.Product{}, nil
	}

	products, err := s.searcher.Search(ctx, query)
	if err != nil {
		s.logger.Warn("upstream search failed", zap.String("q", query), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUpstreamSearch, err)
	}
	if products == nil {
		products = []upstream.Product{}
	}
	return products, nil
}
