package service

import (
	"context"
	"fmt"
	"net/url"

	"github.com/mario443-has/tienda-lumiere-glamour/internal/pagination"
)

type PageService interface {
	Fragments(ctx context.Context, pageURL string) (*pagination.Fragments, error)
}

type pageService struct {
	base    *url.URL
	fetcher *pagination.Fetcher
}

// NewPageService serves paginated product-grid fragments. Page URLs resolve
// against the store base; anything pointing at another host is refused.
func NewPageService(baseURL string, fetcher *pagination.Fetcher) (PageService, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	return &pageService{base: base, fetcher: fetcher}, nil
}

func (s *pageService) Fragments(ctx context.Context, pageURL string) (*pagination.Fragments, error) {
	ref, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("parse page url: %w", err)
	}
	resolved := s.base.ResolveReference(ref)
	if resolved.Host != s.base.Host {
		return nil, ErrForeignPage
	}
	return s.fetcher.Fetch(ctx, resolved.String())
}
