package service

import "errors"

var (
	ErrEmptyCart      = errors.New("cart is empty")
	ErrForeignPage    = errors.New("page url outside the store")
	ErrUpstreamSearch = errors.New("search upstream unavailable")
)
