package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mario443-has/tienda-lumiere-glamour/internal/repository"
	"github.com/mario443-has/tienda-lumiere-glamour/internal/upstream"
	"github.com/mario443-has/tienda-lumiere-glamour/internal/whatsapp"
)

type fakeCartUpstream struct {
	requests []upstream.AddToCartRequest
	mensaje  string
	err      error
}

func (f *fakeCartUpstream) AddToCart(_ context.Context, req upstream.AddToCartRequest) (string, error) {
	f.requests = append(f.requests, req)
	return f.mensaje, f.err
}

func newRegistry() *SessionRegistry {
	return NewSessionRegistry(
		repository.NewMemoryKVStore(),
		time.Hour,
		"/static/img/sin_imagen.jpg",
		whatsapp.NewFormatter(""),
	)
}

func TestAddUpdatesLocalCartAndInformsUpstream(t *testing.T) {
	ctx := context.Background()
	up := &fakeCartUpstream{mensaje: "Producto agregado al carrito"}
	svc := NewCartService(newRegistry(), up, zap.NewNop())

	result, err := svc.Add(ctx, "s1", AddInput{
		ProductID: "p1", VariantID: "v1", Name: "Lamp", UnitPrice: 10000, Quantity: 2,
	})
	require.NoError(t, err)

	assert.Equal(t, "Producto agregado al carrito", result.Message)
	assert.Empty(t, result.Notice)
	assert.Equal(t, 2, result.Cart.Count)
	require.Len(t, up.requests, 1)
	assert.Equal(t, "p1", up.requests[0].ProductoID)
}

func TestAddReportsAppliedValuesUpstream(t *testing.T) {
	ctx := context.Background()
	up := &fakeCartUpstream{}
	svc := NewCartService(newRegistry(), up, zap.NewNop())

	// A product-card button sends no quantity and no variant.
	result, err := svc.Add(ctx, "s1", AddInput{ProductID: "p9", Name: "Vela", UnitPrice: 1000})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Cart.Count)

	require.Len(t, up.requests, 1)
	assert.Equal(t, "p9", up.requests[0].ProductoID)
	assert.Equal(t, 1, up.requests[0].Quantity, "server is told the sanitized quantity, not the raw 0")
	assert.Equal(t, "p9", up.requests[0].VariantID, "variant falls back to the product id before the call")
}

func TestAddKeepsLocalMutationWhenUpstreamFails(t *testing.T) {
	ctx := context.Background()
	up := &fakeCartUpstream{err: errors.New("connection refused")}
	svc := NewCartService(newRegistry(), up, zap.NewNop())

	result, err := svc.Add(ctx, "s1", AddInput{ProductID: "p1", VariantID: "v1", UnitPrice: 100, Quantity: 1})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Cart.Count, "optimistic mutation is never rolled back")
	assert.NotEmpty(t, result.Notice)
}

func TestUpdateQuantityRemovesOnZeroDelta(t *testing.T) {
	ctx := context.Background()
	svc := NewCartService(newRegistry(), nil, zap.NewNop())

	_, err := svc.Add(ctx, "s1", AddInput{ProductID: "p1", VariantID: "v1", UnitPrice: 100, Quantity: 5})
	require.NoError(t, err)

	model, found, err := svc.UpdateQuantity(ctx, "s1", "v1", 0)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Zero(t, model.Count)

	model, found, err = svc.UpdateQuantity(ctx, "s1", "desconocido", 1)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Zero(t, model.Count)
}

func TestSessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	svc := NewCartService(newRegistry(), nil, zap.NewNop())

	_, err := svc.Add(ctx, "s1", AddInput{ProductID: "p1", VariantID: "v1", UnitPrice: 100, Quantity: 1})
	require.NoError(t, err)

	assert.Equal(t, 1, svc.View(ctx, "s1").Count)
	assert.Zero(t, svc.View(ctx, "s2").Count)
}

func TestCartSurvivesRehydration(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryKVStore()
	formatter := whatsapp.NewFormatter("")

	reg := NewSessionRegistry(store, time.Hour, "/static/img/sin_imagen.jpg", formatter)
	svc := NewCartService(reg, nil, zap.NewNop())
	_, err := svc.Add(ctx, "s1", AddInput{ProductID: "p1", VariantID: "v1", UnitPrice: 5000, Quantity: 2})
	require.NoError(t, err)

	// New registry over the same store simulates a process restart.
	reg2 := NewSessionRegistry(store, time.Hour, "/static/img/sin_imagen.jpg", formatter)
	svc2 := NewCartService(reg2, nil, zap.NewNop())

	model := svc2.View(ctx, "s1")
	assert.Equal(t, 2, model.Count)
	assert.Equal(t, "$ 10.000", model.Total)
}

func TestCheckoutClearsCartAndBuildsLink(t *testing.T) {
	ctx := context.Background()
	svc := NewCartService(newRegistry(), nil, zap.NewNop())

	_, err := svc.Add(ctx, "s1", AddInput{ProductID: "p1", VariantID: "v1", Name: "Lamp", UnitPrice: 10000, Quantity: 1})
	require.NoError(t, err)

	result, err := svc.Checkout(ctx, "s1")
	require.NoError(t, err)
	assert.Contains(t, result.WhatsAppURL, "https://wa.me/")
	assert.Contains(t, result.WhatsAppURL, "Lamp")
	assert.Zero(t, result.Cart.Count, "cart is emptied after the handoff")
}

func TestCheckoutEmptyCart(t *testing.T) {
	svc := NewCartService(newRegistry(), nil, zap.NewNop())
	_, err := svc.Checkout(context.Background(), "s1")
	assert.ErrorIs(t, err, ErrEmptyCart)
}
