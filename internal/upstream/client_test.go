package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newStubStore serves a csrftoken cookie on GET / and records mutating
// requests, like the remote storefront does.
func newStubStore(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "csrftoken", Value: "tok123", Path: "/"})
	})
	mux.HandleFunc("POST /", handler)
	mux.HandleFunc("GET /api/buscar-productos/", handler)
	return httptest.NewServer(mux)
}

func TestAddToCartSendsCSRFHeaderFromCookie(t *testing.T) {
	var gotHeader string
	var gotBody AddToCartRequest
	srv := newStubStore(t, func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get("X-CSRFToken")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(map[string]string{"mensaje": "Producto agregado"})
	})
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	msg, err := c.AddToCart(context.Background(), AddToCartRequest{
		ProductoID: "p1", Quantity: 2, VariantID: "v1", Color: "Rojo",
	})
	require.NoError(t, err)

	assert.Equal(t, "Producto agregado", msg)
	assert.Equal(t, "tok123", gotHeader)
	assert.Equal(t, "p1", gotBody.ProductoID)
	assert.Equal(t, 2, gotBody.Quantity)
}

func TestAddToCartRejectedResponse(t *testing.T) {
	srv := newStubStore(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"error": "sin stock"})
	})
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	_, err := c.AddToCart(context.Background(), AddToCartRequest{ProductoID: "p1"})
	require.ErrorIs(t, err, ErrRejected)
	assert.Contains(t, err.Error(), "sin stock")
}

func TestToggleFavoriteParsesAuthoritativeFlag(t *testing.T) {
	srv := newStubStore(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success": true, "message": "añadido a favoritos", "is_favorito": true,
		})
	})
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	res, err := c.ToggleFavorite(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "añadido a favoritos", res.Message)
	require.NotNil(t, res.IsFavorito)
	assert.True(t, *res.IsFavorito)
}

func TestToggleFavoriteVariantWithoutFlag(t *testing.T) {
	srv := newStubStore(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": true, "message": "ok"})
	})
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	res, err := c.ToggleFavorite(context.Background(), "p1")
	require.NoError(t, err)
	assert.Nil(t, res.IsFavorito)
}

func TestToggleFavoriteFailure(t *testing.T) {
	srv := newStubStore(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "producto no existe"})
	})
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	_, err := c.ToggleFavorite(context.Background(), "p1")
	require.ErrorIs(t, err, ErrRejected)
}

func TestSearchDecodesProducts(t *testing.T) {
	srv := newStubStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "lámpara", r.URL.Query().Get("q"))
		json.NewEncoder(w).Encode(map[string]any{
			"productos": []map[string]any{
				{"id": 7, "nombre": "Lámpara rosa", "precio": 45000, "imagen": "/img/7.jpg", "url": "/producto/7/"},
			},
		})
	})
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	products, err := c.Search(context.Background(), "lámpara")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Lámpara rosa", products[0].Nombre)
	assert.Equal(t, float64(45000), products[0].Precio)
}
