package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mario443-has/tienda-lumiere-glamour/internal/handler/middleware"
	"github.com/mario443-has/tienda-lumiere-glamour/internal/repository"
	"github.com/mario443-has/tienda-lumiere-glamour/internal/service"
	"github.com/mario443-has/tienda-lumiere-glamour/internal/whatsapp"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sessions := service.NewSessionRegistry(
		repository.NewMemoryKVStore(), time.Hour,
		"/static/img/sin_imagen.jpg", whatsapp.NewFormatter(""),
	)
	cartService := service.NewCartService(sessions, nil, zap.NewNop())
	favoriteService := service.NewFavoriteService(sessions, nil, zap.NewNop())

	cartHandler := NewCartHandler(cartService)
	favoriteHandler := NewFavoriteHandler(favoriteService)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextKeySessionID, "test-session")
		c.Next()
	})
	r.POST("/agregar-al-carrito/", cartHandler.AddToCart)
	r.POST("/actualizar-cantidad/", cartHandler.UpdateQuantity)
	r.GET("/carrito/", cartHandler.GetCart)
	r.POST("/comprar-whatsapp/", cartHandler.Checkout)
	r.POST("/toggle-favorito/", favoriteHandler.Toggle)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var decoded map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	}
	return w, decoded
}

func TestAddToCartEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w, body := doJSON(t, r, http.MethodPost, "/agregar-al-carrito/", gin.H{
		"producto_id": "p1", "nombre": "Lamp", "precio": 10000,
		"quantity": 2, "variant_id": "v1", "color": "Rojo",
	})
	require.Equal(t, http.StatusOK, w.Code)

	assert.NotEmpty(t, body["mensaje"])
	carrito := body["carrito"].(map[string]any)
	assert.Equal(t, float64(2), carrito["count"])
	assert.Equal(t, "$ 20.000", carrito["total"])
}

func TestAddToCartRequiresProductID(t *testing.T) {
	r := newTestRouter(t)

	w, body := doJSON(t, r, http.MethodPost, "/agregar-al-carrito/", gin.H{"nombre": "Lamp"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotEmpty(t, body["error"])
}

func TestUpdateQuantityEndpoint(t *testing.T) {
	r := newTestRouter(t)

	_, _ = doJSON(t, r, http.MethodPost, "/agregar-al-carrito/", gin.H{
		"producto_id": "p1", "variant_id": "v1", "precio": 100, "quantity": 3,
	})

	w, body := doJSON(t, r, http.MethodPost, "/actualizar-cantidad/", gin.H{
		"variant_id": "v1", "delta": 0,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, body["encontrado"].(bool))
	assert.Equal(t, float64(0), body["carrito"].(map[string]any)["count"])
}

func TestCheckoutEmptyCartEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w, body := doJSON(t, r, http.MethodPost, "/comprar-whatsapp/", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Tu carrito está vacío. Agrega productos antes de comprar.", body["error"])
}

func TestCheckoutEndpoint(t *testing.T) {
	r := newTestRouter(t)

	_, _ = doJSON(t, r, http.MethodPost, "/agregar-al-carrito/", gin.H{
		"producto_id": "p1", "nombre": "Lamp", "variant_id": "v1", "precio": 10000, "quantity": 1,
	})

	w, body := doJSON(t, r, http.MethodPost, "/comprar-whatsapp/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, body["whatsapp_url"], "https://wa.me/")

	_, body = doJSON(t, r, http.MethodGet, "/carrito/", nil)
	assert.Equal(t, float64(0), body["carrito"].(map[string]any)["count"])
}

func TestToggleFavoritoEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w, body := doJSON(t, r, http.MethodPost, "/toggle-favorito/", gin.H{"producto_id": "p9"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, body["success"].(bool))
	assert.True(t, body["is_favorito"].(bool))

	w, body = doJSON(t, r, http.MethodPost, "/toggle-favorito/", gin.H{"producto_id": "p9"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, body["is_favorito"].(bool))
}
