package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mario443-has/tienda-lumiere-glamour/internal/config"
)

func newCORSRouter(cfg config.CORSConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS(cfg))
	r.POST("/mutate", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestCORSAllowsCSRFHeaderByDefault(t *testing.T) {
	r := newCORSRouter(config.CORSConfig{
		AllowedOrigins: []string{"https://tienda.example"},
	})

	req := httptest.NewRequest(http.MethodOptions, "/mutate", nil)
	req.Header.Set("Origin", "https://tienda.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", CSRFHeaderName)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://tienda.example", w.Header().Get("Access-Control-Allow-Origin"))
	allowed := strings.ToLower(w.Header().Get("Access-Control-Allow-Headers"))
	assert.Contains(t, allowed, strings.ToLower(CSRFHeaderName))
	assert.Contains(t, strings.ToLower(w.Header().Get("Access-Control-Allow-Methods")), "post")
}

func TestCORSKeepsConfiguredHeaders(t *testing.T) {
	r := newCORSRouter(config.CORSConfig{
		AllowedOrigins: []string{"https://tienda.example"},
		AllowedMethods: []string{"POST"},
		AllowedHeaders: []string{"Content-Type"},
	})

	req := httptest.NewRequest(http.MethodOptions, "/mutate", nil)
	req.Header.Set("Origin", "https://tienda.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
	allowed := strings.ToLower(w.Header().Get("Access-Control-Allow-Headers"))
	assert.NotContains(t, allowed, strings.ToLower(CSRFHeaderName))
}
