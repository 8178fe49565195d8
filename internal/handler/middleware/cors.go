package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/mario443-has/tienda-lumiere-glamour/internal/config"
)

// CORS lets the storefront origins call the JSON endpoints with credentials.
// When no headers are configured, the CSRF header is allowed by default:
// without it the double-submit check can never pass cross-origin.
func CORS(cfg config.CORSConfig) gin.HandlerFunc {
	headers := cfg.AllowedHeaders
	if len(headers) == 0 {
		headers = []string{"Origin", "Content-Type", CSRFHeaderName}
	}
	methods := cfg.AllowedMethods
	if len(methods) == 0 {
		methods = []string{"GET", "POST", "OPTIONS"}
	}
	return cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     methods,
		AllowHeaders:     headers,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           time.Duration(cfg.MaxAge.Seconds()) * time.Second,
	})
}
