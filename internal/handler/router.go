package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mario443-has/tienda-lumiere-glamour/internal/config"
	"github.com/mario443-has/tienda-lumiere-glamour/internal/handler/middleware"
)

func SetupRouter(
	cfg *config.Config,
	logger *zap.Logger,
	cartHandler *CartHandler,
	favoriteHandler *FavoriteHandler,
	searchHandler *SearchHandler,
	pageHandler *PageHandler,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.Session(cfg.Session))
	r.Use(middleware.CSRF(cfg.Session.Secure))

	// Health check
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// CSRF bootstrap for first-visit clients
	r.GET("/csrf/", func(c *gin.Context) {
		c.JSON(200, gin.H{"csrftoken": middleware.EnsureCSRFCookie(c, cfg.Session.Secure)})
	})

	// Cart
	r.POST("/agregar-al-carrito/", cartHandler.AddToCart)
	r.POST("/actualizar-cantidad/", cartHandler.UpdateQuantity)
	r.GET("/carrito/", cartHandler.GetCart)
	r.POST("/comprar-whatsapp/", cartHandler.Checkout)

	// Favorites
	r.POST("/toggle-favorito/", favoriteHandler.Toggle)

	// Search and paginated product fragments
	r.GET("/api/buscar-productos/", searchHandler.Search)
	r.GET("/fragmento-productos/", pageHandler.Fragments)

	return r
}
