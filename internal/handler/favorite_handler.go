package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mario443-has/tienda-lumiere-glamour/internal/service"
	"github.com/mario443-has/tienda-lumiere-glamour/pkg/response"
)

type FavoriteHandler struct {
	favoriteService service.FavoriteService
}

func NewFavoriteHandler(favoriteService service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService}
}

type ToggleFavoritoRequest struct {
	ProductoID string `json:"producto_id" binding:"required"`
}

// Toggle flips a product's favorite flag. A toggle arriving while a prior one
// for the same product is still settling is refused and reports the current
// state unchanged.
func (h *FavoriteHandler) Toggle(c *gin.Context) {
	sessionID, err := getSessionID(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "sesión no disponible"})
		return
	}

	var req ToggleFavoritoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "cuerpo de la solicitud inválido"})
		return
	}

	outcome, err := h.favoriteService.Toggle(c.Request.Context(), sessionID, req.ProductoID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "no se pudo actualizar favoritos"})
		return
	}

	payload := gin.H{
		"success":     true,
		"is_favorito": outcome.Favorite,
		"aplicado":    outcome.Applied,
	}
	if outcome.Message != "" {
		payload["message"] = outcome.Message
	}
	if outcome.Notice != "" {
		payload["aviso"] = outcome.Notice
	}
	response.Success(c, payload)
}
