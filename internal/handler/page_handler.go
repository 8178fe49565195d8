package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/mario443-has/tienda-lumiere-glamour/internal/pagination"
	"github.com/mario443-has/tienda-lumiere-glamour/internal/service"
	"github.com/mario443-has/tienda-lumiere-glamour/pkg/response"
)

type PageHandler struct {
	pageService service.PageService
}

func NewPageHandler(pageService service.PageService) *PageHandler {
	return &PageHandler{pageService: pageService}
}

// Fragments fetches a listing page and returns the product grid and
// pagination control fragments for in-place splicing.
func (h *PageHandler) Fragments(c *gin.Context) {
	pageURL := c.Query("url")
	if pageURL == "" {
		response.BadRequest(c, "falta el parámetro url")
		return
	}

	frags, err := h.pageService.Fragments(c.Request.Context(), pageURL)
	switch {
	case errors.Is(err, pagination.ErrBusy):
		response.Conflict(c, "ya hay una página cargándose")
		return
	case errors.Is(err, service.ErrForeignPage):
		response.BadRequest(c, "url fuera de la tienda")
		return
	case err != nil:
		response.BadGateway(c, "no se pudo cargar la página de productos")
		return
	}

	response.Success(c, gin.H{"grid": frags.Grid, "pagination": frags.Pagination})
}
