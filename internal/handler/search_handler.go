package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/mario443-has/tienda-lumiere-glamour/internal/service"
	"github.com/mario443-has/tienda-lumiere-glamour/pkg/response"
)

type SearchHandler struct {
	searchService service.SearchService
}

func NewSearchHandler(searchService service.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// Search proxies the live-search query to the remote product service.
func (h *SearchHandler) Search(c *gin.Context) {
	productos, err := h.searchService.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.BadGateway(c, "la búsqueda no está disponible en este momento")
		return
	}
	response.Success(c, gin.H{"productos": productos})
}
