package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/mario443-has/tienda-lumiere-glamour/internal/service"
	"github.com/mario443-has/tienda-lumiere-glamour/pkg/response"
)

type CartHandler struct {
	cartService service.CartService
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

type AddToCartRequest struct {
	ProductoID string  `json:"producto_id" binding:"required"`
	Nombre     string  `json:"nombre"`
	Precio     float64 `json:"precio"`
	Quantity   int     `json:"quantity"`
	VariantID  string  `json:"variant_id"`
	Color      string  `json:"color"`
	ImagenURL  string  `json:"imagen_url"`
}

// AddToCart adds a product variant to the session cart and informs the
// remote store best-effort.
func (h *CartHandler) AddToCart(c *gin.Context) {
	sessionID, err := getSessionID(c)
	if err != nil {
		response.InternalError(c, "sesión no disponible")
		return
	}

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "cuerpo de la solicitud inválido")
		return
	}

	result, err := h.cartService.Add(c.Request.Context(), sessionID, service.AddInput{
		ProductID: req.ProductoID,
		VariantID: req.VariantID,
		Name:      req.Nombre,
		UnitPrice: req.Precio,
		Quantity:  req.Quantity,
		Color:     req.Color,
		ImageURL:  req.ImagenURL,
	})
	if err != nil {
		response.InternalError(c, "no se pudo añadir el producto al carrito")
		return
	}

	payload := gin.H{"mensaje": result.Message, "carrito": result.Cart}
	if result.Notice != "" {
		payload["aviso"] = result.Notice
	}
	response.Success(c, payload)
}

type UpdateQuantityRequest struct {
	VariantID string `json:"variant_id" binding:"required"`
	Delta     int    `json:"delta"`
}

// UpdateQuantity applies a quantity delta to a cart line. Delta zero removes
// the line; an unknown variant is a no-op.
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	sessionID, err := getSessionID(c)
	if err != nil {
		response.InternalError(c, "sesión no disponible")
		return
	}

	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "cuerpo de la solicitud inválido")
		return
	}

	model, found, err := h.cartService.UpdateQuantity(c.Request.Context(), sessionID, req.VariantID, req.Delta)
	if err != nil {
		response.InternalError(c, "no se pudo actualizar el carrito")
		return
	}
	response.Success(c, gin.H{"carrito": model, "encontrado": found})
}

// GetCart returns the rendered cart view model.
func (h *CartHandler) GetCart(c *gin.Context) {
	sessionID, err := getSessionID(c)
	if err != nil {
		response.InternalError(c, "sesión no disponible")
		return
	}
	response.Success(c, gin.H{"carrito": h.cartService.View(c.Request.Context(), sessionID)})
}

// Checkout builds the WhatsApp deep link and empties the cart.
func (h *CartHandler) Checkout(c *gin.Context) {
	sessionID, err := getSessionID(c)
	if err != nil {
		response.InternalError(c, "sesión no disponible")
		return
	}

	result, err := h.cartService.Checkout(c.Request.Context(), sessionID)
	if errors.Is(err, service.ErrEmptyCart) {
		response.BadRequest(c, "Tu carrito está vacío. Agrega productos antes de comprar.")
		return
	}
	if err != nil {
		response.InternalError(c, "no se pudo procesar el pedido")
		return
	}

	response.Success(c, gin.H{
		"mensaje":      result.Message,
		"whatsapp_url": result.WhatsAppURL,
		"carrito":      result.Cart,
	})
}
