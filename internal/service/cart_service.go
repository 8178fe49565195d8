package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/mario443-has/tienda-lumiere-glamour/internal/cart"
	"github.com/mario443-has/tienda-lumiere-glamour/internal/upstream"
	"github.com/mario443-has/tienda-lumiere-glamour/internal/view"
)

// Spanish user-facing strings, matching what the storefront shows.
const (
	msgAdded        = "Producto añadido al carrito."
	noticeAddFailed = "Hubo un problema al añadir el producto al carrito. Inténtalo de nuevo."
	msgOrderSent    = "Tu pedido ha sido enviado a WhatsApp."
)

// CartUpstream is the slice of the remote product service the cart flow uses.
type CartUpstream interface {
	AddToCart(ctx context.Context, req upstream.AddToCartRequest) (string, error)
}

type AddInput struct {
	ProductID string
	VariantID string
	Name      string
	UnitPrice float64
	Quantity  int
	Color     string
	ImageURL  string
}

// AddResult carries the new cart view plus user feedback. Notice is set when
// the best-effort upstream call failed; the local mutation stands regardless.
type AddResult struct {
	Cart    view.Model
	Message string
	Notice  string
}

type CheckoutResult struct {
	WhatsAppURL string
	Message     string
	Cart        view.Model
}

type CartService interface {
	Add(ctx context.Context, sessionID string, input AddInput) (*AddResult, error)
	UpdateQuantity(ctx context.Context, sessionID, variantID string, delta int) (view.Model, bool, error)
	View(ctx context.Context, sessionID string) view.Model
	Checkout(ctx context.Context, sessionID string) (*CheckoutResult, error)
}

type cartService struct {
	sessions *SessionRegistry
	upstream CartUpstream
	logger   *zap.Logger
}

func NewCartService(sessions *SessionRegistry, up CartUpstream, logger *zap.Logger) CartService {
	return &cartService{sessions: sessions, upstream: up, logger: logger}
}

// Add mutates the local cart first, then informs the server best-effort. A
// network failure is logged and surfaced as a notice, never rolled back.
func (s *cartService) Add(ctx context.Context, sessionID string, input AddInput) (*AddResult, error) {
	sess := s.sessions.Session(ctx, sessionID)

	// Sanitize up front so the upstream call reports the same values the
	// local cart applied (a card button without a quantity input sends 0).
	item := sess.Cart.Sanitize(cart.LineItem{
		VariantID: input.VariantID,
		ProductID: input.ProductID,
		Name:      input.Name,
		UnitPrice: input.UnitPrice,
		Quantity:  input.Quantity,
		Color:     input.Color,
		ImageURL:  input.ImageURL,
	})
	if err := sess.Cart.AddOrIncrement(ctx, item); err != nil {
		s.logger.Warn("cart persist failed", zap.String("session", sessionID), zap.Error(err))
	}

	result := &AddResult{Cart: sess.View.Current(), Message: msgAdded}
	if s.upstream == nil {
		return result, nil
	}

	mensaje, err := s.upstream.AddToCart(ctx, upstream.AddToCartRequest{
		ProductoID: input.ProductID,
		Quantity:   item.Quantity,
		VariantID:  item.VariantID,
		Color:      input.Color,
	})
	if err != nil {
		s.logger.Warn("upstream add-to-cart failed",
			zap.String("producto_id", input.ProductID), zap.Error(err))
		result.Notice = noticeAddFailed
		return result, nil
	}
	if mensaje != "" {
		result.Message = mensaje
	}
	return result, nil
}

// UpdateQuantity applies a +/-/remove delta. The bool reports whether the
// variant was in the cart; false means nothing changed.
func (s *cartService) UpdateQuantity(ctx context.Context, sessionID, variantID string, delta int) (view.Model, bool, error) {
	sess := s.sessions.Session(ctx, sessionID)
	found, err := sess.Cart.ChangeQuantity(ctx, variantID, delta)
	if err != nil {
		s.logger.Warn("cart persist failed", zap.String("session", sessionID), zap.Error(err))
	}
	return sess.View.Current(), found, nil
}

func (s *cartService) View(ctx context.Context, sessionID string) view.Model {
	return s.sessions.Session(ctx, sessionID).View.Current()
}

// Checkout hands the order off to WhatsApp: builds the deep link from the
// current cart, then empties it.
func (s *cartService) Checkout(ctx context.Context, sessionID string) (*CheckoutResult, error) {
	sess := s.sessions.Session(ctx, sessionID)
	if len(sess.Cart.Items()) == 0 {
		return nil, ErrEmptyCart
	}

	url := sess.View.Current().WhatsAppURL
	if err := sess.Cart.Clear(ctx); err != nil {
		s.logger.Warn("cart persist failed", zap.String("session", sessionID), zap.Error(err))
	}

	return &CheckoutResult{
		WhatsAppURL: url,
		Message:     msgOrderSent,
		Cart:        sess.View.Current(),
	}, nil
}
