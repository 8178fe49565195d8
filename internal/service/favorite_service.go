package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/mario443-has/tienda-lumiere-glamour/internal/upstream"
)

const noticeToggleFailed = "Hubo un problema al actualizar los favoritos. Intenta de nuevo."

// FavoriteUpstream is the slice of the remote product service the favorites
// flow uses.
type FavoriteUpstream interface {
	ToggleFavorite(ctx context.Context, productID string) (*upstream.ToggleResult, error)
}

// ToggleOutcome reports a favorite toggle. Applied is false when the
// re-entrancy guard refused the toggle because a prior one for the same
// product was still settling.
type ToggleOutcome struct {
	Applied  bool
	Favorite bool
	Message  string
	Notice   string
}

type FavoriteService interface {
	Toggle(ctx context.Context, sessionID, productID string) (*ToggleOutcome, error)
	IsFavorite(ctx context.Context, sessionID, productID string) bool
}

type favoriteService struct {
	sessions *SessionRegistry
	upstream FavoriteUpstream
	logger   *zap.Logger
}

func NewFavoriteService(sessions *SessionRegistry, up FavoriteUpstream, logger *zap.Logger) FavoriteService {
	return &favoriteService{sessions: sessions, upstream: up, logger: logger}
}

// Toggle flips the local flag optimistically, then informs the server. Once
// the server answers with an authoritative is_favorito that disagrees, the
// local flag is corrected and re-broadcast; on network failure the optimistic
// flip stands and the failure becomes a notice.
func (s *favoriteService) Toggle(ctx context.Context, sessionID, productID string) (*ToggleOutcome, error) {
	sess := s.sessions.Session(ctx, sessionID)

	value, release, ok := sess.Favorites.Toggle(ctx, productID)
	if !ok {
		return &ToggleOutcome{Applied: false, Favorite: value}, nil
	}
	defer release()

	outcome := &ToggleOutcome{Applied: true, Favorite: value}
	if s.upstream == nil {
		return outcome, nil
	}

	res, err := s.upstream.ToggleFavorite(ctx, productID)
	if err != nil {
		s.logger.Warn("upstream toggle-favorito failed",
			zap.String("producto_id", productID), zap.Error(err))
		outcome.Notice = noticeToggleFailed
		return outcome, nil
	}

	outcome.Message = res.Message
	if res.IsFavorito != nil && *res.IsFavorito != value {
		// Server wins over the optimistic flip.
		sess.Favorites.Set(ctx, productID, *res.IsFavorito)
		outcome.Favorite = *res.IsFavorito
	}
	return outcome, nil
}

func (s *favoriteService) IsFavorite(ctx context.Context, sessionID, productID string) bool {
	return s.sessions.Session(ctx, sessionID).Favorites.IsFavorite(ctx, productID)
}
