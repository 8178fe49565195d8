package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mario443-has/tienda-lumiere-glamour/internal/config"
)

const ContextKeySessionID = "session_id"

// Session assigns every browser a stable session id cookie and exposes it on
// the request context. The id scopes all cart and favorite state.
func Session(cfg config.SessionConfig) gin.HandlerFunc {
	maxAge := int(cfg.TTL.Seconds())
	return func(c *gin.Context) {
		id, err := c.Cookie(cfg.CookieName)
		if err != nil || id == "" {
			id = uuid.NewString()
			c.SetCookie(cfg.CookieName, id, maxAge, "/", "", cfg.Secure, true)
		}
		c.Set(ContextKeySessionID, id)
		c.Next()
	}
}
