package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/mario443-has/tienda-lumiere-glamour/internal/handler/middleware"
)

var ErrNoSession = errors.New("session id not found in context")

func getSessionID(c *gin.Context) (string, error) {
	val, exists := c.Get(middleware.ContextKeySessionID)
	if !exists {
		return "", ErrNoSession
	}
	id, ok := val.(string)
	if !ok || id == "" {
		return "", ErrNoSession
	}
	return id, nil
}
