package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// The storefront UI reads two envelope shapes: success payloads carry their
// own fields, failures carry a single "error" field.

func Success(c *gin.Context, data gin.H) {
	c.JSON(http.StatusOK, data)
}

func Error(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, gin.H{"error": message})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, message)
}

func Conflict(c *gin.Context, message string) {
	Error(c, http.StatusConflict, message)
}

func BadGateway(c *gin.Context, message string) {
	Error(c, http.StatusBadGateway, message)
}

func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}
