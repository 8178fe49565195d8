package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mario443-has/tienda-lumiere-glamour/pkg/response"
)

const (
	CSRFCookieName = "csrftoken"
	CSRFHeaderName = "X-CSRFToken"

	csrfCookieMaxAge = 365 * 24 * 60 * 60
)

// CSRF implements the double-submit check the storefront expects: mutating
// requests must echo the csrftoken cookie in the X-CSRFToken header. Safe
// methods pass through and get a cookie issued if they lack one.
func CSRF(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			EnsureCSRFCookie(c, secure)
			c.Next()
			return
		}

		cookie, err := c.Cookie(CSRFCookieName)
		if err != nil || cookie == "" {
			response.Forbidden(c, "CSRF cookie not set.")
			c.Abort()
			return
		}
		if c.GetHeader(CSRFHeaderName) != cookie {
			response.Forbidden(c, "CSRF token missing or incorrect.")
			c.Abort()
			return
		}
		c.Next()
	}
}

// EnsureCSRFCookie issues the csrftoken cookie when absent and returns its
// value.
func EnsureCSRFCookie(c *gin.Context, secure bool) string {
	if cookie, err := c.Cookie(CSRFCookieName); err == nil && cookie != "" {
		return cookie
	}
	token := newToken()
	// Not HttpOnly: the UI reads it to build the header.
	c.SetCookie(CSRFCookieName, token, csrfCookieMaxAge, "/", "", secure, false)
	return token
}

func newToken() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return ""
	}
	return hex.EncodeToString(b)
}
