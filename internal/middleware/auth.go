package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/miximax/miximax/pkg/responses"
)

// CronSecretMiddleware requires "Authorization: Bearer <secret>". An empty
// secret disables the check.
func CronSecretMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			responses.SendError(c, http.StatusUnauthorized, "Authorization header is required")
			return
		}

		scheme, token, found := strings.Cut(authHeader, " ")
		if !found || !strings.EqualFold(scheme, "bearer") {
			responses.SendError(c, http.StatusUnauthorized, "Invalid Authorization header format. Expected: Bearer <token>")
			return
		}

		if subtle.ConstantTimeCompare([]byte(strings.TrimSpace(token)), []byte(secret)) != 1 {
			responses.SendError(c, http.StatusUnauthorized, "Unauthorized")
			return
		}
		c.Next()
	}
}
