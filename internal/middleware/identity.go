package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/usedcar-api/pkg/errors"
	"github.com/noah-isme/usedcar-api/pkg/logger"
	"github.com/noah-isme/usedcar-api/pkg/response"
)

// UserHeader carries the caller identity asserted by the upstream gateway.
const UserHeader = "X-User-ID"

const maxUserIDLength = 64

// Identity attaches the caller's user ID when the header is present but does not block.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, ok := userIDFromHeader(c); ok {
			c.Set(logger.UserIDKey, id)
		}
		c.Next()
	}
}

// RequireIdentity rejects requests without a usable caller identity.
func RequireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := userIDFromHeader(c)
		if !ok {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "missing "+UserHeader+" header"))
			c.Abort()
			return
		}
		c.Set(logger.UserIDKey, id)
		c.Next()
	}
}

// UserID returns the identity stored by Identity or RequireIdentity.
func UserID(c *gin.Context) string {
	return c.GetString(logger.UserIDKey)
}

func userIDFromHeader(c *gin.Context) (string, bool) {
	id := strings.TrimSpace(c.GetHeader(UserHeader))
	if id == "" || len(id) > maxUserIDLength {
		return "", false
	}
	return id, true
}
