// Package middleware provides gin middleware for the bookshelf API.
package middleware

import (
	"net/http"
	"strings"

	"bookshelf/web/entity"
	"bookshelf/web/service"

	"github.com/gin-gonic/gin"
)

const userIdKey = "userId"

// BearerAuth verifies the Authorization header and stores the token's
// userId in the request context. Missing, malformed, expired and
// bad-signature tokens all get the same 401.
func BearerAuth(tokenService *service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, entity.ErrMsg{Error: "missing bearer token"})
			return
		}

		userId, err := tokenService.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, entity.ErrMsg{Error: "invalid or expired token"})
			return
		}

		c.Set(userIdKey, userId)
		c.Next()
	}
}

// GetUserId returns the authenticated user's id set by BearerAuth.
func GetUserId(c *gin.Context) int {
	return c.GetInt(userIdKey)
}
