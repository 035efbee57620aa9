package handlers

import (
	"github.com/gin-gonic/gin"

	"eyecare-service/internal/utils"
)

const (
	ctxUsername = "username"
	ctxRole     = "role"
)

// RequireAuth validates the bearer token and stashes the caller's identity
// on the request context.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := utils.ClaimsFromRequest(c)
		if err != nil {
			utils.UnauthorizedResponse(c, "Authentication required")
			c.Abort()
			return
		}
		c.Set(ctxUsername, claims.Username)
		c.Set(ctxRole, claims.Role)
		c.Next()
	}
}

// RequireRole gates a route group to one role. Must run after RequireAuth.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ctxRole) != role {
			utils.ForbiddenResponse(c, "Insufficient permissions")
			c.Abort()
			return
		}
		c.Next()
	}
}

func currentUsername(c *gin.Context) string {
	return c.GetString(ctxUsername)
}
