package middleware

import (
	"context"

	"trilhas/models"

	"github.com/gin-gonic/gin"
)

// RoleResolver resolves the role of a user, falling back to the plain user
// role on failure.
type RoleResolver interface {
	ResolveRoleOrDefault(ctx context.Context, userID string) models.Role
}

// RoleMiddleware resolves the caller's role on every request and stores it in
// the context. It must run after FirebaseAuthMiddleware.
func RoleMiddleware(roles RoleResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := models.RoleUser
		if s, ok := GetSession(c); ok {
			role = roles.ResolveRoleOrDefault(c.Request.Context(), s.UserID)
		}
		c.Set(RoleKey, role)
		c.Next()
	}
}

// GetRole returns the role stored by RoleMiddleware, or the plain user role.
func GetRole(c *gin.Context) models.Role {
	if v, ok := c.Get(RoleKey); ok {
		if r, ok := v.(models.Role); ok {
			return r
		}
	}
	return models.RoleUser
}
