// middleware/auth.go
package middleware

import (
	"context"
	"fmt"
	"strings"

	"trilhas/models"
	"trilhas/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set by the auth and role middleware.
const (
	SessionKey = "session"
	RoleKey    = "role"
)

// Authenticator resolves a bearer token into a session.
type Authenticator interface {
	Authenticate(ctx context.Context, idToken string) (*models.Session, error)
}

// FirebaseAuthMiddleware requires a valid Firebase ID token and stores the
// caller's session in the context.
func FirebaseAuthMiddleware(authn Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.JSONError(c, fmt.Errorf("missing or invalid Authorization header: %w", models.ErrUnauthenticated), "Unauthenticated request")
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		session, err := authn.Authenticate(c.Request.Context(), tokenString)
		if err != nil {
			utils.JSONError(c, err, "Token rejected")
			return
		}
		c.Set(SessionKey, *session)
		c.Next()
	}
}

// GetSession returns the session stored by FirebaseAuthMiddleware.
func GetSession(c *gin.Context) (models.Session, bool) {
	v, ok := c.Get(SessionKey)
	if !ok {
		return models.Session{}, false
	}
	s, ok := v.(models.Session)
	return s, ok
}
