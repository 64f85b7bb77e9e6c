package handlers

import (
	"context"
	"net/http"
	"strings"

	"trilhas/middleware"
	"trilhas/services/user"
	"trilhas/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionRevoker drops a cached session.
type SessionRevoker interface {
	Revoke(ctx context.Context, idToken string) error
}

// UserHandler serves the caller's profile.
type UserHandler struct {
	UserService user.UserService
	Sessions    SessionRevoker
}

func NewUserHandler(svc user.UserService) *UserHandler {
	return &UserHandler{UserService: svc}
}

// GetProfileHandler handles GET /api/users/me.
func (h *UserHandler) GetProfileHandler(c *gin.Context) {
	session, _ := middleware.GetSession(c)
	profile, err := h.UserService.GetProfile(c.Request.Context(), session)
	if err != nil {
		utils.JSONError(c, err, "Failed to get profile")
		return
	}
	c.JSON(http.StatusOK, profile)
}

// EnsureProfileHandler handles POST /api/users/me, called once after sign-up.
func (h *UserHandler) EnsureProfileHandler(c *gin.Context) {
	session, _ := middleware.GetSession(c)
	profile, err := h.UserService.EnsureProfile(c.Request.Context(), session)
	if err != nil {
		utils.JSONError(c, err, "Failed to create profile")
		return
	}
	c.JSON(http.StatusOK, profile)
}

// SignOutHandler handles DELETE /api/users/me/session. The token stays valid
// with Firebase until it expires; only the server-side cache entry goes.
func (h *UserHandler) SignOutHandler(c *gin.Context) {
	if h.Sessions != nil {
		token := strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer "))
		if err := h.Sessions.Revoke(c.Request.Context(), token); err != nil {
			getLogger(c).Warn("Failed to drop cached session", zap.Error(err))
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}
