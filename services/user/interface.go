package user

import (
	"context"

	userRepo "trilhas/database/repository/user"
	"trilhas/models"

	"go.uber.org/zap"
)

type UserService interface {
	// Roles
	ResolveRole(ctx context.Context, userID string) (models.Role, error)
	ResolveRoleOrDefault(ctx context.Context, userID string) models.Role

	// Profiles
	GetProfile(ctx context.Context, session models.Session) (*models.UserProfile, error)
	EnsureProfile(ctx context.Context, session models.Session) (*models.UserProfile, error)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo   userRepo.UserRepository
	Logger *zap.Logger
}
