package user

import (
	"context"
	"errors"
	"fmt"

	"trilhas/models"
	"trilhas/utils"

	"go.uber.org/zap"
)

// ResolveRole reads the caller's role from their profile. A missing profile
// is a plain user. Roles are never cached, so a changed role applies on the
// next call.
func (s *DefaultUserService) ResolveRole(ctx context.Context, userID string) (models.Role, error) {
	if userID == "" {
		return models.RoleUser, nil
	}
	profile, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.RoleUser, nil
		}
		return models.RoleUser, fmt.Errorf("resolve role: %w", err)
	}
	return profile.Role, nil
}

// ResolveRoleOrDefault is ResolveRole that falls back to the plain user role
// on any error.
func (s *DefaultUserService) ResolveRoleOrDefault(ctx context.Context, userID string) models.Role {
	role, err := s.ResolveRole(ctx, userID)
	if err != nil {
		s.logger().Warn("role lookup failed, defaulting to user", zap.String("userId", userID), zap.Error(err))
		return models.RoleUser
	}
	return role
}

func (s *DefaultUserService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return utils.GetLogger()
}
