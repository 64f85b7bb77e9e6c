package user

import (
	"context"
	"errors"
	"fmt"

	"trilhas/models"

	"go.uber.org/zap"
)

// GetProfile merges the caller's identity with their stored profile. Without
// a readable profile the identity is returned with the plain user role.
func (s *DefaultUserService) GetProfile(ctx context.Context, session models.Session) (*models.UserProfile, error) {
	base := &models.UserProfile{ID: session.UserID, Email: session.Email, Role: models.RoleUser}

	stored, err := s.Repo.GetByID(ctx, session.UserID)
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			s.logger().Warn("profile lookup failed", zap.String("userId", session.UserID), zap.Error(err))
		}
		return base, nil
	}
	if stored.Email != "" {
		base.Email = stored.Email
	}
	base.Role = stored.Role
	base.CreatedAt = stored.CreatedAt
	return base, nil
}

// EnsureProfile creates the caller's profile on first sign-up. An existing
// profile, and with it its role, is returned untouched.
func (s *DefaultUserService) EnsureProfile(ctx context.Context, session models.Session) (*models.UserProfile, error) {
	existing, err := s.Repo.GetByID(ctx, session.UserID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("ensure profile: %w", err)
	}

	created, err := s.Repo.Create(ctx, session.UserID, session.Email)
	if err != nil {
		return nil, fmt.Errorf("ensure profile: %w", err)
	}
	s.logger().Info("profile created", zap.String("userId", session.UserID))
	return created, nil
}
