package userRepo

import (
	"context"

	"trilhas/models"
)

// UserRepository defines methods for profile data access. Profiles are keyed
// by the auth provider's user id.
type UserRepository interface {
	// GetByID retrieves a profile, or models.ErrNotFound when none exists.
	GetByID(ctx context.Context, id string) (*models.UserProfile, error)
	// Create writes a new profile with the plain user role.
	Create(ctx context.Context, id, email string) (*models.UserProfile, error)
}
