package userRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"trilhas/database"
	"trilhas/models"
)

// StoreUserRepo implements UserRepository over a DocumentStore.
type StoreUserRepo struct {
	store database.DocumentStore
	now   func() time.Time
}

// NewStoreUserRepo creates a new instance of UserRepository.
func NewStoreUserRepo(store database.DocumentStore) *StoreUserRepo {
	return &StoreUserRepo{store: store, now: time.Now}
}

func (r *StoreUserRepo) GetByID(ctx context.Context, id string) (*models.UserProfile, error) {
	doc, err := r.store.GetOne(ctx, models.UserCollection, id)
	if err != nil {
		if errors.Is(err, database.ErrDocumentNotFound) {
			return nil, fmt.Errorf("profile %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch profile %s: %w: %w", id, models.ErrStoreUnavailable, err)
	}
	return &models.UserProfile{
		ID:        doc.ID,
		Email:     models.StringField(doc.Data, models.FieldEmail),
		Role:      models.ParseRole(doc.Data[models.FieldRole]),
		CreatedAt: models.StringField(doc.Data, models.FieldCreatedAt),
	}, nil
}

func (r *StoreUserRepo) Create(ctx context.Context, id, email string) (*models.UserProfile, error) {
	if id == "" {
		return nil, fmt.Errorf("failed to create profile: %w", &models.ValidationError{Fields: []string{"id"}})
	}
	profile := &models.UserProfile{
		ID:        id,
		Email:     email,
		Role:      models.RoleUser,
		CreatedAt: models.Timestamp(r.now()),
	}
	fields := map[string]any{
		models.FieldEmail:     profile.Email,
		models.FieldRole:      string(profile.Role),
		models.FieldCreatedAt: profile.CreatedAt,
	}
	if err := r.store.Set(ctx, models.UserCollection, id, fields); err != nil {
		return nil, fmt.Errorf("failed to create profile %s: %w: %w", id, models.ErrStoreUnavailable, err)
	}
	return profile, nil
}
