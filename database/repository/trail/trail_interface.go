package trailRepo

import (
	"context"

	"trilhas/models"
)

// CatalogRepository defines the trail catalog operations. Every mutation is
// checked against the requester's role here; the store enforces nothing.
type CatalogRepository interface {
	// ListTrails reads a snapshot of every trail with a normalized image index.
	ListTrails(ctx context.Context) ([]models.Trail, error)
	// GetTrail reads a single trail.
	GetTrail(ctx context.Context, id string) (*models.Trail, error)
	// CreateTrail writes a new trail. Admin only.
	CreateTrail(ctx context.Context, in models.TrailInput, role models.Role) (*models.Trail, error)
	// UpdateTrail merges the supplied fields into a trail. Admin only.
	UpdateTrail(ctx context.Context, id string, in models.TrailInput, role models.Role) (*models.Trail, error)
	// DeleteTrail removes a trail. Admin only; deleting a missing trail succeeds.
	DeleteTrail(ctx context.Context, id string, role models.Role) error
}
