// File: database/repository/trail/crud.go
package trailRepo

import (
	"context"
	"fmt"

	"trilhas/models"
)

var requiredFields = []string{models.FieldTrailName, models.FieldLocation, models.FieldDate}

func (r *StoreCatalogRepo) CreateTrail(ctx context.Context, in models.TrailInput, role models.Role) (*models.Trail, error) {
	if !role.IsAdmin() {
		return nil, fmt.Errorf("create trail: %w", models.ErrPermissionDenied)
	}

	fields := in.Fields(r.bannerCount)
	if err := models.RequireFields(stringFields(fields), requiredFields...); err != nil {
		return nil, fmt.Errorf("create trail: %w", err)
	}
	if _, ok := fields[models.FieldImageIndex]; !ok {
		fields[models.FieldImageIndex] = 0
	}
	fields[models.FieldCreatedAt] = r.timestamp()

	id, err := r.store.Create(ctx, models.TrailCollection, fields)
	if err != nil {
		return nil, storeError("create trail", err)
	}
	trail := models.TrailFromDocument(id, fields, r.bannerCount)
	return &trail, nil
}

// UpdateTrail writes only the supplied fields plus updatedAt. A supplied
// required field must still be non-empty; omitted ones keep their value.
func (r *StoreCatalogRepo) UpdateTrail(ctx context.Context, id string, in models.TrailInput, role models.Role) (*models.Trail, error) {
	if !role.IsAdmin() {
		return nil, fmt.Errorf("update trail %s: %w", id, models.ErrPermissionDenied)
	}
	if id == "" {
		return nil, fmt.Errorf("update trail: %w", &models.ValidationError{Fields: []string{"id"}})
	}

	fields := in.Fields(r.bannerCount)
	var supplied []string
	for _, k := range requiredFields {
		if _, ok := fields[k]; ok {
			supplied = append(supplied, k)
		}
	}
	if err := models.RequireFields(stringFields(fields), supplied...); err != nil {
		return nil, fmt.Errorf("update trail %s: %w", id, err)
	}
	fields[models.FieldUpdatedAt] = r.timestamp()

	if err := r.store.Update(ctx, models.TrailCollection, id, fields); err != nil {
		return nil, storeError("update trail "+id, err)
	}
	return r.GetTrail(ctx, id)
}

func (r *StoreCatalogRepo) DeleteTrail(ctx context.Context, id string, role models.Role) error {
	if !role.IsAdmin() {
		return fmt.Errorf("delete trail %s: %w", id, models.ErrPermissionDenied)
	}
	if id == "" {
		return fmt.Errorf("delete trail: %w", &models.ValidationError{Fields: []string{"id"}})
	}
	if err := r.store.Delete(ctx, models.TrailCollection, id); err != nil {
		return storeError("delete trail "+id, err)
	}
	return nil
}

func stringFields(fields map[string]any) map[string]string {
	out := make(map[string]string, len(fields))
	for k, v := range fields {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}
