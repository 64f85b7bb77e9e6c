package trailRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"trilhas/database"
	"trilhas/models"
)

// StoreCatalogRepo implements CatalogRepository over a DocumentStore.
type StoreCatalogRepo struct {
	store       database.DocumentStore
	bannerCount int
	now         func() time.Time
}

// NewStoreCatalogRepo returns a catalog repository whose image indexes are
// clamped to bannerCount banners.
func NewStoreCatalogRepo(store database.DocumentStore, bannerCount int) *StoreCatalogRepo {
	return &StoreCatalogRepo{store: store, bannerCount: bannerCount, now: time.Now}
}

func (r *StoreCatalogRepo) ListTrails(ctx context.Context) ([]models.Trail, error) {
	docs, err := r.store.GetAll(ctx, models.TrailCollection)
	if err != nil {
		return nil, fmt.Errorf("list trails: %w: %w", models.ErrStoreUnavailable, err)
	}
	trails := make([]models.Trail, 0, len(docs))
	for _, doc := range docs {
		trails = append(trails, models.TrailFromDocument(doc.ID, doc.Data, r.bannerCount))
	}
	return trails, nil
}

func (r *StoreCatalogRepo) GetTrail(ctx context.Context, id string) (*models.Trail, error) {
	if id == "" {
		return nil, &models.ValidationError{Fields: []string{"id"}}
	}
	doc, err := r.store.GetOne(ctx, models.TrailCollection, id)
	if err != nil {
		return nil, storeError("get trail "+id, err)
	}
	trail := models.TrailFromDocument(doc.ID, doc.Data, r.bannerCount)
	return &trail, nil
}

// timestamp is the ISO-8601 form used for createdAt/updatedAt.
func (r *StoreCatalogRepo) timestamp() string {
	return models.Timestamp(r.now())
}

func storeError(op string, err error) error {
	if errors.Is(err, database.ErrDocumentNotFound) {
		return fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	return fmt.Errorf("%s: %w: %w", op, models.ErrStoreUnavailable, err)
}
