package scheduleRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"trilhas/database"
	"trilhas/models"

	"go.uber.org/zap"
)

// StoreScheduleRepo implements ScheduleRepository over a DocumentStore.
type StoreScheduleRepo struct {
	store       database.DocumentStore
	trails      TrailGetter
	bannerCount int
	concurrency int
	logger      *zap.Logger
	now         func() time.Time
}

// NewStoreScheduleRepo returns a schedule repository. concurrency bounds the
// trail lookups in flight while denormalizing one snapshot.
func NewStoreScheduleRepo(store database.DocumentStore, trails TrailGetter, bannerCount, concurrency int, logger *zap.Logger) *StoreScheduleRepo {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StoreScheduleRepo{
		store:       store,
		trails:      trails,
		bannerCount: bannerCount,
		concurrency: concurrency,
		logger:      logger,
		now:         time.Now,
	}
}

func (r *StoreScheduleRepo) CreateSchedule(ctx context.Context, userID, trailID string) (*models.Schedule, error) {
	err := models.RequireFields(map[string]string{
		models.FieldUserID:  userID,
		models.FieldTrailID: trailID,
	}, models.FieldUserID, models.FieldTrailID)
	if err != nil {
		return nil, fmt.Errorf("create schedule: %w", err)
	}

	fields := map[string]any{
		models.FieldUserID:      userID,
		models.FieldTrailID:     trailID,
		models.FieldScheduledAt: models.Timestamp(r.now()),
		models.FieldStatus:      models.StatusConfirmed,
	}
	id, err := r.store.Create(ctx, models.ScheduleCollection, fields)
	if err != nil {
		return nil, fmt.Errorf("create schedule: %w: %w", models.ErrStoreUnavailable, err)
	}
	return &models.Schedule{
		ID:          id,
		UserID:      userID,
		TrailID:     trailID,
		ScheduledAt: fields[models.FieldScheduledAt].(string),
		Status:      models.StatusConfirmed,
	}, nil
}

func (r *StoreScheduleRepo) SubscribeSchedules(ctx context.Context, userID string, onChange func([]models.Schedule)) (*database.Subscription, error) {
	if userID == "" {
		return nil, fmt.Errorf("subscribe schedules: %w", &models.ValidationError{Fields: []string{models.FieldUserID}})
	}

	filter := database.Filter{Field: models.FieldUserID, Value: userID}
	sub, err := r.store.Subscribe(ctx, models.ScheduleCollection, filter, func(ctx context.Context, docs []database.Document) {
		schedules, err := r.denormalize(ctx, docs)
		if err != nil {
			// only a cancelled subscription gets here; drop the snapshot
			return
		}
		onChange(schedules)
	})
	if err != nil {
		return nil, fmt.Errorf("subscribe schedules: %w: %w", models.ErrStoreUnavailable, err)
	}
	return sub, nil
}

func (r *StoreScheduleRepo) ListSchedules(ctx context.Context, userID string) ([]models.Schedule, error) {
	if userID == "" {
		return nil, fmt.Errorf("list schedules: %w", &models.ValidationError{Fields: []string{models.FieldUserID}})
	}

	docs, err := r.store.Find(ctx, models.ScheduleCollection, database.Filter{Field: models.FieldUserID, Value: userID})
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w: %w", models.ErrStoreUnavailable, err)
	}
	return r.denormalize(ctx, docs)
}

func (r *StoreScheduleRepo) GetSchedule(ctx context.Context, id string) (*models.Schedule, error) {
	if id == "" {
		return nil, fmt.Errorf("get schedule: %w", &models.ValidationError{Fields: []string{"id"}})
	}
	doc, err := r.store.GetOne(ctx, models.ScheduleCollection, id)
	if err != nil {
		if errors.Is(err, database.ErrDocumentNotFound) {
			return nil, fmt.Errorf("schedule %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("get schedule %s: %w: %w", id, models.ErrStoreUnavailable, err)
	}
	s := r.scheduleView(*doc, nil)
	return &s, nil
}

// DeleteSchedule does not check ownership; callers that take ids from
// untrusted input check GetSchedule first.
func (r *StoreScheduleRepo) DeleteSchedule(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("delete schedule: %w", &models.ValidationError{Fields: []string{"id"}})
	}
	if err := r.store.Delete(ctx, models.ScheduleCollection, id); err != nil {
		if errors.Is(err, database.ErrDocumentNotFound) {
			return nil
		}
		return fmt.Errorf("delete schedule %s: %w: %w", id, models.ErrStoreUnavailable, err)
	}
	return nil
}
