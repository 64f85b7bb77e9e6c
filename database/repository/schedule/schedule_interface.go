package scheduleRepo

import (
	"context"

	"trilhas/database"
	"trilhas/models"
)

// ScheduleRepository defines the schedule operations.
type ScheduleRepository interface {
	// CreateSchedule books trailID for userID.
	CreateSchedule(ctx context.Context, userID, trailID string) (*models.Schedule, error)
	// SubscribeSchedules delivers the user's full, denormalized schedule list
	// on every change until the returned subscription is cancelled.
	SubscribeSchedules(ctx context.Context, userID string, onChange func([]models.Schedule)) (*database.Subscription, error)
	// ListSchedules reads a one-off denormalized snapshot of the user's schedules.
	ListSchedules(ctx context.Context, userID string) ([]models.Schedule, error)
	// GetSchedule reads one stored schedule without trail fields.
	GetSchedule(ctx context.Context, id string) (*models.Schedule, error)
	// DeleteSchedule removes a schedule. Deleting a missing schedule succeeds.
	DeleteSchedule(ctx context.Context, id string) error
}

// TrailGetter looks up the trail a schedule refers to.
type TrailGetter interface {
	GetTrail(ctx context.Context, id string) (*models.Trail, error)
}
