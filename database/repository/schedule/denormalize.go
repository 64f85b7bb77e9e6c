package scheduleRepo

import (
	"context"
	"sort"

	"trilhas/database"
	"trilhas/models"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// denormalize resolves the trail of every schedule in docs concurrently and
// returns the complete, sorted view once all lookups are done. A failed
// lookup leaves that schedule with the trail fields it stored itself, if any.
// The only error is ctx ending before the join completes.
func (r *StoreScheduleRepo) denormalize(ctx context.Context, docs []database.Document) ([]models.Schedule, error) {
	trails := make([]*models.Trail, len(docs))

	g, gctx := errgroup.WithContext(ctx)
	if r.concurrency > 0 {
		g.SetLimit(r.concurrency)
	}
	for i, doc := range docs {
		trailID := models.StringField(doc.Data, models.FieldTrailID)
		if trailID == "" {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			trail, err := r.trails.GetTrail(gctx, trailID)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				r.logger.Warn("schedule: trail lookup failed, using stored fields",
					zap.String("scheduleId", doc.ID), zap.String("trailId", trailID), zap.Error(err))
				return nil
			}
			trails[i] = trail
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	schedules := make([]models.Schedule, 0, len(docs))
	for i, doc := range docs {
		schedules = append(schedules, r.scheduleView(doc, trails[i]))
	}
	sortSchedules(schedules)
	return schedules, nil
}

// scheduleView merges trail fields over the schedule's own stored fields.
// A resolved trail always wins, even with an empty value; imageIndex prefers
// the schedule's stored value, then the trail's.
func (r *StoreScheduleRepo) scheduleView(doc database.Document, trail *models.Trail) models.Schedule {
	s := models.Schedule{
		ID:          doc.ID,
		UserID:      models.StringField(doc.Data, models.FieldUserID),
		TrailID:     models.StringField(doc.Data, models.FieldTrailID),
		ScheduledAt: models.StringField(doc.Data, models.FieldScheduledAt),
		Status:      models.StringField(doc.Data, models.FieldStatus),
		TrailName:   models.StringField(doc.Data, models.FieldTrailName),
		Location:    models.StringField(doc.Data, models.FieldLocation),
		Date:        models.StringField(doc.Data, models.FieldDate),
		Difficulty:  models.StringField(doc.Data, models.FieldDifficulty),
	}

	imageIndex, stored := doc.Data[models.FieldImageIndex]
	if trail != nil {
		s.TrailName = trail.TrailName
		s.Location = trail.Location
		s.Date = trail.Date
		s.Difficulty = trail.Difficulty
		if !stored {
			imageIndex = trail.ImageIndex
		}
	}
	s.ImageIndex = models.NormalizeImageIndex(imageIndex, r.bannerCount)
	return s
}

// sortSchedules orders newest bookings first; ties fall back to the id so the
// order is stable across snapshots.
func sortSchedules(s []models.Schedule) {
	sort.Slice(s, func(i, j int) bool {
		if s[i].ScheduledAt != s[j].ScheduledAt {
			return s[i].ScheduledAt > s[j].ScheduledAt
		}
		return s[i].ID < s[j].ID
	})
}
