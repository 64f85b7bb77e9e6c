package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	scheduleRepo "trilhas/database/repository/schedule"
	"trilhas/middleware"
	"trilhas/models"
	"trilhas/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const defaultHeartbeat = 25 * time.Second

// ScheduleHandler serves the caller's schedules.
type ScheduleHandler struct {
	Schedules scheduleRepo.ScheduleRepository
	// Heartbeat is the interval of keep-alive events on the stream.
	Heartbeat time.Duration
}

func NewScheduleHandler(schedules scheduleRepo.ScheduleRepository) *ScheduleHandler {
	return &ScheduleHandler{Schedules: schedules, Heartbeat: defaultHeartbeat}
}

type createScheduleRequest struct {
	TrailID string `json:"trailId"`
}

// CreateScheduleHandler handles POST /api/schedules.
func (h *ScheduleHandler) CreateScheduleHandler(c *gin.Context) {
	session, _ := middleware.GetSession(c)
	var req createScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, bindError(err), "Invalid schedule request")
		return
	}
	schedule, err := h.Schedules.CreateSchedule(c.Request.Context(), session.UserID, req.TrailID)
	if err != nil {
		utils.JSONError(c, err, "Failed to create schedule")
		return
	}
	getLogger(c).Info("Trail scheduled",
		zap.String("scheduleId", schedule.ID), zap.String("trailId", schedule.TrailID))
	c.JSON(http.StatusCreated, schedule)
}

// ListSchedulesHandler handles GET /api/schedules.
func (h *ScheduleHandler) ListSchedulesHandler(c *gin.Context) {
	session, _ := middleware.GetSession(c)
	schedules, err := h.Schedules.ListSchedules(c.Request.Context(), session.UserID)
	if err != nil {
		utils.JSONError(c, err, "Failed to list schedules")
		return
	}
	c.JSON(http.StatusOK, gin.H{"schedules": schedules})
}

// StreamSchedulesHandler handles GET /api/schedules/stream. Every change to
// the caller's schedules is sent as a "schedules" server-sent event carrying
// the full list. The live query ends with the request.
func (h *ScheduleHandler) StreamSchedulesHandler(c *gin.Context) {
	session, _ := middleware.GetSession(c)
	ctx := c.Request.Context()

	// Holds at most the latest snapshot; a slow client skips stale ones.
	updates := make(chan []models.Schedule, 1)
	sub, err := h.Schedules.SubscribeSchedules(ctx, session.UserID, func(s []models.Schedule) {
		select {
		case <-updates:
		default:
		}
		updates <- s
	})
	if err != nil {
		utils.JSONError(c, err, "Failed to subscribe to schedules")
		return
	}
	defer sub.Cancel()

	heartbeat := h.Heartbeat
	if heartbeat <= 0 {
		heartbeat = defaultHeartbeat
	}
	ticker := time.NewTicker(heartbeat)
	defer ticker.Stop()

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case <-sub.Done():
			if err := sub.Err(); err != nil {
				getLogger(c).Error("Schedule stream ended", zap.Error(err))
			}
			return false
		case s := <-updates:
			c.SSEvent("schedules", s)
			return true
		case t := <-ticker.C:
			c.SSEvent("ping", gin.H{"at": models.Timestamp(t)})
			return true
		}
	})
}

// DeleteScheduleHandler handles DELETE /api/schedules/:id. Only the owner
// may delete a schedule; deleting a missing one succeeds.
func (h *ScheduleHandler) DeleteScheduleHandler(c *gin.Context) {
	session, _ := middleware.GetSession(c)
	id := c.Param("id")

	existing, err := h.Schedules.GetSchedule(c.Request.Context(), id)
	switch {
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusOK, gin.H{"message": "Schedule deleted"})
		return
	case err != nil:
		utils.JSONError(c, err, "Failed to read schedule")
		return
	case existing.UserID != session.UserID:
		utils.JSONError(c, fmt.Errorf("schedule %s: %w", id, models.ErrPermissionDenied), "Schedule belongs to another user")
		return
	}

	if err := h.Schedules.DeleteSchedule(c.Request.Context(), id); err != nil {
		utils.JSONError(c, err, "Failed to delete schedule")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Schedule deleted"})
}
