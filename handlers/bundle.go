// File: trilhas/handlers/bundle.go
package handlers

import (
	"trilhas/middleware"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers and the middleware
// dependencies into one struct.
type HandlerBundle struct {
	Authenticator     middleware.Authenticator
	Roles             middleware.RoleResolver
	MaxRequestsPerMin int

	// User endpoints
	GetProfileHandler    gin.HandlerFunc
	EnsureProfileHandler gin.HandlerFunc
	SignOutHandler       gin.HandlerFunc

	// Trail endpoints
	ListTrailsHandler  gin.HandlerFunc
	GetTrailHandler    gin.HandlerFunc
	CreateTrailHandler gin.HandlerFunc
	UpdateTrailHandler gin.HandlerFunc
	DeleteTrailHandler gin.HandlerFunc

	// Schedule endpoints
	CreateScheduleHandler  gin.HandlerFunc
	ListSchedulesHandler   gin.HandlerFunc
	StreamSchedulesHandler gin.HandlerFunc
	DeleteScheduleHandler  gin.HandlerFunc
}

// NewHandlerBundle assembles the bundle from the handler groups.
func NewHandlerBundle(users *UserHandler, trails *TrailHandler, schedules *ScheduleHandler) *HandlerBundle {
	return &HandlerBundle{
		GetProfileHandler:    users.GetProfileHandler,
		EnsureProfileHandler: users.EnsureProfileHandler,
		SignOutHandler:       users.SignOutHandler,

		ListTrailsHandler:  trails.ListTrailsHandler,
		GetTrailHandler:    trails.GetTrailHandler,
		CreateTrailHandler: trails.CreateTrailHandler,
		UpdateTrailHandler: trails.UpdateTrailHandler,
		DeleteTrailHandler: trails.DeleteTrailHandler,

		CreateScheduleHandler:  schedules.CreateScheduleHandler,
		ListSchedulesHandler:   schedules.ListSchedulesHandler,
		StreamSchedulesHandler: schedules.StreamSchedulesHandler,
		DeleteScheduleHandler:  schedules.DeleteScheduleHandler,
	}
}
