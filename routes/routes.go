package routes

import (
	"net/http"
	"time"

	"trilhas/handlers"
	"trilhas/middleware"
	"trilhas/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers the caller's profile endpoints.
func RegisterUserRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	users := api.Group("/users")
	{
		users.GET("/me", hb.GetProfileHandler)
		users.POST("/me", hb.EnsureProfileHandler)
		users.DELETE("/me/session", hb.SignOutHandler)
	}
}

// RegisterTrailRoutes registers the catalog endpoints. Mutations check the
// caller's role inside the repository.
func RegisterTrailRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	trails := api.Group("/trails")
	{
		trails.GET("", hb.ListTrailsHandler)
		trails.GET("/:id", hb.GetTrailHandler)
		trails.POST("", hb.CreateTrailHandler)
		trails.PATCH("/:id", hb.UpdateTrailHandler)
		trails.DELETE("/:id", hb.DeleteTrailHandler)
	}
}

// RegisterScheduleRoutes registers the caller's schedule endpoints.
func RegisterScheduleRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	schedules := api.Group("/schedules")
	{
		schedules.POST("", hb.CreateScheduleHandler)
		schedules.GET("", hb.ListSchedulesHandler)
		schedules.GET("/stream", hb.StreamSchedulesHandler)
		schedules.DELETE("/:id", hb.DeleteScheduleHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint backed by the
// background health monitor.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		code := http.StatusOK
		if !status.Healthy() {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{"status": status, "message": "Hi, I'm Trilhas"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)

	api := r.Group("/api")
	api.Use(middleware.RateLimitMiddleware(hb.MaxRequestsPerMin))
	api.Use(middleware.FirebaseAuthMiddleware(hb.Authenticator))
	api.Use(middleware.RoleMiddleware(hb.Roles))

	RegisterUserRoutes(api, hb)
	RegisterTrailRoutes(api, hb)
	RegisterScheduleRoutes(api, hb)
}
