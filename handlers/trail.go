package handlers

import (
	"net/http"

	trailRepo "trilhas/database/repository/trail"
	"trilhas/middleware"
	"trilhas/models"
	"trilhas/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TrailHandler serves the trail catalog.
type TrailHandler struct {
	Catalog trailRepo.CatalogRepository
}

func NewTrailHandler(catalog trailRepo.CatalogRepository) *TrailHandler {
	return &TrailHandler{Catalog: catalog}
}

// trailResponse adds the difficulty badge colour to a trail.
type trailResponse struct {
	models.Trail
	DifficultyColor string `json:"difficultyColor"`
}

func newTrailResponse(t models.Trail) trailResponse {
	return trailResponse{Trail: t, DifficultyColor: models.DifficultyColor(t.Difficulty)}
}

// ListTrailsHandler handles GET /api/trails.
func (h *TrailHandler) ListTrailsHandler(c *gin.Context) {
	trails, err := h.Catalog.ListTrails(c.Request.Context())
	if err != nil {
		utils.JSONError(c, err, "Failed to list trails")
		return
	}
	out := make([]trailResponse, 0, len(trails))
	for _, t := range trails {
		out = append(out, newTrailResponse(t))
	}
	c.JSON(http.StatusOK, gin.H{"trails": out})
}

// GetTrailHandler handles GET /api/trails/:id.
func (h *TrailHandler) GetTrailHandler(c *gin.Context) {
	trail, err := h.Catalog.GetTrail(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, err, "Failed to get trail")
		return
	}
	c.JSON(http.StatusOK, newTrailResponse(*trail))
}

// CreateTrailHandler handles POST /api/trails. Admin only.
func (h *TrailHandler) CreateTrailHandler(c *gin.Context) {
	var in models.TrailInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, bindError(err), "Invalid create trail request")
		return
	}
	trail, err := h.Catalog.CreateTrail(c.Request.Context(), in, middleware.GetRole(c))
	if err != nil {
		utils.JSONError(c, err, "Failed to create trail")
		return
	}
	getLogger(c).Info("Trail created", zap.String("id", trail.ID))
	c.JSON(http.StatusCreated, newTrailResponse(*trail))
}

// UpdateTrailHandler handles PATCH /api/trails/:id. Only the fields present
// in the body are changed.
func (h *TrailHandler) UpdateTrailHandler(c *gin.Context) {
	id := c.Param("id")
	var in models.TrailInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, bindError(err), "Invalid update trail request")
		return
	}
	trail, err := h.Catalog.UpdateTrail(c.Request.Context(), id, in, middleware.GetRole(c))
	if err != nil {
		utils.JSONError(c, err, "Failed to update trail")
		return
	}
	c.JSON(http.StatusOK, newTrailResponse(*trail))
}

// DeleteTrailHandler handles DELETE /api/trails/:id.
func (h *TrailHandler) DeleteTrailHandler(c *gin.Context) {
	id := c.Param("id")
	if err := h.Catalog.DeleteTrail(c.Request.Context(), id, middleware.GetRole(c)); err != nil {
		utils.JSONError(c, err, "Failed to delete trail")
		return
	}
	getLogger(c).Info("Trail deleted", zap.String("id", id))
	c.JSON(http.StatusOK, gin.H{"message": "Trail deleted"})
}
