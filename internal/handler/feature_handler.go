package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jengzang/mobility-backend-go/internal/service"
	"github.com/jengzang/mobility-backend-go/pkg/response"
)

// FeatureHandler handles HTTP requests for derived mobility features
type FeatureHandler struct {
	featureService *service.FeatureService
}

// NewFeatureHandler creates a new feature handler
func NewFeatureHandler(featureService *service.FeatureService) *FeatureHandler {
	return &FeatureHandler{featureService: featureService}
}

// ComputeFeatures handles GET /api/v1/series/:id/features
// Computes the full feature set on demand and persists it
func (h *FeatureHandler) ComputeFeatures(c *gin.Context) {
	fs, err := h.featureService.ComputeAndStore(c.Param("id"))
	if err != nil {
		if isInputError(err) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err.Error())
		return
	}
	if fs == nil {
		response.NotFound(c, "Series not found")
		return
	}
	response.Success(c, fs)
}

// GetStoredFeatures handles GET /api/v1/series/:id/features/stored
// Returns the previously persisted feature rows without recomputation
func (h *FeatureHandler) GetStoredFeatures(c *gin.Context) {
	features, computedAt, err := h.featureService.GetStoredFeatures(c.Param("id"))
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	if len(features) == 0 {
		response.NotFound(c, "No stored features for series")
		return
	}
	response.Success(c, gin.H{
		"features":   features,
		"computedAt": computedAt,
	})
}
