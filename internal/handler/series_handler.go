package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/mobility-backend-go/internal/mobility"
	"github.com/jengzang/mobility-backend-go/internal/models"
	"github.com/jengzang/mobility-backend-go/internal/service"
	"github.com/jengzang/mobility-backend-go/pkg/response"
)

// SeriesHandler handles HTTP requests for observation series
type SeriesHandler struct {
	seriesService *service.SeriesService
}

// NewSeriesHandler creates a new series handler
func NewSeriesHandler(seriesService *service.SeriesService) *SeriesHandler {
	return &SeriesHandler{seriesService: seriesService}
}

// CreateSeries handles POST /api/v1/series
func (h *SeriesHandler) CreateSeries(c *gin.Context) {
	var req models.CreateSeriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	series, err := h.seriesService.CreateSeries(req)
	if err != nil {
		if isInputError(err) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, series)
}

// GetSeries handles GET /api/v1/series/:id
func (h *SeriesHandler) GetSeries(c *gin.Context) {
	series, err := h.seriesService.GetSeries(c.Param("id"))
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	if series == nil {
		response.NotFound(c, "Series not found")
		return
	}
	response.Success(c, series)
}

// ListSeries handles GET /api/v1/series
func (h *SeriesHandler) ListSeries(c *gin.Context) {
	var filter models.SeriesFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	list, err := h.seriesService.ListSeries(filter)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, list)
}

// DeleteSeries handles DELETE /api/v1/series/:id
func (h *SeriesHandler) DeleteSeries(c *gin.Context) {
	if err := h.seriesService.DeleteSeries(c.Param("id")); err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, nil)
}

// isInputError distinguishes malformed input from server faults
func isInputError(err error) bool {
	return errors.Is(err, mobility.ErrNonMonotonicTime) ||
		errors.Is(err, mobility.ErrClusterNotMapped) ||
		errors.Is(err, mobility.ErrNoCoordinates) ||
		errors.Is(err, mobility.ErrNoHomeCluster) ||
		errors.Is(err, service.ErrInvalidInput)
}
