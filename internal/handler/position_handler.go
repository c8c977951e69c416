package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dib-tools/perjadin-api/internal/models"
	"github.com/dib-tools/perjadin-api/internal/service"
	"github.com/dib-tools/perjadin-api/pkg/response"
)

// PositionHandler exposes the position catalogue.
type PositionHandler struct {
	positions *service.PositionService
}

// NewPositionHandler constructs PositionHandler.
func NewPositionHandler(positions *service.PositionService) *PositionHandler {
	return &PositionHandler{positions: positions}
}

// List godoc
// @Summary List positions and allowance rates
// @Tags Positions
// @Produce json
// @Param search query string false "Match title or code"
// @Success 200 {object} response.Envelope
// @Router /positions [get]
func (h *PositionHandler) List(c *gin.Context) {
	var filter models.PositionFilter
	filter.Search = c.Query("search")
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "100")); err == nil {
		filter.PageSize = size
	}
	positions, pagination, err := h.positions.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, positions, pagination)
}

// Get godoc
// @Summary Get a position
// @Tags Positions
// @Produce json
// @Param id path string true "Position ID"
// @Success 200 {object} response.Envelope
// @Router /positions/{id} [get]
func (h *PositionHandler) Get(c *gin.Context) {
	position, err := h.positions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, position, nil)
}
