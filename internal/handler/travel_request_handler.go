package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dib-tools/perjadin-api/internal/dto"
	"github.com/dib-tools/perjadin-api/internal/models"
	"github.com/dib-tools/perjadin-api/internal/service"
	appErrors "github.com/dib-tools/perjadin-api/pkg/errors"
	"github.com/dib-tools/perjadin-api/pkg/response"
)

// TravelRequestHandler exposes travel request endpoints.
type TravelRequestHandler struct {
	requests *service.TravelRequestService
	reports  *service.ReportService
}

// NewTravelRequestHandler constructs TravelRequestHandler.
func NewTravelRequestHandler(requests *service.TravelRequestService, reports *service.ReportService) *TravelRequestHandler {
	return &TravelRequestHandler{requests: requests, reports: reports}
}

// Create godoc
// @Summary Submit a travel request
// @Tags TravelRequests
// @Accept json
// @Produce json
// @Param payload body service.CreateTravelRequestRequest true "Travel request payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /travel-requests [post]
func (h *TravelRequestHandler) Create(c *gin.Context) {
	var req service.CreateTravelRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	request, err := h.requests.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, request)
}

// List godoc
// @Summary List travel requests
// @Tags TravelRequests
// @Produce json
// @Param year query int false "Departure year"
// @Param month query int false "Departure month (1-12)"
// @Param status query string false "Lifecycle status"
// @Success 200 {object} response.Envelope
// @Router /travel-requests [get]
func (h *TravelRequestHandler) List(c *gin.Context) {
	var filter models.TravelRequestFilter
	if year, err := strconv.Atoi(c.Query("year")); err == nil {
		filter.Year = year
	}
	if month, err := strconv.Atoi(c.Query("month")); err == nil {
		filter.Month = month
	}
	filter.Status = c.Query("status")
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "50")); err == nil {
		filter.PageSize = size
	}
	requests, pagination, err := h.requests.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, requests, pagination)
}

// Get godoc
// @Summary Get a travel request
// @Tags TravelRequests
// @Produce json
// @Param id path string true "Travel request ID"
// @Success 200 {object} response.Envelope
// @Router /travel-requests/{id} [get]
func (h *TravelRequestHandler) Get(c *gin.Context) {
	request, err := h.requests.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, request, nil)
}

// UpdateStatus godoc
// @Summary Update a travel request status
// @Tags TravelRequests
// @Accept json
// @Produce json
// @Param id path string true "Travel request ID"
// @Success 200 {object} response.Envelope
// @Router /admin/travel-requests/{id}/status [put]
func (h *TravelRequestHandler) UpdateStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	request, err := h.requests.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, request, nil)
}

// Delete godoc
// @Summary Delete a travel request
// @Tags TravelRequests
// @Produce json
// @Param id path string true "Travel request ID"
// @Success 204
// @Router /admin/travel-requests/{id} [delete]
func (h *TravelRequestHandler) Delete(c *gin.Context) {
	if err := h.requests.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// EmployeeStats godoc
// @Summary Trip-count leaderboard
// @Tags TravelRequests
// @Produce json
// @Param year query int true "Departure year"
// @Param month query int false "Departure month (1-12)"
// @Success 200 {object} response.Envelope
// @Router /travel-requests/stats/employees [get]
func (h *TravelRequestHandler) EmployeeStats(c *gin.Context) {
	var filter dto.ReportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query"))
		return
	}
	board, err := h.reports.Leaderboard(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, board, nil)
}
