package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dib-tools/perjadin-api/internal/service"
	appErrors "github.com/dib-tools/perjadin-api/pkg/errors"
	"github.com/dib-tools/perjadin-api/pkg/response"
)

// TravelReportHandler exposes trip completion report endpoints.
type TravelReportHandler struct {
	reports *service.TravelReportService
}

// NewTravelReportHandler constructs TravelReportHandler.
func NewTravelReportHandler(reports *service.TravelReportService) *TravelReportHandler {
	return &TravelReportHandler{reports: reports}
}

// Create godoc
// @Summary File a trip completion report
// @Description Records the visit-proof itinerary for a finished trip and
// @Description moves the travel request to completed.
// @Tags TravelReports
// @Accept json
// @Produce json
// @Param payload body service.CreateTravelReportRequest true "Report payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /travel-reports [post]
func (h *TravelReportHandler) Create(c *gin.Context) {
	var req service.CreateTravelReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	report, err := h.reports.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, report)
}

// GetByTravelRequest godoc
// @Summary Get the report filed for a travel request
// @Tags TravelReports
// @Produce json
// @Param request_id path string true "Travel request ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /travel-reports/{request_id} [get]
func (h *TravelReportHandler) GetByTravelRequest(c *gin.Context) {
	report, err := h.reports.GetByTravelRequest(c.Request.Context(), c.Param("request_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report, nil)
}
