package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dib-tools/perjadin-api/internal/dto"
	"github.com/dib-tools/perjadin-api/internal/service"
	appErrors "github.com/dib-tools/perjadin-api/pkg/errors"
	"github.com/dib-tools/perjadin-api/pkg/response"
)

// MonitoringHandler serves the allowance summary board and runtime metrics.
type MonitoringHandler struct {
	reports *service.ReportService
	metrics *service.MetricsService
}

// NewMonitoringHandler constructs MonitoringHandler.
func NewMonitoringHandler(reports *service.ReportService, metrics *service.MetricsService) *MonitoringHandler {
	return &MonitoringHandler{reports: reports, metrics: metrics}
}

// Summary godoc
// @Summary Per-employee allowance summary over a period
// @Description Includes every employee on the roster, zeroed when they did
// @Description not travel, sorted by total allowance descending.
// @Tags Monitoring
// @Produce json
// @Param year query int false "Filter by year"
// @Param month query int false "Filter by month"
// @Success 200 {object} response.Envelope
// @Router /monitoring/summary [get]
func (h *MonitoringHandler) Summary(c *gin.Context) {
	var filter dto.ReportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid filter"))
		return
	}
	summaries, err := h.reports.Summary(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summaries, nil)
}

// SystemStats godoc
// @Summary Runtime counters snapshot
// @Tags Monitoring
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/monitoring/system [get]
func (h *MonitoringHandler) SystemStats(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.metrics.Snapshot(), nil)
}
