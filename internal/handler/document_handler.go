package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dib-tools/perjadin-api/internal/dto"
	"github.com/dib-tools/perjadin-api/internal/service"
	appErrors "github.com/dib-tools/perjadin-api/pkg/errors"
	"github.com/dib-tools/perjadin-api/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DocumentHandler serves generated PDF and Excel documents.
type DocumentHandler struct {
	documents *service.DocumentService
}

// NewDocumentHandler constructs DocumentHandler.
func NewDocumentHandler(documents *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documents: documents}
}

func servePDF(c *gin.Context, data []byte, filename string, err error) {
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}

// NotaPermintaan godoc
// @Summary Download the request memo PDF
// @Tags Documents
// @Produce application/pdf
// @Param id path string true "Travel request ID"
// @Success 200 {file} binary
// @Router /pdf/nota-permintaan/{id} [get]
func (h *DocumentHandler) NotaPermintaan(c *gin.Context) {
	data, filename, err := h.documents.NotaPermintaan(c.Request.Context(), c.Param("id"))
	servePDF(c, data, filename, err)
}

// BeritaAcara godoc
// @Summary Download the trip report PDF
// @Tags Documents
// @Produce application/pdf
// @Param id path string true "Travel request ID"
// @Success 200 {file} binary
// @Router /pdf/berita-acara/{id} [get]
func (h *DocumentHandler) BeritaAcara(c *gin.Context) {
	data, filename, err := h.documents.BeritaAcara(c.Request.Context(), c.Param("id"))
	servePDF(c, data, filename, err)
}

// CombinedRequest godoc
// @Summary Download the memo and report as one PDF
// @Tags Documents
// @Produce application/pdf
// @Param id path string true "Travel request ID"
// @Success 200 {file} binary
// @Router /pdf/combined/{id} [get]
func (h *DocumentHandler) CombinedRequest(c *gin.Context) {
	data, filename, err := h.documents.CombinedRequest(c.Request.Context(), c.Param("id"))
	servePDF(c, data, filename, err)
}

// NotaAtCost godoc
// @Summary Download the at-cost claim memo PDF
// @Tags Documents
// @Produce application/pdf
// @Param id path string true "Claim ID"
// @Success 200 {file} binary
// @Router /pdf/nota-atcost/{id} [get]
func (h *DocumentHandler) NotaAtCost(c *gin.Context) {
	data, filename, err := h.documents.NotaAtCost(c.Request.Context(), c.Param("id"))
	servePDF(c, data, filename, err)
}

// CombinedAtCost godoc
// @Summary Download the claim memo with its receipt manifest as one PDF
// @Tags Documents
// @Produce application/pdf
// @Param id path string true "Claim ID"
// @Success 200 {file} binary
// @Router /pdf/combined-atcost/{id} [get]
func (h *DocumentHandler) CombinedAtCost(c *gin.Context) {
	data, filename, err := h.documents.CombinedAtCost(c.Request.Context(), c.Param("id"))
	servePDF(c, data, filename, err)
}

// MonthlyAllowanceExcel godoc
// @Summary Download the monthly allowance recap workbook
// @Tags Documents
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param year query int false "Filter by year"
// @Param month query int false "Filter by month"
// @Success 200 {file} binary
// @Router /admin/excel/monthly-allowance [get]
func (h *DocumentHandler) MonthlyAllowanceExcel(c *gin.Context) {
	var filter dto.ReportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid filter"))
		return
	}
	data, filename, err := h.documents.MonthlyAllowanceExcel(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}

// MonthlyAllowanceCSV godoc
// @Summary Download the monthly allowance recap as CSV
// @Tags Documents
// @Produce text/csv
// @Param year query int false "Filter by year"
// @Param month query int false "Filter by month"
// @Success 200 {file} binary
// @Router /admin/csv/monthly-allowance [get]
func (h *DocumentHandler) MonthlyAllowanceCSV(c *gin.Context) {
	var filter dto.ReportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid filter"))
		return
	}
	data, filename, err := h.documents.MonthlyAllowanceCSV(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv", data)
}
