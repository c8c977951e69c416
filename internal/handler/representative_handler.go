package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dib-tools/perjadin-api/internal/service"
	appErrors "github.com/dib-tools/perjadin-api/pkg/errors"
	"github.com/dib-tools/perjadin-api/pkg/response"
)

// RepresentativeHandler exposes the signing representative configuration.
type RepresentativeHandler struct {
	representatives *service.RepresentativeService
}

// NewRepresentativeHandler constructs RepresentativeHandler.
func NewRepresentativeHandler(representatives *service.RepresentativeService) *RepresentativeHandler {
	return &RepresentativeHandler{representatives: representatives}
}

// Get godoc
// @Summary Get the active signing representative
// @Tags Representative
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/representative-config [get]
func (h *RepresentativeHandler) Get(c *gin.Context) {
	rep, err := h.representatives.Get(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rep, nil)
}

// Update godoc
// @Summary Replace the active signing representative
// @Tags Representative
// @Accept json
// @Produce json
// @Param payload body service.UpdateRepresentativeRequest true "Representative payload"
// @Success 200 {object} response.Envelope
// @Router /admin/representative-config [put]
func (h *RepresentativeHandler) Update(c *gin.Context) {
	var req service.UpdateRepresentativeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	rep, err := h.representatives.Update(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rep, nil)
}
