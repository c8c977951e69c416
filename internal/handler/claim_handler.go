package handler

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dib-tools/perjadin-api/internal/service"
	appErrors "github.com/dib-tools/perjadin-api/pkg/errors"
	"github.com/dib-tools/perjadin-api/pkg/response"
)

type receiptStorage interface {
	SaveStream(filename string, r io.Reader) (string, error)
	Path(filename string) string
}

// ClaimHandler exposes at-cost claim endpoints, including receipt uploads.
type ClaimHandler struct {
	claims   *service.ClaimService
	receipts *service.ReceiptService
	parser   *service.ReceiptParser
	storage  receiptStorage
	metrics  *service.MetricsService
}

// NewClaimHandler constructs ClaimHandler.
func NewClaimHandler(claims *service.ClaimService, receipts *service.ReceiptService, parser *service.ReceiptParser, storage receiptStorage, metrics *service.MetricsService) *ClaimHandler {
	return &ClaimHandler{claims: claims, receipts: receipts, parser: parser, storage: storage, metrics: metrics}
}

// UploadReceipt godoc
// @Summary Upload a receipt PDF
// @Description Stores the document after the media-type and size gates. When
// @Description the optional "text" field carries extracted document text the
// @Description parsing heuristics run and a normalized field guess is returned.
// @Tags AtCost
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Receipt PDF"
// @Param text formData string false "Extracted document text"
// @Success 201 {object} response.Envelope
// @Failure 413 {object} response.Envelope
// @Failure 415 {object} response.Envelope
// @Router /at-cost/upload-receipt [post]
func (h *ClaimHandler) UploadReceipt(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "missing file"))
		return
	}
	meta := service.UploadMeta{
		FileName:  fileHeader.Filename,
		MediaType: fileHeader.Header.Get("Content-Type"),
		SizeBytes: fileHeader.Size,
	}
	if err := h.receipts.ValidateUpload(meta); err != nil {
		h.metrics.RecordReceiptUpload("rejected")
		response.Error(c, err)
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, http.StatusInternalServerError, "failed to open upload"))
		return
	}
	defer src.Close() //nolint:errcheck

	stored := service.StoredFileName(time.Now(), fileHeader.Filename)
	if _, err := h.storage.SaveStream(stored, src); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, http.StatusInternalServerError, "failed to store receipt"))
		return
	}
	h.metrics.RecordReceiptUpload("accepted")

	result := gin.H{"file_path": stored, "file_name": fileHeader.Filename}
	if text := c.PostForm("text"); text != "" {
		raw := h.parser.Parse(text)
		receipt, err := h.receipts.Normalize(raw)
		if err != nil {
			response.Error(c, err)
			return
		}
		result["parsed_data"] = receipt
	}
	response.Created(c, result)
}

// ParseManual godoc
// @Summary Run the parsing heuristics over pasted receipt text
// @Tags AtCost
// @Accept json
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/at-cost/parse-manual [post]
func (h *ClaimHandler) ParseManual(c *gin.Context) {
	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	raw := h.parser.Parse(req.Text)
	receipt, err := h.receipts.Normalize(raw)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, receipt, nil)
}

// Create godoc
// @Summary Create an at-cost claim
// @Tags AtCost
// @Accept json
// @Produce json
// @Param payload body service.CreateClaimRequest true "Claim payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /at-cost/claims [post]
func (h *ClaimHandler) Create(c *gin.Context) {
	var req service.CreateClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	claim, err := h.claims.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, claim)
}

// List godoc
// @Summary List at-cost claims
// @Tags AtCost
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /at-cost/claims [get]
func (h *ClaimHandler) List(c *gin.Context) {
	claims, err := h.claims.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, claims, nil)
}

// Get godoc
// @Summary Get an at-cost claim
// @Tags AtCost
// @Produce json
// @Param id path string true "Claim ID"
// @Success 200 {object} response.Envelope
// @Router /at-cost/claims/{id} [get]
func (h *ClaimHandler) Get(c *gin.Context) {
	claim, err := h.claims.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, claim, nil)
}

// GetByTravelRequest godoc
// @Summary Get the claim attached to a travel request
// @Tags AtCost
// @Produce json
// @Param travel_request_id path string true "Travel request ID"
// @Success 200 {object} response.Envelope
// @Router /admin/at-cost/claims/travel-request/{travel_request_id} [get]
func (h *ClaimHandler) GetByTravelRequest(c *gin.Context) {
	claim, err := h.claims.GetByTravelRequest(c.Request.Context(), c.Param("travel_request_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, claim, nil)
}

// UpdateStatus godoc
// @Summary Update a claim status
// @Tags AtCost
// @Accept json
// @Produce json
// @Param id path string true "Claim ID"
// @Success 200 {object} response.Envelope
// @Router /admin/at-cost/claims/{id}/status [put]
func (h *ClaimHandler) UpdateStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	claim, err := h.claims.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, claim, nil)
}

// Delete godoc
// @Summary Delete an at-cost claim and its stored receipts
// @Tags AtCost
// @Produce json
// @Param id path string true "Claim ID"
// @Success 204
// @Router /admin/at-cost/claims/{id} [delete]
func (h *ClaimHandler) Delete(c *gin.Context) {
	if err := h.claims.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// DownloadReceipt godoc
// @Summary Download a stored receipt document
// @Tags AtCost
// @Produce application/pdf
// @Param receipt_id path string true "Receipt ID"
// @Success 200 {file} binary
// @Router /at-cost/receipts/{receipt_id}/download [get]
func (h *ClaimHandler) DownloadReceipt(c *gin.Context) {
	receipt, err := h.claims.ReceiptFile(c.Request.Context(), c.Param("receipt_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if receipt.FilePath == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "receipt has no stored file"))
		return
	}
	c.FileAttachment(h.storage.Path(receipt.FilePath), receipt.FileName)
}
