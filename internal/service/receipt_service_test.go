package service

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dib-tools/perjadin-api/internal/models"
	appErrors "github.com/dib-tools/perjadin-api/pkg/errors"
)

func newTestReceiptService(t *testing.T) *ReceiptService {
	t.Helper()
	svc := NewReceiptService(ReceiptServiceConfig{}, nil)
	svc.now = func() time.Time { return day(2025, time.June, 15).Add(9 * time.Hour) }
	return svc
}

func TestValidateUploadAcceptsPDFWithinLimit(t *testing.T) {
	svc := newTestReceiptService(t)

	err := svc.ValidateUpload(UploadMeta{
		FileName:  "tiket.pdf",
		MediaType: "application/pdf",
		SizeBytes: 5 * 1024 * 1024,
	})
	assert.NoError(t, err)
}

func TestValidateUploadRejectsWrongMediaType(t *testing.T) {
	svc := newTestReceiptService(t)

	err := svc.ValidateUpload(UploadMeta{
		FileName:  "tiket.png",
		MediaType: "image/png",
		SizeBytes: 1024,
	})
	require.Error(t, err)
	assert.Equal(t, 415, appErrors.FromError(err).Status)
}

func TestValidateUploadRejectsOversize(t *testing.T) {
	svc := newTestReceiptService(t)

	err := svc.ValidateUpload(UploadMeta{
		FileName:  "tiket.pdf",
		MediaType: "application/pdf",
		SizeBytes: 10*1024*1024 + 1,
	})
	require.Error(t, err)
	assert.Equal(t, 413, appErrors.FromError(err).Status)
}

func TestValidateUploadFallsBackToExtension(t *testing.T) {
	svc := newTestReceiptService(t)

	err := svc.ValidateUpload(UploadMeta{FileName: "tiket.pdf", SizeBytes: 1024})
	assert.NoError(t, err)

	err = svc.ValidateUpload(UploadMeta{FileName: "tiket.pdf", MediaType: "application/octet-stream", SizeBytes: 1024})
	assert.NoError(t, err)

	err = svc.ValidateUpload(UploadMeta{FileName: "tiket.docx", SizeBytes: 1024})
	assert.Error(t, err)
}

func TestNormalizeDefaults(t *testing.T) {
	svc := newTestReceiptService(t)

	receipt, err := svc.Normalize(RawReceiptFields{})
	require.NoError(t, err)

	assert.Equal(t, models.ReceiptOther, receipt.Type)
	assert.Equal(t, int64(0), receipt.Amount)
	assert.Equal(t, day(2025, time.June, 15), receipt.ReceiptDate)
	assert.Empty(t, receipt.Vendor)
	assert.Empty(t, receipt.ReceiptNumber)
}

func TestNormalizeFields(t *testing.T) {
	svc := newTestReceiptService(t)

	receipt, err := svc.Normalize(RawReceiptFields{
		Type:            "FLIGHT",
		ReceiptNumber:   " INV-001 ",
		Date:            "2025-03-10",
		Vendor:          "Garuda Indonesia",
		Amount:          json.Number("1250000"),
		PassengerName:   "Budi Santoso",
		RouteOrLocation: "SUB - CGK",
	})
	require.NoError(t, err)

	assert.Equal(t, models.ReceiptFlight, receipt.Type)
	assert.Equal(t, "INV-001", receipt.ReceiptNumber)
	assert.Equal(t, day(2025, time.March, 10), receipt.ReceiptDate)
	assert.Equal(t, int64(1250000), receipt.Amount)
	assert.NotEmpty(t, receipt.ParsedData)
}

func TestNormalizeUnknownTypeAndBadAmount(t *testing.T) {
	svc := newTestReceiptService(t)

	receipt, err := svc.Normalize(RawReceiptFields{Type: "taxi", Amount: json.Number("abc")})
	require.NoError(t, err)
	assert.Equal(t, models.ReceiptOther, receipt.Type)
	assert.Equal(t, int64(0), receipt.Amount)
}

func TestNormalizeRejectsNegativeAmount(t *testing.T) {
	svc := newTestReceiptService(t)

	_, err := svc.Normalize(RawReceiptFields{Amount: json.Number("-500")})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestNormalizeIdempotentOnRoundTrip(t *testing.T) {
	svc := newTestReceiptService(t)

	first, err := svc.Normalize(RawReceiptFields{
		Type:   "hotel",
		Date:   "2025-04-01",
		Vendor: "Hotel Majapahit",
		Amount: json.Number("800000"),
	})
	require.NoError(t, err)

	second, err := svc.Normalize(RawFromReceipt(first))
	require.NoError(t, err)

	assert.Equal(t, first.Type, second.Type)
	assert.Equal(t, first.Amount, second.Amount)
	assert.Equal(t, first.ReceiptDate, second.ReceiptDate)
	assert.Equal(t, first.Vendor, second.Vendor)
}

func TestStoredFileName(t *testing.T) {
	now := time.Date(2025, time.June, 15, 9, 30, 45, 0, time.UTC)
	assert.Equal(t, "20250615_093045_tiket.pdf", StoredFileName(now, "/tmp/uploads/tiket.pdf"))
}
