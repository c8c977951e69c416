package service

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dib-tools/perjadin-api/internal/models"
	appErrors "github.com/dib-tools/perjadin-api/pkg/errors"
)

// RawReceiptFields is the best-effort structured guess produced by the
// upstream text-extraction step. Any field may be absent or malformed;
// Normalize is responsible for turning it into a total-safe Receipt.
type RawReceiptFields struct {
	Type            string      `json:"type,omitempty"`
	ReceiptNumber   string      `json:"receipt_number,omitempty"`
	Date            string      `json:"date,omitempty"`
	Vendor          string      `json:"vendor,omitempty"`
	Description     string      `json:"description,omitempty"`
	Amount          json.Number `json:"amount,omitempty"`
	PassengerName   string      `json:"passenger_name,omitempty"`
	RouteOrLocation string      `json:"route_or_location,omitempty"`
}

// UploadMeta describes an incoming receipt document before normalization.
type UploadMeta struct {
	FileName  string
	MediaType string
	SizeBytes int64
}

// ReceiptServiceConfig tunes upload validation.
type ReceiptServiceConfig struct {
	MaxFileSizeBytes int64
	AllowedMIMEs     []string
}

// ReceiptService classifies and normalizes parsed receipt guesses.
type ReceiptService struct {
	cfg    ReceiptServiceConfig
	logger *zap.Logger
	now    func() time.Time
}

// NewReceiptService constructs a ReceiptService.
func NewReceiptService(cfg ReceiptServiceConfig, logger *zap.Logger) *ReceiptService {
	if cfg.MaxFileSizeBytes <= 0 {
		cfg.MaxFileSizeBytes = 10 * 1024 * 1024
	}
	if len(cfg.AllowedMIMEs) == 0 {
		cfg.AllowedMIMEs = []string{"application/pdf"}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReceiptService{cfg: cfg, logger: logger, now: time.Now}
}

// ValidateUpload rejects a document before any normalization is attempted.
// Wrong media type yields ErrUnsupportedMedia; oversize yields
// ErrPayloadTooLarge.
func (s *ReceiptService) ValidateUpload(meta UploadMeta) error {
	if !s.mediaTypeAllowed(meta) {
		return appErrors.Clone(appErrors.ErrUnsupportedMedia, "only PDF receipts are accepted")
	}
	if meta.SizeBytes > s.cfg.MaxFileSizeBytes {
		return appErrors.Clone(appErrors.ErrPayloadTooLarge,
			fmt.Sprintf("file exceeds the %d byte limit", s.cfg.MaxFileSizeBytes))
	}
	return nil
}

// Normalize turns a raw field guess into a typed Receipt. Defaulting rules:
// unknown type becomes "other", missing or non-numeric amount becomes 0,
// unparseable date becomes the current date, string fields become empty
// strings. A negative amount is the only rejection.
func (s *ReceiptService) Normalize(raw RawReceiptFields) (models.Receipt, error) {
	amount, err := s.normalizeAmount(raw.Amount)
	if err != nil {
		return models.Receipt{}, err
	}

	receipt := models.Receipt{
		Type:            normalizeType(raw.Type),
		ReceiptNumber:   strings.TrimSpace(raw.ReceiptNumber),
		ReceiptDate:     s.normalizeDate(raw.Date),
		Vendor:          strings.TrimSpace(raw.Vendor),
		Description:     strings.TrimSpace(raw.Description),
		Amount:          amount,
		PassengerName:   strings.TrimSpace(raw.PassengerName),
		RouteOrLocation: strings.TrimSpace(raw.RouteOrLocation),
	}

	if blob, err := json.Marshal(raw); err == nil {
		receipt.ParsedData = string(blob)
	}
	return receipt, nil
}

func (s *ReceiptService) normalizeAmount(raw json.Number) (int64, error) {
	if raw == "" {
		return 0, nil
	}
	amount, err := raw.Int64()
	if err != nil {
		f, ferr := raw.Float64()
		if ferr != nil {
			return 0, nil
		}
		amount = int64(f)
	}
	if amount < 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "receipt amount cannot be negative")
	}
	return amount, nil
}

func (s *ReceiptService) normalizeDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return truncateToDate(s.now())
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339, "02/01/2006"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return truncateToDate(t)
		}
	}
	return truncateToDate(s.now())
}

func (s *ReceiptService) mediaTypeAllowed(meta UploadMeta) bool {
	declared := strings.ToLower(strings.TrimSpace(meta.MediaType))
	if i := strings.Index(declared, ";"); i >= 0 {
		declared = strings.TrimSpace(declared[:i])
	}
	for _, allowed := range s.cfg.AllowedMIMEs {
		if declared == strings.ToLower(allowed) {
			return true
		}
	}
	// Some clients omit the content type on multipart parts; fall back to
	// the filename extension the way the legacy uploader did.
	if declared == "" || declared == "application/octet-stream" {
		return strings.HasSuffix(strings.ToLower(meta.FileName), ".pdf")
	}
	return false
}

func normalizeType(raw string) models.ReceiptType {
	t := models.ReceiptType(strings.ToLower(strings.TrimSpace(raw)))
	if !t.Valid() {
		return models.ReceiptOther
	}
	return t
}

// RawFromReceipt reinterprets a normalized receipt as raw extraction output.
// Normalize applied to the result is a no-op, which keeps re-ingestion of
// audited records stable.
func RawFromReceipt(r models.Receipt) RawReceiptFields {
	return RawReceiptFields{
		Type:            string(r.Type),
		ReceiptNumber:   r.ReceiptNumber,
		Date:            r.ReceiptDate.Format("2006-01-02"),
		Vendor:          r.Vendor,
		Description:     r.Description,
		Amount:          json.Number(fmt.Sprintf("%d", r.Amount)),
		PassengerName:   r.PassengerName,
		RouteOrLocation: r.RouteOrLocation,
	}
}

// StoredFileName builds the storage-relative name for an uploaded receipt.
func StoredFileName(now time.Time, original string) string {
	return fmt.Sprintf("%s_%s", now.Format("20060102_150405"), filepath.Base(original))
}
