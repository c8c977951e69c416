package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/dib-tools/perjadin-api/internal/models"
	appErrors "github.com/dib-tools/perjadin-api/pkg/errors"
)

// Bucket names a cost column on a claim item.
type Bucket string

const (
	BucketTransport     Bucket = "transport"
	BucketAccommodation Bucket = "accommodation"
	BucketNone          Bucket = "none"
)

// BucketFor maps a receipt type to the cost bucket it contributes to.
// Receipts classified "other" are retained for audit but not reimbursed.
func BucketFor(t models.ReceiptType) Bucket {
	switch t {
	case models.ReceiptFlight, models.ReceiptTrain:
		return BucketTransport
	case models.ReceiptHotel:
		return BucketAccommodation
	}
	return BucketNone
}

// AddReceipt returns a copy of the item with the receipt attached and the
// matching cost bucket increased by the receipt amount.
func AddReceipt(item models.ClaimItem, r models.Receipt) models.ClaimItem {
	switch BucketFor(r.Type) {
	case BucketTransport:
		item.TransportCost += r.Amount
	case BucketAccommodation:
		item.AccommodationCost += r.Amount
	}
	receipts := make([]models.Receipt, len(item.Receipts), len(item.Receipts)+1)
	copy(receipts, item.Receipts)
	item.Receipts = append(receipts, r)
	return item
}

// RemoveReceipt is the inverse of AddReceipt. It detaches the first receipt
// with the given ID and decreases the matching bucket by its amount. The item
// is returned unchanged when the ID is not present.
func RemoveReceipt(item models.ClaimItem, receiptID string) models.ClaimItem {
	idx := -1
	for i, r := range item.Receipts {
		if r.ID == receiptID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return item
	}
	removed := item.Receipts[idx]
	switch BucketFor(removed.Type) {
	case BucketTransport:
		item.TransportCost -= removed.Amount
	case BucketAccommodation:
		item.AccommodationCost -= removed.Amount
	}
	receipts := make([]models.Receipt, 0, len(item.Receipts)-1)
	receipts = append(receipts, item.Receipts[:idx]...)
	receipts = append(receipts, item.Receipts[idx+1:]...)
	item.Receipts = receipts
	return item
}

type claimRepository interface {
	Create(ctx context.Context, claim *models.AtCostClaim) error
	FindByID(ctx context.Context, id string) (*models.AtCostClaim, error)
	FindByTravelRequestID(ctx context.Context, travelRequestID string) (*models.AtCostClaim, error)
	List(ctx context.Context) ([]models.AtCostClaim, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
	FindReceiptByID(ctx context.Context, receiptID string) (*models.Receipt, error)
}

type claimTravelRequestReader interface {
	FindByID(ctx context.Context, id string) (*models.TravelRequest, error)
}

type representativeReader interface {
	FindActive(ctx context.Context) (*models.Representative, error)
}

type claimSequencer interface {
	NextClaimSequence(ctx context.Context) (int, error)
}

type receiptFileRemover interface {
	Delete(filename string) error
}

// ReceiptInput carries a normalized receipt inside a claim creation payload.
// FilePath and FileName reference a previously uploaded document.
type ReceiptInput struct {
	Type            string `json:"type"`
	ReceiptNumber   string `json:"receipt_number"`
	ReceiptDate     string `json:"receipt_date"`
	Vendor          string `json:"vendor"`
	Description     string `json:"description"`
	Amount          int64  `json:"amount" validate:"gte=0"`
	PassengerName   string `json:"passenger_name"`
	RouteOrLocation string `json:"route_or_location"`
	FilePath        string `json:"file_path"`
	FileName        string `json:"file_name"`
	ParsedData      string `json:"parsed_data,omitempty"`
}

// ClaimItemInput groups one participant's receipts. Cost buckets are derived
// server-side from the receipt types, so the payload carries none.
type ClaimItemInput struct {
	EmployeeID string         `json:"employee_id" validate:"required"`
	Receipts   []ReceiptInput `json:"receipts" validate:"required,min=1,dive"`
}

// CreateClaimRequest is the payload for creating an at-cost claim.
type CreateClaimRequest struct {
	TravelRequestID string           `json:"travel_request_id" validate:"required"`
	Items           []ClaimItemInput `json:"claim_items" validate:"required,min=1,dive"`
}

// ClaimService orchestrates at-cost claim workflows.
type ClaimService struct {
	repo      claimRepository
	requests  claimTravelRequestReader
	reps      representativeReader
	sequences claimSequencer
	files     receiptFileRemover
	numbering NumberingConfig
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewClaimService constructs ClaimService.
func NewClaimService(repo claimRepository, requests claimTravelRequestReader, reps representativeReader, sequences claimSequencer, files receiptFileRemover, numbering NumberingConfig, validate *validator.Validate, logger *zap.Logger) *ClaimService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClaimService{
		repo:      repo,
		requests:  requests,
		reps:      reps,
		sequences: sequences,
		files:     files,
		numbering: numbering,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// Create validates and persists a claim. Item cost buckets and the claim
// total are derived from the receipts; any client-supplied totals are
// ignored. Validation failures name the first offending participant.
func (s *ClaimService) Create(ctx context.Context, req CreateClaimRequest) (*models.AtCostClaim, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid claim payload")
	}
	request, err := s.requests.FindByID(ctx, req.TravelRequestID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "travel request not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load travel request")
	}
	if err := s.validateItems(request, req.Items); err != nil {
		return nil, err
	}
	if existing, err := s.repo.FindByTravelRequestID(ctx, req.TravelRequestID); err != nil && err != sql.ErrNoRows {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check existing claim")
	} else if existing != nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, "travel request already has a claim")
	}
	rep, err := s.reps.FindActive(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "no active representative configured")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load representative")
	}
	positionCode := PositionCodeFromNumber(request.RequestNumber)
	if positionCode == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "travel request number does not carry a position code")
	}
	seq, err := s.sequences.NextClaimSequence(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to allocate claim sequence")
	}

	claim := &models.AtCostClaim{
		TravelRequestID:        request.ID,
		ClaimNumber:            s.numbering.FormatRequestNumber(seq, positionCode),
		RepresentativeName:     rep.Name,
		RepresentativePosition: rep.Position,
		Status:                 models.StatusPending,
	}
	for _, in := range req.Items {
		item := models.ClaimItem{EmployeeID: in.EmployeeID, EmployeeName: participantName(request, in.EmployeeID)}
		for _, rc := range in.Receipts {
			item = AddReceipt(item, s.receiptFromInput(rc))
		}
		claim.TotalAmount += item.TotalCost()
		claim.Items = append(claim.Items, item)
	}
	if err := s.repo.Create(ctx, claim); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create claim")
	}
	s.logger.Info("claim created",
		zap.String("claim_id", claim.ID),
		zap.String("claim_number", claim.ClaimNumber),
		zap.Int64("total_amount", claim.TotalAmount))
	return s.Get(ctx, claim.ID)
}

func (s *ClaimService) validateItems(request *models.TravelRequest, items []ClaimItemInput) error {
	seen := make(map[string]bool, len(items))
	for _, in := range items {
		name := participantName(request, in.EmployeeID)
		if name == "" {
			return appErrors.Clone(appErrors.ErrValidation,
				fmt.Sprintf("employee %s is not a participant of the travel request", in.EmployeeID))
		}
		if seen[in.EmployeeID] {
			return appErrors.Clone(appErrors.ErrValidation,
				fmt.Sprintf("duplicate claim item for %s", name))
		}
		seen[in.EmployeeID] = true
		if len(in.Receipts) == 0 {
			return appErrors.Clone(appErrors.ErrValidation,
				fmt.Sprintf("claim item for %s has no receipts", name))
		}
		for _, rc := range in.Receipts {
			if rc.Amount < 0 {
				return appErrors.Clone(appErrors.ErrValidation,
					fmt.Sprintf("claim item for %s has a negative receipt amount", name))
			}
		}
	}
	return nil
}

func (s *ClaimService) receiptFromInput(in ReceiptInput) models.Receipt {
	date, err := time.Parse("2006-01-02", in.ReceiptDate)
	if err != nil {
		date = truncateToDate(s.now())
	}
	return models.Receipt{
		Type:            normalizeType(in.Type),
		ReceiptNumber:   in.ReceiptNumber,
		ReceiptDate:     date,
		Vendor:          in.Vendor,
		Description:     in.Description,
		Amount:          in.Amount,
		PassengerName:   in.PassengerName,
		RouteOrLocation: in.RouteOrLocation,
		FilePath:        in.FilePath,
		FileName:        in.FileName,
		ParsedData:      in.ParsedData,
	}
}

func participantName(request *models.TravelRequest, employeeID string) string {
	for _, p := range request.Participants {
		if p.EmployeeID == employeeID {
			return p.EmployeeName
		}
	}
	return ""
}

// Get returns a claim with its items and receipts.
func (s *ClaimService) Get(ctx context.Context, id string) (*models.AtCostClaim, error) {
	claim, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "claim not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load claim")
	}
	return claim, nil
}

// GetByTravelRequest returns the claim attached to a travel request.
func (s *ClaimService) GetByTravelRequest(ctx context.Context, travelRequestID string) (*models.AtCostClaim, error) {
	claim, err := s.repo.FindByTravelRequestID(ctx, travelRequestID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "no claim for travel request")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load claim")
	}
	return claim, nil
}

// List returns all claims newest first.
func (s *ClaimService) List(ctx context.Context) ([]models.AtCostClaim, error) {
	claims, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list claims")
	}
	return claims, nil
}

// UpdateStatus moves a claim through its review lifecycle.
func (s *ClaimService) UpdateStatus(ctx context.Context, id, status string) (*models.AtCostClaim, error) {
	switch status {
	case models.StatusPending, models.StatusApproved, models.StatusCompleted, models.StatusRejected:
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown claim status %q", status))
	}
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update claim status")
	}
	return s.Get(ctx, id)
}

// Delete removes a claim, its items and receipts, and the stored receipt
// files. File removal failures are logged and do not abort the delete.
func (s *ClaimService) Delete(ctx context.Context, id string) error {
	claim, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	for _, item := range claim.Items {
		for _, r := range item.Receipts {
			if r.FilePath == "" {
				continue
			}
			if err := s.files.Delete(r.FilePath); err != nil {
				s.logger.Warn("failed to remove receipt file",
					zap.String("path", r.FilePath), zap.Error(err))
			}
		}
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete claim")
	}
	return nil
}

// ReceiptFile resolves the stored file path for a receipt download.
func (s *ClaimService) ReceiptFile(ctx context.Context, receiptID string) (*models.Receipt, error) {
	receipt, err := s.repo.FindReceiptByID(ctx, receiptID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "receipt not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load receipt")
	}
	return receipt, nil
}
