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

const defaultDeparturePlace = "Surabaya"

type travelRequestRepository interface {
	Create(ctx context.Context, request *models.TravelRequest) error
	FindByID(ctx context.Context, id string) (*models.TravelRequest, error)
	List(ctx context.Context, filter models.TravelRequestFilter) ([]models.TravelRequest, int, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}

type employeeDetailReader interface {
	FindDetailByID(ctx context.Context, id string) (*models.EmployeeDetail, error)
}

type requestSequencer interface {
	NextRequestSequence(ctx context.Context) (int, error)
}

type summaryInvalidator interface {
	InvalidateSummaries(ctx context.Context)
}

// CreateTravelRequestRequest is the payload for creating a travel request.
// Dates use the YYYY-MM-DD layout. The first employee listed determines the
// position code embedded in the document numbers.
type CreateTravelRequestRequest struct {
	Purpose         string   `json:"purpose" validate:"required"`
	DeparturePlace  string   `json:"departure_place"`
	Destination     string   `json:"destination" validate:"required"`
	DestinationType string   `json:"destination_type" validate:"required"`
	DepartureDate   string   `json:"departure_date" validate:"required"`
	ReturnDate      string   `json:"return_date" validate:"required"`
	Transportation  string   `json:"transportation" validate:"required"`
	EmployeeIDs     []string `json:"employee_ids" validate:"required,min=1,dive,required"`
}

// TravelRequestService orchestrates travel request workflows. Duration and
// total allowance are computed once at creation and persisted with the
// request.
type TravelRequestService struct {
	repo      travelRequestRepository
	employees employeeDetailReader
	sequences requestSequencer
	summaries summaryInvalidator
	numbering NumberingConfig
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTravelRequestService constructs TravelRequestService.
func NewTravelRequestService(repo travelRequestRepository, employees employeeDetailReader, sequences requestSequencer, summaries summaryInvalidator, numbering NumberingConfig, validate *validator.Validate, logger *zap.Logger) *TravelRequestService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TravelRequestService{
		repo:      repo,
		employees: employees,
		sequences: sequences,
		summaries: summaries,
		numbering: numbering,
		validator: validate,
		logger:    logger,
	}
}

// Create validates the payload, derives duration and allowance, allocates a
// document number and persists the request with its participant snapshot.
func (s *TravelRequestService) Create(ctx context.Context, req CreateTravelRequestRequest) (*models.TravelRequest, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid travel request payload")
	}
	dest := models.DestinationType(req.DestinationType)
	if !dest.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown destination type %q", req.DestinationType))
	}
	departure, err := time.Parse("2006-01-02", req.DepartureDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "departure date must use the YYYY-MM-DD layout")
	}
	returnDate, err := time.Parse("2006-01-02", req.ReturnDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "return date must use the YYYY-MM-DD layout")
	}
	duration, err := DurationDays(departure, returnDate)
	if err != nil {
		return nil, err
	}

	participants := make([]models.EmployeeDetail, 0, len(req.EmployeeIDs))
	seen := make(map[string]bool, len(req.EmployeeIDs))
	for _, id := range req.EmployeeIDs {
		if seen[id] {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("employee %s listed twice", id))
		}
		seen[id] = true
		detail, err := s.employees.FindDetailByID(ctx, id)
		if err != nil {
			if err == sql.ErrNoRows {
				return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("employee %s not found", id))
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load employee")
		}
		participants = append(participants, *detail)
	}

	breakdown, err := ComputeAllowance(dest, duration, participants)
	if err != nil {
		return nil, err
	}
	seq, err := s.sequences.NextRequestSequence(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to allocate request sequence")
	}
	// Both documents of a trip share the same number.
	number := s.numbering.FormatRequestNumber(seq, participants[0].Position.Code)

	departurePlace := req.DeparturePlace
	if departurePlace == "" {
		departurePlace = defaultDeparturePlace
	}
	request := &models.TravelRequest{
		Purpose:         req.Purpose,
		DeparturePlace:  departurePlace,
		Destination:     req.Destination,
		DestinationType: dest,
		DepartureDate:   departure,
		ReturnDate:      returnDate,
		DurationDays:    duration,
		Transportation:  req.Transportation,
		TotalAllowance:  breakdown.TotalAllowance,
		RequestNumber:   number,
		ReportNumber:    number,
		Status:          models.StatusPending,
	}
	for _, p := range participants {
		request.Participants = append(request.Participants, models.TravelRequestParticipant{
			EmployeeID:    p.ID,
			EmployeeNIP:   p.NIP,
			EmployeeName:  p.Name,
			PositionTitle: p.Position.Title,
		})
	}
	if err := s.repo.Create(ctx, request); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create travel request")
	}
	s.summaries.InvalidateSummaries(ctx)
	s.logger.Info("travel request created",
		zap.String("request_id", request.ID),
		zap.String("request_number", request.RequestNumber),
		zap.Int("duration_days", duration),
		zap.Int64("total_allowance", request.TotalAllowance))
	return s.Get(ctx, request.ID)
}

// List returns travel requests with pagination metadata.
func (s *TravelRequestService) List(ctx context.Context, filter models.TravelRequestFilter) ([]models.TravelRequest, *models.Pagination, error) {
	requests, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list travel requests")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	return requests, models.NewPagination(page, filter.PageSize, total), nil
}

// Get returns a travel request with its participants.
func (s *TravelRequestService) Get(ctx context.Context, id string) (*models.TravelRequest, error) {
	request, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "travel request not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load travel request")
	}
	return request, nil
}

// UpdateStatus moves a travel request through its lifecycle.
func (s *TravelRequestService) UpdateStatus(ctx context.Context, id, status string) (*models.TravelRequest, error) {
	switch status {
	case models.StatusPending, models.StatusApproved, models.StatusCompleted, models.StatusRejected:
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown request status %q", status))
	}
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update travel request status")
	}
	s.summaries.InvalidateSummaries(ctx)
	return s.Get(ctx, id)
}

// Delete removes a travel request and its participant links.
func (s *TravelRequestService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete travel request")
	}
	s.summaries.InvalidateSummaries(ctx)
	return nil
}
