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

type travelReportRepository interface {
	Create(ctx context.Context, report *models.TravelReport) error
	FindByRequestID(ctx context.Context, travelRequestID string) (*models.TravelReport, error)
}

type travelReportRequestStore interface {
	FindByID(ctx context.Context, id string) (*models.TravelRequest, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

// VisitProofInput is one itinerary row in a report payload. Date uses the
// 2006-01-02 layout.
type VisitProofInput struct {
	Date           string `json:"date" validate:"required"`
	DepartFrom     string `json:"depart_from" validate:"required"`
	StayOrStopAt   string `json:"stay_or_stop_at"`
	ArriveAt       string `json:"arrive_at" validate:"required"`
	SignatureProof string `json:"signature_proof"`
}

// CreateTravelReportRequest is the payload for filing a completion report.
// The report number and the signing representative are assigned server-side.
type CreateTravelReportRequest struct {
	TravelRequestID string            `json:"travel_request_id" validate:"required"`
	VisitProofs     []VisitProofInput `json:"visit_proofs" validate:"required,min=1,dive"`
}

// TravelReportService files and serves trip completion reports. Filing a
// report closes the underlying travel request.
type TravelReportService struct {
	repo      travelReportRepository
	requests  travelReportRequestStore
	reps      representativeReader
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTravelReportService constructs TravelReportService.
func NewTravelReportService(repo travelReportRepository, requests travelReportRequestStore, reps representativeReader, validate *validator.Validate, logger *zap.Logger) *TravelReportService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TravelReportService{
		repo:      repo,
		requests:  requests,
		reps:      reps,
		validator: validate,
		logger:    logger,
	}
}

// Create validates and files a completion report. The report carries the
// request's pre-assigned report number, snapshots the active representative
// as signer, and moves the travel request to completed.
func (s *TravelReportService) Create(ctx context.Context, req CreateTravelReportRequest) (*models.TravelReport, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid report payload")
	}
	request, err := s.requests.FindByID(ctx, req.TravelRequestID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "travel request not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load travel request")
	}
	if _, err := s.repo.FindByRequestID(ctx, req.TravelRequestID); err == nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, "travel request already has a report")
	} else if err != sql.ErrNoRows {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check existing report")
	}
	rep, err := s.reps.FindActive(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "no active representative configured")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load representative")
	}

	report := &models.TravelReport{
		TravelRequestID:        request.ID,
		ReportNumber:           request.ReportNumber,
		RepresentativeName:     rep.Name,
		RepresentativePosition: rep.Position,
	}
	for _, in := range req.VisitProofs {
		date, err := time.Parse("2006-01-02", in.Date)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation,
				fmt.Sprintf("visit proof date %q is not in 2006-01-02 form", in.Date))
		}
		report.VisitProofs = append(report.VisitProofs, models.VisitProof{
			Date:           date,
			DepartFrom:     in.DepartFrom,
			StayOrStopAt:   in.StayOrStopAt,
			ArriveAt:       in.ArriveAt,
			SignatureProof: in.SignatureProof,
		})
	}
	if err := s.repo.Create(ctx, report); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create travel report")
	}
	if err := s.requests.UpdateStatus(ctx, request.ID, models.StatusCompleted); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to close travel request")
	}
	s.logger.Info("travel report filed",
		zap.String("report_id", report.ID),
		zap.String("report_number", report.ReportNumber),
		zap.Int("visit_proofs", len(report.VisitProofs)))
	return s.GetByTravelRequest(ctx, request.ID)
}

// GetByTravelRequest returns the report filed for a travel request.
func (s *TravelReportService) GetByTravelRequest(ctx context.Context, travelRequestID string) (*models.TravelReport, error) {
	report, err := s.repo.FindByRequestID(ctx, travelRequestID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "no report for travel request")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load travel report")
	}
	return report, nil
}
