package service

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/dib-tools/perjadin-api/internal/models"
	appErrors "github.com/dib-tools/perjadin-api/pkg/errors"
)

type representativeRepository interface {
	FindActive(ctx context.Context) (*models.Representative, error)
	Upsert(ctx context.Context, rep *models.Representative) error
}

// UpdateRepresentativeRequest is the payload for changing the document signer.
type UpdateRepresentativeRequest struct {
	Name     string `json:"name" validate:"required"`
	Position string `json:"position" validate:"required"`
}

// RepresentativeService manages the configured signatory stamped onto
// generated documents.
type RepresentativeService struct {
	repo      representativeRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewRepresentativeService constructs RepresentativeService.
func NewRepresentativeService(repo representativeRepository, validate *validator.Validate, logger *zap.Logger) *RepresentativeService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RepresentativeService{repo: repo, validator: validate, logger: logger}
}

// Get returns the active representative.
func (s *RepresentativeService) Get(ctx context.Context) (*models.Representative, error) {
	rep, err := s.repo.FindActive(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "no representative configured")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load representative")
	}
	return rep, nil
}

// Update replaces the active representative.
func (s *RepresentativeService) Update(ctx context.Context, req UpdateRepresentativeRequest) (*models.Representative, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid representative payload")
	}
	rep := &models.Representative{Name: req.Name, Position: req.Position, Active: true}
	if err := s.repo.Upsert(ctx, rep); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update representative")
	}
	return s.Get(ctx)
}
