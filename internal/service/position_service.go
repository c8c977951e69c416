package service

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"github.com/dib-tools/perjadin-api/internal/models"
	appErrors "github.com/dib-tools/perjadin-api/pkg/errors"
)

type positionRepository interface {
	List(ctx context.Context, filter models.PositionFilter) ([]models.Position, int, error)
	FindByID(ctx context.Context, id string) (*models.Position, error)
}

// PositionService exposes the position catalogue. Positions and their rates
// are seeded data; the API reads them but does not mutate them.
type PositionService struct {
	repo   positionRepository
	logger *zap.Logger
}

// NewPositionService constructs PositionService.
func NewPositionService(repo positionRepository, logger *zap.Logger) *PositionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PositionService{repo: repo, logger: logger}
}

// List returns positions with pagination metadata.
func (s *PositionService) List(ctx context.Context, filter models.PositionFilter) ([]models.Position, *models.Pagination, error) {
	positions, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list positions")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	return positions, models.NewPagination(page, filter.PageSize, total), nil
}

// Get returns one position.
func (s *PositionService) Get(ctx context.Context, id string) (*models.Position, error) {
	position, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "position not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load position")
	}
	return position, nil
}
