package service

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/dib-tools/perjadin-api/internal/models"
	appErrors "github.com/dib-tools/perjadin-api/pkg/errors"
)

type employeeRepository interface {
	List(ctx context.Context, filter models.EmployeeFilter) ([]models.EmployeeDetail, int, error)
	FindDetailByID(ctx context.Context, id string) (*models.EmployeeDetail, error)
	FindByNIP(ctx context.Context, nip string) (*models.Employee, error)
	Create(ctx context.Context, employee *models.Employee) error
	Update(ctx context.Context, employee *models.Employee) error
	Delete(ctx context.Context, id string) error
	CountTravelRequests(ctx context.Context, employeeID string) (int, error)
}

type positionReader interface {
	FindByID(ctx context.Context, id string) (*models.Position, error)
}

// SaveEmployeeRequest is the payload for creating or updating an employee.
type SaveEmployeeRequest struct {
	NIP        string `json:"nip" validate:"required"`
	Name       string `json:"name" validate:"required"`
	PositionID string `json:"position_id" validate:"required"`
}

// EmployeeService manages the employee roster.
type EmployeeService struct {
	repo      employeeRepository
	positions positionReader
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEmployeeService constructs EmployeeService.
func NewEmployeeService(repo employeeRepository, positions positionReader, validate *validator.Validate, logger *zap.Logger) *EmployeeService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmployeeService{repo: repo, positions: positions, validator: validate, logger: logger}
}

// List returns employees with their positions and pagination metadata.
func (s *EmployeeService) List(ctx context.Context, filter models.EmployeeFilter) ([]models.EmployeeDetail, *models.Pagination, error) {
	employees, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list employees")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	return employees, models.NewPagination(page, filter.PageSize, total), nil
}

// Get returns one employee with its position.
func (s *EmployeeService) Get(ctx context.Context, id string) (*models.EmployeeDetail, error) {
	detail, err := s.repo.FindDetailByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "employee not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load employee")
	}
	return detail, nil
}

// Create registers a new employee.
func (s *EmployeeService) Create(ctx context.Context, req SaveEmployeeRequest) (*models.EmployeeDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid employee payload")
	}
	if _, err := s.positions.FindByID(ctx, req.PositionID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "position not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load position")
	}
	if existing, err := s.repo.FindByNIP(ctx, req.NIP); err != nil && err != sql.ErrNoRows {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate NIP")
	} else if existing != nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, "an employee with this NIP already exists")
	}
	employee := &models.Employee{NIP: req.NIP, Name: req.Name, PositionID: req.PositionID}
	if err := s.repo.Create(ctx, employee); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create employee")
	}
	return s.Get(ctx, employee.ID)
}

// Update modifies an employee record.
func (s *EmployeeService) Update(ctx context.Context, id string, req SaveEmployeeRequest) (*models.EmployeeDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid employee payload")
	}
	detail, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.positions.FindByID(ctx, req.PositionID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "position not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load position")
	}
	if existing, err := s.repo.FindByNIP(ctx, req.NIP); err != nil && err != sql.ErrNoRows {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate NIP")
	} else if existing != nil && existing.ID != id {
		return nil, appErrors.Clone(appErrors.ErrConflict, "an employee with this NIP already exists")
	}
	employee := detail.Employee
	employee.NIP = req.NIP
	employee.Name = req.Name
	employee.PositionID = req.PositionID
	if err := s.repo.Update(ctx, &employee); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update employee")
	}
	return s.Get(ctx, id)
}

// Delete removes an employee. Employees referenced by travel requests stay.
func (s *EmployeeService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	trips, err := s.repo.CountTravelRequests(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check employee usage")
	}
	if trips > 0 {
		return appErrors.Clone(appErrors.ErrConflict, "employee has travel requests and cannot be deleted")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete employee")
	}
	return nil
}
