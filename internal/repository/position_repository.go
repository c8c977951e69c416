package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/dib-tools/perjadin-api/internal/models"
)

// PositionRepository handles persistence of positions and their rates.
type PositionRepository struct {
	db *sqlx.DB
}

// NewPositionRepository constructs the repository.
func NewPositionRepository(db *sqlx.DB) *PositionRepository {
	return &PositionRepository{db: db}
}

const positionColumns = `id, title, code, level, allowance_in_province, allowance_outside_province, allowance_abroad, created_at, updated_at`

// List returns positions filtered by the provided criteria.
func (r *PositionRepository) List(ctx context.Context, filter models.PositionFilter) ([]models.Position, int, error) {
	var conditions []string
	var args []interface{}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(title ILIKE $%d OR code ILIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+filter.Search+"%")
	}
	clause := ""
	if len(conditions) > 0 {
		clause = " WHERE " + strings.Join(conditions, " AND ")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 200 {
		size = 100
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s FROM positions%s ORDER BY level, title LIMIT %d OFFSET %d", positionColumns, clause, size, offset)
	var positions []models.Position
	if err := r.db.SelectContext(ctx, &positions, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list positions: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM positions"+clause, args...); err != nil {
		return nil, 0, fmt.Errorf("count positions: %w", err)
	}
	return positions, total, nil
}

// FindByID returns a position by its ID.
func (r *PositionRepository) FindByID(ctx context.Context, id string) (*models.Position, error) {
	query := fmt.Sprintf("SELECT %s FROM positions WHERE id = $1", positionColumns)
	var position models.Position
	if err := r.db.GetContext(ctx, &position, query, id); err != nil {
		return nil, err
	}
	return &position, nil
}
