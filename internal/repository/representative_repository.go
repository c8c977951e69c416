package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/dib-tools/perjadin-api/internal/models"
)

// RepresentativeRepository handles persistence of the configured signatory.
type RepresentativeRepository struct {
	db *sqlx.DB
}

// NewRepresentativeRepository constructs the repository.
func NewRepresentativeRepository(db *sqlx.DB) *RepresentativeRepository {
	return &RepresentativeRepository{db: db}
}

// FindActive returns the active representative.
func (r *RepresentativeRepository) FindActive(ctx context.Context) (*models.Representative, error) {
	const query = `SELECT id, name, position, active, created_at, updated_at FROM representatives WHERE active = TRUE ORDER BY updated_at DESC LIMIT 1`
	var rep models.Representative
	if err := r.db.GetContext(ctx, &rep, query); err != nil {
		return nil, err
	}
	return &rep, nil
}

// Upsert deactivates previous signers and stores the new one.
func (r *RepresentativeRepository) Upsert(ctx context.Context, rep *models.Representative) error {
	if rep.ID == "" {
		rep.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	rep.CreatedAt = now
	rep.UpdatedAt = now
	rep.Active = true

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin representative upsert: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "UPDATE representatives SET active = FALSE, updated_at = $1 WHERE active = TRUE", now); err != nil {
		return fmt.Errorf("deactivate representatives: %w", err)
	}
	const insert = `INSERT INTO representatives (id, name, position, active, created_at, updated_at)
        VALUES (:id, :name, :position, :active, :created_at, :updated_at)`
	if _, err := tx.NamedExecContext(ctx, insert, rep); err != nil {
		return fmt.Errorf("insert representative: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit representative upsert: %w", err)
	}
	return nil
}
