package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// NumberingRepository hands out document sequence numbers. The single state
// row is incremented under a row lock so concurrent submissions never share
// a sequence.
type NumberingRepository struct {
	db *sqlx.DB
}

// NewNumberingRepository constructs the repository.
func NewNumberingRepository(db *sqlx.DB) *NumberingRepository {
	return &NumberingRepository{db: db}
}

// NextRequestSequence increments and returns the travel request sequence.
func (r *NumberingRepository) NextRequestSequence(ctx context.Context) (int, error) {
	return r.next(ctx, "last_request_seq")
}

// NextClaimSequence increments and returns the at-cost claim sequence.
func (r *NumberingRepository) NextClaimSequence(ctx context.Context) (int, error) {
	return r.next(ctx, "last_claim_seq")
}

func (r *NumberingRepository) next(ctx context.Context, column string) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin sequence increment: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var seq int
	query := fmt.Sprintf("SELECT %s FROM numbering_state FOR UPDATE", column)
	if err := tx.GetContext(ctx, &seq, query); err != nil {
		return 0, fmt.Errorf("lock numbering state: %w", err)
	}
	seq++
	update := fmt.Sprintf("UPDATE numbering_state SET %s = $1, updated_at = NOW()", column)
	if _, err := tx.ExecContext(ctx, update, seq); err != nil {
		return 0, fmt.Errorf("update numbering state: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit sequence increment: %w", err)
	}
	return seq, nil
}
