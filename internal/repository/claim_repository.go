package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/dib-tools/perjadin-api/internal/models"
)

// ClaimRepository handles persistence of at-cost claims, their items and
// receipts.
type ClaimRepository struct {
	db *sqlx.DB
}

// NewClaimRepository constructs the repository.
func NewClaimRepository(db *sqlx.DB) *ClaimRepository {
	return &ClaimRepository{db: db}
}

const claimColumns = `id, travel_request_id, claim_number, representative_name, representative_position, status, total_amount, created_at, updated_at`

const claimItemColumns = `id, at_cost_claim_id, employee_id, employee_name, transport_cost, accommodation_cost, created_at`

const receiptColumns = `id, claim_item_id, type, receipt_number, receipt_date, vendor, description, amount, passenger_name, route_or_location, file_path, file_name, parsed_data, created_at`

// Create persists the claim aggregate in one transaction.
func (r *ClaimRepository) Create(ctx context.Context, claim *models.AtCostClaim) error {
	if claim.ID == "" {
		claim.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	claim.CreatedAt = now
	claim.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create claim: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	const insertClaim = `INSERT INTO at_cost_claims (` + claimColumns + `)
        VALUES (:id, :travel_request_id, :claim_number, :representative_name, :representative_position, :status, :total_amount, :created_at, :updated_at)`
	if _, err := tx.NamedExecContext(ctx, insertClaim, claim); err != nil {
		return fmt.Errorf("create claim: %w", err)
	}

	const insertItem = `INSERT INTO at_cost_claim_items (` + claimItemColumns + `)
        VALUES (:id, :at_cost_claim_id, :employee_id, :employee_name, :transport_cost, :accommodation_cost, :created_at)`
	const insertReceipt = `INSERT INTO at_cost_receipts (` + receiptColumns + `)
        VALUES (:id, :claim_item_id, :type, :receipt_number, :receipt_date, :vendor, :description, :amount, :passenger_name, :route_or_location, :file_path, :file_name, :parsed_data, :created_at)`

	for i := range claim.Items {
		item := &claim.Items[i]
		if item.ID == "" {
			item.ID = uuid.NewString()
		}
		item.AtCostClaimID = claim.ID
		item.CreatedAt = now
		if _, err := tx.NamedExecContext(ctx, insertItem, item); err != nil {
			return fmt.Errorf("create claim item: %w", err)
		}
		for j := range item.Receipts {
			receipt := &item.Receipts[j]
			if receipt.ID == "" {
				receipt.ID = uuid.NewString()
			}
			receipt.ClaimItemID = item.ID
			receipt.CreatedAt = now
			if _, err := tx.NamedExecContext(ctx, insertReceipt, receipt); err != nil {
				return fmt.Errorf("create receipt: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create claim: %w", err)
	}
	return nil
}

// FindByID returns a claim with items and receipts.
func (r *ClaimRepository) FindByID(ctx context.Context, id string) (*models.AtCostClaim, error) {
	query := fmt.Sprintf("SELECT %s FROM at_cost_claims WHERE id = $1", claimColumns)
	var claim models.AtCostClaim
	if err := r.db.GetContext(ctx, &claim, query, id); err != nil {
		return nil, err
	}
	if err := r.attachItems(ctx, &claim); err != nil {
		return nil, err
	}
	return &claim, nil
}

// FindByTravelRequestID returns the claim attached to a travel request.
func (r *ClaimRepository) FindByTravelRequestID(ctx context.Context, travelRequestID string) (*models.AtCostClaim, error) {
	query := fmt.Sprintf("SELECT %s FROM at_cost_claims WHERE travel_request_id = $1", claimColumns)
	var claim models.AtCostClaim
	if err := r.db.GetContext(ctx, &claim, query, travelRequestID); err != nil {
		return nil, err
	}
	if err := r.attachItems(ctx, &claim); err != nil {
		return nil, err
	}
	return &claim, nil
}

// List returns all claims with their aggregates, newest first.
func (r *ClaimRepository) List(ctx context.Context) ([]models.AtCostClaim, error) {
	query := fmt.Sprintf("SELECT %s FROM at_cost_claims ORDER BY created_at DESC", claimColumns)
	var claims []models.AtCostClaim
	if err := r.db.SelectContext(ctx, &claims, query); err != nil {
		return nil, fmt.Errorf("list claims: %w", err)
	}
	for i := range claims {
		if err := r.attachItems(ctx, &claims[i]); err != nil {
			return nil, err
		}
	}
	return claims, nil
}

// UpdateStatus updates the review flag of a claim.
func (r *ClaimRepository) UpdateStatus(ctx context.Context, id, status string) error {
	const query = `UPDATE at_cost_claims SET status = $2, updated_at = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, status, time.Now().UTC()); err != nil {
		return fmt.Errorf("update claim status: %w", err)
	}
	return nil
}

// Delete removes the claim aggregate in one transaction.
func (r *ClaimRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete claim: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	const deleteReceipts = `DELETE FROM at_cost_receipts WHERE claim_item_id IN
        (SELECT id FROM at_cost_claim_items WHERE at_cost_claim_id = $1)`
	if _, err := tx.ExecContext(ctx, deleteReceipts, id); err != nil {
		return fmt.Errorf("delete receipts: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM at_cost_claim_items WHERE at_cost_claim_id = $1", id); err != nil {
		return fmt.Errorf("delete claim items: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM at_cost_claims WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete claim: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete claim: %w", err)
	}
	return nil
}

// FindReceiptByID returns one stored receipt.
func (r *ClaimRepository) FindReceiptByID(ctx context.Context, receiptID string) (*models.Receipt, error) {
	query := fmt.Sprintf("SELECT %s FROM at_cost_receipts WHERE id = $1", receiptColumns)
	var receipt models.Receipt
	if err := r.db.GetContext(ctx, &receipt, query, receiptID); err != nil {
		return nil, err
	}
	return &receipt, nil
}

func (r *ClaimRepository) attachItems(ctx context.Context, claim *models.AtCostClaim) error {
	itemQuery := fmt.Sprintf("SELECT %s FROM at_cost_claim_items WHERE at_cost_claim_id = $1 ORDER BY created_at, id", claimItemColumns)
	var items []models.ClaimItem
	if err := r.db.SelectContext(ctx, &items, itemQuery, claim.ID); err != nil {
		return fmt.Errorf("list claim items: %w", err)
	}
	if len(items) == 0 {
		claim.Items = nil
		return nil
	}

	ids := make([]string, len(items))
	index := make(map[string]int, len(items))
	for i := range items {
		ids[i] = items[i].ID
		index[items[i].ID] = i
	}
	query, args, err := sqlx.In(
		fmt.Sprintf("SELECT %s FROM at_cost_receipts WHERE claim_item_id IN (?) ORDER BY created_at, id", receiptColumns), ids)
	if err != nil {
		return fmt.Errorf("build receipt query: %w", err)
	}
	query = r.db.Rebind(query)

	var receipts []models.Receipt
	if err := r.db.SelectContext(ctx, &receipts, query, args...); err != nil {
		return fmt.Errorf("list receipts: %w", err)
	}
	for _, receipt := range receipts {
		if i, ok := index[receipt.ClaimItemID]; ok {
			items[i].Receipts = append(items[i].Receipts, receipt)
		}
	}
	claim.Items = items
	return nil
}
