package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/dib-tools/perjadin-api/internal/models"
)

// TravelReportRepository handles persistence of completion reports and their
// visit proofs.
type TravelReportRepository struct {
	db *sqlx.DB
}

// NewTravelReportRepository constructs the repository.
func NewTravelReportRepository(db *sqlx.DB) *TravelReportRepository {
	return &TravelReportRepository{db: db}
}

const travelReportColumns = `id, travel_request_id, report_number, representative_name, representative_position, created_at, updated_at`

const visitProofColumns = `id, travel_report_id, date, depart_from, stay_or_stop_at, arrive_at, signature_proof, created_at`

// Create persists the report and its visit proofs in one transaction.
func (r *TravelReportRepository) Create(ctx context.Context, report *models.TravelReport) error {
	if report.ID == "" {
		report.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	report.CreatedAt = now
	report.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create travel report: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	const insertReport = `INSERT INTO travel_reports (` + travelReportColumns + `)
        VALUES (:id, :travel_request_id, :report_number, :representative_name, :representative_position, :created_at, :updated_at)`
	if _, err := tx.NamedExecContext(ctx, insertReport, report); err != nil {
		return fmt.Errorf("create travel report: %w", err)
	}

	const insertProof = `INSERT INTO visit_proofs (` + visitProofColumns + `)
        VALUES (:id, :travel_report_id, :date, :depart_from, :stay_or_stop_at, :arrive_at, :signature_proof, :created_at)`
	for i := range report.VisitProofs {
		proof := &report.VisitProofs[i]
		if proof.ID == "" {
			proof.ID = uuid.NewString()
		}
		proof.TravelReportID = report.ID
		proof.CreatedAt = now
		if _, err := tx.NamedExecContext(ctx, insertProof, proof); err != nil {
			return fmt.Errorf("create visit proof: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create travel report: %w", err)
	}
	return nil
}

// FindByRequestID returns the report filed for a travel request, with its
// visit proofs in travel order.
func (r *TravelReportRepository) FindByRequestID(ctx context.Context, travelRequestID string) (*models.TravelReport, error) {
	query := fmt.Sprintf("SELECT %s FROM travel_reports WHERE travel_request_id = $1", travelReportColumns)
	var report models.TravelReport
	if err := r.db.GetContext(ctx, &report, query, travelRequestID); err != nil {
		return nil, err
	}
	proofQuery := fmt.Sprintf("SELECT %s FROM visit_proofs WHERE travel_report_id = $1 ORDER BY date, created_at", visitProofColumns)
	if err := r.db.SelectContext(ctx, &report.VisitProofs, proofQuery, report.ID); err != nil {
		return nil, fmt.Errorf("list visit proofs: %w", err)
	}
	return &report, nil
}
