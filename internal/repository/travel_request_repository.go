package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/dib-tools/perjadin-api/internal/models"
)

// TravelRequestRepository handles persistence of travel requests and their
// participant snapshots.
type TravelRequestRepository struct {
	db *sqlx.DB
}

// NewTravelRequestRepository constructs the repository.
func NewTravelRequestRepository(db *sqlx.DB) *TravelRequestRepository {
	return &TravelRequestRepository{db: db}
}

const travelRequestColumns = `id, purpose, departure_place, destination, destination_type, departure_date, return_date,
        duration_days, transportation, total_allowance, request_number, report_number, status, created_at, updated_at`

const participantColumns = `id, travel_request_id, ordinal, employee_id, employee_nip, employee_name, position_title, created_at`

// Create persists the request and its participants in one transaction.
func (r *TravelRequestRepository) Create(ctx context.Context, request *models.TravelRequest) error {
	if request.ID == "" {
		request.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	request.CreatedAt = now
	request.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create travel request: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	const insertRequest = `INSERT INTO travel_requests (` + travelRequestColumns + `)
        VALUES (:id, :purpose, :departure_place, :destination, :destination_type, :departure_date, :return_date,
        :duration_days, :transportation, :total_allowance, :request_number, :report_number, :status, :created_at, :updated_at)`
	if _, err := tx.NamedExecContext(ctx, insertRequest, request); err != nil {
		return fmt.Errorf("create travel request: %w", err)
	}

	const insertParticipant = `INSERT INTO travel_request_participants (` + participantColumns + `)
        VALUES (:id, :travel_request_id, :ordinal, :employee_id, :employee_nip, :employee_name, :position_title, :created_at)`
	for i := range request.Participants {
		p := &request.Participants[i]
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		p.TravelRequestID = request.ID
		p.Ordinal = i
		p.CreatedAt = now
		if _, err := tx.NamedExecContext(ctx, insertParticipant, p); err != nil {
			return fmt.Errorf("create travel request participant: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create travel request: %w", err)
	}
	return nil
}

// FindByID returns a travel request with its participants.
func (r *TravelRequestRepository) FindByID(ctx context.Context, id string) (*models.TravelRequest, error) {
	query := fmt.Sprintf("SELECT %s FROM travel_requests WHERE id = $1", travelRequestColumns)
	var request models.TravelRequest
	if err := r.db.GetContext(ctx, &request, query, id); err != nil {
		return nil, err
	}
	if err := r.attachParticipants(ctx, []*models.TravelRequest{&request}); err != nil {
		return nil, err
	}
	return &request, nil
}

// List returns travel requests filtered by period and status, newest first.
func (r *TravelRequestRepository) List(ctx context.Context, filter models.TravelRequestFilter) ([]models.TravelRequest, int, error) {
	var conditions []string
	var args []interface{}
	if filter.Year != 0 {
		conditions = append(conditions, fmt.Sprintf("EXTRACT(YEAR FROM departure_date) = $%d", len(args)+1))
		args = append(args, filter.Year)
	}
	if filter.Month != 0 {
		conditions = append(conditions, fmt.Sprintf("EXTRACT(MONTH FROM departure_date) = $%d", len(args)+1))
		args = append(args, filter.Month)
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, filter.Status)
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
		size = 50
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s FROM travel_requests%s ORDER BY created_at DESC LIMIT %d OFFSET %d",
		travelRequestColumns, clause, size, offset)
	var requests []models.TravelRequest
	if err := r.db.SelectContext(ctx, &requests, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list travel requests: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM travel_requests"+clause, args...); err != nil {
		return nil, 0, fmt.Errorf("count travel requests: %w", err)
	}

	refs := make([]*models.TravelRequest, len(requests))
	for i := range requests {
		refs[i] = &requests[i]
	}
	if err := r.attachParticipants(ctx, refs); err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

// ListAll returns every travel request with participants, newest first.
func (r *TravelRequestRepository) ListAll(ctx context.Context) ([]models.TravelRequest, error) {
	query := fmt.Sprintf("SELECT %s FROM travel_requests ORDER BY created_at DESC", travelRequestColumns)
	var requests []models.TravelRequest
	if err := r.db.SelectContext(ctx, &requests, query); err != nil {
		return nil, fmt.Errorf("list all travel requests: %w", err)
	}
	refs := make([]*models.TravelRequest, len(requests))
	for i := range requests {
		refs[i] = &requests[i]
	}
	if err := r.attachParticipants(ctx, refs); err != nil {
		return nil, err
	}
	return requests, nil
}

// UpdateStatus updates the lifecycle flag of a request.
func (r *TravelRequestRepository) UpdateStatus(ctx context.Context, id, status string) error {
	const query = `UPDATE travel_requests SET status = $2, updated_at = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, status, time.Now().UTC()); err != nil {
		return fmt.Errorf("update travel request status: %w", err)
	}
	return nil
}

// Delete removes a request and its participant links.
func (r *TravelRequestRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete travel request: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM travel_request_participants WHERE travel_request_id = $1", id); err != nil {
		return fmt.Errorf("delete travel request participants: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM travel_requests WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete travel request: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete travel request: %w", err)
	}
	return nil
}

func (r *TravelRequestRepository) attachParticipants(ctx context.Context, requests []*models.TravelRequest) error {
	if len(requests) == 0 {
		return nil
	}
	ids := make([]string, len(requests))
	index := make(map[string]*models.TravelRequest, len(requests))
	for i, req := range requests {
		ids[i] = req.ID
		index[req.ID] = req
	}

	query, args, err := sqlx.In(
		fmt.Sprintf("SELECT %s FROM travel_request_participants WHERE travel_request_id IN (?) ORDER BY travel_request_id, ordinal", participantColumns), ids)
	if err != nil {
		return fmt.Errorf("build participant query: %w", err)
	}
	query = r.db.Rebind(query)

	var participants []models.TravelRequestParticipant
	if err := r.db.SelectContext(ctx, &participants, query, args...); err != nil {
		return fmt.Errorf("list participants: %w", err)
	}
	for _, p := range participants {
		if req, ok := index[p.TravelRequestID]; ok {
			req.Participants = append(req.Participants, p)
		}
	}
	return nil
}
