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

// EmployeeRepository handles persistence of employees.
type EmployeeRepository struct {
	db *sqlx.DB
}

// NewEmployeeRepository constructs the repository.
func NewEmployeeRepository(db *sqlx.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

const employeeDetailColumns = `e.id, e.nip, e.name, e.position_id, e.created_at, e.updated_at,
        p.id AS "position.id", p.title AS "position.title", p.code AS "position.code", p.level AS "position.level",
        p.allowance_in_province AS "position.allowance_in_province",
        p.allowance_outside_province AS "position.allowance_outside_province",
        p.allowance_abroad AS "position.allowance_abroad",
        p.created_at AS "position.created_at", p.updated_at AS "position.updated_at"`

// List returns employees with their positions.
func (r *EmployeeRepository) List(ctx context.Context, filter models.EmployeeFilter) ([]models.EmployeeDetail, int, error) {
	base := `FROM employees e JOIN positions p ON p.id = e.position_id`
	var conditions []string
	var args []interface{}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(e.name ILIKE $%d OR e.nip ILIKE $%d)", len(args)+1, len(args)+1))
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

	query := fmt.Sprintf("SELECT %s %s ORDER BY e.name LIMIT %d OFFSET %d", employeeDetailColumns, base+clause, size, offset)
	var employees []models.EmployeeDetail
	if err := r.db.SelectContext(ctx, &employees, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list employees: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) "+base+clause, args...); err != nil {
		return nil, 0, fmt.Errorf("count employees: %w", err)
	}
	return employees, total, nil
}

// ListDetails returns the full roster in listing order.
func (r *EmployeeRepository) ListDetails(ctx context.Context) ([]models.EmployeeDetail, error) {
	query := fmt.Sprintf("SELECT %s FROM employees e JOIN positions p ON p.id = e.position_id ORDER BY e.name", employeeDetailColumns)
	var employees []models.EmployeeDetail
	if err := r.db.SelectContext(ctx, &employees, query); err != nil {
		return nil, fmt.Errorf("list employee details: %w", err)
	}
	return employees, nil
}

// FindDetailByID returns an employee joined with its position.
func (r *EmployeeRepository) FindDetailByID(ctx context.Context, id string) (*models.EmployeeDetail, error) {
	query := fmt.Sprintf("SELECT %s FROM employees e JOIN positions p ON p.id = e.position_id WHERE e.id = $1", employeeDetailColumns)
	var detail models.EmployeeDetail
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		return nil, err
	}
	return &detail, nil
}

// FindByNIP returns an employee by its NIP.
func (r *EmployeeRepository) FindByNIP(ctx context.Context, nip string) (*models.Employee, error) {
	const query = `SELECT id, nip, name, position_id, created_at, updated_at FROM employees WHERE nip = $1`
	var employee models.Employee
	if err := r.db.GetContext(ctx, &employee, query, nip); err != nil {
		return nil, err
	}
	return &employee, nil
}

// Create persists a new employee record.
func (r *EmployeeRepository) Create(ctx context.Context, employee *models.Employee) error {
	if employee.ID == "" {
		employee.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	employee.CreatedAt = now
	employee.UpdatedAt = now
	const query = `INSERT INTO employees (id, nip, name, position_id, created_at, updated_at)
        VALUES (:id, :nip, :name, :position_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, employee); err != nil {
		return fmt.Errorf("create employee: %w", err)
	}
	return nil
}

// Update replaces the mutable employee columns.
func (r *EmployeeRepository) Update(ctx context.Context, employee *models.Employee) error {
	employee.UpdatedAt = time.Now().UTC()
	const query = `UPDATE employees SET nip = :nip, name = :name, position_id = :position_id, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, employee); err != nil {
		return fmt.Errorf("update employee: %w", err)
	}
	return nil
}

// Delete removes an employee record.
func (r *EmployeeRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM employees WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	return nil
}

// CountTravelRequests counts trips referencing the employee.
func (r *EmployeeRepository) CountTravelRequests(ctx context.Context, employeeID string) (int, error) {
	var total int
	const query = `SELECT COUNT(*) FROM travel_request_participants WHERE employee_id = $1`
	if err := r.db.GetContext(ctx, &total, query, employeeID); err != nil {
		return 0, fmt.Errorf("count employee trips: %w", err)
	}
	return total, nil
}
