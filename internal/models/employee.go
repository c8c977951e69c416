package models

import "time"

// Employee represents a staff member eligible for business travel.
type Employee struct {
	ID         string    `db:"id" json:"id"`
	NIP        string    `db:"nip" json:"nip"`
	Name       string    `db:"name" json:"name"`
	PositionID string    `db:"position_id" json:"position_id"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// EmployeeDetail joins the employee with its position record. Repository
// queries alias position columns as "position.<col>" so sqlx can hydrate the
// nested struct.
type EmployeeDetail struct {
	Employee
	Position Position `db:"position" json:"position"`
}

// EmployeeFilter captures filtering options for listing employees.
type EmployeeFilter struct {
	Search   string
	Page     int
	PageSize int
}
