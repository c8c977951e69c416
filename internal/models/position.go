package models

import "time"

// Position represents a job grade carrying per-day allowance rates. Rates are
// whole rupiah per day. Once a position is referenced by a submitted travel
// request the persisted request totals are never recomputed from newer rates.
type Position struct {
	ID                       string    `db:"id" json:"id"`
	Title                    string    `db:"title" json:"title"`
	Code                     string    `db:"code" json:"code"`
	Level                    string    `db:"level" json:"level"`
	AllowanceInProvince      int64     `db:"allowance_in_province" json:"allowance_in_province"`
	AllowanceOutsideProvince int64     `db:"allowance_outside_province" json:"allowance_outside_province"`
	AllowanceAbroad          int64     `db:"allowance_abroad" json:"allowance_abroad"`
	CreatedAt                time.Time `db:"created_at" json:"created_at"`
	UpdatedAt                time.Time `db:"updated_at" json:"updated_at"`
}

// RateFor selects the per-day allowance rate for a destination type.
func (p Position) RateFor(dest DestinationType) int64 {
	switch dest {
	case DestinationInProvince:
		return p.AllowanceInProvince
	case DestinationOutsideProvince:
		return p.AllowanceOutsideProvince
	case DestinationAbroad:
		return p.AllowanceAbroad
	}
	return 0
}

// PositionFilter captures filtering options for listing positions.
type PositionFilter struct {
	Search   string
	Page     int
	PageSize int
}
