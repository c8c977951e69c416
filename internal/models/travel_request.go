package models

import "time"

// TravelRequest represents a business-trip authorization (SPD). DurationDays
// and TotalAllowance are derived at creation time and persisted; they are
// never lazily recomputed.
type TravelRequest struct {
	ID              string          `db:"id" json:"id"`
	Purpose         string          `db:"purpose" json:"purpose"`
	DeparturePlace  string          `db:"departure_place" json:"departure_place"`
	Destination     string          `db:"destination" json:"destination"`
	DestinationType DestinationType `db:"destination_type" json:"destination_type"`
	DepartureDate   time.Time       `db:"departure_date" json:"departure_date"`
	ReturnDate      time.Time       `db:"return_date" json:"return_date"`
	DurationDays    int             `db:"duration_days" json:"duration_days"`
	Transportation  string          `db:"transportation" json:"transportation"`
	TotalAllowance  int64           `db:"total_allowance" json:"total_allowance"`
	RequestNumber   string          `db:"request_number" json:"request_number"`
	ReportNumber    string          `db:"report_number" json:"report_number"`
	Status          string          `db:"status" json:"status"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updated_at"`

	Participants []TravelRequestParticipant `db:"-" json:"participants,omitempty"`
}

// TravelRequestParticipant links an employee to a travel request. Ordinal
// preserves the submitted listing order; the first participant's position
// code is embedded in the document numbers.
type TravelRequestParticipant struct {
	ID              string    `db:"id" json:"id"`
	TravelRequestID string    `db:"travel_request_id" json:"travel_request_id"`
	Ordinal         int       `db:"ordinal" json:"ordinal"`
	EmployeeID      string    `db:"employee_id" json:"employee_id"`
	EmployeeNIP     string    `db:"employee_nip" json:"employee_nip"`
	EmployeeName    string    `db:"employee_name" json:"employee_name"`
	PositionTitle   string    `db:"position_title" json:"position_title"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

// ParticipantIDs returns the employee IDs on the request, in listing order.
func (t TravelRequest) ParticipantIDs() []string {
	ids := make([]string, 0, len(t.Participants))
	for _, p := range t.Participants {
		ids = append(ids, p.EmployeeID)
	}
	return ids
}

// HasParticipant reports whether the employee travels on this request.
func (t TravelRequest) HasParticipant(employeeID string) bool {
	for _, p := range t.Participants {
		if p.EmployeeID == employeeID {
			return true
		}
	}
	return false
}

// TravelRequestFilter captures filtering options for listing requests.
type TravelRequestFilter struct {
	Year     int
	Month    int
	Status   string
	Page     int
	PageSize int
}
