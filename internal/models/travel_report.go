package models

import "time"

// TravelReport is the completion record (berita acara) of a travel request.
// At most one report exists per request; the signing representative is
// snapshotted when the report is filed.
type TravelReport struct {
	ID                     string    `db:"id" json:"id"`
	TravelRequestID        string    `db:"travel_request_id" json:"travel_request_id"`
	ReportNumber           string    `db:"report_number" json:"report_number"`
	RepresentativeName     string    `db:"representative_name" json:"representative_name"`
	RepresentativePosition string    `db:"representative_position" json:"representative_position"`
	CreatedAt              time.Time `db:"created_at" json:"created_at"`
	UpdatedAt              time.Time `db:"updated_at" json:"updated_at"`

	VisitProofs []VisitProof `db:"-" json:"visit_proofs,omitempty"`
}

// VisitProof is one itinerary row on the report's proof-of-visit table.
type VisitProof struct {
	ID             string    `db:"id" json:"id"`
	TravelReportID string    `db:"travel_report_id" json:"travel_report_id"`
	Date           time.Time `db:"date" json:"date"`
	DepartFrom     string    `db:"depart_from" json:"depart_from"`
	StayOrStopAt   string    `db:"stay_or_stop_at" json:"stay_or_stop_at"`
	ArriveAt       string    `db:"arrive_at" json:"arrive_at"`
	SignatureProof string    `db:"signature_proof" json:"signature_proof"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
