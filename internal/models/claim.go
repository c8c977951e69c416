package models

import "time"

// AtCostClaim is a reimbursement claim for receipted expenses attached to a
// single travel request. TotalAmount is derived from the claim items at
// creation time and persisted.
type AtCostClaim struct {
	ID                     string    `db:"id" json:"id"`
	TravelRequestID        string    `db:"travel_request_id" json:"travel_request_id"`
	ClaimNumber            string    `db:"claim_number" json:"claim_number"`
	RepresentativeName     string    `db:"representative_name" json:"representative_name"`
	RepresentativePosition string    `db:"representative_position" json:"representative_position"`
	Status                 string    `db:"status" json:"status"`
	TotalAmount            int64     `db:"total_amount" json:"total_amount"`
	CreatedAt              time.Time `db:"created_at" json:"created_at"`
	UpdatedAt              time.Time `db:"updated_at" json:"updated_at"`

	Items []ClaimItem `db:"-" json:"claim_items,omitempty"`
}

// ClaimItem groups one participant's receipts inside a claim. The cost
// buckets are derived from the receipt list, never supplied by callers.
type ClaimItem struct {
	ID                string    `db:"id" json:"id"`
	AtCostClaimID     string    `db:"at_cost_claim_id" json:"at_cost_claim_id"`
	EmployeeID        string    `db:"employee_id" json:"employee_id"`
	EmployeeName      string    `db:"employee_name" json:"employee_name"`
	TransportCost     int64     `db:"transport_cost" json:"transport_cost"`
	AccommodationCost int64     `db:"accommodation_cost" json:"accommodation_cost"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`

	Receipts []Receipt `db:"-" json:"receipts,omitempty"`
}

// TotalCost is the monetary total of the item. Receipts classified "other"
// are retained for audit but contribute to neither bucket, so they are
// excluded here as well.
func (i ClaimItem) TotalCost() int64 {
	return i.TransportCost + i.AccommodationCost
}

// Receipt is one normalized proof-of-payment document inside a claim item.
type Receipt struct {
	ID              string      `db:"id" json:"id"`
	ClaimItemID     string      `db:"claim_item_id" json:"claim_item_id"`
	Type            ReceiptType `db:"type" json:"type"`
	ReceiptNumber   string      `db:"receipt_number" json:"receipt_number"`
	ReceiptDate     time.Time   `db:"receipt_date" json:"receipt_date"`
	Vendor          string      `db:"vendor" json:"vendor"`
	Description     string      `db:"description" json:"description"`
	Amount          int64       `db:"amount" json:"amount"`
	PassengerName   string      `db:"passenger_name" json:"passenger_name"`
	RouteOrLocation string      `db:"route_or_location" json:"route_or_location"`
	FilePath        string      `db:"file_path" json:"file_path"`
	FileName        string      `db:"file_name" json:"file_name"`
	ParsedData      string      `db:"parsed_data" json:"parsed_data,omitempty"`
	CreatedAt       time.Time   `db:"created_at" json:"created_at"`
}
