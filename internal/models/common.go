package models

// Pagination describes list paging metadata returned in response envelopes.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// NewPagination derives paging metadata from totals.
func NewPagination(page, size, total int) *Pagination {
	if size <= 0 {
		size = 20
	}
	pages := total / size
	if total%size != 0 {
		pages++
	}
	return &Pagination{Page: page, PageSize: size, TotalItems: total, TotalPages: pages}
}

// DestinationType classifies a trip and selects the applicable allowance rate.
type DestinationType string

const (
	DestinationInProvince      DestinationType = "in_province"
	DestinationOutsideProvince DestinationType = "outside_province"
	DestinationAbroad          DestinationType = "abroad"
)

// Valid reports whether the destination type is one of the closed set.
func (d DestinationType) Valid() bool {
	switch d {
	case DestinationInProvince, DestinationOutsideProvince, DestinationAbroad:
		return true
	}
	return false
}

// ReceiptType is the closed set of receipt classifications.
type ReceiptType string

const (
	ReceiptFlight ReceiptType = "flight"
	ReceiptTrain  ReceiptType = "train"
	ReceiptHotel  ReceiptType = "hotel"
	ReceiptOther  ReceiptType = "other"
)

// Valid reports whether the receipt type is one of the closed set.
func (r ReceiptType) Valid() bool {
	switch r {
	case ReceiptFlight, ReceiptTrain, ReceiptHotel, ReceiptOther:
		return true
	}
	return false
}

// Request and claim status flags.
const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusCompleted = "completed"
	StatusRejected  = "rejected"
)
