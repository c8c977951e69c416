package models

import "time"

// NumberingState holds the last issued sequence for the document numbering
// scheme. A single row is incremented under a row lock by the repository.
type NumberingState struct {
	ID               string    `db:"id" json:"id"`
	LastRequestSeq   int       `db:"last_request_seq" json:"last_request_seq"`
	LastClaimSeq     int       `db:"last_claim_seq" json:"last_claim_seq"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

// Representative is the configured signatory snapshotted onto generated
// documents.
type Representative struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Position  string    `db:"position" json:"position"`
	Active    bool      `db:"active" json:"active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
