package models

import "time"

// Accusation is one append-only entry in the accusation ledger.
// Each accusation is worth a single suspicion point.
type Accusation struct {
	// ID is the unique identifier for the accusation
	ID string `json:"id"`

	// AccuserID is the character making the accusation
	AccuserID string `json:"accuserId"`

	// AccusedID is the character being accused
	AccusedID string `json:"accusedId"`

	// Points is fixed at 1
	Points int `json:"points"`

	// CreatedAt is when the accusation was made
	CreatedAt time.Time `json:"createdAt"`
}
