package entity

import "time"

// Customer represents a delivery customer for data transfer between layers.
//
// A persisted customer always has a non-empty CustomerCode (backfilled from
// TaxID when the code was not supplied), a non-empty Recipient and Address,
// and a store-assigned ID and CreatedAt. CustomerCode is the business key and
// is unique across persisted records.
type Customer struct {
	ID           int64     `json:"id"`
	CustomerCode string    `json:"customer_code"`
	Recipient    string    `json:"recipient"`
	Address      string    `json:"address"`
	TaxID        string    `json:"tax_id"`
	Notes        string    `json:"notes"`
	CreatedAt    time.Time `json:"created_at"`
}
