package models

import "github.com/shopspring/decimal"

// Product is a vending slot: a catalog entry plus its live stock count.
// Price never changes after seeding; Quantity is the only field mutated
// during normal operation.
type Product struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
}
