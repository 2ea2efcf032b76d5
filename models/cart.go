package models

import "github.com/shopspring/decimal"

// Cart holds one user's balance and purchase history for the lifetime
// of their shopping session. Mutations must be serialized by the owner
// (the service holds a per-user lock); Cart itself carries no locking.
type Cart struct {
	UserID         int             `json:"userId"`
	RemainingFunds decimal.Decimal `json:"remainingFunds"`
	PurchasedItems []Product       `json:"purchasedItems"`
}

// NewCart returns an empty cart with zero funds for userID.
func NewCart(userID int) *Cart {
	return &Cart{
		UserID:         userID,
		RemainingFunds: decimal.Zero,
		PurchasedItems: []Product{},
	}
}

// Snapshot returns a copy of the cart with its own items slice, safe to
// hand out after the live cart is removed or mutated.
func (c *Cart) Snapshot() Cart {
	items := make([]Product, len(c.PurchasedItems))
	copy(items, c.PurchasedItems)
	return Cart{
		UserID:         c.UserID,
		RemainingFunds: c.RemainingFunds,
		PurchasedItems: items,
	}
}
