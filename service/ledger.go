package service

import (
	"errors"

	"github.com/shopspring/decimal"

	"vending-machine/models"
)

var (
	// ErrNegativePayment is returned for an add-payment below zero.
	ErrNegativePayment = errors.New("unable to add negative funds to cart")
	// ErrInvalidLedgerArgs is returned when a posting is missing its
	// product or cart.
	ErrInvalidLedgerArgs = errors.New("ledger posting requires a product and a cart")
)

// Ledger applies postings to a cart: payments in, purchases out. It is
// the unconditional mutation step; affordability and stock checks
// happen before it is called, and the caller must hold the per-user
// lock that serializes mutations of the cart.
type Ledger struct{}

func NewLedger() *Ledger { return &Ledger{} }

// AddPayment credits amount to the cart's remaining funds.
func (l *Ledger) AddPayment(cart *models.Cart, amount decimal.Decimal) error {
	if cart == nil {
		return ErrInvalidLedgerArgs
	}
	if amount.IsNegative() {
		return ErrNegativePayment
	}
	cart.RemainingFunds = cart.RemainingFunds.Add(amount)
	return nil
}

// AddItem appends a snapshot of product to the cart's purchase history
// and debits its price.
func (l *Ledger) AddItem(product *models.Product, cart *models.Cart) error {
	if product == nil || cart == nil {
		return ErrInvalidLedgerArgs
	}
	cart.PurchasedItems = append(cart.PurchasedItems, *product)
	cart.RemainingFunds = cart.RemainingFunds.Sub(product.Price)
	return nil
}
