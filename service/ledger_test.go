package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vending-machine/models"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestAddPayment(t *testing.T) {
	l := NewLedger()
	cart := models.NewCart(42)

	require.NoError(t, l.AddPayment(cart, dec("5.00")))
	assert.True(t, cart.RemainingFunds.Equal(dec("5.00")))

	require.NoError(t, l.AddPayment(cart, dec("0.50")))
	assert.True(t, cart.RemainingFunds.Equal(dec("5.50")))

	// zero is a legal, if pointless, payment
	require.NoError(t, l.AddPayment(cart, decimal.Zero))
	assert.True(t, cart.RemainingFunds.Equal(dec("5.50")))
}

func TestAddPayment_Negative(t *testing.T) {
	l := NewLedger()
	cart := models.NewCart(42)
	cart.RemainingFunds = dec("2.00")

	err := l.AddPayment(cart, dec("-1.00"))
	assert.ErrorIs(t, err, ErrNegativePayment)
	assert.True(t, cart.RemainingFunds.Equal(dec("2.00")))
}

func TestAddPayment_NilCart(t *testing.T) {
	assert.ErrorIs(t, NewLedger().AddPayment(nil, dec("1.00")), ErrInvalidLedgerArgs)
}

func TestAddItem(t *testing.T) {
	l := NewLedger()
	cart := models.NewCart(42)
	cart.RemainingFunds = dec("5.00")
	almonds := models.Product{ID: "almonds", Price: dec("2.75"), Quantity: 4}

	require.NoError(t, l.AddItem(&almonds, cart))

	require.Len(t, cart.PurchasedItems, 1)
	assert.Equal(t, "almonds", cart.PurchasedItems[0].ID)
	assert.True(t, cart.RemainingFunds.Equal(dec("2.25")))

	// the posted record is a snapshot, not the caller's struct
	almonds.Quantity = 0
	assert.Equal(t, 4, cart.PurchasedItems[0].Quantity)
}

func TestAddItem_InvalidArgs(t *testing.T) {
	l := NewLedger()
	cart := models.NewCart(42)
	p := models.Product{ID: "coke", Price: dec("1.50")}

	assert.ErrorIs(t, l.AddItem(nil, cart), ErrInvalidLedgerArgs)
	assert.ErrorIs(t, l.AddItem(&p, nil), ErrInvalidLedgerArgs)
	assert.Empty(t, cart.PurchasedItems)
}
