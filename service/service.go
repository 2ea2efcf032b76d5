package service

import (
	"errors"
	"sync"

	"github.com/shopspring/decimal"

	"vending-machine/models"
	"vending-machine/store"
)

// ErrPurchaseRejected is returned when a purchase fails its validation:
// unknown item, empty stock, non-positive price, or insufficient funds.
// All rejection causes collapse into this one error so the caller sees
// a single "Unable to purchase item" outcome.
var ErrPurchaseRejected = errors.New("unable to purchase item")

// Service orchestrates the catalog, cart store, ledger and stock guard
// into the endpoint-level operations. It owns the per-user locks that
// serialize all mutations of one user's cart, so affordability is
// always evaluated against funds that cannot change underneath the
// purchase.
type Service struct {
	catalog *store.Catalog
	carts   *store.CartStore
	ledger  *Ledger
	guard   *StockGuard

	// per-user mutexes, keyed by user id
	locks sync.Map // map[int]*sync.Mutex
}

func NewService(catalog *store.Catalog, carts *store.CartStore) *Service {
	return &Service{
		catalog: catalog,
		carts:   carts,
		ledger:  NewLedger(),
		guard:   NewStockGuard(catalog),
	}
}

// Carts exposes the cart registry for request binding.
func (s *Service) Carts() *store.CartStore { return s.carts }

// Products returns a snapshot of the full catalog.
func (s *Service) Products() []models.Product {
	return s.catalog.All()
}

// AddPayment credits amount to the cart.
func (s *Service) AddPayment(cart *models.Cart, amount decimal.Decimal) error {
	unlock := s.lockUser(cart.UserID)
	defer unlock()
	return s.ledger.AddPayment(cart, amount)
}

// Purchase buys one unit of itemID against the cart's funds. Stock is
// decremented before the cart posting; on any rejection neither the
// catalog nor the cart is mutated.
func (s *Service) Purchase(cart *models.Cart, itemID string) error {
	unlock := s.lockUser(cart.UserID)
	defer unlock()

	product, err := s.catalog.Item(itemID)
	if err != nil {
		// Unknown items are rejected the same way as failed checks.
		return ErrPurchaseRejected
	}
	if !s.guard.IsValidPurchaseRequest(&product, cart.RemainingFunds) {
		return ErrPurchaseRejected
	}
	if err := s.guard.ReduceStockLevel(product.ID); err != nil {
		// A concurrent purchaser may have taken the last unit between
		// the validation and the decrement.
		return ErrPurchaseRejected
	}
	// The cart records the product as sold, one unit gone.
	product.Quantity--
	return s.ledger.AddItem(&product, cart)
}

// Finalize captures the cart's final state and retires it. The
// returned snapshot owns its own items slice, so removal does not
// invalidate it; a later request for the same user id starts a fresh
// cart.
func (s *Service) Finalize(cart *models.Cart) models.Cart {
	unlock := s.lockUser(cart.UserID)
	defer unlock()

	snapshot := cart.Snapshot()
	s.carts.RemoveCart(cart.UserID)
	return snapshot
}

func (s *Service) lockUser(userID int) func() {
	if v, ok := s.locks.Load(userID); ok {
		m := v.(*sync.Mutex)
		m.Lock()
		return m.Unlock
	}
	m := &sync.Mutex{}
	actual, _ := s.locks.LoadOrStore(userID, m)
	mtx := actual.(*sync.Mutex)
	mtx.Lock()
	return mtx.Unlock
}
