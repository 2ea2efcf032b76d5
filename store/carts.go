package store

import (
	"sync"

	"github.com/sirupsen/logrus"

	"vending-machine/models"
)

// CartStore owns the per-user cart lifecycle: one live cart per user
// id, created lazily on first authenticated access and destroyed on
// checkout. Lives for the whole server process; nothing is persisted.
type CartStore struct {
	carts sync.Map // map[int]*models.Cart
	log   *logrus.Logger
}

func NewCartStore(log *logrus.Logger) *CartStore {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &CartStore{log: log}
}

// AddOrRetrieveCart returns the existing cart for userID, creating and
// registering a fresh one if none exists. LoadOrStore keeps the
// create-if-absent atomic: two simultaneous first requests for one user
// id still end up sharing a single cart.
func (s *CartStore) AddOrRetrieveCart(userID int) *models.Cart {
	if v, ok := s.carts.Load(userID); ok {
		return v.(*models.Cart)
	}
	fresh := models.NewCart(userID)
	actual, loaded := s.carts.LoadOrStore(userID, fresh)
	if !loaded {
		s.log.WithField("userId", userID).Info("new cart created")
	}
	return actual.(*models.Cart)
}

// RemoveCart deletes the cart for userID. Removing an absent cart is a
// no-op; the id may be reused afterwards to start a fresh cart.
func (s *CartStore) RemoveCart(userID int) {
	if _, ok := s.carts.Load(userID); ok {
		s.log.WithField("userId", userID).Info("removing cart")
	}
	s.carts.Delete(userID)
}
