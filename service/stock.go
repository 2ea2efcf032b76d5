package service

import (
	"errors"
	"sync"

	"github.com/shopspring/decimal"

	"vending-machine/models"
	"vending-machine/store"
)

// ErrOutOfStock is returned when a decrement finds the quantity already
// at zero, i.e. a concurrent purchaser took the last unit first.
var ErrOutOfStock = errors.New("product out of stock")

// StockGuard validates purchase requests and performs the stock
// decrement. The decrement re-reads the catalog record under a
// per-product mutex so a snapshot captured before a concurrent update
// can never drive the quantity negative.
type StockGuard struct {
	catalog *store.Catalog

	// per-product mutexes, keyed by product id
	locks sync.Map // map[string]*sync.Mutex
}

func NewStockGuard(catalog *store.Catalog) *StockGuard {
	return &StockGuard{catalog: catalog}
}

// IsValidPurchaseRequest reports whether product can be bought with
// remainingFunds. A nil product means an unknown or unpurchasable item
// and is simply invalid, not an error.
func (g *StockGuard) IsValidPurchaseRequest(product *models.Product, remainingFunds decimal.Decimal) bool {
	return product != nil &&
		product.Quantity > 0 &&
		product.Price.IsPositive() &&
		remainingFunds.GreaterThanOrEqual(product.Price)
}

// ReduceStockLevel takes one unit of productID off the shelf. The
// quantity is re-checked under the product lock; exactly one of any
// number of concurrent callers gets the final unit.
func (g *StockGuard) ReduceStockLevel(productID string) error {
	unlock := g.lockProduct(productID)
	defer unlock()

	current, err := g.catalog.Item(productID)
	if err != nil {
		return err
	}
	if current.Quantity <= 0 {
		return ErrOutOfStock
	}
	current.Quantity--
	return g.catalog.Update(current)
}

func (g *StockGuard) lockProduct(productID string) func() {
	if v, ok := g.locks.Load(productID); ok {
		m := v.(*sync.Mutex)
		m.Lock()
		return m.Unlock
	}
	m := &sync.Mutex{}
	actual, _ := g.locks.LoadOrStore(productID, m)
	mtx := actual.(*sync.Mutex)
	mtx.Lock()
	return mtx.Unlock
}
