package store

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"vending-machine/models"
)

// Sentinel errors surfaced by the registries.
var (
	// ErrNotFound is returned when a product id is not in the catalog.
	ErrNotFound = errors.New("product not found")
	// ErrDuplicateProduct is returned when adding an id that exists.
	ErrDuplicateProduct = errors.New("product id already present")
	// ErrInvalidProduct is returned for a product with an empty id.
	ErrInvalidProduct = errors.New("product id cannot be empty")
)

// Catalog is the in-memory product registry. It is shared across
// concurrent requests; the RWMutex protects the map structure. Stock
// check-and-decrement atomicity is layered on top by the stock guard.
type Catalog struct {
	mu       sync.RWMutex
	products map[string]models.Product
}

func NewCatalog() *Catalog {
	return &Catalog{products: map[string]models.Product{}}
}

// Add registers a new product.
func (c *Catalog) Add(p models.Product) error {
	if p.ID == "" {
		return ErrInvalidProduct
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.products[p.ID]; ok {
		return errors.Wrapf(ErrDuplicateProduct, "product %q", p.ID)
	}
	c.products[p.ID] = p
	return nil
}

// All returns a snapshot of every product. Order is not significant.
func (c *Catalog) All() []models.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Product, 0, len(c.products))
	for _, p := range c.products {
		out = append(out, p)
	}
	return out
}

// Item returns the current record for id.
func (c *Catalog) Item(id string) (models.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.products[id]
	if !ok {
		return models.Product{}, errors.Wrapf(ErrNotFound, "product %q", id)
	}
	return p, nil
}

// Update replaces the stored record for p.ID.
func (c *Catalog) Update(p models.Product) error {
	if p.ID == "" {
		return ErrInvalidProduct
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.products[p.ID]; !ok {
		return errors.Wrapf(ErrNotFound, "product %q", p.ID)
	}
	c.products[p.ID] = p
	return nil
}

// Seed installs the fixed startup inventory.
func (c *Catalog) Seed() error {
	seed := []models.Product{
		{ID: "coke", Description: "Coca Cola 375ml", Price: decimal.RequireFromString("1.50"), Quantity: 25},
		{ID: "almonds", Description: "Natural Almonds 250g", Price: decimal.RequireFromString("2.75"), Quantity: 5},
		{ID: "handcream", Description: "Vitamin E Cream 100g", Price: decimal.RequireFromString("4.95"), Quantity: 5},
	}
	for _, p := range seed {
		if err := c.Add(p); err != nil {
			return err
		}
	}
	return nil
}
