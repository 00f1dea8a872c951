package billing

import (
	"errors"
	"sync"

	"github.com/karthikrajap/textile-pos-backend/internal/product"
)

var (
	ErrInvoiceNotFound = errors.New("invoice not found")
)

// Repository defines persistence for submitted invoices. Create also
// decrements product stock for every sold line, whatever the backing store.
type Repository interface {
	Create(inv Invoice) (Invoice, error)
	// List returns invoices newest first.
	List() ([]Invoice, error)
	GetByID(id int) (Invoice, error)
}

// StockSink decrements product stock for sold lines. Both product
// repositories satisfy it.
type StockSink interface {
	DecrementStock(id int, qty int) error
}

// InMemoryRepository is used for tests and local scenarios. A nil stock
// sink skips the decrement.
type InMemoryRepository struct {
	mu       sync.RWMutex
	invoices []Invoice
	nextID   int
	stock    StockSink
}

func NewInMemoryRepository(stock StockSink) *InMemoryRepository {
	return &InMemoryRepository{nextID: 1, stock: stock}
}

func (r *InMemoryRepository) Create(inv Invoice) (Invoice, error) {
	r.mu.Lock()
	inv.ID = r.nextID
	r.nextID++
	for i := range inv.InvoiceItems {
		inv.InvoiceItems[i].ID = i + 1
	}
	r.invoices = append(r.invoices, inv)
	r.mu.Unlock()

	if r.stock != nil {
		for _, item := range inv.InvoiceItems {
			// a line for a since-deleted product is not an error, matching
			// the postgres repository's unguarded UPDATE
			if err := r.stock.DecrementStock(item.ProductID, item.Quantity); err != nil && err != product.ErrNotFound {
				return Invoice{}, err
			}
		}
	}
	return inv, nil
}

func (r *InMemoryRepository) List() ([]Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Invoice, len(r.invoices))
	for i, inv := range r.invoices {
		out[len(r.invoices)-1-i] = inv
	}
	return out, nil
}

func (r *InMemoryRepository) GetByID(id int) (Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, inv := range r.invoices {
		if inv.ID == id {
			return inv, nil
		}
	}
	return Invoice{}, ErrInvoiceNotFound
}
