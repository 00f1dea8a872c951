package product

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

var (
	ErrNotFound = errors.New("product not found")
)

type Repository interface {
	// List returns every product, newest first.
	List() []Product
	GetByID(id int) (Product, error)
	GetByBarcode(barcode string) (Product, error)
	// Search matches the product name, case-insensitive.
	Search(query string) []Product
	Create(p Product) (Product, error)
	Update(id int, p Product) (Product, error)
	Delete(id int) error
	// NextBarcodeSeq returns the next value of the barcode sequence.
	NextBarcodeSeq() (int64, error)
	// DecrementStock reduces stock for a sold product. It is used by the
	// billing repository's in-memory counterpart during invoice creation.
	DecrementStock(id int, qty int) error
}

// InMemoryRepository is a simple in-memory implementation useful for tests
// and seeding local data.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Product
	nextID  int
	nextSeq int64
}

func NewInMemoryRepository(seed []Product) *InMemoryRepository {
	r := &InMemoryRepository{
		storage: make([]Product, 0, len(seed)),
		nextID:  1,
		nextSeq: 1,
	}

	maxID := 0
	for _, p := range seed {
		r.storage = append(r.storage, p)
		if p.ID > maxID {
			maxID = p.ID
		}
	}

	r.nextID = maxID + 1
	return r
}

func (r *InMemoryRepository) List() []Product {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Product, len(r.storage))
	// newest first to match the postgres ORDER BY id DESC
	for i, p := range r.storage {
		out[len(r.storage)-1-i] = p
	}
	return out
}

func (r *InMemoryRepository) GetByID(id int) (Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.storage {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) GetByBarcode(barcode string) (Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.storage {
		if p.Barcode == barcode {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) Search(query string) []Product {
	r.mu.RLock()
	defer r.mu.RUnlock()
	q := strings.ToLower(query)
	out := make([]Product, 0)
	for _, p := range r.storage {
		if strings.Contains(strings.ToLower(p.ProductName), q) {
			out = append(out, p)
		}
	}
	return out
}

func (r *InMemoryRepository) Create(p Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.Barcode != "" {
		for _, existing := range r.storage {
			if existing.Barcode == p.Barcode {
				return Product{}, fmt.Errorf("barcode %s already exists", p.Barcode)
			}
		}
	}
	if p.ID == 0 {
		p.ID = r.nextID
		r.nextID++
	}
	r.storage = append(r.storage, p)
	return p, nil
}

func (r *InMemoryRepository) Update(id int, p Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			p.ID = id
			// barcode is immutable once assigned
			p.Barcode = r.storage[i].Barcode
			r.storage[i] = p
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			r.storage = append(r.storage[:i], r.storage[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) NextBarcodeSeq() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seq := r.nextSeq
	r.nextSeq++
	return seq, nil
}

func (r *InMemoryRepository) DecrementStock(id int, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			r.storage[i].Quantity -= qty
			if r.storage[i].Quantity <= 0 {
				r.storage[i].Quantity = 0
				r.storage[i].Status = StatusOutOfStock
			}
			return nil
		}
	}
	return ErrNotFound
}
