package customer

import (
	"errors"
	"sync"
)

var (
	ErrNotFound = errors.New("customer not found")
)

type Repository interface {
	GetByPhone(phoneNumber string) (Customer, error)
	GetByID(id int) (Customer, error)
	Create(c Customer) (Customer, error)
	Update(id int, c Customer) (Customer, error)
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Customer
	nextID  int
}

func NewInMemoryRepository(seed []Customer) *InMemoryRepository {
	r := &InMemoryRepository{storage: make([]Customer, 0, len(seed)), nextID: 1}
	maxID := 0
	for _, c := range seed {
		r.storage = append(r.storage, c)
		if c.ID > maxID {
			maxID = c.ID
		}
	}
	r.nextID = maxID + 1
	return r
}

func (r *InMemoryRepository) GetByPhone(phoneNumber string) (Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.storage {
		if c.PhoneNumber == phoneNumber {
			return c, nil
		}
	}
	return Customer{}, ErrNotFound
}

func (r *InMemoryRepository) GetByID(id int) (Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.storage {
		if c.ID == id {
			return c, nil
		}
	}
	return Customer{}, ErrNotFound
}

func (r *InMemoryRepository) Create(c Customer) (Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID == 0 {
		c.ID = r.nextID
		r.nextID++
	}
	r.storage = append(r.storage, c)
	return c, nil
}

func (r *InMemoryRepository) Update(id int, c Customer) (Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			c.ID = id
			// phone number is the upsert key and never changes here
			c.PhoneNumber = r.storage[i].PhoneNumber
			r.storage[i] = c
			return c, nil
		}
	}
	return Customer{}, ErrNotFound
}
