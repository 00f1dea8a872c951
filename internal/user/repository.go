package user

import (
	"errors"
	"sync"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrUsernameExists     = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

type Repository interface {
	GetByID(id int) (User, error)
	GetByUsername(username string) (User, error)
	Create(u User) (User, error)
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []User
	nextID  int
}

func NewInMemoryRepository(seed []User) *InMemoryRepository {
	r := &InMemoryRepository{storage: make([]User, 0, len(seed)), nextID: 1}
	maxID := 0
	for _, u := range seed {
		r.storage = append(r.storage, u)
		if u.ID > maxID {
			maxID = u.ID
		}
	}
	r.nextID = maxID + 1
	return r
}

func (r *InMemoryRepository) GetByID(id int) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.storage {
		if u.ID == id {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *InMemoryRepository) GetByUsername(username string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.storage {
		if u.Username == username {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *InMemoryRepository) Create(u User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.storage {
		if existing.Username == u.Username {
			return User{}, ErrUsernameExists
		}
	}
	if u.ID == 0 {
		u.ID = r.nextID
		r.nextID++
	}
	r.storage = append(r.storage, u)
	return u, nil
}
