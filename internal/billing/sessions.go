package billing

import "sync"

// SessionStore hands out one cart per till user so concurrent tills never
// share state. Each cart itself is single-actor; the lock only guards the
// map of sessions.
type SessionStore struct {
	mu    sync.Mutex
	carts map[int]*Cart
}

func NewSessionStore() *SessionStore {
	return &SessionStore{carts: make(map[int]*Cart)}
}

// Cart returns the user's billing session, creating it on first use.
func (s *SessionStore) Cart(userID int) *Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[userID]
	if !ok {
		c = NewCart()
		s.carts[userID] = c
	}
	return c
}
