package customer

import "errors"

var (
	ErrNameRequired  = errors.New("customer name is required")
	ErrPhoneRequired = errors.New("customer phone number is required")
	ErrPhoneLength   = errors.New("phone number must be 10 digits")
)

// ServiceInterface is consumed by the billing handler as the customer
// lookup/upsert collaborator.
type ServiceInterface interface {
	GetByPhone(phoneNumber string) (Customer, error)
	GetByID(id int) (Customer, error)
	Upsert(c Customer) (Customer, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

var _ ServiceInterface = (*Service)(nil)

func (s *Service) GetByPhone(phoneNumber string) (Customer, error) {
	if phoneNumber == "" {
		return Customer{}, ErrNotFound
	}
	return s.repo.GetByPhone(phoneNumber)
}

func (s *Service) GetByID(id int) (Customer, error) {
	if id <= 0 {
		return Customer{}, ErrNotFound
	}
	return s.repo.GetByID(id)
}

// Upsert updates the customer matching the phone number, or creates one
// when the number is new. The phone number is the natural key.
func (s *Service) Upsert(c Customer) (Customer, error) {
	if c.Name == "" {
		return Customer{}, ErrNameRequired
	}
	if c.PhoneNumber == "" {
		return Customer{}, ErrPhoneRequired
	}
	if len(c.PhoneNumber) != 10 {
		return Customer{}, ErrPhoneLength
	}

	existing, err := s.repo.GetByPhone(c.PhoneNumber)
	if err == nil {
		return s.repo.Update(existing.ID, c)
	}
	if err != ErrNotFound {
		return Customer{}, err
	}
	return s.repo.Create(c)
}
