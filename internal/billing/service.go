package billing

import (
	"fmt"
	"time"
)

// Service persists validated invoices. It performs no retries; a failed
// submit is reported to the caller and the cart stays untouched.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create stamps the invoice and stores it. The payload must come from
// Cart.BuildInvoiceRequest, which has already validated it.
func (s *Service) Create(inv Invoice) (Invoice, error) {
	now := time.Now().UTC()
	if inv.InvoiceNumber == "" {
		inv.InvoiceNumber = fmt.Sprintf("INV-%d", now.UnixMilli())
	}
	stamp := now.Format(time.RFC3339)
	inv.InvoiceDateTime = stamp
	inv.CreatedAt = stamp
	return s.repo.Create(inv)
}

func (s *Service) List() ([]Invoice, error) {
	return s.repo.List()
}

func (s *Service) GetByID(id int) (Invoice, error) {
	if id <= 0 {
		return Invoice{}, ErrInvoiceNotFound
	}
	return s.repo.GetByID(id)
}
