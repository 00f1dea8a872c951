package product

import "fmt"

// ServiceInterface lets other handlers (billing, bulk import) depend on the
// product service without importing its concrete repository wiring.
type ServiceInterface interface {
	List() []Product
	GetByID(id int) (Product, error)
	GetByBarcode(barcode string) (Product, error)
	Search(query string) []Product
	Create(p Product) (Product, error)
	Update(id int, p Product) (Product, error)
	Delete(id int) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

var _ ServiceInterface = (*Service)(nil)

func (s *Service) List() []Product {
	return s.repo.List()
}

func (s *Service) GetByID(id int) (Product, error) {
	return s.repo.GetByID(id)
}

func (s *Service) GetByBarcode(barcode string) (Product, error) {
	return s.repo.GetByBarcode(barcode)
}

func (s *Service) Search(query string) []Product {
	return s.repo.Search(query)
}

// Create assigns a shop barcode ("WC" + zero-padded sequence) before storing.
// Client-supplied barcodes are ignored so the sequence stays authoritative.
func (s *Service) Create(p Product) (Product, error) {
	seq, err := s.repo.NextBarcodeSeq()
	if err != nil {
		return Product{}, err
	}
	p.Barcode = fmt.Sprintf("WC%06d", seq)
	if p.Status == "" {
		if p.Quantity > 0 {
			p.Status = StatusAvailable
		} else {
			p.Status = StatusOutOfStock
		}
	}
	return s.repo.Create(p)
}

func (s *Service) Update(id int, p Product) (Product, error) {
	return s.repo.Update(id, p)
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}
