package report

import (
	"sort"
	"strings"

	"github.com/karthikrajap/textile-pos-backend/internal/billing"
	"github.com/karthikrajap/textile-pos-backend/internal/product"
)

// Stock below this count shows up in the low-stock list.
const lowStockThreshold = 5

// InvoiceSource is satisfied by the billing service.
type InvoiceSource interface {
	List() ([]billing.Invoice, error)
}

// ProductSource is satisfied by the product service.
type ProductSource interface {
	List() []product.Product
}

type Service struct {
	invoices InvoiceSource
	products ProductSource
}

func NewService(invoices InvoiceSource, products ProductSource) *Service {
	return &Service{invoices: invoices, products: products}
}

// invoiceDate extracts the YYYY-MM-DD part of the invoice timestamp.
func invoiceDate(inv billing.Invoice) string {
	ts := inv.InvoiceDateTime
	if ts == "" {
		ts = inv.CreatedAt
	}
	if len(ts) >= 10 {
		return ts[:10]
	}
	return ts
}

// inRange filters on the date part; empty bounds are open-ended.
func inRange(date, from, to string) bool {
	if date == "" {
		return from == "" && to == ""
	}
	if from != "" && strings.Compare(date, from) < 0 {
		return false
	}
	if to != "" && strings.Compare(date, to) > 0 {
		return false
	}
	return true
}

func (s *Service) Sales(from, to string) (SalesReport, error) {
	invoices, err := s.invoices.List()
	if err != nil {
		return SalesReport{}, err
	}

	rep := SalesReport{From: from, To: to, Rows: make([]SalesRow, 0)}
	for _, inv := range invoices {
		date := invoiceDate(inv)
		if !inRange(date, from, to) {
			continue
		}
		rep.Rows = append(rep.Rows, SalesRow{
			InvoiceID:     inv.ID,
			InvoiceNumber: inv.InvoiceNumber,
			Date:          date,
			CustomerID:    inv.CustomerID,
			Total:         inv.Total,
		})
		rep.TotalSales += inv.Total
	}
	rep.Invoices = len(rep.Rows)
	if rep.Invoices > 0 {
		rep.AvgSale = rep.TotalSales / float64(rep.Invoices)
	}
	return rep, nil
}

func (s *Service) Stock() StockReport {
	rep := StockReport{Rows: make([]StockRow, 0), LowStock: make([]StockRow, 0)}
	for _, p := range s.products.List() {
		row := StockRow{
			ProductID:   p.ID,
			ProductName: p.ProductName,
			Quantity:    p.Quantity,
			RetailPrice: p.RetailPrice,
			StockValue:  float64(p.Quantity) * p.RetailPrice,
			Status:      p.Status,
		}
		rep.Rows = append(rep.Rows, row)
		rep.TotalQuantity += p.Quantity
		rep.StockValue += row.StockValue
		if p.Quantity < lowStockThreshold && p.Status != product.StatusDiscontinued {
			rep.LowStock = append(rep.LowStock, row)
		}
	}
	rep.TotalProducts = len(rep.Rows)
	return rep
}

func (s *Service) Daily(from, to string) (DailyReport, error) {
	invoices, err := s.invoices.List()
	if err != nil {
		return DailyReport{}, err
	}

	byDay := make(map[string]*DailyRow)
	rep := DailyReport{From: from, To: to}
	for _, inv := range invoices {
		date := invoiceDate(inv)
		if !inRange(date, from, to) {
			continue
		}
		row, ok := byDay[date]
		if !ok {
			row = &DailyRow{Date: date}
			byDay[date] = row
		}
		row.Invoices++
		row.Total += inv.Total
		rep.Invoices++
		rep.TotalSales += inv.Total
	}

	rep.Days = make([]DailyRow, 0, len(byDay))
	for _, row := range byDay {
		rep.Days = append(rep.Days, *row)
	}
	sort.Slice(rep.Days, func(i, j int) bool { return rep.Days[i].Date < rep.Days[j].Date })
	return rep, nil
}
