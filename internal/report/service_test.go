package report

import (
	"testing"

	"github.com/karthikrajap/textile-pos-backend/internal/billing"
	"github.com/karthikrajap/textile-pos-backend/internal/product"
)

type fakeInvoices struct {
	invoices []billing.Invoice
}

func (f *fakeInvoices) List() ([]billing.Invoice, error) { return f.invoices, nil }

type fakeProducts struct {
	products []product.Product
}

func (f *fakeProducts) List() []product.Product { return f.products }

func testInvoices() *fakeInvoices {
	return &fakeInvoices{invoices: []billing.Invoice{
		{ID: 1, InvoiceNumber: "INV-1", InvoiceDateTime: "2026-03-01T10:00:00Z", CustomerID: 7, Total: 280},
		{ID: 2, InvoiceNumber: "INV-2", InvoiceDateTime: "2026-03-01T15:30:00Z", CustomerID: 8, Total: 120},
		{ID: 3, InvoiceNumber: "INV-3", InvoiceDateTime: "2026-03-05T09:00:00Z", CustomerID: 7, Total: 600},
	}}
}

func TestSalesReport(t *testing.T) {
	service := NewService(testInvoices(), &fakeProducts{})

	rep, err := service.Sales("", "")
	if err != nil {
		t.Fatalf("sales: %v", err)
	}
	if rep.Invoices != 3 || rep.TotalSales != 1000 {
		t.Fatalf("unexpected totals: %+v", rep)
	}
	if rep.AvgSale < 333.33 || rep.AvgSale > 333.34 {
		t.Fatalf("unexpected average: %v", rep.AvgSale)
	}

	// closed range keeps only the first day
	rep, err = service.Sales("2026-03-01", "2026-03-01")
	if err != nil {
		t.Fatalf("sales: %v", err)
	}
	if rep.Invoices != 2 || rep.TotalSales != 400 {
		t.Fatalf("unexpected ranged totals: %+v", rep)
	}

	// open-ended lower bound
	rep, err = service.Sales("2026-03-02", "")
	if err != nil {
		t.Fatalf("sales: %v", err)
	}
	if rep.Invoices != 1 || rep.Rows[0].InvoiceNumber != "INV-3" {
		t.Fatalf("unexpected lower-bound result: %+v", rep)
	}
}

func TestStockReport(t *testing.T) {
	products := &fakeProducts{products: []product.Product{
		{ID: 1, ProductName: "Silk Saree", Quantity: 10, RetailPrice: 200, Status: product.StatusAvailable},
		{ID: 2, ProductName: "Dhoti", Quantity: 2, RetailPrice: 50, Status: product.StatusAvailable},
		{ID: 3, ProductName: "Old Shawl", Quantity: 1, RetailPrice: 80, Status: product.StatusDiscontinued},
	}}
	service := NewService(&fakeInvoices{}, products)

	rep := service.Stock()
	if rep.TotalProducts != 3 || rep.TotalQuantity != 13 {
		t.Fatalf("unexpected counts: %+v", rep)
	}
	if rep.StockValue != 10*200+2*50+1*80 {
		t.Fatalf("unexpected stock value: %v", rep.StockValue)
	}
	// discontinued items stay out of the low-stock list
	if len(rep.LowStock) != 1 || rep.LowStock[0].ProductName != "Dhoti" {
		t.Fatalf("unexpected low stock: %+v", rep.LowStock)
	}
}

func TestDailyReport(t *testing.T) {
	service := NewService(testInvoices(), &fakeProducts{})

	rep, err := service.Daily("", "")
	if err != nil {
		t.Fatalf("daily: %v", err)
	}
	if rep.Invoices != 3 || rep.TotalSales != 1000 {
		t.Fatalf("unexpected totals: %+v", rep)
	}
	if len(rep.Days) != 2 {
		t.Fatalf("expected 2 days, got %+v", rep.Days)
	}
	if rep.Days[0].Date != "2026-03-01" || rep.Days[0].Invoices != 2 || rep.Days[0].Total != 400 {
		t.Fatalf("unexpected first day: %+v", rep.Days[0])
	}
	if rep.Days[1].Date != "2026-03-05" || rep.Days[1].Total != 600 {
		t.Fatalf("unexpected second day: %+v", rep.Days[1])
	}
}
