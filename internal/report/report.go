// Package report aggregates invoices and stock into the summaries the
// dashboard renders.
package report

// SalesRow is one invoice in a sales report.
type SalesRow struct {
	InvoiceID     int     `json:"invoiceId"`
	InvoiceNumber string  `json:"invoiceNumber"`
	Date          string  `json:"date"`
	CustomerID    int     `json:"customerId"`
	Total         float64 `json:"total"`
}

// SalesReport covers a date range of invoices.
type SalesReport struct {
	From       string     `json:"from,omitempty"`
	To         string     `json:"to,omitempty"`
	TotalSales float64    `json:"totalSales"`
	Invoices   int        `json:"invoices"`
	AvgSale    float64    `json:"avgSale"`
	Rows       []SalesRow `json:"rows"`
}

// StockRow is one product in a stock report.
type StockRow struct {
	ProductID   int     `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	RetailPrice float64 `json:"retailPrice"`
	StockValue  float64 `json:"stockValue"`
	Status      string  `json:"status"`
}

// StockReport is a snapshot of the whole catalog.
type StockReport struct {
	TotalProducts int        `json:"totalProducts"`
	TotalQuantity int        `json:"totalQuantity"`
	StockValue    float64    `json:"stockValue"`
	LowStock      []StockRow `json:"lowStock"`
	Rows          []StockRow `json:"rows"`
}

// DailyRow is one day's invoice totals.
type DailyRow struct {
	Date     string  `json:"date"`
	Invoices int     `json:"invoices"`
	Total    float64 `json:"total"`
}

// DailyReport groups invoices per calendar day.
type DailyReport struct {
	From       string     `json:"from,omitempty"`
	To         string     `json:"to,omitempty"`
	TotalSales float64    `json:"totalSales"`
	Invoices   int        `json:"invoices"`
	Days       []DailyRow `json:"days"`
}
