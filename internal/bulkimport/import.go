// Package bulkimport loads product catalog rows from XLSX workbooks
// uploaded by the shop admin.
package bulkimport

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/karthikrajap/textile-pos-backend/internal/product"
)

// Expected header row of the upload template. Matching is case-insensitive
// and order-independent; extra columns are ignored.
var expectedColumns = []string{
	"Supplier Name",
	"Supplier GST",
	"Product Name",
	"Wholesale Price",
	"Retail Price",
	"Fabric Type",
	"Pattern",
	"Size",
	"Quantity",
	"HSN Code",
	"Status",
}

// Report summarises one import run.
type Report struct {
	FileName     string   `json:"fileName"`
	TotalRecords int      `json:"totalRecords"`
	SuccessCount int      `json:"successCount"`
	FailureCount int      `json:"failureCount"`
	Status       string   `json:"status"` // success, partial or failed
	Errors       []string `json:"errors,omitempty"`
}

type Importer struct {
	products product.ServiceInterface
}

func NewImporter(products product.ServiceInterface) *Importer {
	return &Importer{products: products}
}

// Import parses the workbook's first sheet and creates a product per valid
// row. Row failures are collected, not fatal; the report tells the admin
// which rows to fix and re-upload.
func (im *Importer) Import(fileName string, r io.Reader) (Report, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Report{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Report{}, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return Report{}, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return Report{}, fmt.Errorf("sheet %s has no data rows", sheets[0])
	}

	colIndex, err := mapColumns(rows[0])
	if err != nil {
		return Report{}, err
	}

	report := Report{FileName: fileName, TotalRecords: len(rows) - 1}
	for i, row := range rows[1:] {
		rowNum := i + 2 // 1-based, after header
		p, err := parseRow(row, colIndex)
		if err != nil {
			report.FailureCount++
			report.Errors = append(report.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}
		if _, err := im.products.Create(p); err != nil {
			report.FailureCount++
			report.Errors = append(report.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}
		report.SuccessCount++
	}

	switch {
	case report.FailureCount == 0:
		report.Status = "success"
	case report.SuccessCount == 0:
		report.Status = "failed"
	default:
		report.Status = "partial"
	}
	return report, nil
}

func mapColumns(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, cell := range header {
		idx[strings.ToLower(strings.TrimSpace(cell))] = i
	}

	out := make(map[string]int, len(expectedColumns))
	var missing []string
	for _, col := range expectedColumns {
		pos, ok := idx[strings.ToLower(col)]
		if !ok {
			missing = append(missing, col)
			continue
		}
		out[col] = pos
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing columns: %s", strings.Join(missing, ", "))
	}
	return out, nil
}

func cellAt(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseRow(row []string, col map[string]int) (product.Product, error) {
	name := cellAt(row, col["Product Name"])
	if name == "" {
		return product.Product{}, fmt.Errorf("product name is required")
	}

	wholesale, err := parsePrice(cellAt(row, col["Wholesale Price"]), "wholesale price")
	if err != nil {
		return product.Product{}, err
	}
	retail, err := parsePrice(cellAt(row, col["Retail Price"]), "retail price")
	if err != nil {
		return product.Product{}, err
	}

	qtyStr := cellAt(row, col["Quantity"])
	qty := 0
	if qtyStr != "" {
		qty, err = strconv.Atoi(qtyStr)
		if err != nil || qty < 0 {
			return product.Product{}, fmt.Errorf("invalid quantity %q", qtyStr)
		}
	}

	status := cellAt(row, col["Status"])
	switch status {
	case "", product.StatusAvailable, product.StatusOutOfStock, product.StatusDiscontinued:
	default:
		return product.Product{}, fmt.Errorf("unknown status %q", status)
	}

	return product.Product{
		SupplierName:      cellAt(row, col["Supplier Name"]),
		SupplierGstNumber: cellAt(row, col["Supplier GST"]),
		ProductName:       name,
		WholesalePrice:    wholesale,
		RetailPrice:       retail,
		FabricType:        cellAt(row, col["Fabric Type"]),
		Pattern:           cellAt(row, col["Pattern"]),
		Size:              cellAt(row, col["Size"]),
		Quantity:          qty,
		HsnCode:           cellAt(row, col["HSN Code"]),
		Status:            status,
	}, nil
}

func parsePrice(raw, field string) (float64, error) {
	if raw == "" {
		return 0, fmt.Errorf("%s is required", field)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("invalid %s %q", field, raw)
	}
	return v, nil
}
