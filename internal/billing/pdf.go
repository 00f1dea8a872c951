package billing

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/karthikrajap/textile-pos-backend/internal/customer"
)

// RenderInvoicePDF builds a printable A4 invoice. The customer is optional;
// older invoices may reference a deleted customer record.
func RenderInvoicePDF(inv Invoice, cust *customer.Customer) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Tax Invoice")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 5, fmt.Sprintf("Invoice No: %s", inv.InvoiceNumber))
	pdf.Ln(5)
	if inv.InvoiceDateTime != "" {
		pdf.Cell(0, 5, fmt.Sprintf("Date: %s", inv.InvoiceDateTime))
		pdf.Ln(5)
	}
	pdf.Cell(0, 5, fmt.Sprintf("Payment: %s", inv.PaymentMethod))
	pdf.Ln(5)
	if cust != nil {
		pdf.Cell(0, 5, fmt.Sprintf("Customer: %s (%s)", cust.Name, cust.PhoneNumber))
		pdf.Ln(5)
	}
	pdf.Ln(4)

	// item table
	headers := []string{"Item", "HSN", "Price", "Qty", "Disc", "Total"}
	widths := []float64{70, 25, 25, 15, 25, 30}
	pdf.SetFont("Helvetica", "B", 9)
	for i, hd := range headers {
		pdf.CellFormat(widths[i], 7, hd, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range inv.InvoiceItems {
		cells := []string{
			item.ProductName,
			item.HsnCode,
			fmt.Sprintf("%.2f", item.Price),
			fmt.Sprintf("%d", item.Quantity),
			fmt.Sprintf("%.2f", item.DiscountAmount),
			fmt.Sprintf("%.2f", item.Total),
		}
		for i, cell := range cells {
			align := "L"
			if i >= 2 {
				align = "R"
			}
			pdf.CellFormat(widths[i], 6, cell, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(4)

	summary := []struct {
		label string
		value float64
	}{
		{"Subtotal", inv.Subtotal},
		{"Discount", inv.Discount},
		{"Taxable Amount", inv.TaxableAmount},
		{fmt.Sprintf("CGST (%.2f%%)", inv.CgstPercentage), inv.Cgst},
		{fmt.Sprintf("SGST (%.2f%%)", inv.SgstPercentage), inv.Sgst},
		{"Grand Total", inv.Total},
	}
	for _, row := range summary {
		pdf.CellFormat(150, 6, row.label, "", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("%.2f", row.value), "", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
