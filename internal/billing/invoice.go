package billing

// InvoiceItem is one billed line as stored and sent over the wire. Field
// names are part of the API contract and must not change.
type InvoiceItem struct {
	ID                 int     `json:"id,omitempty"`
	ProductID          int     `json:"productId"`
	ProductName        string  `json:"productName"`
	Barcode            string  `json:"barcode"`
	HsnCode            string  `json:"hsnCode"`
	Price              float64 `json:"price"`
	Quantity           int     `json:"quantity"`
	SubTotal           float64 `json:"subTotal"`
	DiscountPercentage float64 `json:"discountPercentage"`
	DiscountAmount     float64 `json:"discountAmount"`
	Total              float64 `json:"total"`
	AvailableStock     int     `json:"availableStock,omitempty"`
}

// Invoice is the persisted bill. The tax lines are an informational
// breakdown of the tax-inclusive total, not additive surcharges.
type Invoice struct {
	ID              int           `json:"id,omitempty"`
	InvoiceNumber   string        `json:"invoiceNumber,omitempty"`
	InvoiceDateTime string        `json:"invoiceDateTime,omitempty"`
	CustomerID      int           `json:"customerId"`
	Subtotal        float64       `json:"subtotal"`
	Discount        float64       `json:"discount"`
	TaxableAmount   float64       `json:"taxableAmount"`
	CgstPercentage  float64       `json:"cgstPercentage"`
	Cgst            float64       `json:"cgst"`
	SgstPercentage  float64       `json:"sgstPercentage"`
	Sgst            float64       `json:"sgst"`
	Total           float64       `json:"total"`
	PaymentMethod   string        `json:"paymentMethod"`
	CreatedAt       string        `json:"createdAt,omitempty"`
	InvoiceItems    []InvoiceItem `json:"invoiceItems"`
}
