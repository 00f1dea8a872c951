package product

// Product statuses recognised across the app. Anything else is rejected at
// the handler boundary.
const (
	StatusAvailable    = "Available"
	StatusOutOfStock   = "Out of Stock"
	StatusDiscontinued = "Discontinued"
)

// Product represents one catalog entry and maps to the `product` table.
// JSON tags follow the camelCase convention used by the billing endpoints.
type Product struct {
	ID                int     `json:"id"`
	SupplierName      string  `json:"supplierName"`
	SupplierGstNumber string  `json:"supplierGstNumber"`
	ProductName       string  `json:"productName"`
	WholesalePrice    float64 `json:"wholesalePrice"`
	RetailPrice       float64 `json:"retailPrice"`
	FabricType        string  `json:"fabricType"`
	Pattern           string  `json:"pattern"`
	Size              string  `json:"size"`
	Quantity          int     `json:"quantity"`
	HsnCode           string  `json:"hsnCode"`
	Barcode           string  `json:"barcode"`
	Status            string  `json:"status"`
	CreatedAt         string  `json:"createdAt,omitempty"`
	UpdatedAt         string  `json:"updatedAt,omitempty"`
}

// InStock reports whether the product can be sold right now.
func (p Product) InStock() bool {
	return p.Status == StatusAvailable && p.Quantity > 0
}
