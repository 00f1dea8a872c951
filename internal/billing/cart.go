package billing

import (
	"fmt"
	"math"
	"strings"

	"github.com/karthikrajap/textile-pos-backend/internal/product"
)

// Defaults restored by Reset. CGST and SGST are the two halves of the
// shop-wide GST rate; retail prices are tax-inclusive so the tax lines are
// backed out of the grand total rather than added on top.
const (
	DefaultCgstRate      = 2.5
	DefaultSgstRate      = 2.5
	DefaultPaymentMethod = "cash"
)

// StockExceededError is returned when a requested quantity goes past the
// stock snapshot captured when the product entered the cart.
type StockExceededError struct {
	ProductName string
	Available   int
}

func (e *StockExceededError) Error() string {
	return fmt.Sprintf("only %d units available in stock for %s", e.Available, e.ProductName)
}

// OutOfStockError is returned when a zero-stock product is added.
type OutOfStockError struct {
	ProductName string
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("%s is out of stock", e.ProductName)
}

// ValidationError aggregates every failing check found at submit time.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	return "cannot create invoice: " + strings.Join(e.Issues, "; ")
}

// discount driver: exactly one of percentage or amount drives the line's
// discount at any time, the other is recomputed from it.
type discountDriver int

const (
	driverPercent discountDriver = iota
	driverAmount
)

// LineItem is one product's presence in the cart. Price and AvailableStock
// are snapshots from add time and do not track later product changes.
type LineItem struct {
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

	driver discountDriver
}

func (it *LineItem) recompute() {
	sub := float64(it.Quantity) * it.Price
	it.SubTotal = round2(sub)

	switch it.driver {
	case driverAmount:
		if it.DiscountAmount > sub {
			it.DiscountAmount = sub
		}
		if sub > 0 {
			it.DiscountPercentage = it.DiscountAmount / sub * 100
		} else {
			it.DiscountPercentage = 0
		}
	default:
		it.DiscountAmount = round2(sub * it.DiscountPercentage / 100)
	}

	it.Total = math.Max(0, round2(sub-it.DiscountAmount))
}

// CustomerStatus tracks what the last phone lookup found.
type CustomerStatus string

const (
	CustomerUnknown   CustomerStatus = ""
	CustomerExists    CustomerStatus = "exists"
	CustomerNotExists CustomerStatus = "not-exists"
)

// CustomerDetails are the editable profile fields shown on the billing form.
type CustomerDetails struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	Dob           string `json:"dob"`
	Dom           string `json:"dom"`
	MaritalStatus string `json:"maritalStatus"`
}

// CustomerRef is the customer half of the billing session. ID 0 means the
// customer has not been persisted yet.
type CustomerRef struct {
	ID      int            `json:"id"`
	Status  CustomerStatus `json:"status"`
	Details CustomerDetails
}

// Cart is one till's in-memory billing session: line items keyed by product
// id plus tax configuration and the customer being billed. All mutations are
// synchronous; a Cart belongs to exactly one till session and has no
// internal locking.
type Cart struct {
	items    map[int]*LineItem
	order    []int // insertion order, for display only
	cgstRate float64
	sgstRate float64
	payment  string
	customer CustomerRef
	// snapshot of the customer as last fetched or saved; drives the
	// unsaved-changes check for known customers
	savedCustomer CustomerDetails
}

func NewCart() *Cart {
	return &Cart{
		items:    make(map[int]*LineItem),
		cgstRate: DefaultCgstRate,
		sgstRate: DefaultSgstRate,
		payment:  DefaultPaymentMethod,
	}
}

// AddItem puts a product in the cart or bumps its quantity by increment
// (minimum 1). The product's stock count is captured as the line's stock
// snapshot. The cart is left unchanged when the guard rejects the add.
func (c *Cart) AddItem(p product.Product, increment int) error {
	if increment < 1 {
		increment = 1
	}
	stock := p.Quantity

	if item, ok := c.items[p.ID]; ok {
		newQty := item.Quantity + increment
		if newQty > stock {
			return &StockExceededError{ProductName: p.ProductName, Available: stock}
		}
		item.Quantity = newQty
		item.AvailableStock = stock
		item.recompute()
		return nil
	}

	if stock < 1 {
		return &OutOfStockError{ProductName: p.ProductName}
	}
	if increment > stock {
		return &StockExceededError{ProductName: p.ProductName, Available: stock}
	}

	item := &LineItem{
		ProductID:      p.ID,
		ProductName:    p.ProductName,
		Barcode:        p.Barcode,
		HsnCode:        p.HsnCode,
		Price:          p.RetailPrice,
		Quantity:       increment,
		AvailableStock: stock,
	}
	item.recompute()
	c.items[p.ID] = item
	c.order = append(c.order, p.ID)
	return nil
}

// UpdateQuantity sets a line's quantity. Zero or less removes the line. A
// quantity past the stock snapshot is rejected and the line is clamped to
// min(current, snapshot) instead of silently accepting the request.
func (c *Cart) UpdateQuantity(productID int, quantity int) error {
	if quantity <= 0 {
		c.RemoveItem(productID)
		return nil
	}

	item, ok := c.items[productID]
	if !ok {
		return nil
	}

	if quantity > item.AvailableStock {
		if item.Quantity > item.AvailableStock {
			item.Quantity = item.AvailableStock
		}
		item.recompute()
		return &StockExceededError{ProductName: item.ProductName, Available: item.AvailableStock}
	}

	item.Quantity = quantity
	item.recompute()
	return nil
}

// UpdateDiscountPercent makes the percentage the driving discount value,
// clamped to [0, 100]. The amount is recomputed from it.
func (c *Cart) UpdateDiscountPercent(productID int, percent float64) {
	item, ok := c.items[productID]
	if !ok {
		return
	}
	item.DiscountPercentage = math.Max(0, math.Min(100, percent))
	item.driver = driverPercent
	item.recompute()
}

// UpdateDiscountAmount makes the amount the driving discount value, clamped
// to [0, quantity*price]. The percentage is recomputed from it.
func (c *Cart) UpdateDiscountAmount(productID int, amount float64) {
	item, ok := c.items[productID]
	if !ok {
		return
	}
	maxDiscount := float64(item.Quantity) * item.Price
	item.DiscountAmount = math.Max(0, math.Min(maxDiscount, amount))
	item.driver = driverAmount
	item.recompute()
}

func (c *Cart) RemoveItem(productID int) {
	if _, ok := c.items[productID]; !ok {
		return
	}
	delete(c.items, productID)
	for i, id := range c.order {
		if id == productID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Items returns the line items in insertion order. The slice holds copies;
// mutating it does not touch the cart.
func (c *Cart) Items() []LineItem {
	out := make([]LineItem, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, *c.items[id])
	}
	return out
}

func (c *Cart) Item(productID int) (LineItem, bool) {
	item, ok := c.items[productID]
	if !ok {
		return LineItem{}, false
	}
	return *item, true
}

func (c *Cart) Len() int { return len(c.items) }

// Aggregates. All are pure functions of current state, recomputed on every
// call.

func (c *Cart) TotalQuantity() int {
	sum := 0
	for _, item := range c.items {
		sum += item.Quantity
	}
	return sum
}

func (c *Cart) Subtotal() float64 {
	sum := 0.0
	for _, item := range c.items {
		sum += float64(item.Quantity) * item.Price
	}
	return sum
}

func (c *Cart) TotalDiscount() float64 {
	sum := 0.0
	for _, item := range c.items {
		sum += item.DiscountAmount
	}
	return sum
}

func (c *Cart) GrandTotal() float64 {
	return c.Subtotal() - c.TotalDiscount()
}

// taxableValue backs the pre-tax value out of the tax-inclusive grand total.
func (c *Cart) taxableValue() float64 {
	totalRate := c.cgstRate + c.sgstRate
	return c.GrandTotal() / (1 + totalRate/100)
}

func (c *Cart) CgstAmount() float64 {
	return c.taxableValue() * c.cgstRate / 100
}

func (c *Cart) SgstAmount() float64 {
	return c.taxableValue() * c.sgstRate / 100
}

func (c *Cart) TaxableAmount() float64 {
	return round2(c.GrandTotal() - c.CgstAmount() - c.SgstAmount())
}

func (c *Cart) TaxRates() (cgst, sgst float64) {
	return c.cgstRate, c.sgstRate
}

func (c *Cart) SetTaxRates(cgst, sgst float64) {
	c.cgstRate = math.Max(0, cgst)
	c.sgstRate = math.Max(0, sgst)
}

func (c *Cart) PaymentMethod() string { return c.payment }

func (c *Cart) SetPaymentMethod(method string) {
	if method != "" {
		c.payment = method
	}
}

// Customer handling.

func (c *Cart) Customer() CustomerRef { return c.customer }

// ApplyCustomerRecord loads a persisted customer into the session after a
// phone lookup or a save, and snapshots the fields for change detection.
func (c *Cart) ApplyCustomerRecord(id int, details CustomerDetails) {
	c.customer = CustomerRef{ID: id, Status: CustomerExists, Details: details}
	c.savedCustomer = details
}

// MarkCustomerNew records that a phone lookup found nobody. The profile is
// cleared except for the phone being typed so a create flow can start.
func (c *Cart) MarkCustomerNew(phone string) {
	c.customer = CustomerRef{
		Status:  CustomerNotExists,
		Details: CustomerDetails{Phone: phone},
	}
	c.savedCustomer = CustomerDetails{}
}

// EditCustomer overwrites the editable fields without touching the saved
// snapshot, so HasUnsavedCustomerChanges can see the edit.
func (c *Cart) EditCustomer(details CustomerDetails) {
	prevPhone := c.customer.Details.Phone
	c.customer.Details = details
	// a changed phone invalidates the last lookup result, whether it found a
	// customer or not
	if details.Phone != prevPhone && c.customer.Status != CustomerUnknown {
		c.customer.Status = CustomerUnknown
		c.customer.ID = 0
	}
}

// HasUnsavedCustomerChanges reports whether the save-customer action should
// be enabled. New customers need name and phone filled in; known customers
// need at least one field to differ from the last fetched or saved state.
func (c *Cart) HasUnsavedCustomerChanges() bool {
	d := c.customer.Details
	switch c.customer.Status {
	case CustomerNotExists:
		return strings.TrimSpace(d.Name) != "" && strings.TrimSpace(d.Phone) != ""
	case CustomerExists:
		return d != c.savedCustomer
	default:
		return false
	}
}

// BuildInvoiceRequest validates the session and returns the invoice payload
// to persist. It never mutates the cart; Reset is the caller's job once
// persistence succeeds.
func (c *Cart) BuildInvoiceRequest() (Invoice, error) {
	if len(c.items) == 0 {
		return Invoice{}, &ValidationError{Issues: []string{"cart is empty"}}
	}
	if strings.TrimSpace(c.customer.Details.Phone) == "" {
		return Invoice{}, &ValidationError{Issues: []string{"customer phone number is required"}}
	}
	if strings.TrimSpace(c.customer.Details.Name) == "" {
		return Invoice{}, &ValidationError{Issues: []string{"customer name is required"}}
	}
	if c.customer.ID == 0 {
		return Invoice{}, &ValidationError{Issues: []string{"save customer before creating an invoice"}}
	}

	// stock may have changed since add time; collect every offending line
	// instead of failing on the first
	var stockIssues []string
	for _, id := range c.order {
		item := c.items[id]
		if item.Quantity > item.AvailableStock {
			stockIssues = append(stockIssues,
				fmt.Sprintf("%s: Requested %d, Available %d", item.ProductName, item.Quantity, item.AvailableStock))
		}
	}
	if len(stockIssues) > 0 {
		return Invoice{}, &ValidationError{Issues: stockIssues}
	}

	inv := Invoice{
		CustomerID:     c.customer.ID,
		Subtotal:       c.Subtotal(),
		Discount:       c.TotalDiscount(),
		TaxableAmount:  c.TaxableAmount(),
		CgstPercentage: c.cgstRate,
		Cgst:           c.CgstAmount(),
		SgstPercentage: c.sgstRate,
		Sgst:           c.SgstAmount(),
		Total:          c.GrandTotal(),
		PaymentMethod:  c.payment,
		InvoiceItems:   make([]InvoiceItem, 0, len(c.order)),
	}
	for _, id := range c.order {
		item := c.items[id]
		inv.InvoiceItems = append(inv.InvoiceItems, InvoiceItem{
			ProductID:          item.ProductID,
			ProductName:        item.ProductName,
			Barcode:            item.Barcode,
			HsnCode:            item.HsnCode,
			Price:              item.Price,
			Quantity:           item.Quantity,
			SubTotal:           item.SubTotal,
			DiscountPercentage: item.DiscountPercentage,
			DiscountAmount:     item.DiscountAmount,
			Total:              item.Total,
			AvailableStock:     item.AvailableStock,
		})
	}
	return inv, nil
}

// Reset clears the whole session back to defaults. Called after a successful
// invoice submission, never by the engine itself.
func (c *Cart) Reset() {
	c.items = make(map[int]*LineItem)
	c.order = nil
	c.cgstRate = DefaultCgstRate
	c.sgstRate = DefaultSgstRate
	c.payment = DefaultPaymentMethod
	c.customer = CustomerRef{}
	c.savedCustomer = CustomerDetails{}
}

// ClearItems empties only the line items, keeping customer and tax setup.
func (c *Cart) ClearItems() {
	c.items = make(map[int]*LineItem)
	c.order = nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
