package billing

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/karthikrajap/textile-pos-backend/internal/customer"
	"github.com/karthikrajap/textile-pos-backend/internal/product"
	"github.com/karthikrajap/textile-pos-backend/internal/scan"
	"github.com/karthikrajap/textile-pos-backend/internal/user"
)

// Handler exposes the billing session and invoice endpoints. The product and
// customer services are the engine's lookup collaborators; the billing
// service persists submitted invoices.
type Handler struct {
	sessions        *SessionStore
	service         *Service
	productService  product.ServiceInterface
	customerService customer.ServiceInterface
}

func NewHandler(sessions *SessionStore, s *Service, ps product.ServiceInterface, cs customer.ServiceInterface) *Handler {
	return &Handler{sessions: sessions, service: s, productService: ps, customerService: cs}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/billing/cart", h.getCart)
	app.Patch("/api/billing/cart", h.updateCartConfig)
	app.Delete("/api/billing/cart", h.clearCart)
	app.Post("/api/billing/cart/items", h.addItem)
	app.Patch("/api/billing/cart/items/:productId<[0-9]+>", h.updateItem)
	app.Delete("/api/billing/cart/items/:productId<[0-9]+>", h.removeItem)
	app.Get("/api/billing/cart/customer", h.getCustomer)
	app.Put("/api/billing/cart/customer", h.editCustomer)
	app.Post("/api/billing/cart/customer/lookup", h.lookupCustomer)
	app.Post("/api/billing/cart/customer/save", h.saveCustomer)
	app.Post("/api/billing/invoice", h.createInvoice)
	app.Get("/api/billing/invoices", h.listInvoices)
	app.Get("/api/billing/invoice/:id<[0-9]+>", h.getInvoice)
	app.Get("/api/billing/invoice/:id<[0-9]+>/pdf", h.invoicePDF)
}

// cartView is what every cart mutation returns so the till can rerender
// items and totals in one round trip.
type cartView struct {
	Items          []LineItem `json:"items"`
	TotalQuantity  int        `json:"totalQuantity"`
	Subtotal       float64    `json:"subtotal"`
	Discount       float64    `json:"discount"`
	TaxableAmount  float64    `json:"taxableAmount"`
	CgstPercentage float64    `json:"cgstPercentage"`
	Cgst           float64    `json:"cgst"`
	SgstPercentage float64    `json:"sgstPercentage"`
	Sgst           float64    `json:"sgst"`
	Total          float64    `json:"total"`
	PaymentMethod  string     `json:"paymentMethod"`
}

func viewOf(c *Cart) cartView {
	cgstRate, sgstRate := c.TaxRates()
	return cartView{
		Items:          c.Items(),
		TotalQuantity:  c.TotalQuantity(),
		Subtotal:       c.Subtotal(),
		Discount:       c.TotalDiscount(),
		TaxableAmount:  c.TaxableAmount(),
		CgstPercentage: cgstRate,
		Cgst:           c.CgstAmount(),
		SgstPercentage: sgstRate,
		Sgst:           c.SgstAmount(),
		Total:          c.GrandTotal(),
		PaymentMethod:  c.PaymentMethod(),
	}
}

func (h *Handler) cartFor(c *fiber.Ctx) (*Cart, error) {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return nil, err
	}
	return h.sessions.Cart(userID), nil
}

func (h *Handler) getCart(c *fiber.Ctx) error {
	cart, err := h.cartFor(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	return c.JSON(viewOf(cart))
}

type addItemRequest struct {
	Barcode  string `json:"barcode"`
	Quantity int    `json:"quantity,omitempty"`
}

func (h *Handler) addItem(c *fiber.Ctx) error {
	cart, err := h.cartFor(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(addItemRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if !scan.ValidBarcode(payload.Barcode) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid barcode"})
	}

	p, err := h.productService.GetByBarcode(payload.Barcode)
	if err != nil {
		switch err {
		case product.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found for barcode " + payload.Barcode})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	if p.Status != product.StatusAvailable {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": p.ProductName + " is not available for sale"})
	}

	if err := cart.AddItem(p, payload.Quantity); err != nil {
		return stockErrorResponse(c, err)
	}
	return c.JSON(viewOf(cart))
}

// updateItemRequest uses pointers so "field absent" and "field zero" are
// distinguishable; only the fields present in the payload are applied.
type updateItemRequest struct {
	Quantity           *int     `json:"quantity,omitempty"`
	DiscountPercentage *float64 `json:"discountPercentage,omitempty"`
	DiscountAmount     *float64 `json:"discountAmount,omitempty"`
}

func (h *Handler) updateItem(c *fiber.Ctx) error {
	cart, err := h.cartFor(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	productID, err := strconv.Atoi(c.Params("productId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid productId"})
	}

	payload := new(updateItemRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Quantity == nil && payload.DiscountPercentage == nil && payload.DiscountAmount == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "nothing to update"})
	}

	if payload.Quantity != nil {
		if err := cart.UpdateQuantity(productID, *payload.Quantity); err != nil {
			return stockErrorResponse(c, err)
		}
	}
	if payload.DiscountPercentage != nil {
		cart.UpdateDiscountPercent(productID, *payload.DiscountPercentage)
	}
	if payload.DiscountAmount != nil {
		cart.UpdateDiscountAmount(productID, *payload.DiscountAmount)
	}
	return c.JSON(viewOf(cart))
}

func (h *Handler) removeItem(c *fiber.Ctx) error {
	cart, err := h.cartFor(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	productID, err := strconv.Atoi(c.Params("productId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid productId"})
	}
	cart.RemoveItem(productID)
	return c.JSON(viewOf(cart))
}

func (h *Handler) clearCart(c *fiber.Ctx) error {
	cart, err := h.cartFor(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	cart.ClearItems()
	return c.SendStatus(fiber.StatusNoContent)
}

type cartConfigRequest struct {
	CgstRate      *float64 `json:"cgstRate,omitempty"`
	SgstRate      *float64 `json:"sgstRate,omitempty"`
	PaymentMethod *string  `json:"paymentMethod,omitempty"`
}

func (h *Handler) updateCartConfig(c *fiber.Ctx) error {
	cart, err := h.cartFor(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(cartConfigRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	cgstRate, sgstRate := cart.TaxRates()
	if payload.CgstRate != nil {
		cgstRate = *payload.CgstRate
	}
	if payload.SgstRate != nil {
		sgstRate = *payload.SgstRate
	}
	cart.SetTaxRates(cgstRate, sgstRate)
	if payload.PaymentMethod != nil {
		cart.SetPaymentMethod(*payload.PaymentMethod)
	}
	return c.JSON(viewOf(cart))
}

// customerView reports the session's customer state together with whether
// the save action should be enabled.
type customerView struct {
	ID                int            `json:"id"`
	Status            CustomerStatus `json:"status"`
	Name              string         `json:"name"`
	Phone             string         `json:"phone"`
	Email             string         `json:"email"`
	Address           string         `json:"address"`
	Dob               string         `json:"dob"`
	Dom               string         `json:"dom"`
	MaritalStatus     string         `json:"maritalStatus"`
	HasUnsavedChanges bool           `json:"hasUnsavedChanges"`
}

func customerViewOf(cart *Cart) customerView {
	ref := cart.Customer()
	return customerView{
		ID:                ref.ID,
		Status:            ref.Status,
		Name:              ref.Details.Name,
		Phone:             ref.Details.Phone,
		Email:             ref.Details.Email,
		Address:           ref.Details.Address,
		Dob:               ref.Details.Dob,
		Dom:               ref.Details.Dom,
		MaritalStatus:     ref.Details.MaritalStatus,
		HasUnsavedChanges: cart.HasUnsavedCustomerChanges(),
	}
}

func (h *Handler) getCustomer(c *fiber.Ctx) error {
	cart, err := h.cartFor(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	return c.JSON(customerViewOf(cart))
}

func (h *Handler) editCustomer(c *fiber.Ctx) error {
	cart, err := h.cartFor(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(CustomerDetails)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	cart.EditCustomer(*payload)
	return c.JSON(customerViewOf(cart))
}

type lookupRequest struct {
	Phone string `json:"phone"`
}

// lookupCustomer resolves a phone number against the customer store. A miss
// is not an error; it flips the session to the create-customer flow.
func (h *Handler) lookupCustomer(c *fiber.Ctx) error {
	cart, err := h.cartFor(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(lookupRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Phone == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "phone is required"})
	}

	rec, err := h.customerService.GetByPhone(payload.Phone)
	switch {
	case err == nil:
		cart.ApplyCustomerRecord(rec.ID, detailsFromRecord(rec))
	case errors.Is(err, customer.ErrNotFound):
		cart.MarkCustomerNew(payload.Phone)
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(customerViewOf(cart))
}

func (h *Handler) saveCustomer(c *fiber.Ctx) error {
	cart, err := h.cartFor(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	d := cart.Customer().Details
	saved, err := h.customerService.Upsert(customer.Customer{
		Name:          d.Name,
		PhoneNumber:   d.Phone,
		Email:         optional(d.Email),
		Address:       optional(d.Address),
		Dob:           optional(d.Dob),
		Dom:           optional(d.Dom),
		MaritalStatus: optional(d.MaritalStatus),
	})
	if err != nil {
		switch err {
		case customer.ErrNameRequired, customer.ErrPhoneRequired, customer.ErrPhoneLength:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}

	cart.ApplyCustomerRecord(saved.ID, d)
	return c.JSON(customerViewOf(cart))
}

// createInvoice validates the session, persists the invoice, and only then
// resets the cart. A failed persist leaves the session intact for a retry
// decided by the till, not by the engine.
func (h *Handler) createInvoice(c *fiber.Ctx) error {
	cart, err := h.cartFor(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	req, err := cart.BuildInvoiceRequest()
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"message": "cannot create invoice",
				"issues":  verr.Issues,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	created, err := h.service.Create(req)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	cart.Reset()
	return c.Status(fiber.StatusOK).JSON(created)
}

func (h *Handler) listInvoices(c *fiber.Ctx) error {
	invoices, err := h.service.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(invoices)
}

func (h *Handler) getInvoice(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}

	inv, err := h.service.GetByID(id)
	if err != nil {
		switch err {
		case ErrInvoiceNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "invoice not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(inv)
}

func (h *Handler) invoicePDF(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}

	inv, err := h.service.GetByID(id)
	if err != nil {
		switch err {
		case ErrInvoiceNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "invoice not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}

	var cust *customer.Customer
	if rec, err := h.customerService.GetByID(inv.CustomerID); err == nil {
		cust = &rec
	}

	pdf, err := RenderInvoicePDF(inv, cust)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="invoice-%d.pdf"`, inv.ID))
	return c.Send(pdf)
}

func stockErrorResponse(c *fiber.Ctx, err error) error {
	var stockErr *StockExceededError
	var oosErr *OutOfStockError
	switch {
	case errors.As(err, &stockErr), errors.As(err, &oosErr):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
}

func detailsFromRecord(rec customer.Customer) CustomerDetails {
	return CustomerDetails{
		Name:          rec.Name,
		Phone:         rec.PhoneNumber,
		Email:         deref(rec.Email),
		Address:       deref(rec.Address),
		Dob:           deref(rec.Dob),
		Dom:           deref(rec.Dom),
		MaritalStatus: deref(rec.MaritalStatus),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
