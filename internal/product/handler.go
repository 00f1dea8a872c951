package product

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/karthikrajap/textile-pos-backend/internal/label"
)

// Handler delegates product operations to the product service.
type Handler struct {
	service ServiceInterface
}

func NewHandler(s ServiceInterface) *Handler {
	return &Handler{service: s}
}

// RegisterPublicRoutes exposes read-only catalog endpoints. The billing
// counter polls the barcode endpoints without a session while scanning.
func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/products/search", h.search)
	app.Get("/api/products/barcode/:code/image", h.barcodeImage)
	app.Get("/api/products/barcode/:code", h.getByBarcode)
	app.Get("/api/products/:id<[0-9]+>", h.get)
	app.Get("/api/products", h.list)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/products", h.create)
	app.Put("/api/products/:id<[0-9]+>", h.update)
	app.Delete("/api/products/:id<[0-9]+>", h.delete)
}

func (h *Handler) list(c *fiber.Ctx) error {
	return c.JSON(h.service.List())
}

func (h *Handler) get(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}

	p, err := h.service.GetByID(id)
	if err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(p)
}

func (h *Handler) getByBarcode(c *fiber.Ctx) error {
	code := c.Params("code")
	p, err := h.service.GetByBarcode(code)
	if err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(p)
}

func (h *Handler) barcodeImage(c *fiber.Ctx) error {
	code := c.Params("code")
	width := c.QueryInt("width", 300)
	height := c.QueryInt("height", 80)

	data, err := label.PNG(code, width, height)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	c.Set("Content-Type", "image/png")
	return c.Send(data)
}

func (h *Handler) search(c *fiber.Ctx) error {
	q := c.Query("q")
	if q == "" {
		return c.JSON([]Product{})
	}
	return c.JSON(h.service.Search(q))
}

type productRequest struct {
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
	Status            string  `json:"status"`
}

func (p *productRequest) validate() string {
	if p.ProductName == "" {
		return "productName is required"
	}
	if p.RetailPrice < 0 || p.WholesalePrice < 0 {
		return "prices must be non-negative"
	}
	if p.Quantity < 0 {
		return "quantity must be non-negative"
	}
	switch p.Status {
	case "", StatusAvailable, StatusOutOfStock, StatusDiscontinued:
	default:
		return "unknown status " + p.Status
	}
	return ""
}

func (p *productRequest) toProduct() Product {
	return Product{
		SupplierName:      p.SupplierName,
		SupplierGstNumber: p.SupplierGstNumber,
		ProductName:       p.ProductName,
		WholesalePrice:    p.WholesalePrice,
		RetailPrice:       p.RetailPrice,
		FabricType:        p.FabricType,
		Pattern:           p.Pattern,
		Size:              p.Size,
		Quantity:          p.Quantity,
		HsnCode:           p.HsnCode,
		Status:            p.Status,
	}
}

func (h *Handler) create(c *fiber.Ctx) error {
	payload := new(productRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if msg := payload.validate(); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": msg})
	}

	created, err := h.service.Create(payload.toProduct())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusOK).JSON(created)
}

func (h *Handler) update(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}

	payload := new(productRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if msg := payload.validate(); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": msg})
	}

	updated, err := h.service.Update(id, payload.toProduct())
	if err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(updated)
}

func (h *Handler) delete(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}

	if err := h.service.Delete(id); err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.SendStatus(fiber.StatusOK)
}
