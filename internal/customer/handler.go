package customer

import (
	"github.com/gofiber/fiber/v2"
)

// Handler delegates customer operations to the customer service.
type Handler struct {
	service ServiceInterface
}

func NewHandler(s ServiceInterface) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/customers/upsert", h.upsert)
	app.Get("/api/customers/phone/:phoneNumber", h.getByPhone)
}

type upsertRequest struct {
	Name          string  `json:"name"`
	PhoneNumber   string  `json:"phoneNumber"`
	Email         *string `json:"email,omitempty"`
	Address       *string `json:"address,omitempty"`
	Dob           *string `json:"dob,omitempty"`
	Dom           *string `json:"dom,omitempty"`
	MaritalStatus *string `json:"maritalStatus,omitempty"`
}

func (h *Handler) upsert(c *fiber.Ctx) error {
	payload := new(upsertRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	saved, err := h.service.Upsert(Customer{
		Name:          payload.Name,
		PhoneNumber:   payload.PhoneNumber,
		Email:         payload.Email,
		Address:       payload.Address,
		Dob:           payload.Dob,
		Dom:           payload.Dom,
		MaritalStatus: payload.MaritalStatus,
	})
	if err != nil {
		switch err {
		case ErrNameRequired, ErrPhoneRequired, ErrPhoneLength:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.Status(fiber.StatusOK).JSON(saved)
}

func (h *Handler) getByPhone(c *fiber.Ctx) error {
	phone := c.Params("phoneNumber")
	found, err := h.service.GetByPhone(phone)
	if err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "customer not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(found)
}
