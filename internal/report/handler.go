package report

import (
	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/reports/sales", h.sales)
	app.Get("/api/reports/stock", h.stock)
	app.Get("/api/reports/daily", h.daily)
}

func (h *Handler) sales(c *fiber.Ctx) error {
	rep, err := h.service.Sales(c.Query("from"), c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(rep)
}

func (h *Handler) stock(c *fiber.Ctx) error {
	return c.JSON(h.service.Stock())
}

func (h *Handler) daily(c *fiber.Ctx) error {
	rep, err := h.service.Daily(c.Query("from"), c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(rep)
}
