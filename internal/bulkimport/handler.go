package bulkimport

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	importer *Importer
}

func NewHandler(importer *Importer) *Handler {
	return &Handler{importer: importer}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/products/bulk-import", h.upload)
}

func (h *Handler) upload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "file is required"})
	}
	if !strings.HasSuffix(strings.ToLower(file.Filename), ".xlsx") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "only .xlsx files are supported"})
	}

	f, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	defer f.Close()

	report, err := h.importer.Import(file.Filename, f)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(report)
}
