package characters

import (
	"pvp-pipeline/core/logger"
	"pvp-pipeline/core/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for curated character profiles.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the character routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/characters")
	group.Get("/:date", h.HandleGetCharacters)
}

// HandleGetCharacters returns the enriched characters of a processing date.
func (h *Handler) HandleGetCharacters(c *fiber.Ctx) error {
	date := c.Params("date")
	l := logger.WithRayID(h.service.logger, c)

	if err := utils.ValidateDate(date); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	rows, err := h.service.Rows(c.UserContext(), date)
	if err != nil {
		l.Error("Character read failed", zap.String("date", date), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if len(rows) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "no characters for " + date,
		})
	}

	return c.JSON(fiber.Map{
		"date":  date,
		"count": len(rows),
		"rows":  rows,
	})
}
