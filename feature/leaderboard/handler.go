package leaderboard

import (
	"pvp-pipeline/core/logger"
	"pvp-pipeline/core/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for curated leaderboards.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the leaderboard routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/leaderboard")
	group.Get("/:date", h.HandleGetLeaderboard)
}

// HandleGetLeaderboard returns the curated leaderboard of a processing date,
// optionally filtered by the bracket query parameter.
func (h *Handler) HandleGetLeaderboard(c *fiber.Ctx) error {
	date := c.Params("date")
	bracket := c.Query("bracket")
	l := logger.WithRayID(h.service.logger, c)

	if err := utils.ValidateDate(date); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	rows, err := h.service.Rows(c.UserContext(), date, bracket)
	if err != nil {
		l.Error("Leaderboard read failed", zap.String("date", date), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"date":    date,
		"bracket": bracket,
		"count":   len(rows),
		"rows":    rows,
	})
}
