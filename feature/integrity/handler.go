package integrity

import (
	"pvp-pipeline/core/logger"
	"pvp-pipeline/core/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/staging", h.HandleStagingCheck)
	group.Get("/warehouse", h.HandleWarehouseCheck)
	group.Get("/landing/:date", h.HandleLandingCheck)
}

// HandleIntegrityCheck runs the schema checks, plus the landing check when
// a date query parameter is given.
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	report := make(map[string]any)

	if r, err := h.service.CheckStaging(); err != nil {
		report["staging"] = fiber.Map{"status": "error", "error": err.Error()}
	} else {
		report["staging"] = r
	}

	if r, err := h.service.CheckWarehouse(); err != nil {
		report["warehouse"] = fiber.Map{"status": "error", "error": err.Error()}
	} else {
		report["warehouse"] = r
	}

	if date := c.Query("date"); date != "" {
		if missing, err := h.service.CheckLanding(c.UserContext(), date); err != nil {
			report["landing"] = fiber.Map{"status": "error", "error": err.Error()}
		} else {
			report["landing"] = fiber.Map{"status": "ok", "date": date, "missing": missing}
		}
	}

	return c.JSON(report)
}

// HandleStagingCheck checks the staging schema.
func (h *Handler) HandleStagingCheck(c *fiber.Ctx) error {
	report, err := h.service.CheckStaging()
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Staging schema check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}

// HandleWarehouseCheck checks the warehouse schema.
func (h *Handler) HandleWarehouseCheck(c *fiber.Ctx) error {
	report, err := h.service.CheckWarehouse()
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Warehouse schema check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}

// HandleLandingCheck lists the landing objects missing for a date.
func (h *Handler) HandleLandingCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	date := c.Params("date")
	if err := utils.ValidateDate(date); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	missing, err := h.service.CheckLanding(c.UserContext(), date)
	if err != nil {
		l.Error("Landing check failed", zap.String("date", date), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if len(missing) > 0 {
		l.Warn("Missing landing objects detected", zap.String("date", date), zap.Strings("missing", missing))
	}

	return c.JSON(fiber.Map{
		"status":  "checked",
		"date":    date,
		"missing": missing,
	})
}
