package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/camstock-api/internal/application/dto"
)

// Pinger comprueba una dependencia (PostgreSQL).
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler expone el estado del servicio.
type HealthHandler struct {
	service string
	db      Pinger
}

// NewHealthHandler construye el handler. db puede ser nil.
func NewHealthHandler(service string, db Pinger) *HealthHandler {
	return &HealthHandler{service: service, db: db}
}

// Health godoc
// @Summary      Estado del servicio
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	if h.db != nil {
		if err := h.db.Ping(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "degraded", "service": h.service, "database": err.Error(),
			})
		}
	}
	return c.JSON(fiber.Map{"status": "ok", "service": h.service})
}

// Root mensaje de bienvenida.
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(dto.OK("server is running", nil))
}
