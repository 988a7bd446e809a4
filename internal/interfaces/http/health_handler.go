package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Pinger dependencia cuyo estado se reporta en /health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler responde el estado de la base de datos y de la caché.
type HealthHandler struct {
	db    Pinger
	cache Pinger // nil si Redis no está configurado
}

// NewHealthHandler construye el handler.
func NewHealthHandler(db, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

// Health godoc
// @Summary      Estado del servicio
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	status := fiber.Map{"status": "ok", "database": "ok"}
	code := fiber.StatusOK
	if err := h.db.Ping(ctx); err != nil {
		status["status"], status["database"] = "degraded", "down"
		code = fiber.StatusServiceUnavailable
	}
	if h.cache != nil {
		status["cache"] = "ok"
		// la caché es opcional: su caída no marca el servicio como no disponible
		if err := h.cache.Ping(ctx); err != nil {
			status["cache"] = "down"
		}
	}
	return c.Status(code).JSON(status)
}
