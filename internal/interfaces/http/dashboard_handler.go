package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/mineria-admin/internal/application/analytics"
)

// DashboardHandler maneja el tablero de inicio.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve los indicadores del inventario y los movimientos del mes en curso.
// GET /api/dashboard
//
// No requiere parámetros; el periodo se calcula en el servidor. El resultado
// se sirve desde Redis cuando hay caché configurada.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext(), GetPrincipal(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}
