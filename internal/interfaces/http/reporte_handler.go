package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/mineria-admin/internal/application/dto"
	"github.com/jhoicas/mineria-admin/internal/application/inventory"
	"github.com/jhoicas/mineria-admin/internal/application/reporte"
	"github.com/jhoicas/mineria-admin/internal/domain/repository"
)

// ReporteHandler maneja el reporte de inventario y las alertas de stock.
type ReporteHandler struct {
	reportes *reporte.ReporteUseCase
	alertas  *inventory.AlertaStockUseCase
}

// NewReporteHandler construye el handler.
func NewReporteHandler(reportes *reporte.ReporteUseCase, alertas *inventory.AlertaStockUseCase) *ReporteHandler {
	return &ReporteHandler{reportes: reportes, alertas: alertas}
}

// Inventario godoc
// @Summary      Reporte de inventario
// @Description  Stock total y por almacén de cada material con su valorización.
// @Description  Con formato=xlsx o formato=pdf devuelve el archivo para descarga.
// @Tags         reportes
// @Security     Bearer
// @Produce      json,application/pdf,application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        almacen_id    query  string  false  "Almacén"
// @Param        categoria_id  query  string  false  "Categoría"
// @Param        solo_activos  query  bool    false  "Solo materiales activos"
// @Param        formato       query  string  false  "json | xlsx | pdf"
// @Success      200  {object}  dto.ReporteInventarioDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reportes/inventario [get]
func (h *ReporteHandler) Inventario(c *fiber.Ctx) error {
	var q dto.InventarioQuery
	if ok, err := bindQuery(c, &q); !ok {
		return err
	}
	filtro := repository.InventarioFiltro{AlmacenID: q.AlmacenID, CategoriaID: q.CategoriaID, SoloActivos: q.SoloActivos}

	if q.Formato == "" || strings.EqualFold(q.Formato, "json") {
		rep, err := h.reportes.Inventario(c.UserContext(), GetPrincipal(c), filtro)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(reporte.ToReporteDTO(rep))
	}

	archivo, err := h.reportes.ExportarInventario(c.UserContext(), GetPrincipal(c), filtro, q.Formato)
	if err != nil {
		return writeError(c, err)
	}
	return sendArchivo(c, archivo)
}

// AlertasStock godoc
// @Summary      Materiales por debajo del stock mínimo
// @Tags         reportes
// @Security     Bearer
// @Produce      json
// @Param        categoria_id  query  string  false  "Categoría"
// @Success      200  {array}  dto.AlertaStockDTO
// @Router       /api/reportes/alertas-stock [get]
func (h *ReporteHandler) AlertasStock(c *fiber.Ctx) error {
	alertas, err := h.alertas.Generar(c.UserContext(), GetPrincipal(c), c.Query("categoria_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(alertas)
}
