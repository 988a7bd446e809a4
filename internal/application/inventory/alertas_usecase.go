package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/mineria-admin/internal/application/dto"
	"github.com/jhoicas/mineria-admin/internal/domain"
	"github.com/jhoicas/mineria-admin/internal/domain/access"
	valuation "github.com/jhoicas/mineria-admin/internal/domain/inventory"
	"github.com/jhoicas/mineria-admin/internal/domain/repository"
)

// factorStockIdeal stock objetivo al reponer, relativo al stock mínimo.
var factorStockIdeal = decimal.NewFromFloat(1.5)

// AlertaStockUseCase lista los materiales activos cuyo stock total (todos los almacenes)
// está por debajo del stock mínimo, con la cantidad sugerida de compra.
type AlertaStockUseCase struct {
	invRepo repository.InventarioRepository
}

// NewAlertaStockUseCase construye el caso de uso de alertas de stock.
func NewAlertaStockUseCase(invRepo repository.InventarioRepository) *AlertaStockUseCase {
	return &AlertaStockUseCase{invRepo: invRepo}
}

// Generar devuelve las alertas ordenadas por urgencia: primero el mayor déficit relativo
// al mínimo, luego el mayor déficit absoluto. categoriaID vacío = todas las categorías.
func (uc *AlertaStockUseCase) Generar(ctx context.Context, p access.Principal, categoriaID string) ([]dto.AlertaStockDTO, error) {
	if !p.HasAccess(access.RutaReportes) {
		return nil, domain.ErrForbidden
	}

	niveles, err := uc.invRepo.ListNiveles(ctx, repository.InventarioFiltro{CategoriaID: categoriaID, SoloActivos: true})
	if err != nil {
		return nil, err
	}

	alertas := make([]dto.AlertaStockDTO, 0)
	for _, n := range niveles {
		if !n.BajoMinimo() {
			continue
		}
		ideal := n.StockMinimo.Mul(factorStockIdeal)
		sugerida := ideal.Sub(n.StockTotal)
		if sugerida.IsNegative() {
			sugerida = decimal.Zero
		}
		alertas = append(alertas, dto.AlertaStockDTO{
			MaterialID:       n.MaterialID,
			Codigo:           n.Codigo,
			Nombre:           n.Nombre,
			UnidadMedida:     n.UnidadMedida,
			StockActual:      n.StockTotal,
			StockMinimo:      n.StockMinimo,
			StockIdeal:       ideal,
			CantidadSugerida: sugerida,
			CostoUnitario:    valuation.InferUnitCost(n.Precio, n.StockTotal).Round(2),
		})
	}

	sort.SliceStable(alertas, func(i, j int) bool {
		a, b := alertas[i], alertas[j]
		ra := a.StockMinimo.Sub(a.StockActual).Div(a.StockMinimo)
		rb := b.StockMinimo.Sub(b.StockActual).Div(b.StockMinimo)
		if !ra.Equal(rb) {
			return ra.GreaterThan(rb)
		}
		return a.StockMinimo.Sub(a.StockActual).GreaterThan(b.StockMinimo.Sub(b.StockActual))
	})
	for i := range alertas {
		alertas[i].Prioridad = i + 1
	}
	return alertas, nil
}
