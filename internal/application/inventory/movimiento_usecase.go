package inventory

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/mineria-admin/internal/domain"
	"github.com/jhoicas/mineria-admin/internal/domain/entity"
	"github.com/jhoicas/mineria-admin/internal/domain/repository"
	"github.com/jhoicas/mineria-admin/pkg/logger"
)

// Rutas de página que protegen cada tipo de movimiento.
const (
	RutaIngresos = "/almacen/ingresos"
	RutaSalidas  = "/almacen/salidas"
)

// MovimientoUseCase registra ingresos, salidas y entregas de EPP. Cada registro es una
// transacción: cabecera, detalles, stock y valorización se confirman juntos o nada.
// Las filas de material y stock se bloquean (SELECT ... FOR UPDATE) en orden ascendente
// de material_id para que dos movimientos concurrentes no pierdan actualizaciones.
type MovimientoUseCase struct {
	txRunner       TxRunner
	movRepo        repository.MovimientoRepository
	almacenRepo    repository.AlmacenRepository
	proveedorRepo  repository.ProveedorRepository
	areaRepo       repository.AreaRepository
	trabajadorRepo repository.TrabajadorRepository
	cache          DashboardInvalidator
	log            *logger.Logger
	now            func() time.Time
}

// NewMovimientoUseCase construye el caso de uso. cache puede ser nil (sin caché de dashboard).
func NewMovimientoUseCase(
	txRunner TxRunner,
	movRepo repository.MovimientoRepository,
	almacenRepo repository.AlmacenRepository,
	proveedorRepo repository.ProveedorRepository,
	areaRepo repository.AreaRepository,
	trabajadorRepo repository.TrabajadorRepository,
	cache DashboardInvalidator,
	log *logger.Logger,
) *MovimientoUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &MovimientoUseCase{
		txRunner:       txRunner,
		movRepo:        movRepo,
		almacenRepo:    almacenRepo,
		proveedorRepo:  proveedorRepo,
		areaRepo:       areaRepo,
		trabajadorRepo: trabajadorRepo,
		cache:          cache,
		log:            log.Named("movimientos"),
		now:            time.Now,
	}
}

func (uc *MovimientoUseCase) validarAlmacen(ctx context.Context, almacenID string) error {
	alm, err := uc.almacenRepo.GetByID(ctx, almacenID)
	if err != nil {
		return fmt.Errorf("get almacen: %w", err)
	}
	if alm == nil {
		return domain.NewValidationError("almacen_id", "El almacén no existe")
	}
	return nil
}

func (uc *MovimientoUseCase) invalidarDashboard(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.InvalidateDashboard(ctx); err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo invalidar el dashboard")
	}
}

// descontarStock bloquea material y fila de stock, verifica disponibilidad y resta la cantidad.
// Devuelve el material leído bajo bloqueo (con su valorización vigente).
func descontarStock(ctx context.Context, r TxRepos, materialID, almacenID string, cantidad decimal.Decimal) (*entity.Material, error) {
	mat, err := r.Materiales.GetForUpdate(ctx, materialID)
	if err != nil {
		return nil, err
	}
	if mat == nil {
		return nil, fmt.Errorf("material %s: %w", materialID, domain.ErrNotFound)
	}
	st, err := r.Stock.GetForUpdate(ctx, materialID, almacenID)
	if err != nil {
		return nil, err
	}
	disponible := decimal.Zero
	if st != nil {
		disponible = st.Cantidad
	}
	if st == nil || disponible.LessThan(cantidad) {
		return nil, &domain.InsufficientStockError{
			MaterialID: mat.ID,
			Material:   mat.Nombre,
			Disponible: disponible,
			Solicitado: cantidad,
		}
	}
	if err := r.Stock.SetCantidad(ctx, materialID, almacenID, disponible.Sub(cantidad)); err != nil {
		return nil, err
	}
	return mat, nil
}

// ordenarPorMaterial devuelve una copia de las líneas ordenada por material_id (orden de bloqueo).
func ordenarPorMaterial[T any](lineas []T, materialID func(T) string) []T {
	out := slices.Clone(lineas)
	slices.SortStableFunc(out, func(a, b T) int {
		return strings.Compare(materialID(a), materialID(b))
	})
	return out
}

func validarCantidad(i int, materialID string, cantidad decimal.Decimal) error {
	if materialID == "" {
		return domain.NewValidationError(fmt.Sprintf("lineas[%d].material_id", i), "El material es obligatorio")
	}
	if !cantidad.IsPositive() {
		return domain.NewValidationError(fmt.Sprintf("lineas[%d].cantidad", i), "La cantidad debe ser mayor a 0")
	}
	if excedeDecimales(cantidad) {
		return domain.NewValidationError(fmt.Sprintf("lineas[%d].cantidad", i),
			fmt.Sprintf("La cantidad admite hasta %d decimales", decimalesCantidad))
	}
	return nil
}

// decimalesCantidad es la escala de las columnas NUMERIC(14,4) de stock y detalles.
const decimalesCantidad = 4

// excedeDecimales indica si d perdería precisión al guardarse con escala decimalesCantidad.
// "1.50000" es válido; "0.00001" no.
func excedeDecimales(d decimal.Decimal) bool {
	return !d.Equal(d.Truncate(decimalesCantidad))
}

func fechaOAhora(fecha, now time.Time) time.Time {
	if fecha.IsZero() {
		return now
	}
	return fecha
}

func normalizarFiltro(f repository.MovimientoFiltro) repository.MovimientoFiltro {
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}
