package repository

import (
	"context"
	"time"

	"github.com/jhoicas/mineria-admin/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// InventarioFiltro criterios del reporte de inventario.
type InventarioFiltro struct {
	AlmacenID   string // vacío = todos los almacenes
	CategoriaID string
	SoloActivos bool
}

// ResumenInventario datos crudos para el dashboard.
type ResumenInventario struct {
	MaterialesActivos int
	ValorTotal        decimal.Decimal // suma de materiales.precio
	BajoMinimo        int
	IngresosPeriodo   int
	SalidasPeriodo    int
	EntregasPeriodo   int
}

// InventarioRepository consultas de solo lectura sobre stock y valorización.
// Los lectores asumen que materiales.precio es la valorización total del stock.
type InventarioRepository interface {
	ListNiveles(ctx context.Context, filtro InventarioFiltro) ([]entity.NivelInventario, error)
	Resumen(ctx context.Context, desde, hasta time.Time) (*ResumenInventario, error)
}
