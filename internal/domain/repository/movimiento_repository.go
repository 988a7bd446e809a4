package repository

import (
	"context"
	"time"

	"github.com/jhoicas/mineria-admin/internal/domain/entity"
)

// MovimientoFiltro criterios de listado de movimientos.
type MovimientoFiltro struct {
	AlmacenID string
	Desde     *time.Time
	Hasta     *time.Time
	Limit     int
	Offset    int
}

// MovimientoRepository define el puerto de persistencia de ingresos, salidas y entregas de EPP.
// Los Create* insertan cabecera y detalles; no existen métodos de actualización.
type MovimientoRepository interface {
	CreateIngreso(ctx context.Context, ingreso *entity.Ingreso) error
	CreateSalida(ctx context.Context, salida *entity.Salida) error
	CreateEntregaEPP(ctx context.Context, entrega *entity.EntregaEPP) error

	GetIngreso(ctx context.Context, id string) (*entity.Ingreso, error)
	GetSalida(ctx context.Context, id string) (*entity.Salida, error)
	GetEntregaEPP(ctx context.Context, id string) (*entity.EntregaEPP, error)

	ListIngresos(ctx context.Context, filtro MovimientoFiltro) ([]*entity.Ingreso, error)
	ListSalidas(ctx context.Context, filtro MovimientoFiltro) ([]*entity.Salida, error)
	ListEntregasEPP(ctx context.Context, filtro MovimientoFiltro) ([]*entity.EntregaEPP, error)

	// CountByAlmacen cuenta cabeceras (de los tres tipos) que referencian al almacén.
	CountByAlmacen(ctx context.Context, almacenID string) (int, error)
	// DeleteDetallesByMaterial borra las líneas históricas del material en los tres tipos.
	DeleteDetallesByMaterial(ctx context.Context, materialID string) error
}
