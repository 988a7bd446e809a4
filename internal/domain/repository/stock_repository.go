package repository

import (
	"context"

	"github.com/jhoicas/mineria-admin/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// StockRepository define el puerto del libro de stock por (material, almacén).
// Se usa dentro de transacciones para garantizar consistencia.
type StockRepository interface {
	// Get devuelve la fila o nil si no existe.
	Get(ctx context.Context, materialID, almacenID string) (*entity.StockMaterial, error)
	// GetForUpdate igual que Get pero bloquea la fila (SELECT ... FOR UPDATE).
	GetForUpdate(ctx context.Context, materialID, almacenID string) (*entity.StockMaterial, error)
	// Increment suma cantidad a la fila, creándola si no existe.
	Increment(ctx context.Context, materialID, almacenID string, cantidad decimal.Decimal) error
	// SetCantidad fija la cantidad de una fila existente.
	SetCantidad(ctx context.Context, materialID, almacenID string, cantidad decimal.Decimal) error
	// TotalByMaterial suma el stock del material en todos los almacenes.
	TotalByMaterial(ctx context.Context, materialID string) (decimal.Decimal, error)
	ListByMaterial(ctx context.Context, materialID string) ([]*entity.StockMaterial, error)
	CountByAlmacen(ctx context.Context, almacenID string) (int, error)
	DeleteByMaterial(ctx context.Context, materialID string) error
}
