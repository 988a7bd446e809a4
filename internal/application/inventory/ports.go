package inventory

import (
	"context"

	"github.com/jhoicas/mineria-admin/internal/domain/repository"
)

// TxRepos agrupa los repositorios atados a una misma transacción de BD.
type TxRepos struct {
	Materiales  repository.MaterialRepository
	Stock       repository.StockRepository
	Movimientos repository.MovimientoRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Commit si fn devuelve nil; Rollback ante cualquier error. No reintenta.
type TxRunner interface {
	Run(ctx context.Context, fn func(ctx context.Context, repos TxRepos) error) error
}

// DashboardInvalidator descarta el resumen cacheado del dashboard después de un movimiento confirmado.
type DashboardInvalidator interface {
	InvalidateDashboard(ctx context.Context) error
}
