package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/mineria-admin/internal/application/inventory"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

const (
	defaultTxMaxWait = 10 * time.Second
	defaultTxTimeout = 20 * time.Second
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL (READ COMMITTED).
// La espera por una conexión libre y la duración de la transacción tienen límites propios.
type TxRunner struct {
	pool    *pgxpool.Pool
	maxWait time.Duration
	timeout time.Duration
}

// NewTxRunner construye el runner. Valores <= 0 usan 10s de espera y 20s de transacción.
func NewTxRunner(pool *pgxpool.Pool, maxWait, timeout time.Duration) *TxRunner {
	if maxWait <= 0 {
		maxWait = defaultTxMaxWait
	}
	if timeout <= 0 {
		timeout = defaultTxTimeout
	}
	return &TxRunner{pool: pool, maxWait: maxWait, timeout: timeout}
}

// Run toma una conexión, inicia la transacción, ejecuta fn con repos atados a la tx
// y hace Commit. Cualquier error (incluido el vencimiento del plazo) deja la tx en Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(ctx context.Context, repos inventory.TxRepos) error) error {
	acquireCtx, cancelAcquire := context.WithTimeout(ctx, r.maxWait)
	conn, err := r.pool.Acquire(acquireCtx)
	cancelAcquire()
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	txCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	tx, err := conn.Begin(txCtx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	// txCtx puede estar vencido; el rollback necesita su propio contexto.
	defer func() { _ = tx.Rollback(context.Background()) }()

	repos := inventory.TxRepos{
		Materiales:  NewMaterialRepository(tx),
		Stock:       NewStockRepository(tx),
		Movimientos: NewMovimientoRepository(tx),
	}
	if err := fn(txCtx, repos); err != nil {
		return err
	}
	if err := tx.Commit(txCtx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
