package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/mineria-admin/internal/domain"
	"github.com/jhoicas/mineria-admin/internal/domain/entity"
	"github.com/jhoicas/mineria-admin/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

func (r *StockRepo) get(ctx context.Context, op, query, materialID, almacenID string) (*entity.StockMaterial, error) {
	var s entity.StockMaterial
	err := r.q.QueryRow(ctx, query, materialID, almacenID).Scan(&s.MaterialID, &s.AlmacenID, &s.Cantidad, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &s, nil
}

// Get obtiene el stock de un material en un almacén; (nil, nil) si nunca tuvo movimientos ahí.
func (r *StockRepo) Get(ctx context.Context, materialID, almacenID string) (*entity.StockMaterial, error) {
	return r.get(ctx, "get stock", `
		SELECT material_id, almacen_id, cantidad, updated_at
		FROM stock_materiales WHERE material_id = $1 AND almacen_id = $2`, materialID, almacenID)
}

// GetForUpdate obtiene el stock y bloquea la fila para update (SELECT FOR UPDATE).
func (r *StockRepo) GetForUpdate(ctx context.Context, materialID, almacenID string) (*entity.StockMaterial, error) {
	return r.get(ctx, "get stock for update", `
		SELECT material_id, almacen_id, cantidad, updated_at
		FROM stock_materiales WHERE material_id = $1 AND almacen_id = $2
		FOR UPDATE`, materialID, almacenID)
}

// Increment suma cantidad en una sola sentencia: crea la fila o suma sobre la existente.
func (r *StockRepo) Increment(ctx context.Context, materialID, almacenID string, cantidad decimal.Decimal) error {
	query := `
		INSERT INTO stock_materiales (material_id, almacen_id, cantidad, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (material_id, almacen_id)
		DO UPDATE SET cantidad = stock_materiales.cantidad + EXCLUDED.cantidad, updated_at = now()`
	if _, err := r.q.Exec(ctx, query, materialID, almacenID, cantidad); err != nil {
		return mapError("increment stock", err)
	}
	return nil
}

// SetCantidad fija la cantidad de una fila existente. El CHECK de la tabla rechaza valores negativos.
func (r *StockRepo) SetCantidad(ctx context.Context, materialID, almacenID string, cantidad decimal.Decimal) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE stock_materiales SET cantidad = $3, updated_at = now() WHERE material_id = $1 AND almacen_id = $2`,
		materialID, almacenID, cantidad,
	)
	if err != nil {
		return mapError("set stock", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("stock %s/%s: %w", materialID, almacenID, domain.ErrNotFound)
	}
	return nil
}

// TotalByMaterial suma el stock del material en todos los almacenes.
func (r *StockRepo) TotalByMaterial(ctx context.Context, materialID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(cantidad), 0) FROM stock_materiales WHERE material_id = $1`, materialID,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("total stock: %w", err)
	}
	return total, nil
}

// ListByMaterial devuelve las filas de stock del material, una por almacén.
func (r *StockRepo) ListByMaterial(ctx context.Context, materialID string) ([]*entity.StockMaterial, error) {
	rows, err := r.q.Query(ctx, `
		SELECT s.material_id, s.almacen_id, s.cantidad, s.updated_at
		FROM stock_materiales s JOIN almacenes a ON a.id = s.almacen_id
		WHERE s.material_id = $1 ORDER BY a.nombre`, materialID)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMaterial
	for rows.Next() {
		var s entity.StockMaterial
		if err := rows.Scan(&s.MaterialID, &s.AlmacenID, &s.Cantidad, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// CountByAlmacen cuenta filas de stock del almacén (incluidas las que quedaron en 0).
func (r *StockRepo) CountByAlmacen(ctx context.Context, almacenID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM stock_materiales WHERE almacen_id = $1`, almacenID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count stock by almacen: %w", err)
	}
	return n, nil
}

// DeleteByMaterial borra todas las filas de stock del material.
func (r *StockRepo) DeleteByMaterial(ctx context.Context, materialID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM stock_materiales WHERE material_id = $1`, materialID); err != nil {
		return fmt.Errorf("delete stock by material: %w", err)
	}
	return nil
}
