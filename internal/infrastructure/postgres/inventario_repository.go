package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/mineria-admin/internal/domain/entity"
	"github.com/jhoicas/mineria-admin/internal/domain/repository"
)

var _ repository.InventarioRepository = (*InventarioRepo)(nil)

// InventarioRepo consultas de solo lectura para reportes, alertas y dashboard.
type InventarioRepo struct {
	q Querier
}

// NewInventarioRepository construye el adaptador. Se usa siempre con el pool.
func NewInventarioRepository(q Querier) *InventarioRepo {
	return &InventarioRepo{q: q}
}

// ListNiveles devuelve una fila por material con su stock total y el desglose por almacén.
// Con AlmacenID solo aparecen materiales con fila de stock en ese almacén y el desglose se limita a él;
// StockTotal y Precio siguen siendo globales.
func (r *InventarioRepo) ListNiveles(ctx context.Context, filtro repository.InventarioFiltro) ([]entity.NivelInventario, error) {
	var (
		conds []string
		args  []any
	)
	if filtro.CategoriaID != "" {
		args = append(args, filtro.CategoriaID)
		conds = append(conds, fmt.Sprintf("m.categoria_id = $%d", len(args)))
	}
	if filtro.SoloActivos {
		conds = append(conds, "m.estado = 'activo'")
	}
	if filtro.AlmacenID != "" {
		args = append(args, filtro.AlmacenID)
		conds = append(conds, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM stock_materiales s WHERE s.material_id = m.id AND s.almacen_id = $%d)", len(args)))
	}

	query := `
		SELECT m.id, m.codigo, m.nombre, COALESCE(c.nombre, ''), m.unidad_medida, m.estado, m.stock_minimo,
			COALESCE((SELECT SUM(s.cantidad) FROM stock_materiales s WHERE s.material_id = m.id), 0),
			m.precio
		FROM materiales m
		LEFT JOIN categorias c ON c.id = m.categoria_id`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY m.nombre`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list niveles: %w", err)
	}
	defer rows.Close()

	var niveles []entity.NivelInventario
	pos := make(map[string]int)
	for rows.Next() {
		var n entity.NivelInventario
		if err := rows.Scan(&n.MaterialID, &n.Codigo, &n.Nombre, &n.Categoria, &n.UnidadMedida, &n.Estado,
			&n.StockMinimo, &n.StockTotal, &n.Precio); err != nil {
			return nil, fmt.Errorf("scan nivel: %w", err)
		}
		pos[n.MaterialID] = len(niveles)
		niveles = append(niveles, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list niveles: %w", err)
	}
	if len(niveles) == 0 {
		return niveles, nil
	}

	if err := r.desglose(ctx, filtro.AlmacenID, niveles, pos); err != nil {
		return nil, err
	}
	return niveles, nil
}

// desglose completa PorAlmacen de cada nivel.
func (r *InventarioRepo) desglose(ctx context.Context, almacenID string, niveles []entity.NivelInventario, pos map[string]int) error {
	query := `
		SELECT s.material_id, s.almacen_id, a.nombre, s.cantidad
		FROM stock_materiales s JOIN almacenes a ON a.id = s.almacen_id`
	var args []any
	if almacenID != "" {
		query += ` WHERE s.almacen_id = $1`
		args = append(args, almacenID)
	}
	query += ` ORDER BY a.nombre`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("desglose stock: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			materialID string
			s          entity.StockPorAlmacen
		)
		if err := rows.Scan(&materialID, &s.AlmacenID, &s.Almacen, &s.Cantidad); err != nil {
			return fmt.Errorf("scan desglose: %w", err)
		}
		if i, ok := pos[materialID]; ok {
			niveles[i].PorAlmacen = append(niveles[i].PorAlmacen, s)
		}
	}
	return rows.Err()
}

// Resumen calcula los indicadores del dashboard en una sola consulta.
// Los movimientos se cuentan por fecha del documento dentro de [desde, hasta].
func (r *InventarioRepo) Resumen(ctx context.Context, desde, hasta time.Time) (*repository.ResumenInventario, error) {
	query := `
		WITH totales AS (
			SELECT m.id, m.stock_minimo, m.estado,
				COALESCE((SELECT SUM(s.cantidad) FROM stock_materiales s WHERE s.material_id = m.id), 0) AS stock
			FROM materiales m
		)
		SELECT
			(SELECT COUNT(*) FROM materiales WHERE estado = 'activo'),
			(SELECT COALESCE(SUM(precio), 0) FROM materiales),
			(SELECT COUNT(*) FROM totales WHERE estado = 'activo' AND stock_minimo > 0 AND stock < stock_minimo),
			(SELECT COUNT(*) FROM ingresos WHERE fecha BETWEEN $1 AND $2),
			(SELECT COUNT(*) FROM salidas WHERE fecha BETWEEN $1 AND $2),
			(SELECT COUNT(*) FROM entregas_epp WHERE fecha BETWEEN $1 AND $2)`
	var res repository.ResumenInventario
	err := r.q.QueryRow(ctx, query, desde, hasta).Scan(
		&res.MaterialesActivos, &res.ValorTotal, &res.BajoMinimo,
		&res.IngresosPeriodo, &res.SalidasPeriodo, &res.EntregasPeriodo,
	)
	if err != nil {
		return nil, fmt.Errorf("resumen inventario: %w", err)
	}
	return &res, nil
}
