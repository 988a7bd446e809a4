package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/mineria-admin/internal/domain/entity"
	"github.com/jhoicas/mineria-admin/internal/domain/repository"
)

var _ repository.MovimientoRepository = (*MovimientoRepo)(nil)

// MovimientoRepo persiste ingresos, salidas y entregas de EPP (cabecera + detalles).
// Se usa con tx para escribir y con pool para el historial.
type MovimientoRepo struct {
	q Querier
}

// NewMovimientoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovimientoRepository(q Querier) *MovimientoRepo {
	return &MovimientoRepo{q: q}
}

// CreateIngreso inserta la cabecera y luego sus líneas.
func (r *MovimientoRepo) CreateIngreso(ctx context.Context, ing *entity.Ingreso) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO ingresos (id, fecha, usuario_id, almacen_id, proveedor_id, numero_documento, observaciones, comprobante_url, created_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, '')::uuid, $6, $7, $8, $9)`,
		ing.ID, ing.Fecha, ing.UsuarioID, ing.AlmacenID, ing.ProveedorID,
		ing.NumeroDocumento, ing.Observaciones, ing.ComprobanteURL, ing.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ingreso: %w", err)
	}
	for _, d := range ing.Detalles {
		_, err := r.q.Exec(ctx, `
			INSERT INTO detalle_ingresos (id, ingreso_id, material_id, cantidad, precio_unitario)
			VALUES ($1, $2, $3, $4, $5)`,
			d.ID, ing.ID, d.MaterialID, d.Cantidad, d.PrecioUnitario,
		)
		if err != nil {
			return fmt.Errorf("insert detalle ingreso: %w", err)
		}
	}
	return nil
}

// CreateSalida inserta la cabecera y luego sus líneas.
func (r *MovimientoRepo) CreateSalida(ctx context.Context, sal *entity.Salida) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO salidas (id, fecha, usuario_id, almacen_id, area_id, solicitante, observaciones, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		sal.ID, sal.Fecha, sal.UsuarioID, sal.AlmacenID, sal.AreaID, sal.Solicitante, sal.Observaciones, sal.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert salida: %w", err)
	}
	for _, d := range sal.Detalles {
		_, err := r.q.Exec(ctx,
			`INSERT INTO detalle_salidas (id, salida_id, material_id, cantidad) VALUES ($1, $2, $3, $4)`,
			d.ID, sal.ID, d.MaterialID, d.Cantidad,
		)
		if err != nil {
			return fmt.Errorf("insert detalle salida: %w", err)
		}
	}
	return nil
}

// CreateEntregaEPP inserta la cabecera y luego sus líneas. Talla vacía se guarda como NULL.
func (r *MovimientoRepo) CreateEntregaEPP(ctx context.Context, e *entity.EntregaEPP) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO entregas_epp (id, fecha, usuario_id, almacen_id, trabajador_id, observaciones, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.ID, e.Fecha, e.UsuarioID, e.AlmacenID, e.TrabajadorID, e.Observaciones, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert entrega epp: %w", err)
	}
	for _, d := range e.Detalles {
		_, err := r.q.Exec(ctx, `
			INSERT INTO detalle_entregas_epp (id, entrega_id, material_id, cantidad, talla)
			VALUES ($1, $2, $3, $4, NULLIF($5, ''))`,
			d.ID, e.ID, d.MaterialID, d.Cantidad, d.Talla,
		)
		if err != nil {
			return fmt.Errorf("insert detalle entrega epp: %w", err)
		}
	}
	return nil
}

const (
	ingresoColumns = `id, fecha, usuario_id, almacen_id, COALESCE(proveedor_id::text, ''), numero_documento,
		observaciones, comprobante_url, created_at`
	salidaColumns  = `id, fecha, usuario_id, almacen_id, area_id, solicitante, observaciones, created_at`
	entregaColumns = `id, fecha, usuario_id, almacen_id, trabajador_id, observaciones, created_at`
)

func scanIngreso(row pgx.Row) (*entity.Ingreso, error) {
	var i entity.Ingreso
	err := row.Scan(&i.ID, &i.Fecha, &i.UsuarioID, &i.AlmacenID, &i.ProveedorID, &i.NumeroDocumento,
		&i.Observaciones, &i.ComprobanteURL, &i.CreatedAt)
	return &i, err
}

func scanSalida(row pgx.Row) (*entity.Salida, error) {
	var s entity.Salida
	err := row.Scan(&s.ID, &s.Fecha, &s.UsuarioID, &s.AlmacenID, &s.AreaID, &s.Solicitante, &s.Observaciones, &s.CreatedAt)
	return &s, err
}

func scanEntrega(row pgx.Row) (*entity.EntregaEPP, error) {
	var e entity.EntregaEPP
	err := row.Scan(&e.ID, &e.Fecha, &e.UsuarioID, &e.AlmacenID, &e.TrabajadorID, &e.Observaciones, &e.CreatedAt)
	return &e, err
}

// GetIngreso obtiene un ingreso con sus detalles; (nil, nil) si no existe.
func (r *MovimientoRepo) GetIngreso(ctx context.Context, id string) (*entity.Ingreso, error) {
	ing, err := scanIngreso(r.q.QueryRow(ctx, `SELECT `+ingresoColumns+` FROM ingresos WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ingreso: %w", err)
	}
	det, err := r.detallesIngreso(ctx, []string{ing.ID})
	if err != nil {
		return nil, err
	}
	ing.Detalles = det[ing.ID]
	return ing, nil
}

// GetSalida obtiene una salida con sus detalles; (nil, nil) si no existe.
func (r *MovimientoRepo) GetSalida(ctx context.Context, id string) (*entity.Salida, error) {
	sal, err := scanSalida(r.q.QueryRow(ctx, `SELECT `+salidaColumns+` FROM salidas WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get salida: %w", err)
	}
	det, err := r.detallesSalida(ctx, []string{sal.ID})
	if err != nil {
		return nil, err
	}
	sal.Detalles = det[sal.ID]
	return sal, nil
}

// GetEntregaEPP obtiene una entrega con sus detalles; (nil, nil) si no existe.
func (r *MovimientoRepo) GetEntregaEPP(ctx context.Context, id string) (*entity.EntregaEPP, error) {
	e, err := scanEntrega(r.q.QueryRow(ctx, `SELECT `+entregaColumns+` FROM entregas_epp WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get entrega epp: %w", err)
	}
	det, err := r.detallesEntrega(ctx, []string{e.ID})
	if err != nil {
		return nil, err
	}
	e.Detalles = det[e.ID]
	return e, nil
}

// listQuery arma el SELECT paginado de cabeceras, más recientes primero.
func listQuery(columns, table string, f repository.MovimientoFiltro) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if f.AlmacenID != "" {
		args = append(args, f.AlmacenID)
		conds = append(conds, fmt.Sprintf("almacen_id = $%d", len(args)))
	}
	if f.Desde != nil {
		args = append(args, *f.Desde)
		conds = append(conds, fmt.Sprintf("fecha >= $%d", len(args)))
	}
	if f.Hasta != nil {
		args = append(args, *f.Hasta)
		conds = append(conds, fmt.Sprintf("fecha <= $%d", len(args)))
	}
	query := `SELECT ` + columns + ` FROM ` + table
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	args = append(args, f.Limit, f.Offset)
	query += fmt.Sprintf(` ORDER BY fecha DESC, created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	return query, args
}

// ListIngresos lista ingresos con sus detalles.
func (r *MovimientoRepo) ListIngresos(ctx context.Context, filtro repository.MovimientoFiltro) ([]*entity.Ingreso, error) {
	query, args := listQuery(ingresoColumns, "ingresos", filtro)
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ingresos: %w", err)
	}
	defer rows.Close()
	var (
		list []*entity.Ingreso
		ids  []string
	)
	for rows.Next() {
		ing, err := scanIngreso(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ingreso: %w", err)
		}
		list = append(list, ing)
		ids = append(ids, ing.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list ingresos: %w", err)
	}
	if len(ids) == 0 {
		return list, nil
	}
	det, err := r.detallesIngreso(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, ing := range list {
		ing.Detalles = det[ing.ID]
	}
	return list, nil
}

// ListSalidas lista salidas con sus detalles.
func (r *MovimientoRepo) ListSalidas(ctx context.Context, filtro repository.MovimientoFiltro) ([]*entity.Salida, error) {
	query, args := listQuery(salidaColumns, "salidas", filtro)
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list salidas: %w", err)
	}
	defer rows.Close()
	var (
		list []*entity.Salida
		ids  []string
	)
	for rows.Next() {
		sal, err := scanSalida(rows)
		if err != nil {
			return nil, fmt.Errorf("scan salida: %w", err)
		}
		list = append(list, sal)
		ids = append(ids, sal.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list salidas: %w", err)
	}
	if len(ids) == 0 {
		return list, nil
	}
	det, err := r.detallesSalida(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, sal := range list {
		sal.Detalles = det[sal.ID]
	}
	return list, nil
}

// ListEntregasEPP lista entregas de EPP con sus detalles.
func (r *MovimientoRepo) ListEntregasEPP(ctx context.Context, filtro repository.MovimientoFiltro) ([]*entity.EntregaEPP, error) {
	query, args := listQuery(entregaColumns, "entregas_epp", filtro)
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list entregas epp: %w", err)
	}
	defer rows.Close()
	var (
		list []*entity.EntregaEPP
		ids  []string
	)
	for rows.Next() {
		e, err := scanEntrega(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entrega epp: %w", err)
		}
		list = append(list, e)
		ids = append(ids, e.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list entregas epp: %w", err)
	}
	if len(ids) == 0 {
		return list, nil
	}
	det, err := r.detallesEntrega(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, e := range list {
		e.Detalles = det[e.ID]
	}
	return list, nil
}

func (r *MovimientoRepo) detallesIngreso(ctx context.Context, ids []string) (map[string][]entity.DetalleIngreso, error) {
	rows, err := r.q.Query(ctx, `
		SELECT d.id, d.ingreso_id, d.material_id, d.cantidad, d.precio_unitario
		FROM detalle_ingresos d JOIN materiales m ON m.id = d.material_id
		WHERE d.ingreso_id = ANY($1::uuid[]) ORDER BY m.codigo`, ids)
	if err != nil {
		return nil, fmt.Errorf("list detalle ingresos: %w", err)
	}
	defer rows.Close()
	out := make(map[string][]entity.DetalleIngreso, len(ids))
	for rows.Next() {
		var d entity.DetalleIngreso
		if err := rows.Scan(&d.ID, &d.IngresoID, &d.MaterialID, &d.Cantidad, &d.PrecioUnitario); err != nil {
			return nil, fmt.Errorf("scan detalle ingreso: %w", err)
		}
		out[d.IngresoID] = append(out[d.IngresoID], d)
	}
	return out, rows.Err()
}

func (r *MovimientoRepo) detallesSalida(ctx context.Context, ids []string) (map[string][]entity.DetalleSalida, error) {
	rows, err := r.q.Query(ctx, `
		SELECT d.id, d.salida_id, d.material_id, d.cantidad
		FROM detalle_salidas d JOIN materiales m ON m.id = d.material_id
		WHERE d.salida_id = ANY($1::uuid[]) ORDER BY m.codigo`, ids)
	if err != nil {
		return nil, fmt.Errorf("list detalle salidas: %w", err)
	}
	defer rows.Close()
	out := make(map[string][]entity.DetalleSalida, len(ids))
	for rows.Next() {
		var d entity.DetalleSalida
		if err := rows.Scan(&d.ID, &d.SalidaID, &d.MaterialID, &d.Cantidad); err != nil {
			return nil, fmt.Errorf("scan detalle salida: %w", err)
		}
		out[d.SalidaID] = append(out[d.SalidaID], d)
	}
	return out, rows.Err()
}

func (r *MovimientoRepo) detallesEntrega(ctx context.Context, ids []string) (map[string][]entity.DetalleEntregaEPP, error) {
	rows, err := r.q.Query(ctx, `
		SELECT d.id, d.entrega_id, d.material_id, d.cantidad, COALESCE(d.talla, '')
		FROM detalle_entregas_epp d JOIN materiales m ON m.id = d.material_id
		WHERE d.entrega_id = ANY($1::uuid[]) ORDER BY m.codigo`, ids)
	if err != nil {
		return nil, fmt.Errorf("list detalle entregas epp: %w", err)
	}
	defer rows.Close()
	out := make(map[string][]entity.DetalleEntregaEPP, len(ids))
	for rows.Next() {
		var d entity.DetalleEntregaEPP
		if err := rows.Scan(&d.ID, &d.EntregaID, &d.MaterialID, &d.Cantidad, &d.Talla); err != nil {
			return nil, fmt.Errorf("scan detalle entrega epp: %w", err)
		}
		out[d.EntregaID] = append(out[d.EntregaID], d)
	}
	return out, rows.Err()
}

// CountByAlmacen cuenta cabeceras de los tres tipos que referencian al almacén.
func (r *MovimientoRepo) CountByAlmacen(ctx context.Context, almacenID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `
		SELECT (SELECT COUNT(*) FROM ingresos WHERE almacen_id = $1)
		     + (SELECT COUNT(*) FROM salidas WHERE almacen_id = $1)
		     + (SELECT COUNT(*) FROM entregas_epp WHERE almacen_id = $1)`, almacenID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count movimientos by almacen: %w", err)
	}
	return n, nil
}

// DeleteDetallesByMaterial borra las líneas del material en ingresos, salidas y entregas de EPP.
// Las cabeceras se conservan aunque queden sin líneas.
func (r *MovimientoRepo) DeleteDetallesByMaterial(ctx context.Context, materialID string) error {
	for _, table := range []string{"detalle_ingresos", "detalle_salidas", "detalle_entregas_epp"} {
		if _, err := r.q.Exec(ctx, `DELETE FROM `+table+` WHERE material_id = $1`, materialID); err != nil {
			return fmt.Errorf("delete %s: %w", table, err)
		}
	}
	return nil
}
