package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/mineria-admin/internal/domain"
	"github.com/jhoicas/mineria-admin/internal/domain/entity"
	"github.com/jhoicas/mineria-admin/internal/domain/repository"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

const materialColumns = `id, codigo, nombre, descripcion, unidad_medida, stock_minimo, categoria_id,
	COALESCE(area_id::text, ''), estado, precio, created_at, updated_at`

// MaterialRepo implementación de MaterialRepository sobre PostgreSQL (usable con pool o tx).
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

func scanMaterial(row pgx.Row) (*entity.Material, error) {
	var m entity.Material
	err := row.Scan(&m.ID, &m.Codigo, &m.Nombre, &m.Descripcion, &m.UnidadMedida, &m.StockMinimo,
		&m.CategoriaID, &m.AreaID, &m.Estado, &m.Precio, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create persiste un material nuevo. Un código repetido devuelve domain.ErrDuplicate.
func (r *MaterialRepo) Create(ctx context.Context, m *entity.Material) error {
	query := `
		INSERT INTO materiales (id, codigo, nombre, descripcion, unidad_medida, stock_minimo, categoria_id, area_id, estado, precio, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, '')::uuid, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.Codigo, m.Nombre, m.Descripcion, m.UnidadMedida, m.StockMinimo,
		m.CategoriaID, m.AreaID, m.Estado, m.Precio, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert material: %w", err)
	}
	return nil
}

func (r *MaterialRepo) get(ctx context.Context, op, where string, arg any) (*entity.Material, error) {
	m, err := scanMaterial(r.q.QueryRow(ctx, `SELECT `+materialColumns+` FROM materiales WHERE `+where, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return m, nil
}

// GetByID obtiene un material por ID; (nil, nil) si no existe.
func (r *MaterialRepo) GetByID(ctx context.Context, id string) (*entity.Material, error) {
	return r.get(ctx, "get material", "id = $1", id)
}

// GetByCodigo obtiene un material por su código único.
func (r *MaterialRepo) GetByCodigo(ctx context.Context, codigo string) (*entity.Material, error) {
	return r.get(ctx, "get material by codigo", "codigo = $1", codigo)
}

// GetForUpdate lee el material bloqueando la fila hasta el fin de la transacción.
func (r *MaterialRepo) GetForUpdate(ctx context.Context, id string) (*entity.Material, error) {
	return r.get(ctx, "get material for update", "id = $1 FOR UPDATE", id)
}

// Update modifica los datos descriptivos. Precio solo cambia vía UpdatePrecio.
func (r *MaterialRepo) Update(ctx context.Context, m *entity.Material) error {
	query := `
		UPDATE materiales SET codigo = $2, nombre = $3, descripcion = $4, unidad_medida = $5, stock_minimo = $6,
			categoria_id = $7, area_id = NULLIF($8, '')::uuid, estado = $9, updated_at = $10
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		m.ID, m.Codigo, m.Nombre, m.Descripcion, m.UnidadMedida, m.StockMinimo,
		m.CategoriaID, m.AreaID, m.Estado, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update material: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdatePrecio fija la valorización del material (usado por el motor de movimientos).
func (r *MaterialRepo) UpdatePrecio(ctx context.Context, id string, precio decimal.Decimal) error {
	cmd, err := r.q.Exec(ctx, `UPDATE materiales SET precio = $2, updated_at = now() WHERE id = $1`, id, precio)
	if err != nil {
		return mapError("update material precio", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("material %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// List lista materiales por nombre con filtros opcionales.
func (r *MaterialRepo) List(ctx context.Context, filtro repository.MaterialFiltro, limit, offset int) ([]*entity.Material, error) {
	var (
		conds []string
		args  []any
	)
	if filtro.CategoriaID != "" {
		args = append(args, filtro.CategoriaID)
		conds = append(conds, fmt.Sprintf("categoria_id = $%d", len(args)))
	}
	if filtro.Estado != "" {
		args = append(args, filtro.Estado)
		conds = append(conds, fmt.Sprintf("estado = $%d", len(args)))
	}
	if s := strings.TrimSpace(filtro.Busqueda); s != "" {
		args = append(args, "%"+s+"%")
		conds = append(conds, fmt.Sprintf("(codigo ILIKE $%d OR nombre ILIKE $%d)", len(args), len(args)))
	}

	query := `SELECT ` + materialColumns + ` FROM materiales`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(` ORDER BY nombre LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list materiales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Material
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// CountByCategoria cuenta materiales que referencian la categoría.
func (r *MaterialRepo) CountByCategoria(ctx context.Context, categoriaID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM materiales WHERE categoria_id = $1`, categoriaID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count materiales by categoria: %w", err)
	}
	return n, nil
}

// Delete elimina la fila del material. El stock y las líneas históricas deben borrarse antes en la misma tx.
func (r *MaterialRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM materiales WHERE id = $1`, id)
	if err != nil {
		return mapDeleteError("delete material", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
