package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/mineria-admin/internal/domain"
	"github.com/jhoicas/mineria-admin/internal/domain/entity"
	"github.com/jhoicas/mineria-admin/internal/domain/repository"
)

var (
	_ repository.CategoriaRepository  = (*CategoriaRepo)(nil)
	_ repository.AreaRepository       = (*AreaRepo)(nil)
	_ repository.ProveedorRepository  = (*ProveedorRepo)(nil)
	_ repository.TrabajadorRepository = (*TrabajadorRepo)(nil)
)

// CategoriaRepo persiste categorías de materiales.
type CategoriaRepo struct {
	q Querier
}

func NewCategoriaRepository(q Querier) *CategoriaRepo {
	return &CategoriaRepo{q: q}
}

func (r *CategoriaRepo) Create(ctx context.Context, c *entity.Categoria) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO categorias (id, nombre, descripcion, created_at) VALUES ($1, $2, $3, $4)`,
		c.ID, c.Nombre, c.Descripcion, c.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert categoria: %w", err)
	}
	return nil
}

func (r *CategoriaRepo) GetByID(ctx context.Context, id string) (*entity.Categoria, error) {
	var c entity.Categoria
	err := r.q.QueryRow(ctx,
		`SELECT id, nombre, descripcion, created_at FROM categorias WHERE id = $1`, id,
	).Scan(&c.ID, &c.Nombre, &c.Descripcion, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get categoria: %w", err)
	}
	return &c, nil
}

func (r *CategoriaRepo) List(ctx context.Context) ([]*entity.Categoria, error) {
	rows, err := r.q.Query(ctx, `SELECT id, nombre, descripcion, created_at FROM categorias ORDER BY nombre`)
	if err != nil {
		return nil, fmt.Errorf("list categorias: %w", err)
	}
	defer rows.Close()
	var list []*entity.Categoria
	for rows.Next() {
		var c entity.Categoria
		if err := rows.Scan(&c.ID, &c.Nombre, &c.Descripcion, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan categoria: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Delete elimina la categoría; con materiales asociados la FK devuelve domain.ErrHasDependents.
func (r *CategoriaRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM categorias WHERE id = $1`, id)
	if err != nil {
		return mapDeleteError("delete categoria", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AreaRepo persiste las áreas operativas de la mina.
type AreaRepo struct {
	q Querier
}

func NewAreaRepository(q Querier) *AreaRepo {
	return &AreaRepo{q: q}
}

func (r *AreaRepo) Create(ctx context.Context, a *entity.Area) error {
	_, err := r.q.Exec(ctx, `INSERT INTO areas (id, nombre, created_at) VALUES ($1, $2, $3)`, a.ID, a.Nombre, a.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert area: %w", err)
	}
	return nil
}

func (r *AreaRepo) GetByID(ctx context.Context, id string) (*entity.Area, error) {
	var a entity.Area
	err := r.q.QueryRow(ctx, `SELECT id, nombre, created_at FROM areas WHERE id = $1`, id).Scan(&a.ID, &a.Nombre, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get area: %w", err)
	}
	return &a, nil
}

func (r *AreaRepo) List(ctx context.Context) ([]*entity.Area, error) {
	rows, err := r.q.Query(ctx, `SELECT id, nombre, created_at FROM areas ORDER BY nombre`)
	if err != nil {
		return nil, fmt.Errorf("list areas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Area
	for rows.Next() {
		var a entity.Area
		if err := rows.Scan(&a.ID, &a.Nombre, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan area: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// ProveedorRepo persiste proveedores identificados por RUC.
type ProveedorRepo struct {
	q Querier
}

func NewProveedorRepository(q Querier) *ProveedorRepo {
	return &ProveedorRepo{q: q}
}

func (r *ProveedorRepo) Create(ctx context.Context, p *entity.Proveedor) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO proveedores (id, ruc, razon_social, telefono, email, direccion, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.RUC, p.RazonSocial, p.Telefono, p.Email, p.Direccion, p.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert proveedor: %w", err)
	}
	return nil
}

func (r *ProveedorRepo) GetByID(ctx context.Context, id string) (*entity.Proveedor, error) {
	var p entity.Proveedor
	err := r.q.QueryRow(ctx, `
		SELECT id, ruc, razon_social, telefono, email, direccion, created_at
		FROM proveedores WHERE id = $1`, id,
	).Scan(&p.ID, &p.RUC, &p.RazonSocial, &p.Telefono, &p.Email, &p.Direccion, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get proveedor: %w", err)
	}
	return &p, nil
}

func (r *ProveedorRepo) List(ctx context.Context, limit, offset int) ([]*entity.Proveedor, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, ruc, razon_social, telefono, email, direccion, created_at
		FROM proveedores ORDER BY razon_social LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list proveedores: %w", err)
	}
	defer rows.Close()
	var list []*entity.Proveedor
	for rows.Next() {
		var p entity.Proveedor
		if err := rows.Scan(&p.ID, &p.RUC, &p.RazonSocial, &p.Telefono, &p.Email, &p.Direccion, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan proveedor: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// TrabajadorRepo persiste el personal que recibe EPP.
type TrabajadorRepo struct {
	q Querier
}

func NewTrabajadorRepository(q Querier) *TrabajadorRepo {
	return &TrabajadorRepo{q: q}
}

func (r *TrabajadorRepo) Create(ctx context.Context, t *entity.Trabajador) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO trabajadores (id, dni, nombres, apellidos, cargo, estado, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		t.ID, t.DNI, t.Nombres, t.Apellidos, t.Cargo, t.Estado, t.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert trabajador: %w", err)
	}
	return nil
}

func (r *TrabajadorRepo) GetByID(ctx context.Context, id string) (*entity.Trabajador, error) {
	var t entity.Trabajador
	err := r.q.QueryRow(ctx, `
		SELECT id, dni, nombres, apellidos, cargo, estado, created_at
		FROM trabajadores WHERE id = $1`, id,
	).Scan(&t.ID, &t.DNI, &t.Nombres, &t.Apellidos, &t.Cargo, &t.Estado, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get trabajador: %w", err)
	}
	return &t, nil
}

func (r *TrabajadorRepo) List(ctx context.Context, limit, offset int) ([]*entity.Trabajador, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, dni, nombres, apellidos, cargo, estado, created_at
		FROM trabajadores ORDER BY apellidos, nombres LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list trabajadores: %w", err)
	}
	defer rows.Close()
	var list []*entity.Trabajador
	for rows.Next() {
		var t entity.Trabajador
		if err := rows.Scan(&t.ID, &t.DNI, &t.Nombres, &t.Apellidos, &t.Cargo, &t.Estado, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan trabajador: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
