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

var _ repository.AlmacenRepository = (*AlmacenRepo)(nil)

// AlmacenRepo implementación de AlmacenRepository sobre PostgreSQL.
type AlmacenRepo struct {
	q Querier
}

// NewAlmacenRepository construye el adaptador de persistencia para almacenes.
func NewAlmacenRepository(q Querier) *AlmacenRepo {
	return &AlmacenRepo{q: q}
}

// Create persiste un nuevo almacén. Nombre repetido devuelve domain.ErrDuplicate.
func (r *AlmacenRepo) Create(ctx context.Context, a *entity.Almacen) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO almacenes (id, nombre, ubicacion, descripcion, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		a.ID, a.Nombre, a.Ubicacion, a.Descripcion, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert almacen: %w", err)
	}
	return nil
}

// GetByID obtiene un almacén por ID; (nil, nil) si no existe.
func (r *AlmacenRepo) GetByID(ctx context.Context, id string) (*entity.Almacen, error) {
	var a entity.Almacen
	err := r.q.QueryRow(ctx, `
		SELECT id, nombre, ubicacion, descripcion, created_at, updated_at
		FROM almacenes WHERE id = $1`, id,
	).Scan(&a.ID, &a.Nombre, &a.Ubicacion, &a.Descripcion, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get almacen: %w", err)
	}
	return &a, nil
}

// Update actualiza nombre, ubicación y descripción.
func (r *AlmacenRepo) Update(ctx context.Context, a *entity.Almacen) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE almacenes SET nombre = $2, ubicacion = $3, descripcion = $4, updated_at = $5
		WHERE id = $1`,
		a.ID, a.Nombre, a.Ubicacion, a.Descripcion, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update almacen: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista almacenes por nombre.
func (r *AlmacenRepo) List(ctx context.Context, limit, offset int) ([]*entity.Almacen, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, nombre, ubicacion, descripcion, created_at, updated_at
		FROM almacenes ORDER BY nombre LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list almacenes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Almacen
	for rows.Next() {
		var a entity.Almacen
		if err := rows.Scan(&a.ID, &a.Nombre, &a.Ubicacion, &a.Descripcion, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan almacen: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// Delete elimina el almacén. Si aún lo referencian stock o movimientos, la FK devuelve domain.ErrHasDependents.
func (r *AlmacenRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM almacenes WHERE id = $1`, id)
	if err != nil {
		return mapDeleteError("delete almacen", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
