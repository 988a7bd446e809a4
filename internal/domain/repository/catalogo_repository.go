package repository

import (
	"context"

	"github.com/jhoicas/mineria-admin/internal/domain/entity"
)

// AlmacenRepository define el puerto de persistencia para Almacen.
type AlmacenRepository interface {
	Create(ctx context.Context, almacen *entity.Almacen) error
	GetByID(ctx context.Context, id string) (*entity.Almacen, error)
	Update(ctx context.Context, almacen *entity.Almacen) error
	List(ctx context.Context, limit, offset int) ([]*entity.Almacen, error)
	Delete(ctx context.Context, id string) error
}

// CategoriaRepository define el puerto de persistencia para Categoria.
type CategoriaRepository interface {
	Create(ctx context.Context, categoria *entity.Categoria) error
	GetByID(ctx context.Context, id string) (*entity.Categoria, error)
	List(ctx context.Context) ([]*entity.Categoria, error)
	Delete(ctx context.Context, id string) error
}

// AreaRepository define el puerto de persistencia para Area.
type AreaRepository interface {
	Create(ctx context.Context, area *entity.Area) error
	GetByID(ctx context.Context, id string) (*entity.Area, error)
	List(ctx context.Context) ([]*entity.Area, error)
}

// ProveedorRepository define el puerto de persistencia para Proveedor.
type ProveedorRepository interface {
	Create(ctx context.Context, proveedor *entity.Proveedor) error
	GetByID(ctx context.Context, id string) (*entity.Proveedor, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Proveedor, error)
}

// TrabajadorRepository define el puerto de persistencia para Trabajador.
type TrabajadorRepository interface {
	Create(ctx context.Context, trabajador *entity.Trabajador) error
	GetByID(ctx context.Context, id string) (*entity.Trabajador, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Trabajador, error)
}
