package repository

import (
	"context"

	"github.com/jhoicas/mineria-admin/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// MaterialFiltro criterios de listado de materiales.
type MaterialFiltro struct {
	CategoriaID string
	Estado      string
	Busqueda    string // coincide con código o nombre
}

// MaterialRepository define el puerto de persistencia para Material.
type MaterialRepository interface {
	Create(ctx context.Context, material *entity.Material) error
	GetByID(ctx context.Context, id string) (*entity.Material, error)
	GetByCodigo(ctx context.Context, codigo string) (*entity.Material, error)
	// GetForUpdate bloquea la fila del material (SELECT ... FOR UPDATE) hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Material, error)
	// Update modifica los datos descriptivos; nunca toca Precio.
	Update(ctx context.Context, material *entity.Material) error
	UpdatePrecio(ctx context.Context, id string, precio decimal.Decimal) error
	List(ctx context.Context, filtro MaterialFiltro, limit, offset int) ([]*entity.Material, error)
	CountByCategoria(ctx context.Context, categoriaID string) (int, error)
	Delete(ctx context.Context, id string) error
}
