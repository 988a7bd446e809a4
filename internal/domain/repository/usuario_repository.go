package repository

import (
	"context"

	"github.com/jhoicas/mineria-admin/internal/domain/entity"
)

// UsuarioRepository define el puerto de persistencia para Usuario.
type UsuarioRepository interface {
	Create(ctx context.Context, usuario *entity.Usuario) error
	GetByID(ctx context.Context, id string) (*entity.Usuario, error)
	GetByEmail(ctx context.Context, email string) (*entity.Usuario, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Usuario, error)
}
