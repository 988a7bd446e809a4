package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/mineria-admin/internal/application/dto"
	"github.com/jhoicas/mineria-admin/internal/domain"
	"github.com/jhoicas/mineria-admin/internal/domain/access"
	"github.com/jhoicas/mineria-admin/internal/domain/entity"
	"github.com/jhoicas/mineria-admin/internal/domain/repository"
	"github.com/jhoicas/mineria-admin/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación y de gestión de usuarios.
type AuthUseCase struct {
	userRepo repository.UsuarioRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UsuarioRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// CreateUser crea un usuario: hashea password con bcrypt y persiste.
// Solo quien puede editar /configuracion/usuarios puede crear cuentas.
func (uc *AuthUseCase) CreateUser(ctx context.Context, p access.Principal, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if !p.CanEdit(access.RutaUsuarios) {
		return nil, domain.ErrForbidden
	}
	if !access.RolValido(in.Rol) {
		return nil, domain.NewValidationError("rol", "Rol inválido")
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.NewValidationError("email", "El email ya está registrado")
	}
	user, err := NewUsuario(email, in.Password, in.Nombre, in.Rol)
	if err != nil {
		return nil, err
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.NewValidationError("email", "El email ya está registrado")
		}
		return nil, err
	}
	return toUserResponse(user), nil
}

// NewUsuario arma un usuario activo con el password hasheado. Lo usa también cmd/seeduser.
func NewUsuario(email, password, nombre, rol string) (*entity.Usuario, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	if nombre == "" {
		nombre = email
	}
	now := time.Now()
	return &entity.Usuario{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Nombre:       nombre,
		Rol:          rol,
		Estado:       entity.EstadoActivo,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// ListUsers lista usuarios con paginación.
func (uc *AuthUseCase) ListUsers(ctx context.Context, p access.Principal, page dto.PageRequest) (*dto.ListResponse[dto.UserResponse], error) {
	if !p.HasAccess(access.RutaUsuarios) {
		return nil, domain.ErrForbidden
	}
	page.DefaultPage()
	list, err := uc.userRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *toUserResponse(u))
	}
	return &dto.ListResponse[dto.UserResponse]{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
// Email desconocido y password incorrecto responden igual (ErrUnauthorized).
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Estado != entity.EstadoActivo {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Rol, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

func toUserResponse(u *entity.Usuario) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Nombre:    u.Nombre,
		Rol:       u.Rol,
		Estado:    u.Estado,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
