package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mineria-admin/internal/application/auth"
	"github.com/jhoicas/mineria-admin/internal/application/dto"
	"github.com/jhoicas/mineria-admin/internal/domain"
	"github.com/jhoicas/mineria-admin/internal/domain/access"
	"github.com/jhoicas/mineria-admin/internal/domain/entity"
	"github.com/jhoicas/mineria-admin/pkg/jwt"
)

type memUsuarios struct {
	byEmail map[string]*entity.Usuario
}

func (m *memUsuarios) Create(_ context.Context, u *entity.Usuario) error {
	if _, ok := m.byEmail[u.Email]; ok {
		return domain.ErrDuplicate
	}
	m.byEmail[u.Email] = u
	return nil
}

func (m *memUsuarios) GetByID(_ context.Context, id string) (*entity.Usuario, error) {
	for _, u := range m.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUsuarios) GetByEmail(_ context.Context, email string) (*entity.Usuario, error) {
	return m.byEmail[email], nil
}

func (m *memUsuarios) List(context.Context, int, int) ([]*entity.Usuario, error) {
	out := make([]*entity.Usuario, 0, len(m.byEmail))
	for _, u := range m.byEmail {
		out = append(out, u)
	}
	return out, nil
}

const secret = "test-secret"

var admin = access.Principal{ID: "u-admin", Rol: access.RolAdmin}

func nuevo() (*auth.AuthUseCase, *memUsuarios) {
	repo := &memUsuarios{byEmail: map[string]*entity.Usuario{}}
	return auth.NewAuthUseCase(repo, auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "mineria-admin"}), repo
}

func TestCreateUserYLogin(t *testing.T) {
	uc, _ := nuevo()
	ctx := context.Background()

	creado, err := uc.CreateUser(ctx, admin, dto.CreateUserRequest{
		Email: "Almacen@Mina.pe", Password: "s3guro-123", Nombre: "Ana", Rol: access.RolAlmacenero,
	})
	require.NoError(t, err)
	assert.Equal(t, "almacen@mina.pe", creado.Email)

	res, err := uc.Login(ctx, dto.LoginRequest{Email: "almacen@mina.pe", Password: "s3guro-123"})
	require.NoError(t, err)

	userID, rol, err := jwt.Parse(secret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, creado.ID, userID)
	assert.Equal(t, access.RolAlmacenero, rol)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc, _ := nuevo()
	ctx := context.Background()
	_, err := uc.CreateUser(ctx, admin, dto.CreateUserRequest{Email: "a@mina.pe", Password: "password-1", Rol: access.RolGerente})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "a@mina.pe", Password: "otra-cosa"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@mina.pe", Password: "password-1"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	uc, repo := nuevo()
	u, err := auth.NewUsuario("b@mina.pe", "password-1", "B", access.RolGerente)
	require.NoError(t, err)
	u.Estado = entity.EstadoInactivo
	repo.byEmail[u.Email] = u

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "b@mina.pe", Password: "password-1"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCreateUser_Reglas(t *testing.T) {
	uc, _ := nuevo()
	ctx := context.Background()
	req := dto.CreateUserRequest{Email: "c@mina.pe", Password: "password-1", Rol: access.RolConductor}

	_, err := uc.CreateUser(ctx, access.Principal{ID: "g", Rol: access.RolGerente}, req)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.CreateUser(ctx, admin, dto.CreateUserRequest{Email: "d@mina.pe", Password: "password-1", Rol: "root"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateUser(ctx, admin, req)
	require.NoError(t, err)
	_, err = uc.CreateUser(ctx, admin, req)
	assert.EqualError(t, err, "El email ya está registrado")
}
