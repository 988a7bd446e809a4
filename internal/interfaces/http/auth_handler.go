package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/mineria-admin/internal/application/dto"
	"github.com/jhoicas/mineria-admin/internal/domain/access"
)

type authService interface {
	Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error)
	CreateUser(ctx context.Context, p access.Principal, in dto.CreateUserRequest) (*dto.UserResponse, error)
	ListUsers(ctx context.Context, p access.Principal, page dto.PageRequest) (*dto.ListResponse[dto.UserResponse], error)
}

// AuthHandler maneja login, permisos y administración de usuarios.
type AuthHandler struct {
	uc authService
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc authService) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Permisos godoc
// @Summary      Permisos del usuario sobre una página
// @Description  Evalúa el Access Gate para el rol del token y la ruta indicada.
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Param        path  query  string  true  "Ruta de la página, ej. /almacen/ingresos"
// @Success      200   {object}  dto.PermisosResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/auth/permisos [get]
func (h *AuthHandler) Permisos(c *fiber.Ctx) error {
	path := c.Query("path")
	if path == "" {
		return badRequest(c, "VALIDATION", "path es requerido")
	}
	p := GetPrincipal(c)
	return c.JSON(dto.PermisosResponse{
		Path:      path,
		Rol:       p.Rol,
		HasAccess: p.HasAccess(path),
		CanEdit:   p.CanEdit(path),
	})
}

// CreateUser godoc
// @Summary      Crear usuario
// @Tags         usuarios
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUserRequest  true  "Datos del usuario"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/configuracion/usuarios [post]
func (h *AuthHandler) CreateUser(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.CreateUser(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListUsers godoc
// @Summary      Listar usuarios
// @Tags         usuarios
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite (default 20)"
// @Param        offset  query  int  false  "Offset"
// @Success      200     {object}  dto.ListResponse[dto.UserResponse]
// @Failure      403     {object}  dto.ErrorResponse
// @Router       /api/configuracion/usuarios [get]
func (h *AuthHandler) ListUsers(c *fiber.Ctx) error {
	page, ok, err := parsePage(c)
	if !ok {
		return err
	}
	out, err := h.uc.ListUsers(c.UserContext(), GetPrincipal(c), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// parsePage lee limit/offset con valores por defecto.
func parsePage(c *fiber.Ctx) (dto.PageRequest, bool, error) {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return page, false, badRequest(c, "INVALID_QUERY", "parámetros inválidos")
	}
	page.DefaultPage()
	if ok, err := checkStruct(c, &page); !ok {
		return page, false, err
	}
	return page, true, nil
}
