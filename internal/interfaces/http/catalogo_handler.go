package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/mineria-admin/internal/application/dto"
	"github.com/jhoicas/mineria-admin/internal/application/usecase"
)

// CatalogoHandler maneja categorías, áreas, proveedores y trabajadores.
type CatalogoHandler struct {
	categorias   *usecase.CategoriaUseCase
	areas        *usecase.AreaUseCase
	proveedores  *usecase.ProveedorUseCase
	trabajadores *usecase.TrabajadorUseCase
}

// NewCatalogoHandler construye el handler.
func NewCatalogoHandler(
	categorias *usecase.CategoriaUseCase,
	areas *usecase.AreaUseCase,
	proveedores *usecase.ProveedorUseCase,
	trabajadores *usecase.TrabajadorUseCase,
) *CatalogoHandler {
	return &CatalogoHandler{categorias: categorias, areas: areas, proveedores: proveedores, trabajadores: trabajadores}
}

// CreateCategoria godoc
// @Summary      Crear categoría
// @Tags         categorias
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CategoriaRequest  true  "Datos de la categoría"
// @Success      201   {object}  dto.CategoriaResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/almacen/categorias [post]
func (h *CatalogoHandler) CreateCategoria(c *fiber.Ctx) error {
	var in dto.CategoriaRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.categorias.Create(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListCategorias godoc
// @Summary      Listar categorías
// @Tags         categorias
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CategoriaResponse
// @Router       /api/almacen/categorias [get]
func (h *CatalogoHandler) ListCategorias(c *fiber.Ctx) error {
	out, err := h.categorias.List(c.UserContext(), GetPrincipal(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteCategoria godoc
// @Summary      Eliminar categoría
// @Description  Falla con 409 si la categoría tiene materiales asociados.
// @Tags         categorias
// @Security     Bearer
// @Param        id   path  string  true  "ID de la categoría"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/almacen/categorias/{id} [delete]
func (h *CatalogoHandler) DeleteCategoria(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := h.categorias.Delete(c.UserContext(), GetPrincipal(c), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateArea godoc
// @Summary      Crear área
// @Tags         areas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AreaRequest  true  "Nombre del área"
// @Success      201   {object}  dto.AreaResponse
// @Router       /api/almacen/areas [post]
func (h *CatalogoHandler) CreateArea(c *fiber.Ctx) error {
	var in dto.AreaRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.areas.Create(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListAreas godoc
// @Summary      Listar áreas
// @Tags         areas
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.AreaResponse
// @Router       /api/almacen/areas [get]
func (h *CatalogoHandler) ListAreas(c *fiber.Ctx) error {
	out, err := h.areas.List(c.UserContext(), GetPrincipal(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateProveedor godoc
// @Summary      Crear proveedor
// @Tags         proveedores
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProveedorRequest  true  "Datos del proveedor"
// @Success      201   {object}  dto.ProveedorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/almacen/proveedores [post]
func (h *CatalogoHandler) CreateProveedor(c *fiber.Ctx) error {
	var in dto.ProveedorRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.proveedores.Create(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListProveedores godoc
// @Summary      Listar proveedores
// @Tags         proveedores
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.ListResponse[dto.ProveedorResponse]
// @Router       /api/almacen/proveedores [get]
func (h *CatalogoHandler) ListProveedores(c *fiber.Ctx) error {
	page, ok, err := parsePage(c)
	if !ok {
		return err
	}
	out, err := h.proveedores.List(c.UserContext(), GetPrincipal(c), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateTrabajador godoc
// @Summary      Registrar trabajador
// @Tags         trabajadores
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TrabajadorRequest  true  "Datos del trabajador"
// @Success      201   {object}  dto.TrabajadorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/personal/trabajadores [post]
func (h *CatalogoHandler) CreateTrabajador(c *fiber.Ctx) error {
	var in dto.TrabajadorRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.trabajadores.Create(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListTrabajadores godoc
// @Summary      Listar trabajadores
// @Tags         trabajadores
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.ListResponse[dto.TrabajadorResponse]
// @Router       /api/personal/trabajadores [get]
func (h *CatalogoHandler) ListTrabajadores(c *fiber.Ctx) error {
	page, ok, err := parsePage(c)
	if !ok {
		return err
	}
	out, err := h.trabajadores.List(c.UserContext(), GetPrincipal(c), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
