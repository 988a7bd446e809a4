package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/mineria-admin/internal/application/dto"
	"github.com/jhoicas/mineria-admin/internal/application/usecase"
)

// AlmacenHandler maneja los almacenes físicos.
type AlmacenHandler struct {
	uc *usecase.AlmacenUseCase
}

// NewAlmacenHandler construye el handler.
func NewAlmacenHandler(uc *usecase.AlmacenUseCase) *AlmacenHandler {
	return &AlmacenHandler{uc: uc}
}

// Create godoc
// @Summary      Crear almacén
// @Tags         almacenes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AlmacenRequest  true  "Datos del almacén"
// @Success      201   {object}  dto.AlmacenResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/almacen/almacenes [post]
func (h *AlmacenHandler) Create(c *fiber.Ctx) error {
	var in dto.AlmacenRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener almacén por ID
// @Tags         almacenes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del almacén"
// @Success      200  {object}  dto.AlmacenResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/almacen/almacenes/{id} [get]
func (h *AlmacenHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetByID(c.UserContext(), GetPrincipal(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar almacenes
// @Tags         almacenes
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.ListResponse[dto.AlmacenResponse]
// @Router       /api/almacen/almacenes [get]
func (h *AlmacenHandler) List(c *fiber.Ctx) error {
	page, ok, err := parsePage(c)
	if !ok {
		return err
	}
	out, err := h.uc.List(c.UserContext(), GetPrincipal(c), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar almacén
// @Tags         almacenes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del almacén"
// @Param        body  body  dto.AlmacenRequest  true  "Datos del almacén"
// @Success      200   {object}  dto.AlmacenResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/almacen/almacenes/{id} [put]
func (h *AlmacenHandler) Update(c *fiber.Ctx) error {
	var in dto.AlmacenRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), GetPrincipal(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar almacén
// @Description  Falla con 409 si el almacén tiene stock o movimientos.
// @Tags         almacenes
// @Security     Bearer
// @Param        id   path  string  true  "ID del almacén"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/almacen/almacenes/{id} [delete]
func (h *AlmacenHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), GetPrincipal(c), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
