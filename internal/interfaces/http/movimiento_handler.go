package http

import (
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"path"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/mineria-admin/internal/application/dto"
	"github.com/jhoicas/mineria-admin/internal/application/inventory"
	"github.com/jhoicas/mineria-admin/internal/application/reporte"
	"github.com/jhoicas/mineria-admin/internal/domain"
	"github.com/jhoicas/mineria-admin/internal/domain/access"
	"github.com/jhoicas/mineria-admin/internal/domain/entity"
	"github.com/jhoicas/mineria-admin/internal/domain/repository"
	"github.com/jhoicas/mineria-admin/pkg/logger"
)

type movimientoService interface {
	RegisterIngreso(ctx context.Context, p access.Principal, in inventory.IngresoInput) (*entity.Ingreso, error)
	RegisterSalida(ctx context.Context, p access.Principal, in inventory.SalidaInput) (*entity.Salida, error)
	RegisterEntregaEPP(ctx context.Context, p access.Principal, in inventory.EntregaEPPInput) (*entity.EntregaEPP, error)
	GetIngreso(ctx context.Context, p access.Principal, id string) (*entity.Ingreso, error)
	ListIngresos(ctx context.Context, p access.Principal, filtro repository.MovimientoFiltro) ([]*entity.Ingreso, error)
	GetSalida(ctx context.Context, p access.Principal, id string) (*entity.Salida, error)
	ListSalidas(ctx context.Context, p access.Principal, filtro repository.MovimientoFiltro) ([]*entity.Salida, error)
	GetEntregaEPP(ctx context.Context, p access.Principal, id string) (*entity.EntregaEPP, error)
	ListEntregasEPP(ctx context.Context, p access.Principal, filtro repository.MovimientoFiltro) ([]*entity.EntregaEPP, error)
}

type valeService interface {
	ValeIngreso(ctx context.Context, p access.Principal, id string) (*reporte.Archivo, error)
	ValeSalida(ctx context.Context, p access.Principal, id string) (*reporte.Archivo, error)
}

// ComprobanteStore guarda y sirve la foto del comprobante de un ingreso.
type ComprobanteStore interface {
	Save(ctx context.Context, nombreOriginal string, r io.Reader) (string, error)
	Open(ctx context.Context, url string) (io.ReadCloser, error)
	Remove(ctx context.Context, url string) error
}

// MovimientoHandler maneja ingresos, salidas y entregas de EPP.
type MovimientoHandler struct {
	uc    movimientoService
	vales valeService
	store ComprobanteStore
	log   *logger.Logger
}

// NewMovimientoHandler construye el handler. store puede ser nil si no se aceptan comprobantes.
func NewMovimientoHandler(uc movimientoService, vales valeService, store ComprobanteStore, log *logger.Logger) *MovimientoHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &MovimientoHandler{uc: uc, vales: vales, store: store, log: log.Named("movimientos")}
}

// RegisterIngreso godoc
// @Summary      Registrar ingreso de materiales
// @Description  Acepta JSON o multipart/form-data con el JSON en "datos" y la foto en "comprobante".
// @Description  Actualiza stock y precio de cada material en una sola transacción.
// @Tags         ingresos
// @Security     Bearer
// @Accept       json,mpfd
// @Produce      json
// @Param        body         body      dto.RegistrarIngresoRequest  false  "Ingreso (JSON)"
// @Param        comprobante  formData  file                         false  "Foto de la guía o factura"
// @Success      201  {object}  dto.IngresoResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/almacen/ingresos [post]
func (h *MovimientoHandler) RegisterIngreso(c *fiber.Ctx) error {
	var (
		req     dto.RegistrarIngresoRequest
		archivo *multipart.FileHeader
	)
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		form, err := c.MultipartForm()
		if err != nil {
			return badRequest(c, "INVALID_BODY", "formulario inválido")
		}
		datos := form.Value["datos"]
		if len(datos) == 0 {
			return badRequest(c, "VALIDATION", "el campo datos es requerido")
		}
		if err := json.Unmarshal([]byte(datos[0]), &req); err != nil {
			return badRequest(c, "INVALID_BODY", "datos no es un JSON válido")
		}
		if files := form.File["comprobante"]; len(files) > 0 {
			archivo = files[0]
		}
		if ok, err := checkStruct(c, &req); !ok {
			return err
		}
	} else if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	ctx := c.UserContext()
	var url string
	if archivo != nil {
		if h.store == nil {
			return badRequest(c, "VALIDATION", "no se aceptan comprobantes")
		}
		saved, err := h.saveComprobante(ctx, archivo)
		if err != nil {
			return writeError(c, err)
		}
		url = saved
	}

	ing, err := h.uc.RegisterIngreso(ctx, GetPrincipal(c), inventory.IngresoInputFromRequest(req, url))
	if err != nil {
		if url != "" {
			// La transacción no se confirmó: el archivo queda huérfano.
			if rmErr := h.store.Remove(context.Background(), url); rmErr != nil {
				h.log.Warn().Err(rmErr).Str("url", url).Msg("no se pudo borrar el comprobante huérfano")
			}
		}
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(inventory.ToIngresoResponse(ing))
}

func (h *MovimientoHandler) saveComprobante(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()
	return h.store.Save(ctx, fh.Filename, f)
}

// GetIngreso godoc
// @Summary      Obtener ingreso
// @Tags         ingresos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del ingreso"
// @Success      200  {object}  dto.IngresoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/almacen/ingresos/{id} [get]
func (h *MovimientoHandler) GetIngreso(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	ing, err := h.uc.GetIngreso(c.UserContext(), GetPrincipal(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(inventory.ToIngresoResponse(ing))
}

// ListIngresos godoc
// @Summary      Historial de ingresos
// @Tags         ingresos
// @Security     Bearer
// @Produce      json
// @Param        almacen_id  query  string  false  "Almacén"
// @Param        desde       query  string  false  "Fecha inicial (YYYY-MM-DD)"
// @Param        hasta       query  string  false  "Fecha final inclusive (YYYY-MM-DD)"
// @Param        limit       query  int     false  "Límite"  default(20)
// @Param        offset      query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.ListResponse[dto.IngresoResponse]
// @Router       /api/almacen/ingresos [get]
func (h *MovimientoHandler) ListIngresos(c *fiber.Ctx) error {
	filtro, ok, err := parseMovimientoFiltro(c)
	if !ok {
		return err
	}
	list, err := h.uc.ListIngresos(c.UserContext(), GetPrincipal(c), filtro)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toList(list, filtro, inventory.ToIngresoResponse))
}

// ValeIngreso godoc
// @Summary      Vale de ingreso en PDF
// @Tags         ingresos
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del ingreso"
// @Success      200  {file}  file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/almacen/ingresos/{id}/pdf [get]
func (h *MovimientoHandler) ValeIngreso(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	archivo, err := h.vales.ValeIngreso(c.UserContext(), GetPrincipal(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return sendArchivo(c, archivo)
}

// ComprobanteIngreso godoc
// @Summary      Foto del comprobante de un ingreso
// @Tags         ingresos
// @Security     Bearer
// @Produce      image/jpeg,image/png,image/webp,application/pdf
// @Param        id   path  string  true  "ID del ingreso"
// @Success      200  {file}  file
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/almacen/ingresos/{id}/comprobante [get]
func (h *MovimientoHandler) ComprobanteIngreso(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	ctx := c.UserContext()
	ing, err := h.uc.GetIngreso(ctx, GetPrincipal(c), id)
	if err != nil {
		return writeError(c, err)
	}
	if ing.ComprobanteURL == "" || h.store == nil {
		return writeError(c, domain.ErrNotFound)
	}
	rc, err := h.store.Open(ctx, ing.ComprobanteURL)
	if err != nil {
		return writeError(c, err)
	}
	c.Type(path.Ext(ing.ComprobanteURL))
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+path.Base(ing.ComprobanteURL)+`"`)
	// fasthttp cierra rc al terminar de enviarlo.
	return c.SendStream(rc)
}

// RegisterSalida godoc
// @Summary      Registrar salida de materiales
// @Description  Descuenta stock de cada línea. Sin stock suficiente no se registra nada.
// @Tags         salidas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegistrarSalidaRequest  true  "Salida"
// @Success      201   {object}  dto.SalidaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/almacen/salidas [post]
func (h *MovimientoHandler) RegisterSalida(c *fiber.Ctx) error {
	var req dto.RegistrarSalidaRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	s, err := h.uc.RegisterSalida(c.UserContext(), GetPrincipal(c), inventory.SalidaInputFromRequest(req))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(inventory.ToSalidaResponse(s))
}

// GetSalida godoc
// @Summary      Obtener salida
// @Tags         salidas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la salida"
// @Success      200  {object}  dto.SalidaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/almacen/salidas/{id} [get]
func (h *MovimientoHandler) GetSalida(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	s, err := h.uc.GetSalida(c.UserContext(), GetPrincipal(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(inventory.ToSalidaResponse(s))
}

// ListSalidas godoc
// @Summary      Historial de salidas
// @Tags         salidas
// @Security     Bearer
// @Produce      json
// @Param        almacen_id  query  string  false  "Almacén"
// @Param        desde       query  string  false  "Fecha inicial (YYYY-MM-DD)"
// @Param        hasta       query  string  false  "Fecha final inclusive (YYYY-MM-DD)"
// @Success      200  {object}  dto.ListResponse[dto.SalidaResponse]
// @Router       /api/almacen/salidas [get]
func (h *MovimientoHandler) ListSalidas(c *fiber.Ctx) error {
	filtro, ok, err := parseMovimientoFiltro(c)
	if !ok {
		return err
	}
	list, err := h.uc.ListSalidas(c.UserContext(), GetPrincipal(c), filtro)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toList(list, filtro, inventory.ToSalidaResponse))
}

// ValeSalida godoc
// @Summary      Vale de salida en PDF
// @Tags         salidas
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la salida"
// @Success      200  {file}  file
// @Router       /api/almacen/salidas/{id}/pdf [get]
func (h *MovimientoHandler) ValeSalida(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	archivo, err := h.vales.ValeSalida(c.UserContext(), GetPrincipal(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return sendArchivo(c, archivo)
}

// RegisterEntregaEPP godoc
// @Summary      Registrar entrega de EPP a un trabajador
// @Tags         epp
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegistrarEntregaEPPRequest  true  "Entrega"
// @Success      201   {object}  dto.EntregaEPPResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/personal/epp [post]
func (h *MovimientoHandler) RegisterEntregaEPP(c *fiber.Ctx) error {
	var req dto.RegistrarEntregaEPPRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	e, err := h.uc.RegisterEntregaEPP(c.UserContext(), GetPrincipal(c), inventory.EntregaEPPInputFromRequest(req))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(inventory.ToEntregaEPPResponse(e))
}

// GetEntregaEPP godoc
// @Summary      Obtener entrega de EPP
// @Tags         epp
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la entrega"
// @Success      200  {object}  dto.EntregaEPPResponse
// @Router       /api/personal/epp/{id} [get]
func (h *MovimientoHandler) GetEntregaEPP(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	e, err := h.uc.GetEntregaEPP(c.UserContext(), GetPrincipal(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(inventory.ToEntregaEPPResponse(e))
}

// ListEntregasEPP godoc
// @Summary      Historial de entregas de EPP
// @Tags         epp
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ListResponse[dto.EntregaEPPResponse]
// @Router       /api/personal/epp [get]
func (h *MovimientoHandler) ListEntregasEPP(c *fiber.Ctx) error {
	filtro, ok, err := parseMovimientoFiltro(c)
	if !ok {
		return err
	}
	list, err := h.uc.ListEntregasEPP(c.UserContext(), GetPrincipal(c), filtro)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toList(list, filtro, inventory.ToEntregaEPPResponse))
}

// parseMovimientoFiltro convierte la query en filtro; hasta incluye el día completo.
func parseMovimientoFiltro(c *fiber.Ctx) (repository.MovimientoFiltro, bool, error) {
	var q dto.MovimientoQuery
	if err := c.QueryParser(&q); err != nil {
		return repository.MovimientoFiltro{}, false, badRequest(c, "INVALID_QUERY", "parámetros inválidos")
	}
	q.DefaultPage()
	if ok, err := checkStruct(c, &q); !ok {
		return repository.MovimientoFiltro{}, false, err
	}
	filtro := repository.MovimientoFiltro{AlmacenID: q.AlmacenID, Limit: q.Limit, Offset: q.Offset}
	if q.Desde != "" {
		d, _ := time.ParseInLocation(time.DateOnly, q.Desde, time.Local)
		filtro.Desde = &d
	}
	if q.Hasta != "" {
		h, _ := time.ParseInLocation(time.DateOnly, q.Hasta, time.Local)
		h = h.AddDate(0, 0, 1).Add(-time.Nanosecond)
		filtro.Hasta = &h
	}
	return filtro, true, nil
}

func toList[E any, R any](items []E, filtro repository.MovimientoFiltro, conv func(E) R) dto.ListResponse[R] {
	out := dto.ListResponse[R]{
		Items: make([]R, 0, len(items)),
		Page:  dto.PageResponse{Limit: filtro.Limit, Offset: filtro.Offset},
	}
	for _, it := range items {
		out.Items = append(out.Items, conv(it))
	}
	return out
}

func sendArchivo(c *fiber.Ctx, a *reporte.Archivo) error {
	c.Set(fiber.HeaderContentType, a.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+a.Nombre+`"`)
	return c.Send(a.Contenido)
}
