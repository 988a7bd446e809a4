package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineaIngresoRequest línea de POST /api/almacen/ingresos.
type LineaIngresoRequest struct {
	MaterialID     string          `json:"material_id" validate:"required,uuid"`
	Cantidad       decimal.Decimal `json:"cantidad" validate:"gt=0"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario" validate:"gte=0"`
}

// RegistrarIngresoRequest body de POST /api/almacen/ingresos.
// En multipart, este mismo JSON llega en el campo "datos" junto al archivo "comprobante".
type RegistrarIngresoRequest struct {
	AlmacenID       string                `json:"almacen_id" validate:"required,uuid"`
	ProveedorID     string                `json:"proveedor_id,omitempty" validate:"omitempty,uuid"`
	Fecha           *time.Time            `json:"fecha,omitempty"`
	NumeroDocumento string                `json:"numero_documento,omitempty" validate:"max=60"`
	Observaciones   string                `json:"observaciones,omitempty" validate:"max=500"`
	Lineas          []LineaIngresoRequest `json:"lineas" validate:"required,min=1,dive"`
}

// LineaSalidaRequest línea de una salida.
type LineaSalidaRequest struct {
	MaterialID string          `json:"material_id" validate:"required,uuid"`
	Cantidad   decimal.Decimal `json:"cantidad" validate:"gt=0"`
}

// RegistrarSalidaRequest body de POST /api/almacen/salidas.
type RegistrarSalidaRequest struct {
	AlmacenID     string               `json:"almacen_id" validate:"required,uuid"`
	AreaID        string               `json:"area_id" validate:"required,uuid"`
	Solicitante   string               `json:"solicitante" validate:"required,max=150"`
	Fecha         *time.Time           `json:"fecha,omitempty"`
	Observaciones string               `json:"observaciones,omitempty" validate:"max=500"`
	Lineas        []LineaSalidaRequest `json:"lineas" validate:"required,min=1,dive"`
}

// LineaEntregaEPPRequest línea de una entrega de EPP.
type LineaEntregaEPPRequest struct {
	MaterialID string          `json:"material_id" validate:"required,uuid"`
	Cantidad   decimal.Decimal `json:"cantidad" validate:"gt=0"`
	Talla      string          `json:"talla,omitempty" validate:"max=10"`
}

// RegistrarEntregaEPPRequest body de POST /api/personal/epp.
type RegistrarEntregaEPPRequest struct {
	AlmacenID     string                   `json:"almacen_id" validate:"required,uuid"`
	TrabajadorID  string                   `json:"trabajador_id" validate:"required,uuid"`
	Fecha         *time.Time               `json:"fecha,omitempty"`
	Observaciones string                   `json:"observaciones,omitempty" validate:"max=500"`
	Lineas        []LineaEntregaEPPRequest `json:"lineas" validate:"required,min=1,dive"`
}

// MovimientoQuery filtros de listado de movimientos (query string).
type MovimientoQuery struct {
	AlmacenID string `query:"almacen_id" validate:"omitempty,uuid"`
	Desde     string `query:"desde" validate:"omitempty,datetime=2006-01-02"`
	Hasta     string `query:"hasta" validate:"omitempty,datetime=2006-01-02"`
	PageRequest
}

// DetalleMovimientoResponse línea de un movimiento en respuestas.
type DetalleMovimientoResponse struct {
	ID             string           `json:"id"`
	MaterialID     string           `json:"material_id"`
	Cantidad       decimal.Decimal  `json:"cantidad"`
	PrecioUnitario *decimal.Decimal `json:"precio_unitario,omitempty"`
	Talla          string           `json:"talla,omitempty"`
}

// IngresoResponse salida de un ingreso.
type IngresoResponse struct {
	ID              string                      `json:"id"`
	Fecha           time.Time                   `json:"fecha"`
	UsuarioID       string                      `json:"usuario_id"`
	AlmacenID       string                      `json:"almacen_id"`
	ProveedorID     string                      `json:"proveedor_id,omitempty"`
	NumeroDocumento string                      `json:"numero_documento,omitempty"`
	Observaciones   string                      `json:"observaciones,omitempty"`
	ComprobanteURL  string                      `json:"comprobante_url,omitempty"`
	Total           decimal.Decimal             `json:"total"`
	Detalles        []DetalleMovimientoResponse `json:"detalles"`
	CreatedAt       time.Time                   `json:"created_at"`
}

// SalidaResponse salida de una salida de almacén.
type SalidaResponse struct {
	ID            string                      `json:"id"`
	Fecha         time.Time                   `json:"fecha"`
	UsuarioID     string                      `json:"usuario_id"`
	AlmacenID     string                      `json:"almacen_id"`
	AreaID        string                      `json:"area_id"`
	Solicitante   string                      `json:"solicitante"`
	Observaciones string                      `json:"observaciones,omitempty"`
	Detalles      []DetalleMovimientoResponse `json:"detalles"`
	CreatedAt     time.Time                   `json:"created_at"`
}

// EntregaEPPResponse salida de una entrega de EPP.
type EntregaEPPResponse struct {
	ID            string                      `json:"id"`
	Fecha         time.Time                   `json:"fecha"`
	UsuarioID     string                      `json:"usuario_id"`
	AlmacenID     string                      `json:"almacen_id"`
	TrabajadorID  string                      `json:"trabajador_id"`
	Observaciones string                      `json:"observaciones,omitempty"`
	Detalles      []DetalleMovimientoResponse `json:"detalles"`
	CreatedAt     time.Time                   `json:"created_at"`
}
