package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ingreso es la cabecera de una recepción de materiales en un almacén.
// Cabecera y detalles se crean juntos en una transacción y no se editan después.
type Ingreso struct {
	ID              string
	Fecha           time.Time
	UsuarioID       string
	AlmacenID       string
	ProveedorID     string // vacío si no aplica
	NumeroDocumento string // guía de remisión o factura
	Observaciones   string
	ComprobanteURL  string
	CreatedAt       time.Time
	Detalles        []DetalleIngreso
}

// DetalleIngreso línea de un ingreso.
type DetalleIngreso struct {
	ID             string
	IngresoID      string
	MaterialID     string
	Cantidad       decimal.Decimal
	PrecioUnitario decimal.Decimal
}

// Total devuelve la suma de cantidad × precio unitario de las líneas.
func (i Ingreso) Total() decimal.Decimal {
	total := decimal.Zero
	for _, d := range i.Detalles {
		total = total.Add(d.Cantidad.Mul(d.PrecioUnitario))
	}
	return total.Round(2)
}

// Salida es la cabecera de un despacho de materiales hacia un área.
type Salida struct {
	ID            string
	Fecha         time.Time
	UsuarioID     string
	AlmacenID     string
	AreaID        string
	Solicitante   string
	Observaciones string
	CreatedAt     time.Time
	Detalles      []DetalleSalida
}

// DetalleSalida línea de una salida.
type DetalleSalida struct {
	ID         string
	SalidaID   string
	MaterialID string
	Cantidad   decimal.Decimal
}

// EntregaEPP es la cabecera de una entrega de equipo de protección personal a un trabajador.
type EntregaEPP struct {
	ID            string
	Fecha         time.Time
	UsuarioID     string
	AlmacenID     string
	TrabajadorID  string
	Observaciones string
	CreatedAt     time.Time
	Detalles      []DetalleEntregaEPP
}

// DetalleEntregaEPP línea de una entrega; Talla es opcional (ej. "M", "42").
type DetalleEntregaEPP struct {
	ID         string
	EntregaID  string
	MaterialID string
	Cantidad   decimal.Decimal
	Talla      string
}
