package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un material.
const (
	EstadoActivo   = "activo"
	EstadoInactivo = "inactivo"
)

// Material representa un ítem de almacén identificado por un código único.
// Precio es la valorización total del stock en mano (no un precio unitario):
// sube con cada ingreso y baja proporcionalmente con cada salida.
type Material struct {
	ID           string
	Codigo       string
	Nombre       string
	Descripcion  string
	UnidadMedida string
	StockMinimo  decimal.Decimal
	CategoriaID  string
	AreaID       string // vacío si no pertenece a un área
	Estado       string // activo, inactivo
	Precio       decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
