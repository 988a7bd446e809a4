package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMaterialRequest body de POST /api/almacen/materiales.
type CreateMaterialRequest struct {
	Codigo       string          `json:"codigo" validate:"required,max=50"`
	Nombre       string          `json:"nombre" validate:"required,max=200"`
	Descripcion  string          `json:"descripcion,omitempty" validate:"max=500"`
	UnidadMedida string          `json:"unidad_medida" validate:"required,max=20"`
	StockMinimo  decimal.Decimal `json:"stock_minimo" validate:"gte=0"`
	CategoriaID  string          `json:"categoria_id" validate:"required,uuid"`
	AreaID       string          `json:"area_id,omitempty" validate:"omitempty,uuid"`
}

// UpdateMaterialRequest body de PUT /api/almacen/materiales/:id. El precio no es editable.
type UpdateMaterialRequest struct {
	Codigo       string          `json:"codigo" validate:"required,max=50"`
	Nombre       string          `json:"nombre" validate:"required,max=200"`
	Descripcion  string          `json:"descripcion,omitempty" validate:"max=500"`
	UnidadMedida string          `json:"unidad_medida" validate:"required,max=20"`
	StockMinimo  decimal.Decimal `json:"stock_minimo" validate:"gte=0"`
	CategoriaID  string          `json:"categoria_id" validate:"required,uuid"`
	AreaID       string          `json:"area_id,omitempty" validate:"omitempty,uuid"`
	Estado       string          `json:"estado" validate:"required,oneof=activo inactivo"`
}

// MaterialQuery filtros de GET /api/almacen/materiales.
type MaterialQuery struct {
	CategoriaID string `query:"categoria_id" validate:"omitempty,uuid"`
	Estado      string `query:"estado" validate:"omitempty,oneof=activo inactivo"`
	Busqueda    string `query:"q" validate:"max=100"`
	PageRequest
}

// StockAlmacenResponse cantidad de un material en un almacén.
type StockAlmacenResponse struct {
	AlmacenID string          `json:"almacen_id"`
	Cantidad  decimal.Decimal `json:"cantidad"`
}

// MaterialResponse salida de un material. Precio es la valorización total del stock.
type MaterialResponse struct {
	ID           string                 `json:"id"`
	Codigo       string                 `json:"codigo"`
	Nombre       string                 `json:"nombre"`
	Descripcion  string                 `json:"descripcion,omitempty"`
	UnidadMedida string                 `json:"unidad_medida"`
	StockMinimo  decimal.Decimal        `json:"stock_minimo"`
	CategoriaID  string                 `json:"categoria_id"`
	AreaID       string                 `json:"area_id,omitempty"`
	Estado       string                 `json:"estado"`
	Precio       decimal.Decimal        `json:"precio"`
	Stock        []StockAlmacenResponse `json:"stock,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
}
