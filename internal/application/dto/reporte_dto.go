package dto

import "github.com/shopspring/decimal"

// InventarioQuery filtros de GET /api/reportes/inventario.
type InventarioQuery struct {
	AlmacenID   string `query:"almacen_id" validate:"omitempty,uuid"`
	CategoriaID string `query:"categoria_id" validate:"omitempty,uuid"`
	SoloActivos bool   `query:"solo_activos"`
	Formato     string `query:"formato" validate:"max=10"` // json (default), xlsx o pdf
}

// NivelInventarioDTO fila del reporte de inventario.
type NivelInventarioDTO struct {
	MaterialID   string                 `json:"material_id"`
	Codigo       string                 `json:"codigo"`
	Nombre       string                 `json:"nombre"`
	Categoria    string                 `json:"categoria"`
	UnidadMedida string                 `json:"unidad_medida"`
	StockMinimo  decimal.Decimal        `json:"stock_minimo"`
	StockTotal   decimal.Decimal        `json:"stock_total"`
	Valorizacion decimal.Decimal        `json:"valorizacion"`
	BajoMinimo   bool                   `json:"bajo_minimo"`
	PorAlmacen   []StockAlmacenResponse `json:"por_almacen"`
}

// ReporteInventarioDTO respuesta JSON del reporte de inventario.
type ReporteInventarioDTO struct {
	Filas      []NivelInventarioDTO `json:"filas"`
	ValorTotal decimal.Decimal      `json:"valor_total"`
}

// AlertaStockDTO material por debajo de su stock mínimo.
type AlertaStockDTO struct {
	MaterialID       string          `json:"material_id"`
	Codigo           string          `json:"codigo"`
	Nombre           string          `json:"nombre"`
	UnidadMedida     string          `json:"unidad_medida"`
	StockActual      decimal.Decimal `json:"stock_actual"`
	StockMinimo      decimal.Decimal `json:"stock_minimo"`
	StockIdeal       decimal.Decimal `json:"stock_ideal"`       // StockMinimo * 1.5
	CantidadSugerida decimal.Decimal `json:"cantidad_sugerida"` // StockIdeal - StockActual
	CostoUnitario    decimal.Decimal `json:"costo_unitario"`    // valorización / stock
	Prioridad        int             `json:"prioridad"`         // 1 = más urgente
}
