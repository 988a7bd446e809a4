package entity

import "github.com/shopspring/decimal"

// NivelInventario es una fila del reporte de inventario: un material con su stock total,
// el desglose por almacén y su valorización. Es un modelo de lectura, no se persiste.
type NivelInventario struct {
	MaterialID   string
	Codigo       string
	Nombre       string
	Categoria    string
	UnidadMedida string
	Estado       string
	StockMinimo  decimal.Decimal
	StockTotal   decimal.Decimal
	Precio       decimal.Decimal
	PorAlmacen   []StockPorAlmacen
}

// StockPorAlmacen cantidad de un material en un almacén concreto.
type StockPorAlmacen struct {
	AlmacenID string
	Almacen   string
	Cantidad  decimal.Decimal
}

// BajoMinimo indica si el stock total está por debajo del stock mínimo configurado.
func (n NivelInventario) BajoMinimo() bool {
	return n.StockMinimo.GreaterThan(decimal.Zero) && n.StockTotal.LessThan(n.StockMinimo)
}

// Deficit devuelve cuánto falta para llegar al stock mínimo (0 si no falta).
func (n NivelInventario) Deficit() decimal.Decimal {
	d := n.StockMinimo.Sub(n.StockTotal)
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
