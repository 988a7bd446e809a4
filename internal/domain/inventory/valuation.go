package inventory

import "github.com/shopspring/decimal"

// ValorIngreso es el incremento de valorización que aporta una línea de ingreso:
// cantidad × precio unitario, redondeado a 2 decimales.
func ValorIngreso(cantidad, precioUnitario decimal.Decimal) decimal.Decimal {
	return cantidad.Mul(precioUnitario).Round(2)
}

// InferUnitCost deduce el costo unitario promedio ponderado a partir de la valorización
// total y del stock total previo a la salida. Sin stock previo el costo es 0.
func InferUnitCost(valuation, stockBeforeRemoval decimal.Decimal) decimal.Decimal {
	if stockBeforeRemoval.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return valuation.Div(stockBeforeRemoval)
}

// ValuationAfterIssue devuelve la valorización después de retirar cantidad unidades,
// dado el stock total (todos los almacenes) que queda tras el retiro.
// Si ya no queda stock la valorización es exactamente 0; nunca es negativa.
func ValuationAfterIssue(valuation, stockAfter, cantidad decimal.Decimal) decimal.Decimal {
	if stockAfter.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	costo := InferUnitCost(valuation, stockAfter.Add(cantidad))
	nuevo := valuation.Sub(cantidad.Mul(costo)).Round(2)
	if nuevo.IsNegative() {
		return decimal.Zero
	}
	return nuevo
}
