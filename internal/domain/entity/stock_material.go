package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockMaterial es la cantidad en mano de un material en un almacén (clave compuesta).
type StockMaterial struct {
	MaterialID string
	AlmacenID  string
	Cantidad   decimal.Decimal // siempre >= 0
	UpdatedAt  time.Time
}
