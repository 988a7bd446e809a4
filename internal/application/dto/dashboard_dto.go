package dto

import "github.com/shopspring/decimal"

// DashboardDTO respuesta de GET /api/dashboard.
// Los contadores de movimientos corresponden al mes en curso.
type DashboardDTO struct {
	MaterialesActivos int             `json:"materiales_activos"`
	ValorInventario   decimal.Decimal `json:"valor_inventario"` // suma de valorizaciones
	BajoMinimo        int             `json:"bajo_minimo"`
	IngresosMes       int             `json:"ingresos_mes"`
	SalidasMes        int             `json:"salidas_mes"`
	EntregasEPPMes    int             `json:"entregas_epp_mes"`

	DateLabel string `json:"date_label"` // ej: "Octubre 2026"
}
