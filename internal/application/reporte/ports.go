package reporte

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/mineria-admin/internal/domain/entity"
)

// ReporteInventario datos del reporte de inventario listos para exportar.
type ReporteInventario struct {
	Titulo     string
	Almacen    string // "Todos los almacenes" si no se filtró
	GeneradoEn time.Time
	Filas      []entity.NivelInventario
	ValorTotal decimal.Decimal
}

// InventarioExporter serializa el reporte de inventario a un formato de archivo.
type InventarioExporter interface {
	ExportInventario(ctx context.Context, rep *ReporteInventario) ([]byte, error)
}

// LineaVale línea de un vale impreso, con los datos del material ya resueltos.
type LineaVale struct {
	Codigo         string
	Material       string
	UnidadMedida   string
	Cantidad       decimal.Decimal
	PrecioUnitario decimal.Decimal // solo ingresos
	Talla          string          // solo EPP
}

// Vale representación imprimible de un movimiento (ingreso o salida).
type Vale struct {
	Tipo        string // "INGRESO" o "SALIDA"
	Numero      string
	Fecha       time.Time
	Almacen     string
	Contraparte string // proveedor o área solicitante
	Documento   string // número de guía/factura o nombre del solicitante
	Observacion string
	Lineas      []LineaVale
	Total       decimal.Decimal // cero en salidas
}

// ValeGenerator genera el PDF de un vale de movimiento.
type ValeGenerator interface {
	GenerateValePDF(ctx context.Context, vale *Vale) ([]byte, error)
}
