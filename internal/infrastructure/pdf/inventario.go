package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/mineria-admin/internal/application/reporte"
	"github.com/jhoicas/mineria-admin/internal/domain/entity"
	"github.com/jhoicas/mineria-admin/pkg/format"
)

var _ reporte.InventarioExporter = (*InventarioExporter)(nil)

var columnasInventario = []columna{
	{"Código", 1, align.Left},
	{"Material", 3, align.Left},
	{"Categoría", 2, align.Left},
	{"Und.", 1, align.Center},
	{"Stock", 1, align.Right},
	{"Mínimo", 1, align.Right},
	{"Valorización", 2, align.Right},
	{"Estado", 1, align.Center},
}

// InventarioExporter reporte de inventario en A4 horizontal.
type InventarioExporter struct{}

func NewInventarioExporter() *InventarioExporter { return &InventarioExporter{} }

// ExportInventario imprime una fila por material y el desglose por almacén debajo cuando hay más de uno.
func (e *InventarioExporter) ExportInventario(_ context.Context, rep *reporte.ReporteInventario) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle(rep.Titulo, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(row.New(16).Add(
		col.New(8).Add(
			text.New(rep.Titulo, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New(rep.Almacen, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(text.New("Generado: "+rep.GeneradoEn.Format("02/01/2006 15:04"), props.Text{
			Size: 8, Align: align.Right, Top: 9, Color: colorGray,
		})),
	))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(headerTabla(columnasInventario))

	for _, f := range rep.Filas {
		m.AddRows(filaTabla(columnasInventario, filaInventario(f)))
		if len(f.PorAlmacen) > 1 {
			m.AddRows(row.New(5).Add(
				col.New(1),
				col.New(11).Add(text.New(desglose(f.PorAlmacen), props.Text{Size: 7, Color: colorGray, Left: 1})),
			))
		}
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(row.New(8).Add(
		col.New(7),
		col.New(2).Add(text.New("VALOR TOTAL:", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2})),
		col.New(2).Add(text.New(format.Money(rep.ValorTotal), props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Top: 2, Right: 1,
		})),
		col.New(1),
	))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar inventario: %w", err)
	}
	return doc.GetBytes(), nil
}

func filaInventario(f entity.NivelInventario) []string {
	estado := "OK"
	if f.BajoMinimo() {
		estado = "BAJO MÍN."
	}
	return []string{
		f.Codigo, f.Nombre, f.Categoria, f.UnidadMedida,
		format.Quantity(f.StockTotal), format.Quantity(f.StockMinimo), format.Money(f.Precio), estado,
	}
}

func desglose(porAlmacen []entity.StockPorAlmacen) string {
	partes := make([]string, 0, len(porAlmacen))
	for _, s := range porAlmacen {
		partes = append(partes, s.Almacen+": "+format.Quantity(s.Cantidad))
	}
	return strings.Join(partes, "  |  ")
}
