package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/mineria-admin/internal/application/reporte"
	"github.com/jhoicas/mineria-admin/pkg/format"
)

var _ reporte.ValeGenerator = (*ValeGenerator)(nil)

// ValeGenerator imprime un vale de almacén en A4:
//
//	┌──────────────────────────────────────────────┐
//	│ VALE DE INGRESO/SALIDA    │ N° + Fecha       │
//	│ Almacén / Contraparte / Documento            │
//	│ TABLA: Código | Material | Und | Cant | ...  │
//	│ Total (solo ingresos)                        │
//	│ QR con el N° + firmas                        │
//	└──────────────────────────────────────────────┘
type ValeGenerator struct {
	empresa string
}

// NewValeGenerator construye el generador; empresa se imprime en la cabecera.
func NewValeGenerator(empresa string) *ValeGenerator {
	return &ValeGenerator{empresa: empresa}
}

// GenerateValePDF genera el PDF y devuelve sus bytes.
func (g *ValeGenerator) GenerateValePDF(_ context.Context, vale *reporte.Vale) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Vale de "+vale.Tipo+" "+vale.Numero, true).
		WithAuthor(g.empresa, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(valeHeader(g.empresa, vale))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(valeDatos(vale))
	m.AddRows(line.NewRow(3))

	cols := valeColumnas(vale)
	m.AddRows(headerTabla(cols))
	for _, l := range vale.Lineas {
		m.AddRows(filaTabla(cols, valeFila(vale, l)))
	}

	if vale.Tipo == "INGRESO" {
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
		m.AddRows(row.New(8).Add(
			col.New(8),
			col.New(2).Add(text.New("TOTAL:", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 2})),
			col.New(2).Add(text.New(format.Money(vale.Total), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 1,
			})),
		))
	}

	m.AddRows(line.NewRow(10))
	m.AddRows(valeFirmas(vale)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar vale: %w", err)
	}
	return doc.GetBytes(), nil
}

func valeHeader(empresa string, vale *reporte.Vale) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(empresa, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New("Administración de Almacén", props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("VALE DE "+vale.Tipo, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("N° "+vale.Numero, props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7}),
			text.New("Fecha: "+format.Date(vale.Fecha), props.Text{Size: 8, Align: align.Right, Top: 14, Color: colorGray}),
		),
	)
}

func valeDatos(vale *reporte.Vale) core.Row {
	contraparte, documento := "Proveedor", "Guía / Factura"
	if vale.Tipo != "INGRESO" {
		contraparte, documento = "Área solicitante", "Solicitante"
	}
	return row.New(20).Add(
		col.New(12).Add(
			text.New("Almacén: "+vale.Almacen, props.Text{Size: 9, Top: 1}),
			text.New(contraparte+": "+nonEmpty(vale.Contraparte, "—"), props.Text{Size: 9, Top: 6}),
			text.New(documento+": "+nonEmpty(vale.Documento, "—"), props.Text{Size: 9, Top: 11}),
			text.New("Observaciones: "+nonEmpty(vale.Observacion, "—"), props.Text{Size: 8, Top: 16, Color: colorGray}),
		),
	)
}

func valeColumnas(vale *reporte.Vale) []columna {
	if vale.Tipo == "INGRESO" {
		return []columna{
			{"Código", 2, align.Left},
			{"Material", 4, align.Left},
			{"Und.", 1, align.Center},
			{"Cantidad", 1, align.Right},
			{"P. Unit.", 2, align.Right},
			{"Subtotal", 2, align.Right},
		}
	}
	return []columna{
		{"Código", 2, align.Left},
		{"Material", 6, align.Left},
		{"Und.", 2, align.Center},
		{"Cantidad", 2, align.Right},
	}
}

func valeFila(vale *reporte.Vale, l reporte.LineaVale) []string {
	if vale.Tipo == "INGRESO" {
		return []string{
			l.Codigo, l.Material, l.UnidadMedida, format.Quantity(l.Cantidad),
			format.Money(l.PrecioUnitario), format.Money(l.Cantidad.Mul(l.PrecioUnitario)),
		}
	}
	return []string{l.Codigo, l.Material, l.UnidadMedida, format.Quantity(l.Cantidad)}
}

// valeFirmas: QR con el número del vale y espacios de firma de almacenero y receptor.
func valeFirmas(vale *reporte.Vale) []core.Row {
	firma := func(s string) core.Component {
		return text.New("______________________\n"+s, props.Text{Size: 8, Align: align.Center, Top: 18})
	}
	return []core.Row{
		row.New(35).Add(
			col.New(3).Add(code.NewQr(vale.Tipo+":"+vale.Numero, props.Rect{Percent: 90, Center: true})),
			col.New(1),
			col.New(4).Add(firma("Almacenero")),
			col.New(4).Add(firma("Recibí conforme")),
		),
	}
}
