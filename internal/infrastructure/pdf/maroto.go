// Package pdf genera con Maroto v2 los vales de ingreso/salida y el reporte de inventario.
package pdf

import (
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

var (
	colorPrimary = &props.Color{Red: 150, Green: 75, Blue: 0}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// columna describe una columna de tabla: título, ancho en la grilla de 12 y alineación.
type columna struct {
	titulo string
	ancho  int
	align  align.Type
}

func headerTabla(cols []columna) core.Row {
	r := row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
	for _, c := range cols {
		r.Add(col.New(c.ancho).Add(text.New(c.titulo, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: c.align,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	return r
}

func filaTabla(cols []columna, valores []string) core.Row {
	r := row.New(7)
	for i, c := range cols {
		r.Add(col.New(c.ancho).Add(text.New(valores[i], props.Text{
			Size: 8, Align: c.align, Top: 1, Left: 1, Right: 1,
		})))
	}
	return r
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
