// Package excel exporta el reporte de inventario a .xlsx con excelize.
package excel

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/mineria-admin/internal/application/reporte"
)

var _ reporte.InventarioExporter = (*InventarioExporter)(nil)

const hoja = "Inventario"

var columnasFijas = []string{"Código", "Material", "Categoría", "Unidad", "Stock total", "Stock mínimo", "Valorización (S/)", "Bajo mínimo"}

// InventarioExporter genera una hoja con una fila por material y una columna de stock por almacén.
type InventarioExporter struct{}

func NewInventarioExporter() *InventarioExporter { return &InventarioExporter{} }

// ExportInventario devuelve el contenido del .xlsx.
func (e *InventarioExporter) ExportInventario(_ context.Context, rep *reporte.ReporteInventario) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", hoja); err != nil {
		return nil, fmt.Errorf("excel: hoja: %w", err)
	}

	// Almacenes en orden de aparición para las columnas dinámicas.
	var almacenes []string
	colAlmacen := make(map[string]int)
	for _, fila := range rep.Filas {
		for _, s := range fila.PorAlmacen {
			if _, ok := colAlmacen[s.AlmacenID]; !ok {
				colAlmacen[s.AlmacenID] = len(columnasFijas) + len(almacenes) + 1
				almacenes = append(almacenes, s.Almacen)
			}
		}
	}

	estilos, err := newEstilos(f)
	if err != nil {
		return nil, err
	}

	set := func(col, row int, v any) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return f.SetCellValue(hoja, cell, v)
	}

	if err := set(1, 1, rep.Titulo+" - "+rep.Almacen); err != nil {
		return nil, fmt.Errorf("excel: título: %w", err)
	}
	if err := set(1, 2, "Generado: "+rep.GeneradoEn.Format("02/01/2006 15:04")); err != nil {
		return nil, fmt.Errorf("excel: fecha: %w", err)
	}
	_ = f.SetCellStyle(hoja, "A1", "A1", estilos.titulo)

	const filaHeader = 4
	headers := append(append([]string{}, columnasFijas...), almacenes...)
	for i, h := range headers {
		if err := set(i+1, filaHeader, h); err != nil {
			return nil, fmt.Errorf("excel: cabecera: %w", err)
		}
	}
	ultimaCol, _ := excelize.ColumnNumberToName(len(headers))
	_ = f.SetCellStyle(hoja, "A4", fmt.Sprintf("%s%d", ultimaCol, filaHeader), estilos.header)

	r := filaHeader + 1
	for _, fila := range rep.Filas {
		bajo := "No"
		if fila.BajoMinimo() {
			bajo = "Sí"
		}
		valores := []any{
			fila.Codigo, fila.Nombre, fila.Categoria, fila.UnidadMedida,
			fila.StockTotal.InexactFloat64(), fila.StockMinimo.InexactFloat64(), fila.Precio.Round(2).InexactFloat64(), bajo,
		}
		for i, v := range valores {
			if err := set(i+1, r, v); err != nil {
				return nil, fmt.Errorf("excel: fila %d: %w", r, err)
			}
		}
		for _, s := range fila.PorAlmacen {
			if err := set(colAlmacen[s.AlmacenID], r, s.Cantidad.InexactFloat64()); err != nil {
				return nil, fmt.Errorf("excel: fila %d: %w", r, err)
			}
		}
		r++
	}
	if len(rep.Filas) > 0 {
		_ = f.SetCellStyle(hoja, fmt.Sprintf("G%d", filaHeader+1), fmt.Sprintf("G%d", r-1), estilos.moneda)
	}

	if err := set(6, r+1, "VALOR TOTAL"); err != nil {
		return nil, fmt.Errorf("excel: total: %w", err)
	}
	if err := set(7, r+1, rep.ValorTotal.Round(2).InexactFloat64()); err != nil {
		return nil, fmt.Errorf("excel: total: %w", err)
	}
	_ = f.SetCellStyle(hoja, fmt.Sprintf("F%d", r+1), fmt.Sprintf("G%d", r+1), estilos.total)

	_ = f.SetColWidth(hoja, "A", "A", 14)
	_ = f.SetColWidth(hoja, "B", "B", 36)
	_ = f.SetColWidth(hoja, "C", "C", 18)
	_ = f.SetColWidth(hoja, "D", ultimaCol, 14)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: escribir: %w", err)
	}
	return buf.Bytes(), nil
}

type estilos struct {
	titulo, header, moneda, total int
}

func newEstilos(f *excelize.File) (estilos, error) {
	var (
		e   estilos
		err error
	)
	if e.titulo, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}}); err != nil {
		return e, fmt.Errorf("excel: estilo: %w", err)
	}
	e.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#964B00"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return e, fmt.Errorf("excel: estilo: %w", err)
	}
	if e.moneda, err = f.NewStyle(&excelize.Style{NumFmt: 4}); err != nil {
		return e, fmt.Errorf("excel: estilo: %w", err)
	}
	if e.total, err = f.NewStyle(&excelize.Style{NumFmt: 4, Font: &excelize.Font{Bold: true}}); err != nil {
		return e, fmt.Errorf("excel: estilo: %w", err)
	}
	return e, nil
}
