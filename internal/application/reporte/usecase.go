// Package reporte contiene los casos de uso de reportes exportables y vales impresos.
package reporte

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/mineria-admin/internal/application/dto"
	"github.com/jhoicas/mineria-admin/internal/application/inventory"
	"github.com/jhoicas/mineria-admin/internal/domain"
	"github.com/jhoicas/mineria-admin/internal/domain/access"
	"github.com/jhoicas/mineria-admin/internal/domain/repository"
)

// Formatos de exportación del reporte de inventario.
const (
	FormatoJSON = "json"
	FormatoXLSX = "xlsx"
	FormatoPDF  = "pdf"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePDF  = "application/pdf"
)

// Archivo resultado de una exportación.
type Archivo struct {
	Nombre      string
	ContentType string
	Contenido   []byte
}

// ReporteUseCase arma el reporte de inventario y los vales de movimientos.
type ReporteUseCase struct {
	invRepo       repository.InventarioRepository
	almacenRepo   repository.AlmacenRepository
	materialRepo  repository.MaterialRepository
	movRepo       repository.MovimientoRepository
	proveedorRepo repository.ProveedorRepository
	areaRepo      repository.AreaRepository
	excel         InventarioExporter
	pdf           InventarioExporter
	vales         ValeGenerator
	now           func() time.Time
}

// NewReporteUseCase construye el caso de uso inyectando todas sus dependencias.
func NewReporteUseCase(
	invRepo repository.InventarioRepository,
	almacenRepo repository.AlmacenRepository,
	materialRepo repository.MaterialRepository,
	movRepo repository.MovimientoRepository,
	proveedorRepo repository.ProveedorRepository,
	areaRepo repository.AreaRepository,
	excel InventarioExporter,
	pdf InventarioExporter,
	vales ValeGenerator,
) *ReporteUseCase {
	return &ReporteUseCase{
		invRepo:       invRepo,
		almacenRepo:   almacenRepo,
		materialRepo:  materialRepo,
		movRepo:       movRepo,
		proveedorRepo: proveedorRepo,
		areaRepo:      areaRepo,
		excel:         excel,
		pdf:           pdf,
		vales:         vales,
		now:           time.Now,
	}
}

// Inventario devuelve el stock por material (total y por almacén) con su valorización.
func (uc *ReporteUseCase) Inventario(ctx context.Context, p access.Principal, filtro repository.InventarioFiltro) (*ReporteInventario, error) {
	if !p.HasAccess(access.RutaReportes) {
		return nil, domain.ErrForbidden
	}

	almacen := "Todos los almacenes"
	if filtro.AlmacenID != "" {
		alm, err := uc.almacenRepo.GetByID(ctx, filtro.AlmacenID)
		if err != nil {
			return nil, fmt.Errorf("reporte: obtener almacén: %w", err)
		}
		if alm == nil {
			return nil, domain.ErrNotFound
		}
		almacen = alm.Nombre
	}

	filas, err := uc.invRepo.ListNiveles(ctx, filtro)
	if err != nil {
		return nil, fmt.Errorf("reporte: niveles de inventario: %w", err)
	}
	total := decimal.Zero
	for _, f := range filas {
		total = total.Add(f.Precio)
	}
	return &ReporteInventario{
		Titulo:     "Reporte de Inventario",
		Almacen:    almacen,
		GeneradoEn: uc.now(),
		Filas:      filas,
		ValorTotal: total.Round(2),
	}, nil
}

// ExportarInventario genera el reporte en xlsx o pdf.
func (uc *ReporteUseCase) ExportarInventario(ctx context.Context, p access.Principal, filtro repository.InventarioFiltro, formato string) (*Archivo, error) {
	var (
		exporter    InventarioExporter
		contentType string
	)
	switch strings.ToLower(formato) {
	case FormatoXLSX:
		exporter, contentType = uc.excel, contentTypeXLSX
	case FormatoPDF:
		exporter, contentType = uc.pdf, contentTypePDF
	default:
		return nil, domain.NewValidationError("formato", "Formato no soportado: "+formato)
	}

	rep, err := uc.Inventario(ctx, p, filtro)
	if err != nil {
		return nil, err
	}
	data, err := exporter.ExportInventario(ctx, rep)
	if err != nil {
		return nil, fmt.Errorf("reporte: exportar %s: %w", formato, err)
	}
	return &Archivo{
		Nombre:      fmt.Sprintf("inventario_%s.%s", rep.GeneradoEn.Format("20060102_1504"), strings.ToLower(formato)),
		ContentType: contentType,
		Contenido:   data,
	}, nil
}

// ValeIngreso genera el PDF de un ingreso registrado.
func (uc *ReporteUseCase) ValeIngreso(ctx context.Context, p access.Principal, id string) (*Archivo, error) {
	if !p.HasAccess(inventory.RutaIngresos) {
		return nil, domain.ErrForbidden
	}
	ing, err := uc.movRepo.GetIngreso(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("vale: obtener ingreso: %w", err)
	}
	if ing == nil {
		return nil, domain.ErrNotFound
	}

	vale := &Vale{
		Tipo:        "INGRESO",
		Numero:      numeroVale(ing.ID),
		Fecha:       ing.Fecha,
		Almacen:     uc.nombreAlmacen(ctx, ing.AlmacenID),
		Contraparte: "—",
		Documento:   ing.NumeroDocumento,
		Observacion: ing.Observaciones,
		Total:       ing.Total(),
	}
	if ing.ProveedorID != "" {
		if prov, err := uc.proveedorRepo.GetByID(ctx, ing.ProveedorID); err == nil && prov != nil {
			vale.Contraparte = prov.RazonSocial + " (RUC " + prov.RUC + ")"
		}
	}
	for _, d := range ing.Detalles {
		l := uc.lineaVale(ctx, d.MaterialID, d.Cantidad)
		l.PrecioUnitario = d.PrecioUnitario
		vale.Lineas = append(vale.Lineas, l)
	}
	return uc.generarVale(ctx, vale)
}

// ValeSalida genera el PDF de una salida registrada.
func (uc *ReporteUseCase) ValeSalida(ctx context.Context, p access.Principal, id string) (*Archivo, error) {
	if !p.HasAccess(inventory.RutaSalidas) {
		return nil, domain.ErrForbidden
	}
	sal, err := uc.movRepo.GetSalida(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("vale: obtener salida: %w", err)
	}
	if sal == nil {
		return nil, domain.ErrNotFound
	}

	vale := &Vale{
		Tipo:        "SALIDA",
		Numero:      numeroVale(sal.ID),
		Fecha:       sal.Fecha,
		Almacen:     uc.nombreAlmacen(ctx, sal.AlmacenID),
		Contraparte: "—",
		Documento:   sal.Solicitante,
		Observacion: sal.Observaciones,
	}
	if area, err := uc.areaRepo.GetByID(ctx, sal.AreaID); err == nil && area != nil {
		vale.Contraparte = area.Nombre
	}
	for _, d := range sal.Detalles {
		vale.Lineas = append(vale.Lineas, uc.lineaVale(ctx, d.MaterialID, d.Cantidad))
	}
	return uc.generarVale(ctx, vale)
}

func (uc *ReporteUseCase) generarVale(ctx context.Context, vale *Vale) (*Archivo, error) {
	data, err := uc.vales.GenerateValePDF(ctx, vale)
	if err != nil {
		return nil, fmt.Errorf("vale: generación fallida: %w", err)
	}
	return &Archivo{
		Nombre:      fmt.Sprintf("vale_%s_%s.pdf", strings.ToLower(vale.Tipo), vale.Numero),
		ContentType: contentTypePDF,
		Contenido:   data,
	}, nil
}

func (uc *ReporteUseCase) nombreAlmacen(ctx context.Context, id string) string {
	if alm, err := uc.almacenRepo.GetByID(ctx, id); err == nil && alm != nil {
		return alm.Nombre
	}
	return id
}

func (uc *ReporteUseCase) lineaVale(ctx context.Context, materialID string, cantidad decimal.Decimal) LineaVale {
	l := LineaVale{Codigo: "—", Material: "Material " + materialID, Cantidad: cantidad} // fallback
	if mat, err := uc.materialRepo.GetByID(ctx, materialID); err == nil && mat != nil {
		l.Codigo, l.Material, l.UnidadMedida = mat.Codigo, mat.Nombre, mat.UnidadMedida
	}
	return l
}

// numeroVale número corto y legible derivado del UUID del movimiento.
func numeroVale(id string) string {
	n := strings.ToUpper(strings.ReplaceAll(id, "-", ""))
	if len(n) > 8 {
		n = n[:8]
	}
	return n
}

// ToReporteDTO mapea el reporte a la respuesta JSON.
func ToReporteDTO(rep *ReporteInventario) dto.ReporteInventarioDTO {
	out := dto.ReporteInventarioDTO{
		Filas:      make([]dto.NivelInventarioDTO, 0, len(rep.Filas)),
		ValorTotal: rep.ValorTotal,
	}
	for _, f := range rep.Filas {
		fila := dto.NivelInventarioDTO{
			MaterialID:   f.MaterialID,
			Codigo:       f.Codigo,
			Nombre:       f.Nombre,
			Categoria:    f.Categoria,
			UnidadMedida: f.UnidadMedida,
			StockMinimo:  f.StockMinimo,
			StockTotal:   f.StockTotal,
			Valorizacion: f.Precio,
			BajoMinimo:   f.BajoMinimo(),
			PorAlmacen:   make([]dto.StockAlmacenResponse, 0, len(f.PorAlmacen)),
		}
		for _, s := range f.PorAlmacen {
			fila.PorAlmacen = append(fila.PorAlmacen, dto.StockAlmacenResponse{AlmacenID: s.AlmacenID, Cantidad: s.Cantidad})
		}
		out.Filas = append(out.Filas, fila)
	}
	return out
}
