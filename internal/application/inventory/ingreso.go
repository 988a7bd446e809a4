package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/mineria-admin/internal/domain"
	"github.com/jhoicas/mineria-admin/internal/domain/access"
	"github.com/jhoicas/mineria-admin/internal/domain/entity"
	valuation "github.com/jhoicas/mineria-admin/internal/domain/inventory"
)

// LineaIngreso material recibido con su precio unitario de compra.
type LineaIngreso struct {
	MaterialID     string
	Cantidad       decimal.Decimal
	PrecioUnitario decimal.Decimal
}

// IngresoInput entrada para registrar un ingreso. Fecha cero = ahora.
type IngresoInput struct {
	AlmacenID       string
	ProveedorID     string
	Fecha           time.Time
	NumeroDocumento string
	Observaciones   string
	ComprobanteURL  string
	Lineas          []LineaIngreso
}

func validarIngreso(in IngresoInput) error {
	if in.AlmacenID == "" {
		return domain.NewValidationError("almacen_id", "El almacén es obligatorio")
	}
	if len(in.Lineas) == 0 {
		return domain.NewValidationError("lineas", "Debe registrar al menos un material")
	}
	for i, l := range in.Lineas {
		if err := validarCantidad(i, l.MaterialID, l.Cantidad); err != nil {
			return err
		}
		if l.PrecioUnitario.IsNegative() {
			return domain.NewValidationError(fmt.Sprintf("lineas[%d].precio_unitario", i), "El precio unitario no puede ser negativo")
		}
		if excedeDecimales(l.PrecioUnitario) {
			return domain.NewValidationError(fmt.Sprintf("lineas[%d].precio_unitario", i),
				fmt.Sprintf("El precio unitario admite hasta %d decimales", decimalesCantidad))
		}
	}
	return nil
}

// RegisterIngreso registra la recepción de materiales en un almacén: suma cada línea al stock
// del par (material, almacén) y aumenta la valorización del material en cantidad × precio unitario.
// Reenviar el mismo ingreso crea un segundo movimiento independiente.
func (uc *MovimientoUseCase) RegisterIngreso(ctx context.Context, p access.Principal, in IngresoInput) (*entity.Ingreso, error) {
	if !p.CanEdit(RutaIngresos) {
		return nil, domain.ErrForbidden
	}
	if err := validarIngreso(in); err != nil {
		return nil, err
	}
	if err := uc.validarAlmacen(ctx, in.AlmacenID); err != nil {
		return nil, err
	}
	if in.ProveedorID != "" {
		prov, err := uc.proveedorRepo.GetByID(ctx, in.ProveedorID)
		if err != nil {
			return nil, fmt.Errorf("get proveedor: %w", err)
		}
		if prov == nil {
			return nil, domain.NewValidationError("proveedor_id", "El proveedor no existe")
		}
	}

	now := uc.now()
	ingreso := &entity.Ingreso{
		ID:              uuid.New().String(),
		Fecha:           fechaOAhora(in.Fecha, now),
		UsuarioID:       p.ID,
		AlmacenID:       in.AlmacenID,
		ProveedorID:     in.ProveedorID,
		NumeroDocumento: in.NumeroDocumento,
		Observaciones:   in.Observaciones,
		ComprobanteURL:  in.ComprobanteURL,
		CreatedAt:       now,
		Detalles:        make([]entity.DetalleIngreso, 0, len(in.Lineas)),
	}
	for _, l := range in.Lineas {
		ingreso.Detalles = append(ingreso.Detalles, entity.DetalleIngreso{
			ID:             uuid.New().String(),
			IngresoID:      ingreso.ID,
			MaterialID:     l.MaterialID,
			Cantidad:       l.Cantidad,
			PrecioUnitario: l.PrecioUnitario,
		})
	}

	err := uc.txRunner.Run(ctx, func(ctx context.Context, r TxRepos) error {
		lineas := ordenarPorMaterial(ingreso.Detalles, func(d entity.DetalleIngreso) string { return d.MaterialID })
		for _, d := range lineas {
			mat, err := r.Materiales.GetForUpdate(ctx, d.MaterialID)
			if err != nil {
				return err
			}
			if mat == nil {
				return fmt.Errorf("material %s: %w", d.MaterialID, domain.ErrNotFound)
			}
			precio := mat.Precio.Add(valuation.ValorIngreso(d.Cantidad, d.PrecioUnitario))
			if err := r.Materiales.UpdatePrecio(ctx, mat.ID, precio); err != nil {
				return err
			}
			if err := r.Stock.Increment(ctx, mat.ID, ingreso.AlmacenID, d.Cantidad); err != nil {
				return err
			}
		}
		return r.Movimientos.CreateIngreso(ctx, ingreso)
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("almacen_id", in.AlmacenID).Str("usuario_id", p.ID).Msg("ingreso no registrado")
		return nil, err
	}

	uc.invalidarDashboard(ctx)
	uc.log.Info().
		Str("ingreso_id", ingreso.ID).
		Str("almacen_id", ingreso.AlmacenID).
		Int("lineas", len(ingreso.Detalles)).
		Str("total", ingreso.Total().String()).
		Msg("ingreso registrado")
	return ingreso, nil
}
