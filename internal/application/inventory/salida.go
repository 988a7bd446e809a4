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

// LineaSalida material despachado.
type LineaSalida struct {
	MaterialID string
	Cantidad   decimal.Decimal
}

// SalidaInput entrada para registrar una salida hacia un área solicitante.
type SalidaInput struct {
	AlmacenID     string
	AreaID        string
	Solicitante   string
	Fecha         time.Time
	Observaciones string
	Lineas        []LineaSalida
}

func validarSalida(in SalidaInput) error {
	if in.AlmacenID == "" {
		return domain.NewValidationError("almacen_id", "El almacén es obligatorio")
	}
	if in.AreaID == "" {
		return domain.NewValidationError("area_id", "El área solicitante es obligatoria")
	}
	if len(in.Lineas) == 0 {
		return domain.NewValidationError("lineas", "Debe registrar al menos un material")
	}
	for i, l := range in.Lineas {
		if err := validarCantidad(i, l.MaterialID, l.Cantidad); err != nil {
			return err
		}
	}
	return nil
}

// RegisterSalida despacha materiales de un almacén. Por cada línea verifica el stock disponible
// bajo bloqueo, lo descuenta y reduce la valorización del material al costo promedio inferido.
// Si alguna línea no tiene stock suficiente se devuelve InsufficientStockError y no se aplica nada.
func (uc *MovimientoUseCase) RegisterSalida(ctx context.Context, p access.Principal, in SalidaInput) (*entity.Salida, error) {
	if !p.CanEdit(RutaSalidas) {
		return nil, domain.ErrForbidden
	}
	if err := validarSalida(in); err != nil {
		return nil, err
	}
	if err := uc.validarAlmacen(ctx, in.AlmacenID); err != nil {
		return nil, err
	}
	area, err := uc.areaRepo.GetByID(ctx, in.AreaID)
	if err != nil {
		return nil, fmt.Errorf("get area: %w", err)
	}
	if area == nil {
		return nil, domain.NewValidationError("area_id", "El área no existe")
	}

	now := uc.now()
	salida := &entity.Salida{
		ID:            uuid.New().String(),
		Fecha:         fechaOAhora(in.Fecha, now),
		UsuarioID:     p.ID,
		AlmacenID:     in.AlmacenID,
		AreaID:        in.AreaID,
		Solicitante:   in.Solicitante,
		Observaciones: in.Observaciones,
		CreatedAt:     now,
		Detalles:      make([]entity.DetalleSalida, 0, len(in.Lineas)),
	}
	for _, l := range in.Lineas {
		salida.Detalles = append(salida.Detalles, entity.DetalleSalida{
			ID:         uuid.New().String(),
			SalidaID:   salida.ID,
			MaterialID: l.MaterialID,
			Cantidad:   l.Cantidad,
		})
	}

	err = uc.txRunner.Run(ctx, func(ctx context.Context, r TxRepos) error {
		lineas := ordenarPorMaterial(salida.Detalles, func(d entity.DetalleSalida) string { return d.MaterialID })
		for _, d := range lineas {
			mat, err := descontarStock(ctx, r, d.MaterialID, salida.AlmacenID, d.Cantidad)
			if err != nil {
				return err
			}
			// total en todos los almacenes, ya descontada esta línea
			totalDespues, err := r.Stock.TotalByMaterial(ctx, mat.ID)
			if err != nil {
				return err
			}
			precio := valuation.ValuationAfterIssue(mat.Precio, totalDespues, d.Cantidad)
			if err := r.Materiales.UpdatePrecio(ctx, mat.ID, precio); err != nil {
				return err
			}
		}
		return r.Movimientos.CreateSalida(ctx, salida)
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("almacen_id", in.AlmacenID).Str("usuario_id", p.ID).Msg("salida no registrada")
		return nil, err
	}

	uc.invalidarDashboard(ctx)
	uc.log.Info().
		Str("salida_id", salida.ID).
		Str("almacen_id", salida.AlmacenID).
		Str("area_id", salida.AreaID).
		Int("lineas", len(salida.Detalles)).
		Msg("salida registrada")
	return salida, nil
}
