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
)

// LineaEntregaEPP equipo entregado; Talla opcional.
type LineaEntregaEPP struct {
	MaterialID string
	Cantidad   decimal.Decimal
	Talla      string
}

// EntregaEPPInput entrada para registrar una entrega de EPP a un trabajador.
type EntregaEPPInput struct {
	AlmacenID     string
	TrabajadorID  string
	Fecha         time.Time
	Observaciones string
	Lineas        []LineaEntregaEPP
}

func validarEntregaEPP(in EntregaEPPInput) error {
	if in.AlmacenID == "" {
		return domain.NewValidationError("almacen_id", "El almacén es obligatorio")
	}
	if in.TrabajadorID == "" {
		return domain.NewValidationError("trabajador_id", "El trabajador es obligatorio")
	}
	if len(in.Lineas) == 0 {
		return domain.NewValidationError("lineas", "Debe registrar al menos un equipo")
	}
	for i, l := range in.Lineas {
		if err := validarCantidad(i, l.MaterialID, l.Cantidad); err != nil {
			return err
		}
	}
	return nil
}

// RegisterEntregaEPP entrega equipo de protección a un trabajador activo descontando stock
// del almacén de origen. La valorización del material no se modifica.
func (uc *MovimientoUseCase) RegisterEntregaEPP(ctx context.Context, p access.Principal, in EntregaEPPInput) (*entity.EntregaEPP, error) {
	if !p.CanEdit(access.RutaEntregaEPP) {
		return nil, domain.ErrForbidden
	}
	if err := validarEntregaEPP(in); err != nil {
		return nil, err
	}
	if err := uc.validarAlmacen(ctx, in.AlmacenID); err != nil {
		return nil, err
	}
	trab, err := uc.trabajadorRepo.GetByID(ctx, in.TrabajadorID)
	if err != nil {
		return nil, fmt.Errorf("get trabajador: %w", err)
	}
	if trab == nil || trab.Estado != entity.EstadoActivo {
		return nil, domain.NewValidationError("trabajador_id", "El trabajador no existe o está inactivo")
	}

	now := uc.now()
	entrega := &entity.EntregaEPP{
		ID:            uuid.New().String(),
		Fecha:         fechaOAhora(in.Fecha, now),
		UsuarioID:     p.ID,
		AlmacenID:     in.AlmacenID,
		TrabajadorID:  in.TrabajadorID,
		Observaciones: in.Observaciones,
		CreatedAt:     now,
		Detalles:      make([]entity.DetalleEntregaEPP, 0, len(in.Lineas)),
	}
	for _, l := range in.Lineas {
		entrega.Detalles = append(entrega.Detalles, entity.DetalleEntregaEPP{
			ID:         uuid.New().String(),
			EntregaID:  entrega.ID,
			MaterialID: l.MaterialID,
			Cantidad:   l.Cantidad,
			Talla:      l.Talla,
		})
	}

	err = uc.txRunner.Run(ctx, func(ctx context.Context, r TxRepos) error {
		lineas := ordenarPorMaterial(entrega.Detalles, func(d entity.DetalleEntregaEPP) string { return d.MaterialID })
		for _, d := range lineas {
			if _, err := descontarStock(ctx, r, d.MaterialID, entrega.AlmacenID, d.Cantidad); err != nil {
				return err
			}
		}
		return r.Movimientos.CreateEntregaEPP(ctx, entrega)
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("trabajador_id", in.TrabajadorID).Str("usuario_id", p.ID).Msg("entrega de EPP no registrada")
		return nil, err
	}

	uc.invalidarDashboard(ctx)
	uc.log.Info().
		Str("entrega_id", entrega.ID).
		Str("trabajador_id", entrega.TrabajadorID).
		Int("lineas", len(entrega.Detalles)).
		Msg("entrega de EPP registrada")
	return entrega, nil
}
