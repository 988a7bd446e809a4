package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/mineria-admin/internal/domain"
	"github.com/jhoicas/mineria-admin/internal/domain/access"
	"github.com/jhoicas/mineria-admin/internal/domain/entity"
	"github.com/jhoicas/mineria-admin/internal/domain/repository"
)

// GetIngreso devuelve un ingreso con sus detalles.
func (uc *MovimientoUseCase) GetIngreso(ctx context.Context, p access.Principal, id string) (*entity.Ingreso, error) {
	if !p.HasAccess(RutaIngresos) {
		return nil, domain.ErrForbidden
	}
	ing, err := uc.movRepo.GetIngreso(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get ingreso: %w", err)
	}
	if ing == nil {
		return nil, domain.ErrNotFound
	}
	return ing, nil
}

// ListIngresos historial de ingresos, más recientes primero.
func (uc *MovimientoUseCase) ListIngresos(ctx context.Context, p access.Principal, filtro repository.MovimientoFiltro) ([]*entity.Ingreso, error) {
	if !p.HasAccess(RutaIngresos) {
		return nil, domain.ErrForbidden
	}
	return uc.movRepo.ListIngresos(ctx, normalizarFiltro(filtro))
}

func (uc *MovimientoUseCase) GetSalida(ctx context.Context, p access.Principal, id string) (*entity.Salida, error) {
	if !p.HasAccess(RutaSalidas) {
		return nil, domain.ErrForbidden
	}
	sal, err := uc.movRepo.GetSalida(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get salida: %w", err)
	}
	if sal == nil {
		return nil, domain.ErrNotFound
	}
	return sal, nil
}

func (uc *MovimientoUseCase) ListSalidas(ctx context.Context, p access.Principal, filtro repository.MovimientoFiltro) ([]*entity.Salida, error) {
	if !p.HasAccess(RutaSalidas) {
		return nil, domain.ErrForbidden
	}
	return uc.movRepo.ListSalidas(ctx, normalizarFiltro(filtro))
}

func (uc *MovimientoUseCase) GetEntregaEPP(ctx context.Context, p access.Principal, id string) (*entity.EntregaEPP, error) {
	if !p.HasAccess(access.RutaEntregaEPP) {
		return nil, domain.ErrForbidden
	}
	ent, err := uc.movRepo.GetEntregaEPP(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get entrega epp: %w", err)
	}
	if ent == nil {
		return nil, domain.ErrNotFound
	}
	return ent, nil
}

func (uc *MovimientoUseCase) ListEntregasEPP(ctx context.Context, p access.Principal, filtro repository.MovimientoFiltro) ([]*entity.EntregaEPP, error) {
	if !p.HasAccess(access.RutaEntregaEPP) {
		return nil, domain.ErrForbidden
	}
	return uc.movRepo.ListEntregasEPP(ctx, normalizarFiltro(filtro))
}
