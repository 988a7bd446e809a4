package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/mineria-admin/internal/application/dto"
	"github.com/jhoicas/mineria-admin/internal/domain"
	"github.com/jhoicas/mineria-admin/internal/domain/access"
	"github.com/jhoicas/mineria-admin/internal/domain/entity"
	"github.com/jhoicas/mineria-admin/internal/domain/repository"
)

// RutaAlmacenes página de administración de almacenes.
const RutaAlmacenes = "/almacen/almacenes"

var errAlmacenDuplicado = domain.NewValidationError("nombre", "Ya existe un almacén con ese nombre")

// AlmacenUseCase casos de uso CRUD para almacenes.
type AlmacenUseCase struct {
	repo      repository.AlmacenRepository
	stockRepo repository.StockRepository
	movRepo   repository.MovimientoRepository
}

// NewAlmacenUseCase construye el caso de uso.
func NewAlmacenUseCase(repo repository.AlmacenRepository, stockRepo repository.StockRepository, movRepo repository.MovimientoRepository) *AlmacenUseCase {
	return &AlmacenUseCase{repo: repo, stockRepo: stockRepo, movRepo: movRepo}
}

// Create crea un nuevo almacén.
func (uc *AlmacenUseCase) Create(ctx context.Context, p access.Principal, in dto.AlmacenRequest) (*dto.AlmacenResponse, error) {
	if !p.CanEdit(RutaAlmacenes) {
		return nil, domain.ErrForbidden
	}
	now := time.Now()
	almacen := &entity.Almacen{
		ID:          uuid.New().String(),
		Nombre:      in.Nombre,
		Ubicacion:   in.Ubicacion,
		Descripcion: in.Descripcion,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, almacen); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, errAlmacenDuplicado
		}
		return nil, err
	}
	return toAlmacenResponse(almacen), nil
}

// GetByID obtiene un almacén por ID.
func (uc *AlmacenUseCase) GetByID(ctx context.Context, p access.Principal, id string) (*dto.AlmacenResponse, error) {
	if !p.HasAccess(RutaAlmacenes) {
		return nil, domain.ErrForbidden
	}
	almacen, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if almacen == nil {
		return nil, domain.ErrNotFound
	}
	return toAlmacenResponse(almacen), nil
}

// Update actualiza un almacén.
func (uc *AlmacenUseCase) Update(ctx context.Context, p access.Principal, id string, in dto.AlmacenRequest) (*dto.AlmacenResponse, error) {
	if !p.CanEdit(RutaAlmacenes) {
		return nil, domain.ErrForbidden
	}
	almacen, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if almacen == nil {
		return nil, domain.ErrNotFound
	}
	almacen.Nombre = in.Nombre
	almacen.Ubicacion = in.Ubicacion
	almacen.Descripcion = in.Descripcion
	almacen.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, almacen); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, errAlmacenDuplicado
		}
		return nil, err
	}
	return toAlmacenResponse(almacen), nil
}

// List lista almacenes con paginación.
func (uc *AlmacenUseCase) List(ctx context.Context, p access.Principal, page dto.PageRequest) (*dto.ListResponse[dto.AlmacenResponse], error) {
	if !p.HasAccess(RutaAlmacenes) {
		return nil, domain.ErrForbidden
	}
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AlmacenResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toAlmacenResponse(a))
	}
	return &dto.ListResponse[dto.AlmacenResponse]{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete elimina un almacén sin stock ni movimientos registrados.
func (uc *AlmacenUseCase) Delete(ctx context.Context, p access.Principal, id string) error {
	if !p.CanEdit(RutaAlmacenes) {
		return domain.ErrForbidden
	}
	n, err := uc.stockRepo.CountByAlmacen(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return &domain.ReferentialIntegrityError{Recurso: "el almacén", Dependencia: "registros de stock"}
	}
	n, err = uc.movRepo.CountByAlmacen(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return &domain.ReferentialIntegrityError{Recurso: "el almacén", Dependencia: "movimientos"}
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrHasDependents) {
			return &domain.ReferentialIntegrityError{Recurso: "el almacén", Dependencia: "movimientos"}
		}
		return err
	}
	return nil
}

func toAlmacenResponse(a *entity.Almacen) *dto.AlmacenResponse {
	return &dto.AlmacenResponse{
		ID:          a.ID,
		Nombre:      a.Nombre,
		Ubicacion:   a.Ubicacion,
		Descripcion: a.Descripcion,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}
