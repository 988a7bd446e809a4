package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/mineria-admin/internal/application/dto"
	"github.com/jhoicas/mineria-admin/internal/domain"
	"github.com/jhoicas/mineria-admin/internal/domain/access"
	"github.com/jhoicas/mineria-admin/internal/domain/entity"
	"github.com/jhoicas/mineria-admin/internal/domain/repository"
)

// Rutas de página de los catálogos auxiliares.
const (
	RutaCategorias   = "/almacen/categorias"
	RutaAreas        = "/almacen/areas"
	RutaProveedores  = "/almacen/proveedores"
	RutaTrabajadores = "/personal/trabajadores"
)

// ─── Categorías ──────────────────────────────────────────────────────────────

// CategoriaUseCase alta, listado y baja de categorías de materiales.
type CategoriaUseCase struct {
	repo         repository.CategoriaRepository
	materialRepo repository.MaterialRepository
}

func NewCategoriaUseCase(repo repository.CategoriaRepository, materialRepo repository.MaterialRepository) *CategoriaUseCase {
	return &CategoriaUseCase{repo: repo, materialRepo: materialRepo}
}

func (uc *CategoriaUseCase) Create(ctx context.Context, p access.Principal, in dto.CategoriaRequest) (*dto.CategoriaResponse, error) {
	if !p.CanEdit(RutaCategorias) {
		return nil, domain.ErrForbidden
	}
	cat := &entity.Categoria{
		ID:          uuid.New().String(),
		Nombre:      strings.TrimSpace(in.Nombre),
		Descripcion: in.Descripcion,
		CreatedAt:   time.Now(),
	}
	if err := uc.repo.Create(ctx, cat); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.NewValidationError("nombre", "Ya existe una categoría con ese nombre")
		}
		return nil, err
	}
	return toCategoriaResponse(cat), nil
}

func (uc *CategoriaUseCase) List(ctx context.Context, p access.Principal) ([]dto.CategoriaResponse, error) {
	if !p.HasAccess(RutaCategorias) {
		return nil, domain.ErrForbidden
	}
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoriaResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCategoriaResponse(c))
	}
	return out, nil
}

// Delete se rechaza si algún material (activo o inactivo) pertenece a la categoría.
func (uc *CategoriaUseCase) Delete(ctx context.Context, p access.Principal, id string) error {
	if !p.CanEdit(RutaCategorias) {
		return domain.ErrForbidden
	}
	n, err := uc.materialRepo.CountByCategoria(ctx, id)
	if err != nil {
		return err
	}
	errDependientes := &domain.ReferentialIntegrityError{Recurso: "la categoría", Dependencia: "materiales"}
	if n > 0 {
		return errDependientes
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		// un material creado entre el conteo y el borrado dispara la FK
		if errors.Is(err, domain.ErrHasDependents) {
			return errDependientes
		}
		return err
	}
	return nil
}

func toCategoriaResponse(c *entity.Categoria) *dto.CategoriaResponse {
	return &dto.CategoriaResponse{ID: c.ID, Nombre: c.Nombre, Descripcion: c.Descripcion, CreatedAt: c.CreatedAt}
}

// ─── Áreas ───────────────────────────────────────────────────────────────────

type AreaUseCase struct {
	repo repository.AreaRepository
}

func NewAreaUseCase(repo repository.AreaRepository) *AreaUseCase {
	return &AreaUseCase{repo: repo}
}

func (uc *AreaUseCase) Create(ctx context.Context, p access.Principal, in dto.AreaRequest) (*dto.AreaResponse, error) {
	if !p.CanEdit(RutaAreas) {
		return nil, domain.ErrForbidden
	}
	area := &entity.Area{ID: uuid.New().String(), Nombre: strings.TrimSpace(in.Nombre), CreatedAt: time.Now()}
	if err := uc.repo.Create(ctx, area); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.NewValidationError("nombre", "Ya existe un área con ese nombre")
		}
		return nil, err
	}
	return &dto.AreaResponse{ID: area.ID, Nombre: area.Nombre, CreatedAt: area.CreatedAt}, nil
}

func (uc *AreaUseCase) GetByID(ctx context.Context, p access.Principal, id string) (*dto.AreaResponse, error) {
	if !p.HasAccess(RutaAreas) {
		return nil, domain.ErrForbidden
	}
	area, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if area == nil {
		return nil, domain.ErrNotFound
	}
	return &dto.AreaResponse{ID: area.ID, Nombre: area.Nombre, CreatedAt: area.CreatedAt}, nil
}

func (uc *AreaUseCase) List(ctx context.Context, p access.Principal) ([]dto.AreaResponse, error) {
	if !p.HasAccess(RutaAreas) {
		return nil, domain.ErrForbidden
	}
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AreaResponse, 0, len(list))
	for _, a := range list {
		out = append(out, dto.AreaResponse{ID: a.ID, Nombre: a.Nombre, CreatedAt: a.CreatedAt})
	}
	return out, nil
}

// ─── Proveedores ─────────────────────────────────────────────────────────────

type ProveedorUseCase struct {
	repo repository.ProveedorRepository
}

func NewProveedorUseCase(repo repository.ProveedorRepository) *ProveedorUseCase {
	return &ProveedorUseCase{repo: repo}
}

// Create registra un proveedor; el RUC es único.
func (uc *ProveedorUseCase) Create(ctx context.Context, p access.Principal, in dto.ProveedorRequest) (*dto.ProveedorResponse, error) {
	if !p.CanEdit(RutaProveedores) {
		return nil, domain.ErrForbidden
	}
	prov := &entity.Proveedor{
		ID:          uuid.New().String(),
		RUC:         strings.TrimSpace(in.RUC),
		RazonSocial: strings.TrimSpace(in.RazonSocial),
		Telefono:    in.Telefono,
		Email:       in.Email,
		Direccion:   in.Direccion,
		CreatedAt:   time.Now(),
	}
	if err := uc.repo.Create(ctx, prov); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.NewValidationError("ruc", "El RUC ya está registrado")
		}
		return nil, err
	}
	return toProveedorResponse(prov), nil
}

func (uc *ProveedorUseCase) GetByID(ctx context.Context, p access.Principal, id string) (*dto.ProveedorResponse, error) {
	if !p.HasAccess(RutaProveedores) {
		return nil, domain.ErrForbidden
	}
	prov, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if prov == nil {
		return nil, domain.ErrNotFound
	}
	return toProveedorResponse(prov), nil
}

func (uc *ProveedorUseCase) List(ctx context.Context, p access.Principal, page dto.PageRequest) (*dto.ListResponse[dto.ProveedorResponse], error) {
	if !p.HasAccess(RutaProveedores) {
		return nil, domain.ErrForbidden
	}
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProveedorResponse, 0, len(list))
	for _, pr := range list {
		items = append(items, *toProveedorResponse(pr))
	}
	return &dto.ListResponse[dto.ProveedorResponse]{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

func toProveedorResponse(p *entity.Proveedor) *dto.ProveedorResponse {
	return &dto.ProveedorResponse{
		ID:          p.ID,
		RUC:         p.RUC,
		RazonSocial: p.RazonSocial,
		Telefono:    p.Telefono,
		Email:       p.Email,
		Direccion:   p.Direccion,
		CreatedAt:   p.CreatedAt,
	}
}

// ─── Trabajadores ────────────────────────────────────────────────────────────

type TrabajadorUseCase struct {
	repo repository.TrabajadorRepository
}

func NewTrabajadorUseCase(repo repository.TrabajadorRepository) *TrabajadorUseCase {
	return &TrabajadorUseCase{repo: repo}
}

// Create registra un trabajador activo; el DNI es único.
func (uc *TrabajadorUseCase) Create(ctx context.Context, p access.Principal, in dto.TrabajadorRequest) (*dto.TrabajadorResponse, error) {
	if !p.CanEdit(RutaTrabajadores) {
		return nil, domain.ErrForbidden
	}
	trab := &entity.Trabajador{
		ID:        uuid.New().String(),
		DNI:       strings.TrimSpace(in.DNI),
		Nombres:   strings.TrimSpace(in.Nombres),
		Apellidos: strings.TrimSpace(in.Apellidos),
		Cargo:     in.Cargo,
		Estado:    entity.EstadoActivo,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Create(ctx, trab); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.NewValidationError("dni", "El DNI ya está registrado")
		}
		return nil, err
	}
	return toTrabajadorResponse(trab), nil
}

func (uc *TrabajadorUseCase) GetByID(ctx context.Context, p access.Principal, id string) (*dto.TrabajadorResponse, error) {
	if !p.HasAccess(RutaTrabajadores) {
		return nil, domain.ErrForbidden
	}
	trab, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if trab == nil {
		return nil, domain.ErrNotFound
	}
	return toTrabajadorResponse(trab), nil
}

func (uc *TrabajadorUseCase) List(ctx context.Context, p access.Principal, page dto.PageRequest) (*dto.ListResponse[dto.TrabajadorResponse], error) {
	if !p.HasAccess(RutaTrabajadores) {
		return nil, domain.ErrForbidden
	}
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TrabajadorResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toTrabajadorResponse(t))
	}
	return &dto.ListResponse[dto.TrabajadorResponse]{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

func toTrabajadorResponse(t *entity.Trabajador) *dto.TrabajadorResponse {
	return &dto.TrabajadorResponse{
		ID:             t.ID,
		DNI:            t.DNI,
		Nombres:        t.Nombres,
		Apellidos:      t.Apellidos,
		NombreCompleto: t.NombreCompleto(),
		Cargo:          t.Cargo,
		Estado:         t.Estado,
		CreatedAt:      t.CreatedAt,
	}
}
