package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/mineria-admin/internal/application/dto"
	"github.com/jhoicas/mineria-admin/internal/application/inventory"
	"github.com/jhoicas/mineria-admin/internal/domain"
	"github.com/jhoicas/mineria-admin/internal/domain/access"
	"github.com/jhoicas/mineria-admin/internal/domain/entity"
	"github.com/jhoicas/mineria-admin/internal/domain/repository"
	"github.com/jhoicas/mineria-admin/pkg/logger"
)

// RutaMateriales página del catálogo de materiales.
const RutaMateriales = "/almacen/materiales"

var errCodigoDuplicado = domain.NewValidationError("codigo", "El código ya existe")

// MaterialUseCase casos de uso CRUD para materiales. Precio y stock solo cambian vía movimientos.
type MaterialUseCase struct {
	repo          repository.MaterialRepository
	categoriaRepo repository.CategoriaRepository
	areaRepo      repository.AreaRepository
	stockRepo     repository.StockRepository
	txRunner      inventory.TxRunner
	cache         inventory.DashboardInvalidator
	log           *logger.Logger
}

// NewMaterialUseCase construye el caso de uso. cache puede ser nil.
func NewMaterialUseCase(
	repo repository.MaterialRepository,
	categoriaRepo repository.CategoriaRepository,
	areaRepo repository.AreaRepository,
	stockRepo repository.StockRepository,
	txRunner inventory.TxRunner,
	cache inventory.DashboardInvalidator,
	log *logger.Logger,
) *MaterialUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &MaterialUseCase{
		repo:          repo,
		categoriaRepo: categoriaRepo,
		areaRepo:      areaRepo,
		stockRepo:     stockRepo,
		txRunner:      txRunner,
		cache:         cache,
		log:           log.Named("materiales"),
	}
}

func (uc *MaterialUseCase) validarReferencias(ctx context.Context, categoriaID, areaID string) error {
	cat, err := uc.categoriaRepo.GetByID(ctx, categoriaID)
	if err != nil {
		return fmt.Errorf("get categoria: %w", err)
	}
	if cat == nil {
		return domain.NewValidationError("categoria_id", "La categoría no existe")
	}
	if areaID == "" {
		return nil
	}
	area, err := uc.areaRepo.GetByID(ctx, areaID)
	if err != nil {
		return fmt.Errorf("get area: %w", err)
	}
	if area == nil {
		return domain.NewValidationError("area_id", "El área no existe")
	}
	return nil
}

// Create crea un material con valorización 0 y estado activo.
func (uc *MaterialUseCase) Create(ctx context.Context, p access.Principal, in dto.CreateMaterialRequest) (*dto.MaterialResponse, error) {
	if !p.CanEdit(RutaMateriales) {
		return nil, domain.ErrForbidden
	}
	codigo := strings.TrimSpace(in.Codigo)
	if codigo == "" {
		return nil, domain.NewValidationError("codigo", "El código es obligatorio")
	}
	existing, err := uc.repo.GetByCodigo(ctx, codigo)
	if err != nil {
		return nil, fmt.Errorf("get material por código: %w", err)
	}
	if existing != nil {
		return nil, errCodigoDuplicado
	}
	if in.StockMinimo.IsNegative() {
		return nil, domain.NewValidationError("stock_minimo", "El stock mínimo no puede ser negativo")
	}
	if err := uc.validarReferencias(ctx, in.CategoriaID, in.AreaID); err != nil {
		return nil, err
	}

	now := time.Now()
	material := &entity.Material{
		ID:           uuid.New().String(),
		Codigo:       codigo,
		Nombre:       strings.TrimSpace(in.Nombre),
		Descripcion:  in.Descripcion,
		UnidadMedida: in.UnidadMedida,
		StockMinimo:  in.StockMinimo,
		CategoriaID:  in.CategoriaID,
		AreaID:       in.AreaID,
		Estado:       entity.EstadoActivo,
		Precio:       decimal.Zero,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, material); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, errCodigoDuplicado
		}
		return nil, err
	}
	return toMaterialResponse(material, nil), nil
}

// GetByID obtiene un material con su stock por almacén.
func (uc *MaterialUseCase) GetByID(ctx context.Context, p access.Principal, id string) (*dto.MaterialResponse, error) {
	if !p.HasAccess(RutaMateriales) {
		return nil, domain.ErrForbidden
	}
	material, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}
	stock, err := uc.stockRepo.ListByMaterial(ctx, id)
	if err != nil {
		return nil, err
	}
	return toMaterialResponse(material, stock), nil
}

// Update actualiza los datos descriptivos. No modifica Precio ni stock.
func (uc *MaterialUseCase) Update(ctx context.Context, p access.Principal, id string, in dto.UpdateMaterialRequest) (*dto.MaterialResponse, error) {
	if !p.CanEdit(RutaMateriales) {
		return nil, domain.ErrForbidden
	}
	material, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}
	codigo := strings.TrimSpace(in.Codigo)
	if codigo != material.Codigo {
		other, err := uc.repo.GetByCodigo(ctx, codigo)
		if err != nil {
			return nil, fmt.Errorf("get material por código: %w", err)
		}
		if other != nil && other.ID != material.ID {
			return nil, errCodigoDuplicado
		}
	}
	if in.Estado != entity.EstadoActivo && in.Estado != entity.EstadoInactivo {
		return nil, domain.NewValidationError("estado", "Estado inválido")
	}
	if err := uc.validarReferencias(ctx, in.CategoriaID, in.AreaID); err != nil {
		return nil, err
	}

	material.Codigo = codigo
	material.Nombre = strings.TrimSpace(in.Nombre)
	material.Descripcion = in.Descripcion
	material.UnidadMedida = in.UnidadMedida
	material.StockMinimo = in.StockMinimo
	material.CategoriaID = in.CategoriaID
	material.AreaID = in.AreaID
	material.Estado = in.Estado
	material.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, material); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, errCodigoDuplicado
		}
		return nil, err
	}
	return toMaterialResponse(material, nil), nil
}

// List lista materiales con filtros y paginación.
func (uc *MaterialUseCase) List(ctx context.Context, p access.Principal, q dto.MaterialQuery) (*dto.ListResponse[dto.MaterialResponse], error) {
	if !p.HasAccess(RutaMateriales) {
		return nil, domain.ErrForbidden
	}
	q.DefaultPage()
	list, err := uc.repo.List(ctx, repository.MaterialFiltro{
		CategoriaID: q.CategoriaID,
		Estado:      q.Estado,
		Busqueda:    strings.TrimSpace(q.Busqueda),
	}, q.Limit, q.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MaterialResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMaterialResponse(m, nil))
	}
	return &dto.ListResponse[dto.MaterialResponse]{
		Items: items,
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset},
	}, nil
}

// Delete elimina el material junto con sus filas de stock y sus líneas de movimientos
// (ingresos, salidas y entregas de EPP) en una sola transacción. Las cabeceras se conservan.
func (uc *MaterialUseCase) Delete(ctx context.Context, p access.Principal, id string) error {
	if !p.CanEdit(RutaMateriales) {
		return domain.ErrForbidden
	}
	material, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if material == nil {
		return domain.ErrNotFound
	}

	err = uc.txRunner.Run(ctx, func(ctx context.Context, r inventory.TxRepos) error {
		if _, err := r.Materiales.GetForUpdate(ctx, id); err != nil {
			return err
		}
		if err := r.Movimientos.DeleteDetallesByMaterial(ctx, id); err != nil {
			return err
		}
		if err := r.Stock.DeleteByMaterial(ctx, id); err != nil {
			return err
		}
		return r.Materiales.Delete(ctx, id)
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("material_id", id).Msg("material no eliminado")
		return err
	}

	if uc.cache != nil {
		if err := uc.cache.InvalidateDashboard(ctx); err != nil {
			uc.log.Warn().Err(err).Msg("no se pudo invalidar el dashboard")
		}
	}
	uc.log.Info().Str("material_id", id).Str("codigo", material.Codigo).Str("usuario_id", p.ID).Msg("material eliminado")
	return nil
}

func toMaterialResponse(m *entity.Material, stock []*entity.StockMaterial) *dto.MaterialResponse {
	if m == nil {
		return nil
	}
	out := &dto.MaterialResponse{
		ID:           m.ID,
		Codigo:       m.Codigo,
		Nombre:       m.Nombre,
		Descripcion:  m.Descripcion,
		UnidadMedida: m.UnidadMedida,
		StockMinimo:  m.StockMinimo,
		CategoriaID:  m.CategoriaID,
		AreaID:       m.AreaID,
		Estado:       m.Estado,
		Precio:       m.Precio,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	for _, s := range stock {
		out.Stock = append(out.Stock, dto.StockAlmacenResponse{AlmacenID: s.AlmacenID, Cantidad: s.Cantidad})
	}
	return out
}
