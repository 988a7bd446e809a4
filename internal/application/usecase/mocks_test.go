package usecase_test

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/mineria-admin/internal/application/inventory"
	"github.com/jhoicas/mineria-admin/internal/domain/entity"
	"github.com/jhoicas/mineria-admin/internal/domain/repository"
)

type MockMaterialRepository struct {
	mock.Mock
}

func (m *MockMaterialRepository) Create(ctx context.Context, mat *entity.Material) error {
	return m.Called(ctx, mat).Error(0)
}

func (m *MockMaterialRepository) GetByID(ctx context.Context, id string) (*entity.Material, error) {
	args := m.Called(ctx, id)
	mat, _ := args.Get(0).(*entity.Material)
	return mat, args.Error(1)
}

func (m *MockMaterialRepository) GetByCodigo(ctx context.Context, codigo string) (*entity.Material, error) {
	args := m.Called(ctx, codigo)
	mat, _ := args.Get(0).(*entity.Material)
	return mat, args.Error(1)
}

func (m *MockMaterialRepository) GetForUpdate(ctx context.Context, id string) (*entity.Material, error) {
	args := m.Called(ctx, id)
	mat, _ := args.Get(0).(*entity.Material)
	return mat, args.Error(1)
}

func (m *MockMaterialRepository) Update(ctx context.Context, mat *entity.Material) error {
	return m.Called(ctx, mat).Error(0)
}

func (m *MockMaterialRepository) UpdatePrecio(ctx context.Context, id string, precio decimal.Decimal) error {
	return m.Called(ctx, id, precio).Error(0)
}

func (m *MockMaterialRepository) List(ctx context.Context, f repository.MaterialFiltro, limit, offset int) ([]*entity.Material, error) {
	args := m.Called(ctx, f, limit, offset)
	return args.Get(0).([]*entity.Material), args.Error(1)
}

func (m *MockMaterialRepository) CountByCategoria(ctx context.Context, categoriaID string) (int, error) {
	args := m.Called(ctx, categoriaID)
	return args.Int(0), args.Error(1)
}

func (m *MockMaterialRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockStockRepository struct {
	mock.Mock
}

func (m *MockStockRepository) Get(ctx context.Context, materialID, almacenID string) (*entity.StockMaterial, error) {
	args := m.Called(ctx, materialID, almacenID)
	s, _ := args.Get(0).(*entity.StockMaterial)
	return s, args.Error(1)
}

func (m *MockStockRepository) GetForUpdate(ctx context.Context, materialID, almacenID string) (*entity.StockMaterial, error) {
	args := m.Called(ctx, materialID, almacenID)
	s, _ := args.Get(0).(*entity.StockMaterial)
	return s, args.Error(1)
}

func (m *MockStockRepository) Increment(ctx context.Context, materialID, almacenID string, c decimal.Decimal) error {
	return m.Called(ctx, materialID, almacenID, c).Error(0)
}

func (m *MockStockRepository) SetCantidad(ctx context.Context, materialID, almacenID string, c decimal.Decimal) error {
	return m.Called(ctx, materialID, almacenID, c).Error(0)
}

func (m *MockStockRepository) TotalByMaterial(ctx context.Context, materialID string) (decimal.Decimal, error) {
	args := m.Called(ctx, materialID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockStockRepository) ListByMaterial(ctx context.Context, materialID string) ([]*entity.StockMaterial, error) {
	args := m.Called(ctx, materialID)
	return args.Get(0).([]*entity.StockMaterial), args.Error(1)
}

func (m *MockStockRepository) CountByAlmacen(ctx context.Context, almacenID string) (int, error) {
	args := m.Called(ctx, almacenID)
	return args.Int(0), args.Error(1)
}

func (m *MockStockRepository) DeleteByMaterial(ctx context.Context, materialID string) error {
	return m.Called(ctx, materialID).Error(0)
}

// MockMovimientoRepository solo cubre lo que usan los catálogos; el resto queda en la interfaz embebida.
type MockMovimientoRepository struct {
	repository.MovimientoRepository
	mock.Mock
}

func (m *MockMovimientoRepository) CountByAlmacen(ctx context.Context, almacenID string) (int, error) {
	args := m.Called(ctx, almacenID)
	return args.Int(0), args.Error(1)
}

func (m *MockMovimientoRepository) DeleteDetallesByMaterial(ctx context.Context, materialID string) error {
	return m.Called(ctx, materialID).Error(0)
}

type MockCategoriaRepository struct {
	mock.Mock
}

func (m *MockCategoriaRepository) Create(ctx context.Context, c *entity.Categoria) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCategoriaRepository) GetByID(ctx context.Context, id string) (*entity.Categoria, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*entity.Categoria)
	return c, args.Error(1)
}

func (m *MockCategoriaRepository) List(ctx context.Context) ([]*entity.Categoria, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*entity.Categoria), args.Error(1)
}

func (m *MockCategoriaRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockAreaRepository struct {
	mock.Mock
}

func (m *MockAreaRepository) Create(ctx context.Context, a *entity.Area) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockAreaRepository) GetByID(ctx context.Context, id string) (*entity.Area, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*entity.Area)
	return a, args.Error(1)
}

func (m *MockAreaRepository) List(ctx context.Context) ([]*entity.Area, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*entity.Area), args.Error(1)
}

type MockAlmacenRepository struct {
	mock.Mock
}

func (m *MockAlmacenRepository) Create(ctx context.Context, a *entity.Almacen) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockAlmacenRepository) GetByID(ctx context.Context, id string) (*entity.Almacen, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*entity.Almacen)
	return a, args.Error(1)
}

func (m *MockAlmacenRepository) Update(ctx context.Context, a *entity.Almacen) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockAlmacenRepository) List(ctx context.Context, limit, offset int) ([]*entity.Almacen, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*entity.Almacen), args.Error(1)
}

func (m *MockAlmacenRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// fakeTx ejecuta fn con los mocks como repositorios transaccionales.
type fakeTx struct {
	repos inventory.TxRepos
	runs  int
}

func (f *fakeTx) Run(ctx context.Context, fn func(ctx context.Context, repos inventory.TxRepos) error) error {
	f.runs++
	return fn(ctx, f.repos)
}
