package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mineria-admin/internal/application/inventory"
	"github.com/jhoicas/mineria-admin/internal/domain"
	"github.com/jhoicas/mineria-admin/internal/domain/entity"
	"github.com/jhoicas/mineria-admin/internal/domain/repository"
)

type MockInventarioRepository struct {
	mock.Mock
}

func (m *MockInventarioRepository) ListNiveles(ctx context.Context, filtro repository.InventarioFiltro) ([]entity.NivelInventario, error) {
	args := m.Called(ctx, filtro)
	return args.Get(0).([]entity.NivelInventario), args.Error(1)
}

func (m *MockInventarioRepository) Resumen(ctx context.Context, desde, hasta time.Time) (*repository.ResumenInventario, error) {
	args := m.Called(ctx, desde, hasta)
	return args.Get(0).(*repository.ResumenInventario), args.Error(1)
}

func TestAlertaStock_OrdenaPorDeficitRelativo(t *testing.T) {
	repo := new(MockInventarioRepository)
	repo.On("ListNiveles", mock.Anything, repository.InventarioFiltro{SoloActivos: true}).Return([]entity.NivelInventario{
		{MaterialID: "a", Nombre: "Guantes", StockMinimo: dec("100"), StockTotal: dec("80"), Precio: dec("160")},
		{MaterialID: "b", Nombre: "Casco", StockMinimo: dec("10"), StockTotal: dec("2"), Precio: dec("60")},
		{MaterialID: "c", Nombre: "Lentes", StockMinimo: dec("10"), StockTotal: dec("15"), Precio: dec("15")},
		{MaterialID: "d", Nombre: "Botas", StockMinimo: dec("0"), StockTotal: dec("0")},
	}, nil)

	alertas, err := inventory.NewAlertaStockUseCase(repo).Generar(context.Background(), almacenero, "")

	require.NoError(t, err)
	require.Len(t, alertas, 2)
	assert.Equal(t, "b", alertas[0].MaterialID)
	assert.Equal(t, 1, alertas[0].Prioridad)
	assert.Equal(t, "15", alertas[0].StockIdeal.String())
	assert.Equal(t, "13", alertas[0].CantidadSugerida.String())
	assert.Equal(t, "30", alertas[0].CostoUnitario.String())
	assert.Equal(t, "a", alertas[1].MaterialID)
	assert.Equal(t, "2", alertas[1].CostoUnitario.String())
	repo.AssertExpectations(t)
}

func TestAlertaStock_RequiereAccesoAReportes(t *testing.T) {
	repo := new(MockInventarioRepository)

	_, err := inventory.NewAlertaStockUseCase(repo).Generar(context.Background(), conductor, "")

	assert.ErrorIs(t, err, domain.ErrForbidden)
	repo.AssertNotCalled(t, "ListNiveles", mock.Anything, mock.Anything)
}
