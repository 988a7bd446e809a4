//go:build integration

// Pruebas contra PostgreSQL real levantado con testcontainers.
// Ejecutar con: go test -tags integration ./internal/infrastructure/postgres/... -v
package postgres_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jhoicas/mineria-admin/internal/application/dto"
	"github.com/jhoicas/mineria-admin/internal/application/inventory"
	"github.com/jhoicas/mineria-admin/internal/application/usecase"
	"github.com/jhoicas/mineria-admin/internal/domain"
	"github.com/jhoicas/mineria-admin/internal/domain/access"
	"github.com/jhoicas/mineria-admin/internal/domain/entity"
	"github.com/jhoicas/mineria-admin/internal/domain/repository"
	"github.com/jhoicas/mineria-admin/internal/infrastructure/postgres"
	"github.com/jhoicas/mineria-admin/pkg/config"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type env struct {
	pool       *pgxpool.Pool
	movUC      *inventory.MovimientoUseCase
	materialUC *usecase.MaterialUseCase
	catUC      *usecase.CategoriaUseCase
	materiales *postgres.MaterialRepo
	stock      *postgres.StockRepo
	movs       *postgres.MovimientoRepo
	inv        *postgres.InventarioRepo
	admin      access.Principal
	almacenID  string
	areaID     string
	categoria  string
}

func setup(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("mineria_test"),
		tcpostgres.WithUsername("mineria"),
		tcpostgres.WithPassword("mineria"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	url, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: url})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, postgres.RunMigrations(ctx, pool, "up"))

	e := &env{
		pool:       pool,
		materiales: postgres.NewMaterialRepository(pool),
		stock:      postgres.NewStockRepository(pool),
		movs:       postgres.NewMovimientoRepository(pool),
		inv:        postgres.NewInventarioRepository(pool),
		admin:      access.Principal{ID: uuid.NewString(), Rol: access.RolAdmin},
	}
	almacenes := postgres.NewAlmacenRepository(pool)
	categorias := postgres.NewCategoriaRepository(pool)
	areas := postgres.NewAreaRepository(pool)
	txRunner := postgres.NewTxRunner(pool, 5*time.Second, 10*time.Second)

	e.movUC = inventory.NewMovimientoUseCase(txRunner, e.movs, almacenes,
		postgres.NewProveedorRepository(pool), areas, postgres.NewTrabajadorRepository(pool), nil, nil)
	e.materialUC = usecase.NewMaterialUseCase(e.materiales, categorias, areas, e.stock, txRunner, nil, nil)
	e.catUC = usecase.NewCategoriaUseCase(categorias, e.materiales)

	now := time.Now()
	require.NoError(t, postgres.NewUsuarioRepository(pool).Create(ctx, &entity.Usuario{
		ID: e.admin.ID, Email: "admin@mina.test", PasswordHash: "x", Nombre: "Admin",
		Rol: access.RolAdmin, Estado: entity.EstadoActivo, CreatedAt: now, UpdatedAt: now,
	}))
	e.almacenID = uuid.NewString()
	require.NoError(t, almacenes.Create(ctx, &entity.Almacen{ID: e.almacenID, Nombre: "Principal", CreatedAt: now, UpdatedAt: now}))
	e.areaID = uuid.NewString()
	require.NoError(t, areas.Create(ctx, &entity.Area{ID: e.areaID, Nombre: "Perforación", CreatedAt: now}))
	e.categoria = uuid.NewString()
	require.NoError(t, categorias.Create(ctx, &entity.Categoria{ID: e.categoria, Nombre: "Repuestos", CreatedAt: now}))
	return e
}

func (e *env) crearMaterial(t *testing.T, codigo string) string {
	t.Helper()
	m, err := e.materialUC.Create(context.Background(), e.admin, dto.CreateMaterialRequest{
		Codigo: codigo, Nombre: "Material " + codigo, UnidadMedida: "UND", CategoriaID: e.categoria,
	})
	require.NoError(t, err)
	return m.ID
}

func (e *env) estado(t *testing.T, materialID string) (stock, precio decimal.Decimal) {
	t.Helper()
	ctx := context.Background()
	s, err := e.stock.Get(ctx, materialID, e.almacenID)
	require.NoError(t, err)
	stock = decimal.Zero
	if s != nil {
		stock = s.Cantidad
	}
	m, err := e.materiales.GetByID(ctx, materialID)
	require.NoError(t, err)
	require.NotNil(t, m)
	return stock, m.Precio
}

func TestIntegration_IngresoYSalida(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	x := e.crearMaterial(t, "X-001")

	// Ingreso 10 @ 5.00
	ing, err := e.movUC.RegisterIngreso(ctx, e.admin, inventory.IngresoInput{
		AlmacenID: e.almacenID,
		Lineas:    []inventory.LineaIngreso{{MaterialID: x, Cantidad: dec("10"), PrecioUnitario: dec("5.00")}},
	})
	require.NoError(t, err)
	stock, precio := e.estado(t, x)
	assert.True(t, stock.Equal(dec("10")))
	assert.True(t, precio.Equal(dec("50.00")))

	got, err := e.movs.GetIngreso(ctx, ing.ID)
	require.NoError(t, err)
	require.Len(t, got.Detalles, 1)
	assert.Empty(t, got.ProveedorID)

	// Salida 4
	_, err = e.movUC.RegisterSalida(ctx, e.admin, inventory.SalidaInput{
		AlmacenID: e.almacenID, AreaID: e.areaID, Solicitante: "Jefe de guardia",
		Lineas: []inventory.LineaSalida{{MaterialID: x, Cantidad: dec("4")}},
	})
	require.NoError(t, err)
	stock, precio = e.estado(t, x)
	assert.True(t, stock.Equal(dec("6")))
	assert.True(t, precio.Equal(dec("30.00")))

	// Salida 10 con 6 disponibles: aborta sin cambios
	_, err = e.movUC.RegisterSalida(ctx, e.admin, inventory.SalidaInput{
		AlmacenID: e.almacenID, AreaID: e.areaID,
		Lineas: []inventory.LineaSalida{{MaterialID: x, Cantidad: dec("10")}},
	})
	var insuf *domain.InsufficientStockError
	require.ErrorAs(t, err, &insuf)
	assert.Contains(t, err.Error(), "Material X-001")
	assert.Contains(t, err.Error(), "Disponible: 6")
	stock, precio = e.estado(t, x)
	assert.True(t, stock.Equal(dec("6")))
	assert.True(t, precio.Equal(dec("30.00")))

	salidas, err := e.movs.ListSalidas(ctx, repository.MovimientoFiltro{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, salidas, 1)
}

func TestIntegration_MaterialInexistenteRevierteIngreso(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	x := e.crearMaterial(t, "X-002")

	_, err := e.movUC.RegisterIngreso(ctx, e.admin, inventory.IngresoInput{
		AlmacenID: e.almacenID,
		Lineas: []inventory.LineaIngreso{
			{MaterialID: x, Cantidad: dec("3"), PrecioUnitario: dec("2")},
			{MaterialID: uuid.NewString(), Cantidad: dec("1"), PrecioUnitario: dec("1")},
		},
	})
	require.ErrorIs(t, err, domain.ErrNotFound)

	stock, precio := e.estado(t, x)
	assert.True(t, stock.IsZero())
	assert.True(t, precio.IsZero())
	list, err := e.movs.ListIngresos(ctx, repository.MovimientoFiltro{Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, list)
}

// Dos salidas concurrentes que juntas superan el stock: los bloqueos de fila serializan
// la lectura y solo una puede confirmarse.
func TestIntegration_SalidasConcurrentesNoDejanStockNegativo(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	x := e.crearMaterial(t, "X-003")
	_, err := e.movUC.RegisterIngreso(ctx, e.admin, inventory.IngresoInput{
		AlmacenID: e.almacenID,
		Lineas:    []inventory.LineaIngreso{{MaterialID: x, Cantidad: dec("10"), PrecioUnitario: dec("1")}},
	})
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = e.movUC.RegisterSalida(ctx, e.admin, inventory.SalidaInput{
				AlmacenID: e.almacenID, AreaID: e.areaID,
				Lineas: []inventory.LineaSalida{{MaterialID: x, Cantidad: dec("7")}},
			})
		}(i)
	}
	wg.Wait()

	var ok, insuficiente int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrInsufficientStock):
			insuficiente++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, insuficiente)
	stock, precio := e.estado(t, x)
	assert.True(t, stock.Equal(dec("3")))
	assert.True(t, precio.Equal(dec("3.00")))
}

func TestIntegration_EliminarMaterialYCategoria(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	x := e.crearMaterial(t, "X-004")
	_, err := e.movUC.RegisterIngreso(ctx, e.admin, inventory.IngresoInput{
		AlmacenID: e.almacenID,
		Lineas:    []inventory.LineaIngreso{{MaterialID: x, Cantidad: dec("5"), PrecioUnitario: dec("1")}},
	})
	require.NoError(t, err)

	// Categoría con materiales: rechazada
	err = e.catUC.Delete(ctx, e.admin, e.categoria)
	require.ErrorIs(t, err, domain.ErrHasDependents)
	assert.EqualError(t, err, "No se puede eliminar la categoría: tiene materiales asociados")

	require.NoError(t, e.materialUC.Delete(ctx, e.admin, x))
	m, err := e.materiales.GetByID(ctx, x)
	require.NoError(t, err)
	assert.Nil(t, m)
	rows, err := e.stock.ListByMaterial(ctx, x)
	require.NoError(t, err)
	assert.Empty(t, rows)
	ings, err := e.movs.ListIngresos(ctx, repository.MovimientoFiltro{Limit: 10})
	require.NoError(t, err)
	require.Len(t, ings, 1)
	assert.Empty(t, ings[0].Detalles)

	require.NoError(t, e.catUC.Delete(ctx, e.admin, e.categoria))
}

func TestIntegration_ReporteYResumen(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	x := e.crearMaterial(t, "X-005")
	_, err := e.movUC.RegisterIngreso(ctx, e.admin, inventory.IngresoInput{
		AlmacenID: e.almacenID,
		Lineas:    []inventory.LineaIngreso{{MaterialID: x, Cantidad: dec("2.5"), PrecioUnitario: dec("4")}},
	})
	require.NoError(t, err)

	niveles, err := e.inv.ListNiveles(ctx, repository.InventarioFiltro{AlmacenID: e.almacenID})
	require.NoError(t, err)
	require.Len(t, niveles, 1)
	assert.Equal(t, "Repuestos", niveles[0].Categoria)
	assert.True(t, niveles[0].StockTotal.Equal(dec("2.5")))
	require.Len(t, niveles[0].PorAlmacen, 1)
	assert.Equal(t, "Principal", niveles[0].PorAlmacen[0].Almacen)

	desde := time.Now().Add(-time.Hour)
	res, err := e.inv.Resumen(ctx, desde, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, res.MaterialesActivos)
	assert.True(t, res.ValorTotal.Equal(dec("10.00")))
	assert.Equal(t, 1, res.IngresosPeriodo)
	assert.Equal(t, 0, res.SalidasPeriodo)
}
