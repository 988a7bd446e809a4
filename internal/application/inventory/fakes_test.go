package inventory_test

import (
	"context"
	"errors"
	"maps"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/mineria-admin/internal/application/inventory"
	"github.com/jhoicas/mineria-admin/internal/domain/entity"
	"github.com/jhoicas/mineria-admin/internal/domain/repository"
)

// ─── Almacén en memoria con semántica transaccional ─────────────────────────────

type stockKey struct{ material, almacen string }

type memState struct {
	materiales map[string]entity.Material
	stock      map[stockKey]decimal.Decimal
	ingresos   []*entity.Ingreso
	salidas    []*entity.Salida
	entregas   []*entity.EntregaEPP
}

func (s memState) clone() memState {
	return memState{
		materiales: maps.Clone(s.materiales),
		stock:      maps.Clone(s.stock),
		ingresos:   append([]*entity.Ingreso(nil), s.ingresos...),
		salidas:    append([]*entity.Salida(nil), s.salidas...),
		entregas:   append([]*entity.EntregaEPP(nil), s.entregas...),
	}
}

type memDB struct {
	st     memState
	locked []string // orden en que se bloquearon materiales
	// failCreate hace fallar los Create* de movimientos para probar el rollback.
	failCreate error
}

func newMemDB() *memDB {
	return &memDB{st: memState{
		materiales: map[string]entity.Material{},
		stock:      map[stockKey]decimal.Decimal{},
	}}
}

func (db *memDB) addMaterial(id, nombre string, precio decimal.Decimal) {
	db.st.materiales[id] = entity.Material{ID: id, Codigo: "C-" + id, Nombre: nombre, Estado: entity.EstadoActivo, Precio: precio}
}

func (db *memDB) setStock(materialID, almacenID string, cantidad int64) {
	db.st.stock[stockKey{materialID, almacenID}] = decimal.NewFromInt(cantidad)
}

func (db *memDB) precio(id string) decimal.Decimal { return db.st.materiales[id].Precio }

func (db *memDB) cantidad(materialID, almacenID string) decimal.Decimal {
	return db.st.stock[stockKey{materialID, almacenID}]
}

// Run implementa inventory.TxRunner: restaura el estado si fn falla.
func (db *memDB) Run(ctx context.Context, fn func(ctx context.Context, repos inventory.TxRepos) error) error {
	snapshot := db.st.clone()
	db.locked = nil
	err := fn(ctx, inventory.TxRepos{
		Materiales:  memMateriales{db},
		Stock:       memStock{db},
		Movimientos: memMovimientos{db},
	})
	if err != nil {
		db.st = snapshot
	}
	return err
}

type memMateriales struct{ db *memDB }

func (r memMateriales) Create(_ context.Context, m *entity.Material) error {
	r.db.st.materiales[m.ID] = *m
	return nil
}
func (r memMateriales) GetByID(_ context.Context, id string) (*entity.Material, error) {
	m, ok := r.db.st.materiales[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}
func (r memMateriales) GetByCodigo(context.Context, string) (*entity.Material, error) {
	return nil, nil
}
func (r memMateriales) GetForUpdate(ctx context.Context, id string) (*entity.Material, error) {
	r.db.locked = append(r.db.locked, id)
	return r.GetByID(ctx, id)
}
func (r memMateriales) Update(context.Context, *entity.Material) error { return nil }
func (r memMateriales) UpdatePrecio(_ context.Context, id string, precio decimal.Decimal) error {
	m := r.db.st.materiales[id]
	m.Precio = precio
	r.db.st.materiales[id] = m
	return nil
}
func (r memMateriales) List(context.Context, repository.MaterialFiltro, int, int) ([]*entity.Material, error) {
	return nil, nil
}
func (r memMateriales) CountByCategoria(context.Context, string) (int, error) { return 0, nil }
func (r memMateriales) Delete(_ context.Context, id string) error {
	delete(r.db.st.materiales, id)
	return nil
}

type memStock struct{ db *memDB }

func (r memStock) Get(_ context.Context, materialID, almacenID string) (*entity.StockMaterial, error) {
	c, ok := r.db.st.stock[stockKey{materialID, almacenID}]
	if !ok {
		return nil, nil
	}
	return &entity.StockMaterial{MaterialID: materialID, AlmacenID: almacenID, Cantidad: c}, nil
}
func (r memStock) GetForUpdate(ctx context.Context, materialID, almacenID string) (*entity.StockMaterial, error) {
	return r.Get(ctx, materialID, almacenID)
}
func (r memStock) Increment(_ context.Context, materialID, almacenID string, cantidad decimal.Decimal) error {
	k := stockKey{materialID, almacenID}
	r.db.st.stock[k] = r.db.st.stock[k].Add(cantidad)
	return nil
}
func (r memStock) SetCantidad(_ context.Context, materialID, almacenID string, cantidad decimal.Decimal) error {
	if cantidad.IsNegative() {
		return errors.New("check violation: cantidad >= 0")
	}
	r.db.st.stock[stockKey{materialID, almacenID}] = cantidad
	return nil
}
func (r memStock) TotalByMaterial(_ context.Context, materialID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for k, c := range r.db.st.stock {
		if k.material == materialID {
			total = total.Add(c)
		}
	}
	return total, nil
}
func (r memStock) ListByMaterial(context.Context, string) ([]*entity.StockMaterial, error) {
	return nil, nil
}
func (r memStock) CountByAlmacen(context.Context, string) (int, error) { return 0, nil }
func (r memStock) DeleteByMaterial(_ context.Context, materialID string) error {
	for k := range r.db.st.stock {
		if k.material == materialID {
			delete(r.db.st.stock, k)
		}
	}
	return nil
}

type memMovimientos struct{ db *memDB }

func (r memMovimientos) CreateIngreso(_ context.Context, i *entity.Ingreso) error {
	if r.db.failCreate != nil {
		return r.db.failCreate
	}
	r.db.st.ingresos = append(r.db.st.ingresos, i)
	return nil
}
func (r memMovimientos) CreateSalida(_ context.Context, s *entity.Salida) error {
	if r.db.failCreate != nil {
		return r.db.failCreate
	}
	r.db.st.salidas = append(r.db.st.salidas, s)
	return nil
}
func (r memMovimientos) CreateEntregaEPP(_ context.Context, e *entity.EntregaEPP) error {
	if r.db.failCreate != nil {
		return r.db.failCreate
	}
	r.db.st.entregas = append(r.db.st.entregas, e)
	return nil
}
func (r memMovimientos) GetIngreso(_ context.Context, id string) (*entity.Ingreso, error) {
	for _, i := range r.db.st.ingresos {
		if i.ID == id {
			return i, nil
		}
	}
	return nil, nil
}
func (r memMovimientos) GetSalida(context.Context, string) (*entity.Salida, error) { return nil, nil }
func (r memMovimientos) GetEntregaEPP(context.Context, string) (*entity.EntregaEPP, error) {
	return nil, nil
}
func (r memMovimientos) ListIngresos(context.Context, repository.MovimientoFiltro) ([]*entity.Ingreso, error) {
	return r.db.st.ingresos, nil
}
func (r memMovimientos) ListSalidas(context.Context, repository.MovimientoFiltro) ([]*entity.Salida, error) {
	return r.db.st.salidas, nil
}
func (r memMovimientos) ListEntregasEPP(context.Context, repository.MovimientoFiltro) ([]*entity.EntregaEPP, error) {
	return r.db.st.entregas, nil
}
func (r memMovimientos) CountByAlmacen(context.Context, string) (int, error) { return 0, nil }
func (r memMovimientos) DeleteDetallesByMaterial(context.Context, string) error {
	return nil
}

// ─── Catálogos de solo lectura ──────────────────────────────────────────────────

type catalogo struct {
	almacenes    map[string]*entity.Almacen
	proveedores  map[string]*entity.Proveedor
	areas        map[string]*entity.Area
	trabajadores map[string]*entity.Trabajador
}

type almacenRepo struct{ c *catalogo }

func (r almacenRepo) Create(context.Context, *entity.Almacen) error { return nil }
func (r almacenRepo) GetByID(_ context.Context, id string) (*entity.Almacen, error) {
	return r.c.almacenes[id], nil
}
func (r almacenRepo) Update(context.Context, *entity.Almacen) error { return nil }
func (r almacenRepo) List(context.Context, int, int) ([]*entity.Almacen, error) {
	return nil, nil
}
func (r almacenRepo) Delete(context.Context, string) error { return nil }

type proveedorRepo struct{ c *catalogo }

func (r proveedorRepo) Create(context.Context, *entity.Proveedor) error { return nil }
func (r proveedorRepo) GetByID(_ context.Context, id string) (*entity.Proveedor, error) {
	return r.c.proveedores[id], nil
}
func (r proveedorRepo) List(context.Context, int, int) ([]*entity.Proveedor, error) {
	return nil, nil
}

type areaRepo struct{ c *catalogo }

func (r areaRepo) Create(context.Context, *entity.Area) error { return nil }
func (r areaRepo) GetByID(_ context.Context, id string) (*entity.Area, error) {
	return r.c.areas[id], nil
}
func (r areaRepo) List(context.Context) ([]*entity.Area, error) { return nil, nil }

type trabajadorRepo struct{ c *catalogo }

func (r trabajadorRepo) Create(context.Context, *entity.Trabajador) error { return nil }
func (r trabajadorRepo) GetByID(_ context.Context, id string) (*entity.Trabajador, error) {
	return r.c.trabajadores[id], nil
}
func (r trabajadorRepo) List(context.Context, int, int) ([]*entity.Trabajador, error) {
	return nil, nil
}

// MockDashboardInvalidator registra las invalidaciones del dashboard.
type MockDashboardInvalidator struct {
	mock.Mock
}

func (m *MockDashboardInvalidator) InvalidateDashboard(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
