package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mineria-admin/internal/application/dto"
	"github.com/jhoicas/mineria-admin/internal/application/inventory"
	"github.com/jhoicas/mineria-admin/internal/application/reporte"
	"github.com/jhoicas/mineria-admin/internal/domain"
	"github.com/jhoicas/mineria-admin/internal/domain/access"
	"github.com/jhoicas/mineria-admin/internal/domain/entity"
	"github.com/jhoicas/mineria-admin/internal/domain/repository"
	apphttp "github.com/jhoicas/mineria-admin/internal/interfaces/http"
	"github.com/jhoicas/mineria-admin/pkg/logger"
)

const (
	almacenID  = "11111111-1111-1111-1111-111111111111"
	materialID = "22222222-2222-2222-2222-222222222222"
	areaID     = "33333333-3333-3333-3333-333333333333"
	ingresoID  = "44444444-4444-4444-4444-444444444444"
)

type mockMovimientos struct {
	mock.Mock
}

func (m *mockMovimientos) RegisterIngreso(ctx context.Context, p access.Principal, in inventory.IngresoInput) (*entity.Ingreso, error) {
	args := m.Called(ctx, p, in)
	ing, _ := args.Get(0).(*entity.Ingreso)
	return ing, args.Error(1)
}

func (m *mockMovimientos) RegisterSalida(ctx context.Context, p access.Principal, in inventory.SalidaInput) (*entity.Salida, error) {
	args := m.Called(ctx, p, in)
	s, _ := args.Get(0).(*entity.Salida)
	return s, args.Error(1)
}

func (m *mockMovimientos) RegisterEntregaEPP(ctx context.Context, p access.Principal, in inventory.EntregaEPPInput) (*entity.EntregaEPP, error) {
	args := m.Called(ctx, p, in)
	e, _ := args.Get(0).(*entity.EntregaEPP)
	return e, args.Error(1)
}

func (m *mockMovimientos) GetIngreso(ctx context.Context, p access.Principal, id string) (*entity.Ingreso, error) {
	args := m.Called(ctx, p, id)
	ing, _ := args.Get(0).(*entity.Ingreso)
	return ing, args.Error(1)
}

func (m *mockMovimientos) ListIngresos(ctx context.Context, p access.Principal, f repository.MovimientoFiltro) ([]*entity.Ingreso, error) {
	args := m.Called(ctx, p, f)
	list, _ := args.Get(0).([]*entity.Ingreso)
	return list, args.Error(1)
}

func (m *mockMovimientos) GetSalida(ctx context.Context, p access.Principal, id string) (*entity.Salida, error) {
	args := m.Called(ctx, p, id)
	s, _ := args.Get(0).(*entity.Salida)
	return s, args.Error(1)
}

func (m *mockMovimientos) ListSalidas(ctx context.Context, p access.Principal, f repository.MovimientoFiltro) ([]*entity.Salida, error) {
	args := m.Called(ctx, p, f)
	list, _ := args.Get(0).([]*entity.Salida)
	return list, args.Error(1)
}

func (m *mockMovimientos) GetEntregaEPP(ctx context.Context, p access.Principal, id string) (*entity.EntregaEPP, error) {
	args := m.Called(ctx, p, id)
	e, _ := args.Get(0).(*entity.EntregaEPP)
	return e, args.Error(1)
}

func (m *mockMovimientos) ListEntregasEPP(ctx context.Context, p access.Principal, f repository.MovimientoFiltro) ([]*entity.EntregaEPP, error) {
	args := m.Called(ctx, p, f)
	list, _ := args.Get(0).([]*entity.EntregaEPP)
	return list, args.Error(1)
}

type mockVales struct {
	mock.Mock
}

func (m *mockVales) ValeIngreso(ctx context.Context, p access.Principal, id string) (*reporte.Archivo, error) {
	args := m.Called(ctx, p, id)
	a, _ := args.Get(0).(*reporte.Archivo)
	return a, args.Error(1)
}

func (m *mockVales) ValeSalida(ctx context.Context, p access.Principal, id string) (*reporte.Archivo, error) {
	args := m.Called(ctx, p, id)
	a, _ := args.Get(0).(*reporte.Archivo)
	return a, args.Error(1)
}

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Save(ctx context.Context, nombre string, r io.Reader) (string, error) {
	data, _ := io.ReadAll(r)
	args := m.Called(ctx, nombre, string(data))
	return args.String(0), args.Error(1)
}

func (m *mockStore) Open(ctx context.Context, url string) (io.ReadCloser, error) {
	args := m.Called(ctx, url)
	rc, _ := args.Get(0).(io.ReadCloser)
	return rc, args.Error(1)
}

func (m *mockStore) Remove(ctx context.Context, url string) error {
	return m.Called(ctx, url).Error(0)
}

// buildMovimientosApp registra las rutas del handler con un principal almacenero fijo.
func buildMovimientosApp(uc *mockMovimientos, vales *mockVales, store *mockStore) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(apphttp.LocalUserID, testUserID)
		c.Locals(apphttp.LocalRol, access.RolAlmacenero)
		return c.Next()
	})
	h := apphttp.NewMovimientoHandler(uc, vales, store, logger.Nop())
	app.Post("/ingresos", h.RegisterIngreso)
	app.Get("/ingresos/:id/pdf", h.ValeIngreso)
	app.Get("/ingresos/:id/comprobante", h.ComprobanteIngreso)
	app.Post("/salidas", h.RegisterSalida)
	app.Get("/salidas", h.ListSalidas)
	app.Get("/salidas/:id", h.GetSalida)
	return app
}

func ingresoJSON() string {
	body, _ := json.Marshal(dto.RegistrarIngresoRequest{
		AlmacenID: almacenID,
		Lineas: []dto.LineaIngresoRequest{
			{MaterialID: materialID, Cantidad: decimal.NewFromInt(10), PrecioUnitario: decimal.RequireFromString("2.50")},
		},
	})
	return string(body)
}

func multipartIngreso(t *testing.T, datos string, foto []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("datos", datos))
	if foto != nil {
		fw, err := w.CreateFormFile("comprobante", "guia.jpg")
		require.NoError(t, err)
		_, err = fw.Write(foto)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestRegisterIngreso_JSON(t *testing.T) {
	uc := new(mockMovimientos)
	uc.On("RegisterIngreso", mock.Anything, access.Principal{ID: testUserID, Rol: access.RolAlmacenero},
		mock.MatchedBy(func(in inventory.IngresoInput) bool {
			return in.AlmacenID == almacenID && len(in.Lineas) == 1 && in.ComprobanteURL == ""
		})).
		Return(&entity.Ingreso{ID: "ing-1", AlmacenID: almacenID}, nil)
	app := buildMovimientosApp(uc, new(mockVales), new(mockStore))

	req := httptest.NewRequest(http.MethodPost, "/ingresos", strings.NewReader(ingresoJSON()))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var out dto.IngresoResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "ing-1", out.ID)
	uc.AssertExpectations(t)
}

func TestRegisterIngreso_SinLineasNoLlegaAlCasoDeUso(t *testing.T) {
	uc := new(mockMovimientos)
	app := buildMovimientosApp(uc, new(mockVales), new(mockStore))

	req := httptest.NewRequest(http.MethodPost, "/ingresos", strings.NewReader(`{"almacen_id":"`+almacenID+`","lineas":[]}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	uc.AssertNotCalled(t, "RegisterIngreso", mock.Anything, mock.Anything, mock.Anything)
}

func TestRegisterIngreso_MultipartGuardaComprobante(t *testing.T) {
	uc := new(mockMovimientos)
	store := new(mockStore)
	url := "comprobantes/2026/10/abc.jpg"
	store.On("Save", mock.Anything, "guia.jpg", "jpeg-bytes").Return(url, nil)
	uc.On("RegisterIngreso", mock.Anything, mock.Anything,
		mock.MatchedBy(func(in inventory.IngresoInput) bool { return in.ComprobanteURL == url })).
		Return(&entity.Ingreso{ID: "ing-2", ComprobanteURL: url}, nil)
	app := buildMovimientosApp(uc, new(mockVales), store)

	body, ct := multipartIngreso(t, ingresoJSON(), []byte("jpeg-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/ingresos", body)
	req.Header.Set("Content-Type", ct)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	store.AssertExpectations(t)
	store.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything)
	uc.AssertExpectations(t)
}

func TestRegisterIngreso_FalloDeTransaccionBorraComprobante(t *testing.T) {
	uc := new(mockMovimientos)
	store := new(mockStore)
	url := "comprobantes/2026/10/def.jpg"
	store.On("Save", mock.Anything, "guia.jpg", "jpeg-bytes").Return(url, nil)
	store.On("Remove", mock.Anything, url).Return(nil)
	uc.On("RegisterIngreso", mock.Anything, mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)
	app := buildMovimientosApp(uc, new(mockVales), store)

	body, ct := multipartIngreso(t, ingresoJSON(), []byte("jpeg-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/ingresos", body)
	req.Header.Set("Content-Type", ct)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	store.AssertCalled(t, "Remove", mock.Anything, url)
}

func TestRegisterIngreso_MultipartSinDatos(t *testing.T) {
	uc := new(mockMovimientos)
	store := new(mockStore)
	app := buildMovimientosApp(uc, new(mockVales), store)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("otro", "x"))
	require.NoError(t, w.Close())
	req := httptest.NewRequest(http.MethodPost, "/ingresos", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
}

func TestRegisterSalida_StockInsuficienteDevuelveMensaje(t *testing.T) {
	uc := new(mockMovimientos)
	uc.On("RegisterSalida", mock.Anything, mock.Anything, mock.Anything).Return(nil, &domain.InsufficientStockError{
		MaterialID: materialID,
		Material:   "Casco",
		Disponible: decimal.NewFromInt(3),
		Solicitado: decimal.NewFromInt(5),
	})
	app := buildMovimientosApp(uc, new(mockVales), new(mockStore))

	body := `{"almacen_id":"` + almacenID + `","area_id":"` + areaID + `","solicitante":"J. Pérez",` +
		`"lineas":[{"material_id":"` + materialID + `","cantidad":"5"}]}`
	req := httptest.NewRequest(http.MethodPost, "/salidas", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	var out dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "INSUFFICIENT_STOCK", out.Code)
	assert.Equal(t, "Stock insuficiente para Casco. Disponible: 3", out.Message)
}

func TestListSalidas_HastaIncluyeElDiaCompleto(t *testing.T) {
	uc := new(mockMovimientos)
	uc.On("ListSalidas", mock.Anything, mock.Anything, mock.MatchedBy(func(f repository.MovimientoFiltro) bool {
		if f.Desde == nil || f.Hasta == nil {
			return false
		}
		return f.Desde.Format(time.DateTime) == "2026-10-01 00:00:00" &&
			f.Hasta.Format(time.DateTime) == "2026-10-31 23:59:59" &&
			f.Limit == 20 && f.AlmacenID == almacenID
	})).Return([]*entity.Salida{{ID: "s-1"}}, nil)
	app := buildMovimientosApp(uc, new(mockVales), new(mockStore))

	req := httptest.NewRequest(http.MethodGet, "/salidas?almacen_id="+almacenID+"&desde=2026-10-01&hasta=2026-10-31", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.ListResponse[dto.SalidaResponse]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out.Items, 1)
	assert.Equal(t, "s-1", out.Items[0].ID)
}

func TestListSalidas_FechaInvalida(t *testing.T) {
	uc := new(mockMovimientos)
	app := buildMovimientosApp(uc, new(mockVales), new(mockStore))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/salidas?desde=01/10/2026", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestValeIngreso_DevuelvePDF(t *testing.T) {
	vales := new(mockVales)
	vales.On("ValeIngreso", mock.Anything, mock.Anything, ingresoID).Return(&reporte.Archivo{
		Nombre:      "vale_ingreso_ING-1.pdf",
		ContentType: "application/pdf",
		Contenido:   []byte("%PDF-1.4"),
	}, nil)
	app := buildMovimientosApp(new(mockMovimientos), vales, new(mockStore))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ingresos/"+ingresoID+"/pdf", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "vale_ingreso_ING-1.pdf")
	data, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "%PDF-1.4", string(data))
}

func TestComprobanteIngreso_SirveElArchivo(t *testing.T) {
	uc := new(mockMovimientos)
	store := new(mockStore)
	url := "comprobantes/2026/10/abc.jpg"
	uc.On("GetIngreso", mock.Anything, mock.Anything, ingresoID).Return(&entity.Ingreso{ID: ingresoID, ComprobanteURL: url}, nil)
	store.On("Open", mock.Anything, url).Return(io.NopCloser(strings.NewReader("jpeg-bytes")), nil)
	app := buildMovimientosApp(uc, new(mockVales), store)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ingresos/"+ingresoID+"/comprobante", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/jpeg", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "abc.jpg")
	data, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "jpeg-bytes", string(data))
}

func TestComprobanteIngreso_SinFoto(t *testing.T) {
	uc := new(mockMovimientos)
	store := new(mockStore)
	uc.On("GetIngreso", mock.Anything, mock.Anything, ingresoID).Return(&entity.Ingreso{ID: ingresoID}, nil)
	app := buildMovimientosApp(uc, new(mockVales), store)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ingresos/"+ingresoID+"/comprobante", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	store.AssertNotCalled(t, "Open", mock.Anything, mock.Anything)
}

func TestGetSalida_IDMalFormado(t *testing.T) {
	uc := new(mockMovimientos)
	app := buildMovimientosApp(uc, new(mockVales), new(mockStore))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/salidas/abc", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var out dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "VALIDATION", out.Code)
	uc.AssertNotCalled(t, "GetSalida", mock.Anything, mock.Anything, mock.Anything)
}

func TestNewMovimientoHandler_SinLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		apphttp.NewMovimientoHandler(new(mockMovimientos), new(mockVales), nil, nil)
	})
}
