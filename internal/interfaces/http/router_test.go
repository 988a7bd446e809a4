package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mineria-admin/internal/domain/access"
	apphttp "github.com/jhoicas/mineria-admin/internal/interfaces/http"
)

// buildRouterApp monta el router completo; los casos de uso no se alcanzan en estas pruebas.
func buildRouterApp(store *mockStore) *fiber.App {
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Comprobantes: store,
		JWTSecret:    testJWTSecret,
	})
	return app
}

func statusOf(t *testing.T, app *fiber.App, method, target, authHeader string) int {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	return resp.StatusCode
}

func TestRouter_ComprobantesRequierenAcceso(t *testing.T) {
	store := new(mockStore)
	app := buildRouterApp(store)
	ruta := "/api/almacen/ingresos/" + ingresoID + "/comprobante"

	assert.Equal(t, http.StatusUnauthorized, statusOf(t, app, http.MethodGet, ruta, ""))
	assert.Equal(t, http.StatusForbidden, statusOf(t, app, http.MethodGet, ruta, tokenForRol(t, access.RolConductor)))
	// el directorio de comprobantes no se publica como estático
	assert.Equal(t, http.StatusNotFound, statusOf(t, app, http.MethodGet, "/uploads/comprobantes/2026/10/recibo.jpg", ""))
	store.AssertNotCalled(t, "Open", mock.Anything, mock.Anything)
}

func TestRouter_IDMalFormadoEsValidacion(t *testing.T) {
	app := buildRouterApp(new(mockStore))
	admin := tokenForRol(t, access.RolAdmin)

	casos := []struct {
		metodo string
		ruta   string
	}{
		{http.MethodGet, "/api/almacen/materiales/abc"},
		{http.MethodDelete, "/api/almacen/materiales/abc"},
		{http.MethodGet, "/api/almacen/almacenes/1"},
		{http.MethodDelete, "/api/almacen/categorias/no-es-uuid"},
		{http.MethodGet, "/api/almacen/ingresos/abc/pdf"},
		{http.MethodGet, "/api/personal/epp/abc"},
	}
	for _, c := range casos {
		t.Run(c.metodo+" "+c.ruta, func(t *testing.T) {
			assert.Equal(t, http.StatusBadRequest, statusOf(t, app, c.metodo, c.ruta, admin))
		})
	}
}
