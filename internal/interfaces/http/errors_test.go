package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mineria-admin/internal/application/dto"
	"github.com/jhoicas/mineria-admin/internal/domain"
)

func TestWriteError(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"validación", domain.NewValidationError("lineas", "Debe agregar al menos un material"), 400, "VALIDATION", "Debe agregar al menos un material"},
		{"validación envuelta", fmt.Errorf("ingreso: %w", domain.NewValidationError("cantidad", "La cantidad debe ser mayor a 0")), 400, "VALIDATION", "La cantidad debe ser mayor a 0"},
		{"stock insuficiente", &domain.InsufficientStockError{Material: "Guantes", Disponible: decimal.NewFromInt(2)}, 409, "INSUFFICIENT_STOCK", "Stock insuficiente para Guantes. Disponible: 2"},
		{"integridad referencial", &domain.ReferentialIntegrityError{Recurso: "la categoría", Dependencia: "materiales"}, 409, "HAS_DEPENDENTS", "No se puede eliminar la categoría: tiene materiales asociados"},
		{"duplicado", domain.ErrDuplicate, 409, "DUPLICATE", ""},
		{"no encontrado", fmt.Errorf("get: %w", domain.ErrNotFound), 404, "NOT_FOUND", ""},
		{"no autorizado", domain.ErrUnauthorized, 401, "UNAUTHORIZED", ""},
		{"prohibido", domain.ErrForbidden, 403, "FORBIDDEN", ""},
		{"interno", errors.New("conexión rechazada"), 500, "INTERNAL", "error interno del servidor"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error { return writeError(c, tc.err) })

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil), -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tc.status, resp.StatusCode)
			var body dto.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tc.code, body.Code)
			if tc.message != "" {
				assert.Equal(t, tc.message, body.Message)
			}
		})
	}
}

func TestDescribeValidation_UsaNombreJSON(t *testing.T) {
	req := dto.RegistrarSalidaRequest{Solicitante: "x"}
	err := validate.Struct(&req)
	require.Error(t, err)
	assert.Contains(t, describeValidation(err), "almacen_id")
}
