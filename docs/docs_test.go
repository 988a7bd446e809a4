package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestSwaggerRegistrado(t *testing.T) {
	doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var swagger struct {
		Paths map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(doc), &swagger))
	for _, p := range []string{"/api/almacen/ingresos", "/api/almacen/salidas", "/api/personal/epp", "/api/reportes/inventario", "/api/almacen/ingresos/{id}/comprobante"} {
		assert.Contains(t, swagger.Paths, p)
	}
}
