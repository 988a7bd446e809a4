package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/mineria-admin/internal/domain"
)

func TestInsufficientStockError_MensajeYSentinel(t *testing.T) {
	err := fmt.Errorf("salida: %w", &domain.InsufficientStockError{
		Material:   "Casco de seguridad",
		Disponible: decimal.NewFromInt(6),
		Solicitado: decimal.NewFromInt(10),
	})

	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	var ise *domain.InsufficientStockError
	assert.True(t, errors.As(err, &ise))
	assert.Equal(t, "Stock insuficiente para Casco de seguridad. Disponible: 6", ise.Error())
}

func TestReferentialIntegrityError(t *testing.T) {
	err := &domain.ReferentialIntegrityError{Recurso: "la categoría", Dependencia: "materiales"}
	assert.True(t, errors.Is(err, domain.ErrHasDependents))
	assert.Equal(t, "No se puede eliminar la categoría: tiene materiales asociados", err.Error())
}

func TestValidationError_EsInvalidInput(t *testing.T) {
	err := domain.NewValidationError("codigo", "El código ya existe")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.False(t, errors.Is(err, domain.ErrNotFound))
}
