package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrHasDependents     = errors.New("el recurso tiene dependencias")
)

// ValidationError falla de validación detectada antes de cualquier escritura.
type ValidationError struct {
	Campo   string
	Mensaje string
}

// NewValidationError construye un ValidationError.
func NewValidationError(campo, mensaje string) *ValidationError {
	return &ValidationError{Campo: campo, Mensaje: mensaje}
}

func (e *ValidationError) Error() string { return e.Mensaje }

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// InsufficientStockError aborta una salida o entrega de EPP. El mensaje se muestra tal cual al usuario.
type InsufficientStockError struct {
	MaterialID string
	Material   string
	Disponible decimal.Decimal
	Solicitado decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Stock insuficiente para %s. Disponible: %s", e.Material, e.Disponible.String())
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// ReferentialIntegrityError rechaza el borrado de un registro con dependientes.
type ReferentialIntegrityError struct {
	Recurso     string // ej. "la categoría"
	Dependencia string // ej. "materiales"
}

func (e *ReferentialIntegrityError) Error() string {
	return fmt.Sprintf("No se puede eliminar %s: tiene %s asociados", e.Recurso, e.Dependencia)
}

func (e *ReferentialIntegrityError) Is(target error) bool { return target == ErrHasDependents }
