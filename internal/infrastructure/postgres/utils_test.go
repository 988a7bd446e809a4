package postgres

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/mineria-admin/internal/domain"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"unique", &pgconn.PgError{Code: codeUniqueViolation}, domain.ErrDuplicate},
		{"check stock", &pgconn.PgError{Code: codeCheckViolation, ConstraintName: stockCantidadCheck}, domain.ErrInsufficientStock},
		{"check otro", &pgconn.PgError{Code: codeCheckViolation, ConstraintName: "detalle_salidas_cantidad_check"}, domain.ErrInvalidInput},
		{"uuid mal formado", &pgconn.PgError{Code: codeInvalidText}, domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, mapError("op", tt.err), tt.want)
		})
	}
	assert.NoError(t, mapError("op", nil))
}

func TestMapError_FKAlInsertarNoEsDependencia(t *testing.T) {
	fk := &pgconn.PgError{Code: codeForeignKeyViolation, ConstraintName: "stock_materiales_almacen_id_fkey"}

	err := mapError("increment stock", fk)

	assert.NotErrorIs(t, err, domain.ErrHasDependents)
	var pgErr *pgconn.PgError
	assert.True(t, errors.As(err, &pgErr))
	assert.Equal(t, codeForeignKeyViolation, pgErr.Code)
}

func TestMapDeleteError(t *testing.T) {
	fk := &pgconn.PgError{Code: codeForeignKeyViolation}
	assert.ErrorIs(t, mapDeleteError("delete categoria", fk), domain.ErrHasDependents)
	assert.ErrorIs(t, mapDeleteError("delete almacen", &pgconn.PgError{Code: codeUniqueViolation}), domain.ErrDuplicate)
	assert.NoError(t, mapDeleteError("delete almacen", nil))
}
