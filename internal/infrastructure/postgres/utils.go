package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/mineria-admin/internal/domain"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeInvalidText         = "22P02"
)

// stockCantidadCheck es el nombre que PostgreSQL asigna al CHECK (cantidad >= 0) de stock_materiales.
const stockCantidadCheck = "stock_materiales_cantidad_check"

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func pgConstraint(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool { return pgCode(err) == codeUniqueViolation }

// isForeignKeyViolation verifica si el borrado o inserción choca con una FK (23503).
func isForeignKeyViolation(err error) bool { return pgCode(err) == codeForeignKeyViolation }

func isCheckViolation(err error) bool { return pgCode(err) == codeCheckViolation }

// mapError traduce los códigos de PostgreSQL a errores de dominio y envuelve el resto.
// El CHECK (cantidad >= 0) de stock_materiales es la última barrera contra stock negativo.
// Una FK violada al insertar (padre inexistente) se envuelve sin traducir.
func mapError(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err):
		return fmt.Errorf("%s: %w", op, domain.ErrDuplicate)
	case pgCode(err) == codeInvalidText:
		return fmt.Errorf("%s: %w", op, domain.ErrInvalidInput)
	case isCheckViolation(err) && pgConstraint(err) == stockCantidadCheck:
		return fmt.Errorf("%s: %w", op, domain.ErrInsufficientStock)
	case isCheckViolation(err):
		return fmt.Errorf("%s: %w", op, domain.ErrInvalidInput)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// mapDeleteError es mapError para DELETE: ahí una FK violada significa que otras filas
// todavía referencian el registro.
func mapDeleteError(op string, err error) error {
	if isForeignKeyViolation(err) {
		return fmt.Errorf("%s: %w", op, domain.ErrHasDependents)
	}
	return mapError(op, err)
}
