package entity

import "time"

// Categoria agrupa materiales (EPP, repuestos, lubricantes, etc.).
type Categoria struct {
	ID          string
	Nombre      string
	Descripcion string
	CreatedAt   time.Time
}

// Area es un área operativa de la mina que solicita salidas o es dueña de materiales.
type Area struct {
	ID        string
	Nombre    string
	CreatedAt time.Time
}

// Proveedor es la contraparte de un ingreso.
type Proveedor struct {
	ID          string
	RUC         string
	RazonSocial string
	Telefono    string
	Email       string
	Direccion   string
	CreatedAt   time.Time
}

// Trabajador es el receptor de una entrega de EPP.
type Trabajador struct {
	ID        string
	DNI       string
	Nombres   string
	Apellidos string
	Cargo     string
	Estado    string // activo, inactivo
	CreatedAt time.Time
}

// NombreCompleto devuelve "Nombres Apellidos".
func (t Trabajador) NombreCompleto() string {
	if t.Apellidos == "" {
		return t.Nombres
	}
	return t.Nombres + " " + t.Apellidos
}
