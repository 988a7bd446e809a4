package entity

import "time"

// Usuario representa una cuenta del sistema. Rol es uno de access.Rol*.
type Usuario struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt
	Nombre       string
	Rol          string
	Estado       string // activo, inactivo
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
