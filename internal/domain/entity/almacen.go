package entity

import "time"

// Almacen representa una ubicación física de almacenamiento.
type Almacen struct {
	ID          string
	Nombre      string
	Ubicacion   string
	Descripcion string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
