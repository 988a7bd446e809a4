package dto

import "time"

// AlmacenRequest body de alta y edición de almacenes.
type AlmacenRequest struct {
	Nombre      string `json:"nombre" validate:"required,max=120"`
	Ubicacion   string `json:"ubicacion,omitempty" validate:"max=200"`
	Descripcion string `json:"descripcion,omitempty" validate:"max=500"`
}

// AlmacenResponse salida de un almacén.
type AlmacenResponse struct {
	ID          string    `json:"id"`
	Nombre      string    `json:"nombre"`
	Ubicacion   string    `json:"ubicacion,omitempty"`
	Descripcion string    `json:"descripcion,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CategoriaRequest body de POST /api/almacen/categorias.
type CategoriaRequest struct {
	Nombre      string `json:"nombre" validate:"required,max=120"`
	Descripcion string `json:"descripcion,omitempty" validate:"max=500"`
}

type CategoriaResponse struct {
	ID          string    `json:"id"`
	Nombre      string    `json:"nombre"`
	Descripcion string    `json:"descripcion,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// AreaRequest body de POST /api/almacen/areas.
type AreaRequest struct {
	Nombre string `json:"nombre" validate:"required,max=120"`
}

type AreaResponse struct {
	ID        string    `json:"id"`
	Nombre    string    `json:"nombre"`
	CreatedAt time.Time `json:"created_at"`
}

// ProveedorRequest body de POST /api/almacen/proveedores. RUC peruano de 11 dígitos.
type ProveedorRequest struct {
	RUC         string `json:"ruc" validate:"required,numeric,len=11"`
	RazonSocial string `json:"razon_social" validate:"required,max=200"`
	Telefono    string `json:"telefono,omitempty" validate:"max=30"`
	Email       string `json:"email,omitempty" validate:"omitempty,email"`
	Direccion   string `json:"direccion,omitempty" validate:"max=250"`
}

type ProveedorResponse struct {
	ID          string    `json:"id"`
	RUC         string    `json:"ruc"`
	RazonSocial string    `json:"razon_social"`
	Telefono    string    `json:"telefono,omitempty"`
	Email       string    `json:"email,omitempty"`
	Direccion   string    `json:"direccion,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// TrabajadorRequest body de POST /api/personal/trabajadores.
type TrabajadorRequest struct {
	DNI       string `json:"dni" validate:"required,numeric,len=8"`
	Nombres   string `json:"nombres" validate:"required,max=120"`
	Apellidos string `json:"apellidos" validate:"required,max=120"`
	Cargo     string `json:"cargo,omitempty" validate:"max=120"`
}

type TrabajadorResponse struct {
	ID             string    `json:"id"`
	DNI            string    `json:"dni"`
	Nombres        string    `json:"nombres"`
	Apellidos      string    `json:"apellidos"`
	NombreCompleto string    `json:"nombre_completo"`
	Cargo          string    `json:"cargo,omitempty"`
	Estado         string    `json:"estado"`
	CreatedAt      time.Time `json:"created_at"`
}
