// Package access implementa el Access Gate: decide, a partir del rol y la ruta de la página,
// si un usuario puede ver la página y si puede ejecutar acciones que la modifican.
// Las funciones son puras; no leen sesión ni estado global.
package access

import "strings"

// Roles reconocidos.
const (
	RolAdmin                   = "admin"
	RolGerente                 = "gerente"
	RolGerencia                = "gerencia"
	RolConductor               = "conductor"
	RolLogistica               = "logistica"
	RolAsistenteAdministrativo = "asistente_administrativo"
	RolAlmacenero              = "almacenero"
)

// Rutas de página conocidas por el gate.
const (
	RutaInicio     = "/"
	RutaReportes   = "/reportes"
	RutaUsuarios   = "/configuracion/usuarios"
	RutaViajes     = "/logistica/viajes"
	RutaPersonal   = "/personal"
	RutaEntregaEPP = "/personal/epp"
)

// rutasOperativas prefijos de logística y administración.
var rutasOperativas = []string{
	"/almacen",
	"/logistica",
	"/mantenimiento",
	"/combustible",
	"/ordenes",
	"/vales",
}

var rutasCompartidas = []string{RutaInicio, RutaReportes}

// Principal identifica al usuario autenticado que ejecuta una operación.
type Principal struct {
	ID  string
	Rol string
}

// HasAccess atajo de access.HasAccess para el rol del principal.
func (p Principal) HasAccess(path string) bool { return HasAccess(p.Rol, path) }

// CanEdit atajo de access.CanEdit para el rol del principal.
func (p Principal) CanEdit(path string) bool { return CanEdit(p.Rol, path) }

// RolValido indica si el rol es uno de los reconocidos.
func RolValido(rol string) bool {
	switch rol {
	case RolAdmin, RolGerente, RolGerencia, RolConductor, RolLogistica, RolAsistenteAdministrativo, RolAlmacenero:
		return true
	}
	return false
}

// HasAccess indica si el rol puede ver la página de la ruta dada.
func HasAccess(rol, path string) bool {
	path = normalize(path)
	switch rol {
	case RolAdmin:
		return true
	case RolGerente, RolGerencia:
		return !under(path, RutaUsuarios)
	case RolConductor:
		return path == RutaInicio || under(path, RutaViajes)
	case RolLogistica, RolAsistenteAdministrativo:
		return underAny(path, rutasCompartidas) || underAny(path, rutasOperativas)
	case RolAlmacenero:
		if underAny(path, rutasCompartidas) || under(path, RutaPersonal) {
			return true
		}
		return underAny(path, rutasOperativas) && !under(path, RutaViajes)
	default:
		return false
	}
}

// CanEdit indica si el rol puede ejecutar acciones que modifican datos en la ruta dada.
func CanEdit(rol, path string) bool {
	path = normalize(path)
	switch rol {
	case RolAdmin:
		return true
	case RolGerente, RolGerencia:
		return false
	case RolConductor:
		return under(path, RutaViajes)
	case RolLogistica, RolAsistenteAdministrativo:
		return underAny(path, rutasOperativas)
	case RolAlmacenero:
		if under(path, RutaPersonal) {
			return under(path, RutaEntregaEPP)
		}
		return underAny(path, rutasOperativas) && !under(path, RutaViajes)
	default:
		return false
	}
}

// under compara por segmentos: "/almacen" cubre "/almacen" y "/almacen/salidas"
// pero no "/almacenes". La raíz solo se cubre a sí misma.
func under(path, prefix string) bool {
	if prefix == RutaInicio {
		return path == RutaInicio
	}
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

func underAny(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if under(path, p) {
			return true
		}
	}
	return false
}

func normalize(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		return RutaInicio
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			return RutaInicio
		}
	}
	return path
}
