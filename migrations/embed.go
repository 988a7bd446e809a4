// Package migrations embebe los scripts SQL de goose para que cmd/migrate y los tests de integración
// apliquen el mismo esquema sin depender del directorio de trabajo.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
