// seeduser crea el primer usuario administrador; sin él nadie puede dar de alta usuarios.
//
// Uso: go run ./cmd/seeduser -email admin@mina.pe -password 'secreto123' [-nombre "Admin"] [-rol admin]
package main

import (
	"context"
	"errors"
	"flag"
	"strings"
	"time"

	"github.com/jhoicas/mineria-admin/internal/application/auth"
	"github.com/jhoicas/mineria-admin/internal/domain"
	"github.com/jhoicas/mineria-admin/internal/domain/access"
	"github.com/jhoicas/mineria-admin/internal/infrastructure/postgres"
	"github.com/jhoicas/mineria-admin/pkg/config"
	"github.com/jhoicas/mineria-admin/pkg/logger"
)

func main() {
	email := flag.String("email", "", "email del usuario")
	password := flag.String("password", "", "password (mínimo 8 caracteres)")
	nombre := flag.String("nombre", "Administrador", "nombre visible")
	rol := flag.String("rol", access.RolAdmin, "rol del usuario")
	flag.Parse()

	log := logger.New(logger.Config{Env: "development", Level: "info"})

	if *email == "" || len(*password) < 8 {
		log.Fatal().Msg("-email y -password (mínimo 8 caracteres) son requeridos")
	}
	if !access.RolValido(*rol) {
		log.Fatal().Str("rol", *rol).Msg("rol desconocido")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("cargar configuración")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	u, err := auth.NewUsuario(strings.ToLower(strings.TrimSpace(*email)), *password, *nombre, *rol)
	if err != nil {
		log.Fatal().Err(err).Msg("hash de password")
	}
	if err := postgres.NewUsuarioRepository(pool).Create(ctx, u); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			log.Warn().Str("email", u.Email).Msg("el usuario ya existe, no se modificó")
			return
		}
		log.Fatal().Err(err).Msg("crear usuario")
	}
	log.Info().Str("id", u.ID).Str("email", u.Email).Str("rol", u.Rol).Msg("usuario creado")
}
