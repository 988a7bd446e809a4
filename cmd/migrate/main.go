// migrate aplica las migraciones embebidas con goose.
//
// Uso: go run ./cmd/migrate [up|down|status|version|redo|reset] [args...]
// Sin comando ejecuta "up".
package main

import (
	"context"
	"flag"
	"time"

	"github.com/joho/godotenv"

	"github.com/jhoicas/mineria-admin/internal/infrastructure/postgres"
	"github.com/jhoicas/mineria-admin/pkg/config"
	"github.com/jhoicas/mineria-admin/pkg/logger"
)

func main() {
	timeout := flag.Duration("timeout", 2*time.Minute, "tiempo máximo para aplicar las migraciones")
	flag.Parse()

	log := logger.New(logger.Config{Env: "development", Level: "info"})

	// .env es opcional: en contenedores la configuración llega por variables de entorno.
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg(".env no encontrado, se usan solo variables de entorno")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("cargar configuración")
	}

	arguments := flag.Args()
	if len(arguments) == 0 {
		arguments = []string{"up"}
	}
	command, args := arguments[0], arguments[1:]

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.RunMigrations(ctx, pool, command, args...); err != nil {
		log.Fatal().Err(err).Str("command", command).Msg("migración fallida")
	}
	log.Info().Str("command", command).Msg("goose finalizado")
}
