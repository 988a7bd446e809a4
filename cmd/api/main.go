package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/mineria-admin/docs"
	appanalytics "github.com/jhoicas/mineria-admin/internal/application/analytics"
	"github.com/jhoicas/mineria-admin/internal/application/auth"
	"github.com/jhoicas/mineria-admin/internal/application/inventory"
	"github.com/jhoicas/mineria-admin/internal/application/reporte"
	"github.com/jhoicas/mineria-admin/internal/application/usecase"
	"github.com/jhoicas/mineria-admin/internal/infrastructure/cache"
	infraexcel "github.com/jhoicas/mineria-admin/internal/infrastructure/excel"
	infrapdf "github.com/jhoicas/mineria-admin/internal/infrastructure/pdf"
	"github.com/jhoicas/mineria-admin/internal/infrastructure/postgres"
	"github.com/jhoicas/mineria-admin/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/mineria-admin/internal/interfaces/http"
	"github.com/jhoicas/mineria-admin/pkg/config"
	"github.com/jhoicas/mineria-admin/pkg/logger"
)

// @title                       Minería Admin API
// @version                     1.0
// @description                 Almacén de mina: ingresos, salidas, entregas de EPP y reportes de inventario.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es requerido")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Redis es opcional: sin REDIS_URL el dashboard se calcula en cada petición.
	var (
		dashCache   appanalytics.DashboardCache
		invalidator inventory.DashboardInvalidator
		cachePinger httpRouter.Pinger
	)
	if cfg.Redis.URL != "" {
		rdb, err := cache.NewClient(ctx, cfg.Redis.URL)
		if err != nil {
			log.Warn().Err(err).Msg("Redis no disponible, dashboard sin caché")
		} else {
			defer rdb.Close()
			c := cache.NewDashboardCache(rdb, cfg.Redis.DashboardTTL)
			dashCache, invalidator, cachePinger = c, c, c
		}
	}

	comprobantes, err := storage.NewLocal(cfg.Storage.Dir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.Storage.Dir).Msg("directorio de comprobantes")
	}

	usuarioRepo := postgres.NewUsuarioRepository(pool)
	materialRepo := postgres.NewMaterialRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	movRepo := postgres.NewMovimientoRepository(pool)
	almacenRepo := postgres.NewAlmacenRepository(pool)
	categoriaRepo := postgres.NewCategoriaRepository(pool)
	areaRepo := postgres.NewAreaRepository(pool)
	proveedorRepo := postgres.NewProveedorRepository(pool)
	trabajadorRepo := postgres.NewTrabajadorRepository(pool)
	inventarioRepo := postgres.NewInventarioRepository(pool)
	txRunner := postgres.NewTxRunner(pool, cfg.DB.TxMaxWait, cfg.DB.TxTimeout)

	movimientoUC := inventory.NewMovimientoUseCase(
		txRunner, movRepo, almacenRepo, proveedorRepo, areaRepo, trabajadorRepo, invalidator, log,
	)
	materialUC := usecase.NewMaterialUseCase(materialRepo, categoriaRepo, areaRepo, stockRepo, txRunner, invalidator, log)
	reporteUC := reporte.NewReporteUseCase(
		inventarioRepo, almacenRepo, materialRepo, movRepo, proveedorRepo, areaRepo,
		infraexcel.NewInventarioExporter(),
		infrapdf.NewInventarioExporter(),
		infrapdf.NewValeGenerator(cfg.App.Empresa),
	)
	authUC := auth.NewAuthUseCase(usuarioRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    10 * 1024 * 1024, // fotos de comprobantes
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Minería Admin API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		DashboardUC:  appanalytics.NewDashboardUseCase(inventarioRepo, dashCache, log),
		MaterialUC:   materialUC,
		AlmacenUC:    usecase.NewAlmacenUseCase(almacenRepo, stockRepo, movRepo),
		CategoriaUC:  usecase.NewCategoriaUseCase(categoriaRepo, materialRepo),
		AreaUC:       usecase.NewAreaUseCase(areaRepo),
		ProveedorUC:  usecase.NewProveedorUseCase(proveedorRepo),
		TrabajadorUC: usecase.NewTrabajadorUseCase(trabajadorRepo),
		MovimientoUC: movimientoUC,
		AlertasUC:    inventory.NewAlertaStockUseCase(inventarioRepo),
		ReporteUC:    reporteUC,
		Comprobantes: comprobantes,
		DB:           pool,
		Cache:        cachePinger,
		JWTSecret:    cfg.JWT.Secret,
		Logger:       log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
