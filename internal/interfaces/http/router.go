package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/mineria-admin/internal/application/analytics"
	"github.com/jhoicas/mineria-admin/internal/application/auth"
	"github.com/jhoicas/mineria-admin/internal/application/inventory"
	"github.com/jhoicas/mineria-admin/internal/application/reporte"
	"github.com/jhoicas/mineria-admin/internal/application/usecase"
	"github.com/jhoicas/mineria-admin/internal/domain/access"
	"github.com/jhoicas/mineria-admin/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	DashboardUC  *appanalytics.DashboardUseCase
	MaterialUC   *usecase.MaterialUseCase
	AlmacenUC    *usecase.AlmacenUseCase
	CategoriaUC  *usecase.CategoriaUseCase
	AreaUC       *usecase.AreaUseCase
	ProveedorUC  *usecase.ProveedorUseCase
	TrabajadorUC *usecase.TrabajadorUseCase
	MovimientoUC *inventory.MovimientoUseCase
	AlertasUC    *inventory.AlertaStockUseCase
	ReporteUC    *reporte.ReporteUseCase
	Comprobantes ComprobanteStore // nil deshabilita la subida de fotos
	DB           Pinger
	Cache        Pinger // opcional
	JWTSecret    string
	Logger       *logger.Logger
}

// Router registra las rutas de la API. Cada grupo aplica el Access Gate de su página.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", NewHealthHandler(deps.DB, deps.Cache).Health)

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/permisos", authHandler.Permisos)

	usuarios := protected.Group("/configuracion/usuarios", RequireAccess(access.RutaUsuarios))
	usuarios.Get("/", authHandler.ListUsers)
	usuarios.Post("/", authHandler.CreateUser)

	protected.Get("/dashboard", RequireAccess(access.RutaInicio), NewDashboardHandler(deps.DashboardUC).GetSummary)

	materiales := protected.Group("/almacen/materiales", RequireAccess(usecase.RutaMateriales))
	materialHandler := NewMaterialHandler(deps.MaterialUC)
	materiales.Get("/", materialHandler.List)
	materiales.Post("/", materialHandler.Create)
	materiales.Get("/:id", materialHandler.GetByID)
	materiales.Put("/:id", materialHandler.Update)
	materiales.Delete("/:id", materialHandler.Delete)

	almacenes := protected.Group("/almacen/almacenes", RequireAccess(usecase.RutaAlmacenes))
	almacenHandler := NewAlmacenHandler(deps.AlmacenUC)
	almacenes.Get("/", almacenHandler.List)
	almacenes.Post("/", almacenHandler.Create)
	almacenes.Get("/:id", almacenHandler.GetByID)
	almacenes.Put("/:id", almacenHandler.Update)
	almacenes.Delete("/:id", almacenHandler.Delete)

	catalogo := NewCatalogoHandler(deps.CategoriaUC, deps.AreaUC, deps.ProveedorUC, deps.TrabajadorUC)
	categorias := protected.Group("/almacen/categorias", RequireAccess(usecase.RutaCategorias))
	categorias.Get("/", catalogo.ListCategorias)
	categorias.Post("/", catalogo.CreateCategoria)
	categorias.Delete("/:id", catalogo.DeleteCategoria)

	areas := protected.Group("/almacen/areas", RequireAccess(usecase.RutaAreas))
	areas.Get("/", catalogo.ListAreas)
	areas.Post("/", catalogo.CreateArea)

	proveedores := protected.Group("/almacen/proveedores", RequireAccess(usecase.RutaProveedores))
	proveedores.Get("/", catalogo.ListProveedores)
	proveedores.Post("/", catalogo.CreateProveedor)

	trabajadores := protected.Group("/personal/trabajadores", RequireAccess(usecase.RutaTrabajadores))
	trabajadores.Get("/", catalogo.ListTrabajadores)
	trabajadores.Post("/", catalogo.CreateTrabajador)

	// Movimientos de inventario
	movHandler := NewMovimientoHandler(deps.MovimientoUC, deps.ReporteUC, deps.Comprobantes, deps.Logger)

	ingresos := protected.Group("/almacen/ingresos", RequireAccess(inventory.RutaIngresos))
	ingresos.Get("/", movHandler.ListIngresos)
	ingresos.Post("/", movHandler.RegisterIngreso)
	ingresos.Get("/:id", movHandler.GetIngreso)
	ingresos.Get("/:id/pdf", movHandler.ValeIngreso)
	// Las fotos de guías y facturas solo se sirven a quien puede ver el ingreso.
	ingresos.Get("/:id/comprobante", movHandler.ComprobanteIngreso)

	salidas := protected.Group("/almacen/salidas", RequireAccess(inventory.RutaSalidas))
	salidas.Get("/", movHandler.ListSalidas)
	salidas.Post("/", movHandler.RegisterSalida)
	salidas.Get("/:id", movHandler.GetSalida)
	salidas.Get("/:id/pdf", movHandler.ValeSalida)

	epp := protected.Group("/personal/epp", RequireAccess(access.RutaEntregaEPP))
	epp.Get("/", movHandler.ListEntregasEPP)
	epp.Post("/", movHandler.RegisterEntregaEPP)
	epp.Get("/:id", movHandler.GetEntregaEPP)

	// Reportes
	reporteHandler := NewReporteHandler(deps.ReporteUC, deps.AlertasUC)
	reportes := protected.Group("/reportes", RequireAccess(access.RutaReportes))
	reportes.Get("/inventario", reporteHandler.Inventario)
	reportes.Get("/alertas-stock", reporteHandler.AlertasStock)
}
