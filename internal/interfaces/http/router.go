package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/agrogest/AgroGest-api/internal/application/auth"
	"github.com/agrogest/AgroGest-api/internal/application/inventario"
	"github.com/agrogest/AgroGest-api/internal/application/tarea"
	"github.com/agrogest/AgroGest-api/internal/application/usecase"
	"github.com/agrogest/AgroGest-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	FincaUC             *usecase.FincaUseCase
	LoteUC              *usecase.LoteUseCase
	ProductoUC          *usecase.ProductoUseCase
	MaquinariaUC        *usecase.MaquinariaUseCase
	RegistrarMovimiento *inventario.RegistrarMovimientoUseCase
	ConsultaInventario  *inventario.ConsultaUseCase
	TareaUC             *tarea.UseCase
	EjecutarTarea       *tarea.EjecutarTareaUseCase
	AuthUC              *auth.AuthUseCase
	JWTSecret           string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Las mutaciones de catálogo requieren admin o agrónomo; los operarios
	// pueden ejecutar tareas y subir evidencias.
	gestion := RequireRole(entity.RolAdmin, entity.RolAgronomo)

	// Fincas
	fincas := protected.Group("/fincas")
	fincaHandler := NewFincaHandler(deps.FincaUC)
	fincas.Post("/", gestion, fincaHandler.Create)
	fincas.Get("/", fincaHandler.List)
	fincas.Get("/:id", fincaHandler.GetByID)
	fincas.Put("/:id", gestion, fincaHandler.Update)

	// Lotes (anidados bajo finca para crear/listar)
	loteHandler := NewLoteHandler(deps.LoteUC)
	fincas.Post("/:fincaId/lotes", gestion, loteHandler.Create)
	fincas.Get("/:fincaId/lotes", loteHandler.List)
	lotes := protected.Group("/lotes")
	lotes.Get("/:id", loteHandler.GetByID)
	lotes.Put("/:id", gestion, loteHandler.Update)

	// Productos (catálogo de insumos)
	productoHandler := NewProductoHandler(deps.ProductoUC)
	fincas.Post("/:fincaId/productos", gestion, productoHandler.Create)
	fincas.Get("/:fincaId/productos", productoHandler.List)
	productos := protected.Group("/productos")
	productos.Get("/:id", productoHandler.GetByID)
	productos.Put("/:id", gestion, productoHandler.Update)

	// Movimientos de inventario
	inventarioHandler := NewInventarioHandler(deps.RegistrarMovimiento, deps.ConsultaInventario)
	fincas.Post("/:fincaId/movimientos", gestion, inventarioHandler.RegistrarMovimiento)
	fincas.Get("/:fincaId/movimientos", inventarioHandler.ListByFinca)
	productos.Get("/:id/movimientos", inventarioHandler.ListByProducto)

	// Tareas de campo
	tareaHandler := NewTareaHandler(deps.TareaUC, deps.EjecutarTarea)
	fincas.Post("/:fincaId/tareas", gestion, tareaHandler.Create)
	fincas.Get("/:fincaId/tareas", tareaHandler.List)
	fincas.Post("/:fincaId/tareas/:id/ejecutar", tareaHandler.Ejecutar)
	fincas.Post("/:fincaId/tareas/:id/cancelar", gestion, tareaHandler.Cancelar)
	fincas.Post("/:fincaId/tareas/:id/evidencias", tareaHandler.SubirEvidencia)
	tareas := protected.Group("/tareas")
	tareas.Get("/:id", tareaHandler.GetByID)
	tareas.Get("/:id/usos", tareaHandler.Usos)

	// Maquinaria
	maquinariaHandler := NewMaquinariaHandler(deps.MaquinariaUC)
	fincas.Post("/:fincaId/maquinarias", gestion, maquinariaHandler.Create)
	fincas.Get("/:fincaId/maquinarias", maquinariaHandler.List)
	maquinarias := protected.Group("/maquinarias")
	maquinarias.Get("/:id", maquinariaHandler.GetByID)
	maquinarias.Put("/:id", gestion, maquinariaHandler.Update)
	maquinarias.Get("/:id/usos", maquinariaHandler.Usos)
}
