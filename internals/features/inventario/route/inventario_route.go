package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sistema_granjas_backend/internals/constants"
	"sistema_granjas_backend/internals/features/inventario/controller"
	authMw "sistema_granjas_backend/internals/middlewares/auth"
)

// InventarioRoutes: catálogo de herramientas/insumos y consulta del
// ledger. La escritura del ledger vive en las rutas de labores.
func InventarioRoutes(api fiber.Router, db *gorm.DB) {
	invCtrl := &controller.InventarioController{DB: db}
	movCtrl := &controller.MovimientoController{DB: db}

	escritura := authMw.OnlyRoles(
		constants.RoleErrorAsignadores("la gestión de inventario"), constants.Asignadores...)

	inventario := api.Group("/inventario", authMw.AuthMiddleware(db))

	categorias := inventario.Group("/categorias")
	categorias.Get("/", invCtrl.ListarCategorias)
	categorias.Post("/", escritura, invCtrl.CrearCategoria)
	categorias.Delete("/:id", escritura, invCtrl.EliminarCategoria)

	herramientas := inventario.Group("/herramientas")
	herramientas.Get("/", invCtrl.ListarHerramientas)
	herramientas.Get("/:id", invCtrl.ObtenerHerramienta)
	herramientas.Post("/", escritura, invCtrl.CrearHerramienta)
	herramientas.Delete("/:id", escritura, invCtrl.EliminarHerramienta)

	insumos := inventario.Group("/insumos")
	insumos.Get("/", invCtrl.ListarInsumos)
	insumos.Get("/:id", invCtrl.ObtenerInsumo)
	insumos.Post("/", escritura, invCtrl.CrearInsumo)
	insumos.Delete("/:id", escritura, invCtrl.EliminarInsumo)

	movimientos := inventario.Group("/movimientos")
	movimientos.Get("/herramientas", movCtrl.ListarMovimientosHerramientas)
	movimientos.Get("/insumos", movCtrl.ListarMovimientosInsumos)
	movimientos.Get("/estadisticas", movCtrl.Estadisticas)
}
