package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sistema_granjas_backend/internals/constants"
	"sistema_granjas_backend/internals/features/labores/controller"
	authMw "sistema_granjas_backend/internals/middlewares/auth"
)

// LaborRoutes: el gate de rol grueso va acá; la matriz de permisos
// fina (dueño de la labor, programa, recomendación) decide en el
// service.
func LaborRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := &controller.LaborController{DB: db}
	tiposCtrl := &controller.TipoLaborController{DB: db}

	soloAdmin := authMw.OnlyRoles(
		constants.RoleErrorAdmin("el catálogo de tipos de labor"), constants.SoloAdmin...)

	tipos := api.Group("/tipos-labor", authMw.AuthMiddleware(db))
	tipos.Get("/", tiposCtrl.Listar)
	tipos.Post("/", soloAdmin, tiposCtrl.Crear)
	tipos.Delete("/:id", soloAdmin, tiposCtrl.Eliminar)

	labores := api.Group("/labores", authMw.AuthMiddleware(db))

	labores.Get("/estadisticas", ctrl.Estadisticas)
	labores.Get("/", ctrl.Listar)
	labores.Get("/:id", ctrl.Obtener)

	labores.Post("/",
		authMw.OnlyRoles(constants.RoleErrorAsignadores("la creación de labores"), constants.Asignadores...),
		ctrl.Crear)
	labores.Patch("/:id", ctrl.Actualizar)
	labores.Delete("/:id", ctrl.Eliminar)

	labores.Post("/:id/avance", ctrl.RegistrarAvance)
	labores.Post("/:id/completar", ctrl.Completar)

	labores.Post("/:id/herramientas", ctrl.AsignarHerramienta)
	labores.Post("/:id/insumos", ctrl.AsignarInsumo)
	labores.Post("/:id/herramientas/:movimientoId/devolver", ctrl.DevolverHerramienta)
	labores.Post("/:id/insumos/:movimientoId/devolver", ctrl.DevolverInsumo)
}
