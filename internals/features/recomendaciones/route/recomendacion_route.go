package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sistema_granjas_backend/internals/constants"
	"sistema_granjas_backend/internals/features/recomendaciones/controller"
	authMw "sistema_granjas_backend/internals/middlewares/auth"
)

func RecomendacionRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := &controller.RecomendacionController{DB: db}

	recos := api.Group("/recomendaciones", authMw.AuthMiddleware(db))

	recos.Get("/estadisticas", ctrl.Estadisticas)
	recos.Get("/", ctrl.Listar)
	recos.Get("/:id", ctrl.Obtener)

	recos.Post("/",
		authMw.OnlyRoles("Solo docentes y asesores pueden crear recomendaciones", constants.DocentesYAdmin...),
		ctrl.Crear)
	recos.Patch("/:id",
		authMw.OnlyRoles("Solo docentes y asesores pueden modificar recomendaciones", constants.DocentesYAdmin...),
		ctrl.Actualizar)
	recos.Delete("/:id",
		authMw.OnlyRoles("Solo docentes y asesores pueden eliminar recomendaciones", constants.DocentesYAdmin...),
		ctrl.Eliminar)

	recos.Post("/:id/aprobar",
		authMw.OnlyRoles(constants.RoleErrorAsignadores("la aprobación de recomendaciones"), constants.Asignadores...),
		ctrl.Aprobar)
	recos.Post("/:id/rechazar",
		authMw.OnlyRoles(constants.RoleErrorAsignadores("el rechazo de recomendaciones"), constants.Asignadores...),
		ctrl.Rechazar)
}
