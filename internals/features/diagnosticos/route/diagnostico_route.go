package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sistema_granjas_backend/internals/constants"
	"sistema_granjas_backend/internals/features/diagnosticos/controller"
	authMw "sistema_granjas_backend/internals/middlewares/auth"
)

func DiagnosticoRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := &controller.DiagnosticoController{DB: db}

	diags := api.Group("/diagnosticos", authMw.AuthMiddleware(db))

	diags.Get("/estadisticas", ctrl.Estadisticas)
	diags.Get("/", ctrl.Listar)
	diags.Get("/:id", ctrl.Obtener)

	diags.Post("/",
		authMw.OnlyRoles("Solo los estudiantes pueden crear diagnósticos",
			constants.RolEstudiante, constants.RolAdmin),
		ctrl.Crear)
	diags.Patch("/:id", ctrl.Actualizar)
	diags.Delete("/:id", ctrl.Eliminar)

	diags.Post("/:id/asignar-docente",
		authMw.OnlyRoles(constants.RoleErrorAsignadores("la asignación de docentes"), constants.Asignadores...),
		ctrl.AsignarDocente)
	diags.Post("/:id/cerrar",
		authMw.OnlyRoles("Solo docentes y asesores pueden cerrar diagnósticos", constants.DocentesYAdmin...),
		ctrl.Cerrar)
}
