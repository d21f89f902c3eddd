package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sistema_granjas_backend/internals/features/evidencias/controller"
	authMw "sistema_granjas_backend/internals/middlewares/auth"
)

func EvidenciaRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := &controller.EvidenciaController{DB: db}

	evidencias := api.Group("/evidencias", authMw.AuthMiddleware(db))
	evidencias.Post("/", ctrl.Crear)
	evidencias.Get("/:entidadTipo/:entidadId", ctrl.ListarPorEntidad)
	evidencias.Delete("/:id", ctrl.Eliminar)
}
