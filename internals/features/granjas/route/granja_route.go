package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sistema_granjas_backend/internals/constants"
	"sistema_granjas_backend/internals/features/granjas/controller"
	authMw "sistema_granjas_backend/internals/middlewares/auth"
)

// GranjaRoutes: catálogos de programas, granjas, lotes, tipos de lote
// y cultivos. Lectura para todo usuario autenticado; escritura solo
// para administradores.
func GranjaRoutes(api fiber.Router, db *gorm.DB) {
	granjaCtrl := &controller.GranjaController{DB: db}
	loteCtrl := &controller.LoteController{DB: db}
	catalogoCtrl := &controller.CatalogoController{DB: db}

	soloAdmin := authMw.OnlyRoles(
		constants.RoleErrorAdmin("la administración de catálogos"), constants.SoloAdmin...)

	programas := api.Group("/programas", authMw.AuthMiddleware(db))
	programas.Get("/", granjaCtrl.ListarProgramas)
	programas.Get("/:id", granjaCtrl.ObtenerPrograma)
	programas.Post("/", soloAdmin, granjaCtrl.CrearPrograma)
	programas.Delete("/:id", soloAdmin, granjaCtrl.EliminarPrograma)

	granjas := api.Group("/granjas", authMw.AuthMiddleware(db))
	granjas.Get("/", granjaCtrl.ListarGranjas)
	granjas.Get("/:id", granjaCtrl.ObtenerGranja)
	granjas.Post("/", soloAdmin, granjaCtrl.CrearGranja)
	granjas.Delete("/:id", soloAdmin, granjaCtrl.EliminarGranja)

	lotes := api.Group("/lotes", authMw.AuthMiddleware(db))
	lotes.Get("/", loteCtrl.Listar)
	lotes.Get("/:id", loteCtrl.Obtener)
	lotes.Post("/", soloAdmin, loteCtrl.Crear)
	lotes.Patch("/:id", soloAdmin, loteCtrl.Actualizar)
	lotes.Delete("/:id", soloAdmin, loteCtrl.Eliminar)

	tiposLote := api.Group("/tipos-lote", authMw.AuthMiddleware(db))
	tiposLote.Get("/", catalogoCtrl.ListarTiposLote)
	tiposLote.Post("/", soloAdmin, catalogoCtrl.CrearTipoLote)

	cultivos := api.Group("/cultivos", authMw.AuthMiddleware(db))
	cultivos.Get("/", catalogoCtrl.ListarCultivos)
	cultivos.Post("/", soloAdmin, catalogoCtrl.CrearCultivo)
}
