package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	diagRoute "sistema_granjas_backend/internals/features/diagnosticos/route"
	evidenciaRoute "sistema_granjas_backend/internals/features/evidencias/route"
	granjaRoute "sistema_granjas_backend/internals/features/granjas/route"
	invRoute "sistema_granjas_backend/internals/features/inventario/route"
	laborRoute "sistema_granjas_backend/internals/features/labores/route"
	recoRoute "sistema_granjas_backend/internals/features/recomendaciones/route"
	usuarioRoute "sistema_granjas_backend/internals/features/usuarios/route"
)

// SetupRoutes monta todas las rutas bajo /api.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	api := app.Group("/api")

	usuarioRoute.AuthRoutes(api, db)
	usuarioRoute.UsuarioRoutes(api, db)

	granjaRoute.GranjaRoutes(api, db)
	invRoute.InventarioRoutes(api, db)

	diagRoute.DiagnosticoRoutes(api, db)
	recoRoute.RecomendacionRoutes(api, db)
	laborRoute.LaborRoutes(api, db)
	evidenciaRoute.EvidenciaRoutes(api, db)
}
