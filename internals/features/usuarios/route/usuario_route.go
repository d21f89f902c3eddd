package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sistema_granjas_backend/internals/constants"
	"sistema_granjas_backend/internals/features/usuarios/controller"
	"sistema_granjas_backend/internals/middlewares"
	authMw "sistema_granjas_backend/internals/middlewares/auth"
)

// AuthRoutes: endpoints públicos de autenticación.
func AuthRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := &controller.AuthController{DB: db}

	auth := api.Group("/auth")
	auth.Post("/registro", middlewares.LoginRateLimiter(), ctrl.Registro)
	auth.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
	auth.Post("/logout", ctrl.Logout)
}

// UsuarioRoutes: gestión de usuarios (protegida).
func UsuarioRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := &controller.UsuarioController{DB: db}

	usuarios := api.Group("/usuarios", authMw.AuthMiddleware(db))
	usuarios.Get("/me", ctrl.Perfil)
	usuarios.Get("/",
		authMw.OnlyRoles(constants.RoleErrorAsignadores("el listado de usuarios"), constants.Asignadores...),
		ctrl.Listar)
	usuarios.Get("/:id",
		authMw.OnlyRoles(constants.RoleErrorAsignadores("la consulta de usuarios"), constants.Asignadores...),
		ctrl.Obtener)
	usuarios.Patch("/:id",
		authMw.OnlyRoles(constants.RoleErrorAdmin("la edición de usuarios"), constants.SoloAdmin...),
		ctrl.Actualizar)
	usuarios.Delete("/:id",
		authMw.OnlyRoles(constants.RoleErrorAdmin("la baja de usuarios"), constants.SoloAdmin...),
		ctrl.Desactivar)
}
