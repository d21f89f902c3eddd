package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sistema_granjas_backend/internals/features/usuarios/dto"
	"sistema_granjas_backend/internals/features/usuarios/service"
	helper "sistema_granjas_backend/internals/helpers"
)

type AuthController struct {
	DB *gorm.DB
}

// POST /auth/registro
func (h *AuthController) Registro(c *fiber.Ctx) error {
	var req dto.RegistroRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload no válido")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	usuario, err := service.Registro(h.DB, req)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "Usuario registrado", service.ArmarUsuarioResponse(*usuario, req.Rol))
}

// POST /auth/login
func (h *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload no válido")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	resp, err := service.Login(h.DB, req)
	if err != nil {
		return err
	}

	// cookie httpOnly además del body, para clientes web
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    resp.AccessToken,
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
		MaxAge:   int(resp.ExpiresIn),
	})
	return helper.JsonOK(c, "Login exitoso", resp)
}

// POST /auth/logout
func (h *AuthController) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    "",
		HTTPOnly: true,
		Path:     "/",
		MaxAge:   -1,
	})
	return helper.JsonOK(c, "Sesión cerrada", nil)
}
