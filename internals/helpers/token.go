package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Claves usadas por el middleware de auth en c.Locals
const (
	LocUsuarioID  = "usuario_id"
	LocRol        = "rol"
	LocProgramaID = "programa_id"
	LocRawToken   = "raw_token"
)

// GetRawAccessToken devuelve el access token desde:
// 1) cookie "access_token"
// 2) Locals("raw_token") seteado por el middleware
// 3) header "Authorization: Bearer <token>"
func GetRawAccessToken(c *fiber.Ctx) string {
	if v := strings.TrimSpace(c.Cookies("access_token")); v != "" {
		return v
	}
	if v, ok := c.Locals(LocRawToken).(string); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	const p = "Bearer "
	auth := c.Get("Authorization")
	if len(auth) > len(p) && strings.HasPrefix(auth, p) {
		return strings.TrimSpace(auth[len(p):])
	}
	return ""
}

// SetRawAccessToken guarda el token crudo en Locals (lo llama el middleware).
func SetRawAccessToken(c *fiber.Ctx, raw string) {
	if strings.TrimSpace(raw) != "" {
		c.Locals(LocRawToken, strings.TrimSpace(raw))
	}
}

// GetUsuarioIDFromToken lee el usuario_id dejado por el middleware.
// 401 si no hay sesión, 400 si el formato no es válido.
func GetUsuarioIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	v := c.Locals(LocUsuarioID)
	if v == nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Usuario no autenticado")
	}

	switch t := v.(type) {
	case uuid.UUID:
		if t == uuid.Nil {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Usuario no autenticado")
		}
		return t, nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Usuario no autenticado")
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Usuario ID del token no es válido")
		}
		return id, nil
	default:
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Usuario ID del token no es válido")
	}
}

// GetRolFromToken lee el rol dejado por el middleware.
func GetRolFromToken(c *fiber.Ctx) (string, error) {
	rol, ok := c.Locals(LocRol).(string)
	if !ok || strings.TrimSpace(rol) == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Rol no presente en el token")
	}
	return rol, nil
}

// GetProgramaIDFromToken lee el programa_id (opcional) dejado por el middleware.
func GetProgramaIDFromToken(c *fiber.Ctx) *uuid.UUID {
	s, ok := c.Locals(LocProgramaID).(string)
	if !ok || strings.TrimSpace(s) == "" {
		return nil
	}
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &id
}
