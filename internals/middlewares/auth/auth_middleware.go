package auth

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sistema_granjas_backend/internals/configs"
	usuarioModel "sistema_granjas_backend/internals/features/usuarios/model"
	helper "sistema_granjas_backend/internals/helpers"
)

// AuthMiddleware valida el JWT y deja usuario_id, rol y programa_id en Locals.
func AuthMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		secretKey := configs.JWTSecret
		if secretKey == "" {
			log.Println("[ERROR] JWT_SECRET vacío")
			return fiber.NewError(fiber.StatusInternalServerError, "Missing JWT Secret")
		}

		claims := jwt.MapClaims{}
		parser := jwt.Parser{SkipClaimsValidation: true}
		if _, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(secretKey), nil
		}); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token parse error")
		}

		if err := validateTokenExpiry(claims, 30*time.Second); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token expired")
		}

		usuarioID, err := extractUsuarioID(claims)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Invalid or missing user ID")
		}

		if err := ensureUsuarioActivo(db, usuarioID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Usuario no encontrado")
			}
			return fiber.NewError(fiber.StatusForbidden, "Su cuenta ha sido desactivada")
		}

		c.Locals(helper.LocUsuarioID, usuarioID.String())
		if rol, ok := claims["rol"].(string); ok {
			c.Locals(helper.LocRol, rol)
		}
		if prog, ok := claims["programa_id"].(string); ok && prog != "" {
			c.Locals(helper.LocProgramaID, prog)
		}
		helper.SetRawAccessToken(c, tokenString)

		return c.Next()
	}
}

func extractBearerToken(c *fiber.Ctx) (string, error) {
	if v := strings.TrimSpace(c.Cookies("access_token")); v != "" {
		return v, nil
	}
	auth := c.Get("Authorization")
	const p = "Bearer "
	if len(auth) > len(p) && strings.HasPrefix(auth, p) {
		return strings.TrimSpace(auth[len(p):]), nil
	}
	return "", errors.New("Unauthorized - Missing token")
}

func validateTokenExpiry(claims jwt.MapClaims, leeway time.Duration) error {
	expRaw, ok := claims["exp"]
	if !ok {
		return errors.New("exp claim ausente")
	}
	expFloat, ok := expRaw.(float64)
	if !ok {
		return errors.New("exp claim inválido")
	}
	exp := time.Unix(int64(expFloat), 0)
	if time.Now().After(exp.Add(leeway)) {
		return errors.New("token expirado")
	}
	return nil
}

func extractUsuarioID(claims jwt.MapClaims) (uuid.UUID, error) {
	sub, ok := claims["sub"].(string)
	if !ok || strings.TrimSpace(sub) == "" {
		return uuid.Nil, errors.New("sub claim ausente")
	}
	return uuid.Parse(strings.TrimSpace(sub))
}

func ensureUsuarioActivo(db *gorm.DB, id uuid.UUID) error {
	var u usuarioModel.UsuarioModel
	if err := db.Select("usuario_id", "usuario_activo").
		Where("usuario_id = ?", id).
		First(&u).Error; err != nil {
		return err
	}
	if !u.UsuarioActivo {
		return errors.New("usuario inactivo")
	}
	return nil
}
