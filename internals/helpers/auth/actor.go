package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	helper "sistema_granjas_backend/internals/helpers"
)

// Actor es la identidad resuelta del caller (claims del JWT).
// Los services reciben esto en lugar del *fiber.Ctx para mantenerse testeables.
type Actor struct {
	ID         uuid.UUID
	Rol        string
	ProgramaID *uuid.UUID
}

// ActorFromLocals arma el Actor desde lo que dejó el middleware de auth.
func ActorFromLocals(c *fiber.Ctx) (Actor, error) {
	id, err := helper.GetUsuarioIDFromToken(c)
	if err != nil {
		return Actor{}, err
	}
	rol, err := helper.GetRolFromToken(c)
	if err != nil {
		return Actor{}, err
	}
	return Actor{
		ID:         id,
		Rol:        rol,
		ProgramaID: helper.GetProgramaIDFromToken(c),
	}, nil
}
