package controller

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sistema_granjas_backend/internals/features/usuarios/dto"
	usuarioModel "sistema_granjas_backend/internals/features/usuarios/model"
	"sistema_granjas_backend/internals/features/usuarios/service"
	helper "sistema_granjas_backend/internals/helpers"
	helperAuth "sistema_granjas_backend/internals/helpers/auth"
)

type UsuarioController struct {
	DB *gorm.DB
}

// GET /usuarios
func (h *UsuarioController) Listar(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	var q dto.ListUsuariosQuery
	if rol := strings.TrimSpace(c.Query("rol")); rol != "" {
		q.Rol = &rol
	}
	if prog := strings.TrimSpace(c.Query("programa_id")); prog != "" {
		id, err := uuid.Parse(prog)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "programa_id no válido")
		}
		q.ProgramaID = &id
	}
	if activo := strings.TrimSpace(c.Query("activo")); activo != "" {
		b, err := strconv.ParseBool(activo)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "activo no válido")
		}
		q.Activo = &b
	}
	if buscar := strings.TrimSpace(c.Query("buscar")); buscar != "" {
		q.Buscar = &buscar
	}

	usuarios, total, err := service.ListarUsuarios(h.DB, q, paging.Offset, paging.Limit)
	if err != nil {
		return err
	}

	// resolver nombres de rol en una sola consulta
	var roles []usuarioModel.RolModel
	if err := h.DB.Find(&roles).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Error al consultar roles")
	}
	nombresRol := make(map[uuid.UUID]string, len(roles))
	for _, r := range roles {
		nombresRol[r.RolID] = r.RolNombre
	}

	items := make([]dto.UsuarioResponse, 0, len(usuarios))
	for _, u := range usuarios {
		items = append(items, service.ArmarUsuarioResponse(u, nombresRol[u.UsuarioRolID]))
	}
	return helper.JsonList(c, "Usuarios", items,
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// GET /usuarios/:id
func (h *UsuarioController) Obtener(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID no válido")
	}
	usuario, rolNombre, err := service.ObtenerUsuario(h.DB, id)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Usuario", service.ArmarUsuarioResponse(*usuario, rolNombre))
}

// GET /usuarios/me
func (h *UsuarioController) Perfil(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromLocals(c)
	if err != nil {
		return err
	}
	usuario, rolNombre, err := service.ObtenerUsuario(h.DB, actor.ID)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Perfil", service.ArmarUsuarioResponse(*usuario, rolNombre))
}

// PATCH /usuarios/:id
func (h *UsuarioController) Actualizar(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID no válido")
	}
	var req dto.UpdateUsuarioRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload no válido")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	usuario, rolNombre, err := service.ActualizarUsuario(h.DB, id, req)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Usuario actualizado", service.ArmarUsuarioResponse(*usuario, rolNombre))
}

// DELETE /usuarios/:id (baja lógica)
func (h *UsuarioController) Desactivar(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID no válido")
	}
	if err := service.DesactivarUsuario(h.DB, id); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Usuario desactivado", fiber.Map{"usuario_id": id})
}
