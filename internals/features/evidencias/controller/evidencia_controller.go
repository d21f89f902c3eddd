package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sistema_granjas_backend/internals/features/evidencias/dto"
	m "sistema_granjas_backend/internals/features/evidencias/model"
	"sistema_granjas_backend/internals/features/evidencias/service"
	helper "sistema_granjas_backend/internals/helpers"
	helperAuth "sistema_granjas_backend/internals/helpers/auth"
)

type EvidenciaController struct {
	DB *gorm.DB
}

// POST /evidencias
func (h *EvidenciaController) Crear(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromLocals(c)
	if err != nil {
		return err
	}
	var req dto.CreateEvidenciaRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload no válido")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	ev, err := service.CrearEvidencia(h.DB, actor, req)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "Evidencia creada", service.ArmarEvidenciaResponse(h.DB, *ev))
}

// GET /evidencias/:entidadTipo/:entidadId
func (h *EvidenciaController) ListarPorEntidad(c *fiber.Ctx) error {
	tipo := m.EntidadEvidencia(c.Params("entidadTipo"))
	entidadID, err := uuid.Parse(c.Params("entidadId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID de entidad no válido")
	}

	evs, err := service.ListarEvidenciasPorEntidad(h.DB, tipo, entidadID)
	if err != nil {
		return err
	}

	items := make([]dto.EvidenciaResponse, 0, len(evs))
	for _, ev := range evs {
		items = append(items, service.ArmarEvidenciaResponse(h.DB, ev))
	}
	return helper.JsonOK(c, "Evidencias", items)
}

// DELETE /evidencias/:id
func (h *EvidenciaController) Eliminar(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromLocals(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID no válido")
	}
	if err := service.EliminarEvidencia(h.DB, actor, id); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Evidencia eliminada", fiber.Map{"evidencia_id": id})
}
