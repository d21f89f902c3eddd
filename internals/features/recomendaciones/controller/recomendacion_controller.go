package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sistema_granjas_backend/internals/features/recomendaciones/dto"
	"sistema_granjas_backend/internals/features/recomendaciones/service"
	helper "sistema_granjas_backend/internals/helpers"
	helperAuth "sistema_granjas_backend/internals/helpers/auth"
)

type RecomendacionController struct {
	DB *gorm.DB
}

// POST /recomendaciones
func (h *RecomendacionController) Crear(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromLocals(c)
	if err != nil {
		return err
	}
	var req dto.CreateRecomendacionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload no válido")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	reco, err := service.CrearRecomendacion(h.DB, actor, req)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "Recomendación creada", service.ArmarRecomendacionResponse(h.DB, *reco))
}

// GET /recomendaciones
func (h *RecomendacionController) Listar(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromLocals(c)
	if err != nil {
		return err
	}
	paging := helper.ResolvePaging(c, 20, 100)

	var q dto.ListRecomendacionesQuery
	if estado := strings.TrimSpace(c.Query("estado")); estado != "" {
		q.Estado = &estado
	}
	for key, dest := range map[string]**uuid.UUID{
		"lote_id":        &q.LoteID,
		"docente_id":     &q.DocenteID,
		"diagnostico_id": &q.DiagnosticoID,
	} {
		if raw := c.Query(key); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, key+" no válido")
			}
			*dest = &id
		}
	}

	recos, total, err := service.ListarRecomendaciones(h.DB, actor, q, paging.Offset, paging.Limit)
	if err != nil {
		return err
	}

	items := make([]dto.RecomendacionResponse, 0, len(recos))
	for _, reco := range recos {
		items = append(items, service.ArmarRecomendacionResponse(h.DB, reco))
	}
	return helper.JsonList(c, "Recomendaciones", items,
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// GET /recomendaciones/:id
func (h *RecomendacionController) Obtener(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID no válido")
	}
	reco, err := service.ObtenerRecomendacion(h.DB, id)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Recomendación", service.ArmarRecomendacionResponse(h.DB, *reco))
}

// PATCH /recomendaciones/:id
func (h *RecomendacionController) Actualizar(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromLocals(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID no válido")
	}
	var req dto.UpdateRecomendacionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload no válido")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	reco, err := service.ActualizarRecomendacion(h.DB, actor, id, req)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Recomendación actualizada", service.ArmarRecomendacionResponse(h.DB, *reco))
}

// POST /recomendaciones/:id/aprobar
func (h *RecomendacionController) Aprobar(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID no válido")
	}
	reco, err := service.AprobarRecomendacion(h.DB, id)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Recomendación aprobada", service.ArmarRecomendacionResponse(h.DB, *reco))
}

// POST /recomendaciones/:id/rechazar
func (h *RecomendacionController) Rechazar(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID no válido")
	}
	reco, err := service.RechazarRecomendacion(h.DB, id)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Recomendación rechazada", service.ArmarRecomendacionResponse(h.DB, *reco))
}

// DELETE /recomendaciones/:id
func (h *RecomendacionController) Eliminar(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromLocals(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID no válido")
	}
	if err := service.EliminarRecomendacion(h.DB, actor, id); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Recomendación eliminada", fiber.Map{"recomendacion_id": id})
}

// GET /recomendaciones/estadisticas
func (h *RecomendacionController) Estadisticas(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromLocals(c)
	if err != nil {
		return err
	}
	stats, err := service.EstadisticasRecomendaciones(h.DB, actor)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Estadísticas de recomendaciones", stats)
}
