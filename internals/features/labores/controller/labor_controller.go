package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sistema_granjas_backend/internals/features/labores/dto"
	"sistema_granjas_backend/internals/features/labores/service"
	helper "sistema_granjas_backend/internals/helpers"
	helperAuth "sistema_granjas_backend/internals/helpers/auth"
)

type LaborController struct {
	DB *gorm.DB
}

func parseLaborID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "ID de labor no válido")
	}
	return id, nil
}

// POST /labores
func (h *LaborController) Crear(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromLocals(c)
	if err != nil {
		return err
	}

	var req dto.CreateLaborRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload no válido")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	labor, err := service.CrearLabor(h.DB, actor, req)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "Labor creada", service.ArmarLaborResponse(h.DB, *labor))
}

// GET /labores
func (h *LaborController) Listar(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromLocals(c)
	if err != nil {
		return err
	}
	paging := helper.ResolvePaging(c, 20, 100)

	var q dto.ListLaboresQuery
	if estado := strings.TrimSpace(c.Query("estado")); estado != "" {
		q.Estado = &estado
	}
	for key, dest := range map[string]**uuid.UUID{
		"trabajador_id":    &q.TrabajadorID,
		"lote_id":          &q.LoteID,
		"recomendacion_id": &q.RecomendacionID,
		"tipo_labor_id":    &q.TipoLaborID,
	} {
		if raw := c.Query(key); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, key+" no válido")
			}
			*dest = &id
		}
	}

	labores, total, err := service.ListarLabores(h.DB, actor, q, paging.Offset, paging.Limit)
	if err != nil {
		return err
	}

	items := make([]dto.LaborConRecursosResponse, 0, len(labores))
	for _, labor := range labores {
		items = append(items, service.ArmarLaborConRecursos(h.DB, labor))
	}
	return helper.JsonList(c, "Labores", items,
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// GET /labores/:id
func (h *LaborController) Obtener(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromLocals(c)
	if err != nil {
		return err
	}
	id, err := parseLaborID(c)
	if err != nil {
		return err
	}
	resp, err := service.ObtenerLabor(h.DB, actor, id)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Labor", resp)
}

// PATCH /labores/:id
func (h *LaborController) Actualizar(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromLocals(c)
	if err != nil {
		return err
	}
	id, err := parseLaborID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateLaborRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload no válido")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	labor, err := service.ActualizarLabor(h.DB, actor, id, req)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Labor actualizada", service.ArmarLaborResponse(h.DB, *labor))
}

// POST /labores/:id/avance
func (h *LaborController) RegistrarAvance(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromLocals(c)
	if err != nil {
		return err
	}
	id, err := parseLaborID(c)
	if err != nil {
		return err
	}
	var req dto.RegistroAvanceRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload no válido")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	labor, err := service.RegistrarAvance(h.DB, actor, id, req)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Avance registrado", service.ArmarLaborResponse(h.DB, *labor))
}

// POST /labores/:id/completar
func (h *LaborController) Completar(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromLocals(c)
	if err != nil {
		return err
	}
	id, err := parseLaborID(c)
	if err != nil {
		return err
	}
	var body struct {
		Comentario *string `json:"comentario"`
	}
	_ = c.BodyParser(&body)

	labor, err := service.CompletarLabor(h.DB, actor, id, body.Comentario)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Labor completada", service.ArmarLaborResponse(h.DB, *labor))
}

// POST /labores/:id/herramientas
func (h *LaborController) AsignarHerramienta(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromLocals(c)
	if err != nil {
		return err
	}
	id, err := parseLaborID(c)
	if err != nil {
		return err
	}
	var req dto.AsignacionHerramientaRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload no válido")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	mov, err := service.AsignarHerramienta(h.DB, actor, id, req)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "Herramienta asignada", mov)
}

// POST /labores/:id/insumos
func (h *LaborController) AsignarInsumo(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromLocals(c)
	if err != nil {
		return err
	}
	id, err := parseLaborID(c)
	if err != nil {
		return err
	}
	var req dto.AsignacionInsumoRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload no válido")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	mov, err := service.AsignarInsumo(h.DB, actor, id, req)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "Insumo asignado", mov)
}

// POST /labores/:id/herramientas/:movimientoId/devolver
func (h *LaborController) DevolverHerramienta(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromLocals(c)
	if err != nil {
		return err
	}
	id, err := parseLaborID(c)
	if err != nil {
		return err
	}
	movID, err := uuid.Parse(c.Params("movimientoId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID de movimiento no válido")
	}
	var body struct {
		Cantidad      int     `json:"cantidad" validate:"required,gt=0"`
		Observaciones *string `json:"observaciones"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload no válido")
	}
	if err := validator.New().Struct(body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	mov, err := service.DevolverHerramienta(h.DB, actor, id, movID, body.Cantidad, body.Observaciones)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "Herramienta devuelta", mov)
}

// POST /labores/:id/insumos/:movimientoId/devolver
func (h *LaborController) DevolverInsumo(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromLocals(c)
	if err != nil {
		return err
	}
	id, err := parseLaborID(c)
	if err != nil {
		return err
	}
	movID, err := uuid.Parse(c.Params("movimientoId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID de movimiento no válido")
	}
	var body struct {
		Cantidad      float64 `json:"cantidad" validate:"required,gt=0"`
		Observaciones *string `json:"observaciones"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload no válido")
	}
	if err := validator.New().Struct(body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	mov, err := service.DevolverInsumo(h.DB, actor, id, movID, body.Cantidad, body.Observaciones)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "Insumo devuelto", mov)
}

// DELETE /labores/:id
func (h *LaborController) Eliminar(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromLocals(c)
	if err != nil {
		return err
	}
	id, err := parseLaborID(c)
	if err != nil {
		return err
	}
	if err := service.EliminarLabor(h.DB, actor, id); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Labor eliminada", fiber.Map{"labor_id": id})
}

// GET /labores/estadisticas
func (h *LaborController) Estadisticas(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromLocals(c)
	if err != nil {
		return err
	}
	stats, err := service.EstadisticasLabores(h.DB, actor)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Estadísticas de labores", stats)
}
