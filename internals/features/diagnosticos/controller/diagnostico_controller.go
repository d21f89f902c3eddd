package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sistema_granjas_backend/internals/features/diagnosticos/dto"
	"sistema_granjas_backend/internals/features/diagnosticos/service"
	helper "sistema_granjas_backend/internals/helpers"
	helperAuth "sistema_granjas_backend/internals/helpers/auth"
)

type DiagnosticoController struct {
	DB *gorm.DB
}

// POST /diagnosticos
func (h *DiagnosticoController) Crear(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromLocals(c)
	if err != nil {
		return err
	}
	var req dto.CreateDiagnosticoRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload no válido")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	diag, err := service.CrearDiagnostico(h.DB, actor, req)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "Diagnóstico creado", service.ArmarDiagnosticoResponse(h.DB, *diag))
}

// GET /diagnosticos
func (h *DiagnosticoController) Listar(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromLocals(c)
	if err != nil {
		return err
	}
	paging := helper.ResolvePaging(c, 20, 100)

	var q dto.ListDiagnosticosQuery
	if estado := strings.TrimSpace(c.Query("estado")); estado != "" {
		q.Estado = &estado
	}
	for key, dest := range map[string]**uuid.UUID{
		"lote_id":       &q.LoteID,
		"estudiante_id": &q.EstudianteID,
		"docente_id":    &q.DocenteID,
	} {
		if raw := c.Query(key); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, key+" no válido")
			}
			*dest = &id
		}
	}

	diags, total, err := service.ListarDiagnosticos(h.DB, actor, q, paging.Offset, paging.Limit)
	if err != nil {
		return err
	}

	items := make([]dto.DiagnosticoResponse, 0, len(diags))
	for _, diag := range diags {
		items = append(items, service.ArmarDiagnosticoResponse(h.DB, diag))
	}
	return helper.JsonList(c, "Diagnósticos", items,
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// GET /diagnosticos/:id
func (h *DiagnosticoController) Obtener(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID no válido")
	}
	diag, err := service.ObtenerDiagnostico(h.DB, id)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Diagnóstico", service.ArmarDiagnosticoResponse(h.DB, *diag))
}

// PATCH /diagnosticos/:id
func (h *DiagnosticoController) Actualizar(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromLocals(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID no válido")
	}
	var req dto.UpdateDiagnosticoRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload no válido")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	diag, err := service.ActualizarDiagnostico(h.DB, actor, id, req)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Diagnóstico actualizado", service.ArmarDiagnosticoResponse(h.DB, *diag))
}

// POST /diagnosticos/:id/asignar-docente
func (h *DiagnosticoController) AsignarDocente(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID no válido")
	}
	var req dto.AsignarDocenteRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload no válido")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	diag, err := service.AsignarDocente(h.DB, id, req.DocenteID)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Docente asignado", service.ArmarDiagnosticoResponse(h.DB, *diag))
}

// POST /diagnosticos/:id/cerrar
func (h *DiagnosticoController) Cerrar(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromLocals(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID no válido")
	}
	var req dto.CerrarDiagnosticoRequest
	_ = c.BodyParser(&req)

	diag, err := service.CerrarDiagnostico(h.DB, actor, id, req.Observaciones)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Diagnóstico cerrado", service.ArmarDiagnosticoResponse(h.DB, *diag))
}

// DELETE /diagnosticos/:id
func (h *DiagnosticoController) Eliminar(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromLocals(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID no válido")
	}
	if err := service.EliminarDiagnostico(h.DB, actor, id); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Diagnóstico eliminado", fiber.Map{"diagnostico_id": id})
}

// GET /diagnosticos/estadisticas
func (h *DiagnosticoController) Estadisticas(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromLocals(c)
	if err != nil {
		return err
	}
	stats, err := service.EstadisticasDiagnosticos(h.DB, actor)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Estadísticas de diagnósticos", stats)
}
