package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sistema_granjas_backend/internals/features/granjas/dto"
	m "sistema_granjas_backend/internals/features/granjas/model"
	helper "sistema_granjas_backend/internals/helpers"
)

/* =========================================================
   Programas y granjas (catálogos administrados)
   ========================================================= */

type GranjaController struct {
	DB *gorm.DB
}

// POST /programas
func (h *GranjaController) CrearPrograma(c *fiber.Ctx) error {
	var req dto.CreateProgramaRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload no válido")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	programa := req.ToModel()
	if err := h.DB.Create(&programa).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Error al crear el programa")
	}
	return helper.JsonCreated(c, "Programa creado", programa)
}

// GET /programas
func (h *GranjaController) ListarProgramas(c *fiber.Ctx) error {
	var programas []m.ProgramaModel
	if err := h.DB.Order("programa_nombre ASC").Find(&programas).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Error al listar programas")
	}
	return helper.JsonOK(c, "Programas", programas)
}

// GET /programas/:id
func (h *GranjaController) ObtenerPrograma(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID no válido")
	}
	var programa m.ProgramaModel
	if err := h.DB.First(&programa, "programa_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Programa no encontrado")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Error al consultar el programa")
	}
	return helper.JsonOK(c, "Programa", programa)
}

// DELETE /programas/:id
func (h *GranjaController) EliminarPrograma(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID no válido")
	}

	var lotes int64
	if err := h.DB.Model(&m.LoteModel{}).
		Where("lote_programa_id = ?", id).
		Count(&lotes).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Error al consultar lotes")
	}
	if lotes > 0 {
		return fiber.NewError(fiber.StatusBadRequest,
			"No se puede eliminar un programa con lotes asociados")
	}

	res := h.DB.Delete(&m.ProgramaModel{}, "programa_id = ?", id)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Error al eliminar el programa")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Programa no encontrado")
	}
	return helper.JsonDeleted(c, "Programa eliminado", fiber.Map{"programa_id": id})
}

// POST /granjas
func (h *GranjaController) CrearGranja(c *fiber.Ctx) error {
	var req dto.CreateGranjaRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload no válido")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	granja := req.ToModel()
	if err := h.DB.Create(&granja).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Error al crear la granja")
	}
	return helper.JsonCreated(c, "Granja creada", granja)
}

// GET /granjas
func (h *GranjaController) ListarGranjas(c *fiber.Ctx) error {
	var granjas []m.GranjaModel
	if err := h.DB.Where("granja_activo = ?", true).
		Order("granja_nombre ASC").
		Find(&granjas).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Error al listar granjas")
	}
	return helper.JsonOK(c, "Granjas", granjas)
}

// GET /granjas/:id
func (h *GranjaController) ObtenerGranja(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID no válido")
	}
	var granja m.GranjaModel
	if err := h.DB.First(&granja, "granja_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Granja no encontrada")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Error al consultar la granja")
	}
	return helper.JsonOK(c, "Granja", granja)
}

// DELETE /granjas/:id (baja lógica)
func (h *GranjaController) EliminarGranja(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID no válido")
	}
	res := h.DB.Model(&m.GranjaModel{}).
		Where("granja_id = ?", id).
		UpdateColumn("granja_activo", false)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Error al eliminar la granja")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Granja no encontrada")
	}
	return helper.JsonDeleted(c, "Granja desactivada", fiber.Map{"granja_id": id})
}
