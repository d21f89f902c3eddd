package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	m "sistema_granjas_backend/internals/features/labores/model"
	helper "sistema_granjas_backend/internals/helpers"
)

/* =========================================================
   Tipos de labor (catálogo)
   ========================================================= */

type TipoLaborController struct {
	DB *gorm.DB
}

type createTipoLaborRequest struct {
	Nombre      string  `json:"tipo_labor_nombre" validate:"required,min=1,max=100"`
	Descripcion *string `json:"tipo_labor_descripcion" validate:"omitempty,max=255"`
}

// POST /tipos-labor
func (h *TipoLaborController) Crear(c *fiber.Ctx) error {
	var req createTipoLaborRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload no válido")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	tipo := m.TipoLaborModel{
		TipoLaborNombre:      req.Nombre,
		TipoLaborDescripcion: req.Descripcion,
	}
	if err := h.DB.Create(&tipo).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Error al crear el tipo de labor")
	}
	return helper.JsonCreated(c, "Tipo de labor creado", tipo)
}

// GET /tipos-labor
func (h *TipoLaborController) Listar(c *fiber.Ctx) error {
	var tipos []m.TipoLaborModel
	if err := h.DB.Order("tipo_labor_nombre ASC").Find(&tipos).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Error al listar tipos de labor")
	}
	return helper.JsonOK(c, "Tipos de labor", tipos)
}

// DELETE /tipos-labor/:id
func (h *TipoLaborController) Eliminar(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID no válido")
	}

	var labores int64
	if err := h.DB.Model(&m.LaborModel{}).
		Where("labor_tipo_labor_id = ?", id).
		Count(&labores).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Error al consultar labores")
	}
	if labores > 0 {
		return fiber.NewError(fiber.StatusBadRequest,
			"No se puede eliminar un tipo de labor con labores asociadas")
	}

	res := h.DB.Delete(&m.TipoLaborModel{}, "tipo_labor_id = ?", id)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Error al eliminar el tipo de labor")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Tipo de labor no encontrado")
	}
	return helper.JsonDeleted(c, "Tipo de labor eliminado", fiber.Map{"tipo_labor_id": id})
}
