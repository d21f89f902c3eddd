package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	diagModel "sistema_granjas_backend/internals/features/diagnosticos/model"
	"sistema_granjas_backend/internals/features/granjas/dto"
	m "sistema_granjas_backend/internals/features/granjas/model"
	recoModel "sistema_granjas_backend/internals/features/recomendaciones/model"
	helper "sistema_granjas_backend/internals/helpers"
)

/* =========================================================
   Lotes, tipos de lote y cultivos/especies
   ========================================================= */

type LoteController struct {
	DB *gorm.DB
}

// POST /lotes
func (h *LoteController) Crear(c *fiber.Ctx) error {
	var req dto.CreateLoteRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload no válido")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if req.GranjaID != nil {
		var granja m.GranjaModel
		if err := h.DB.First(&granja, "granja_id = ?", *req.GranjaID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Granja no encontrada")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Error al consultar la granja")
		}
	}
	if req.ProgramaID != nil {
		var programa m.ProgramaModel
		if err := h.DB.First(&programa, "programa_id = ?", *req.ProgramaID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Programa no encontrado")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Error al consultar el programa")
		}
	}

	lote := req.ToModel()
	if err := h.DB.Create(&lote).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Error al crear el lote")
	}
	return helper.JsonCreated(c, "Lote creado", lote)
}

// GET /lotes
func (h *LoteController) Listar(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	tx := h.DB.Model(&m.LoteModel{})
	if granja := c.Query("granja_id"); granja != "" {
		id, err := uuid.Parse(granja)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "granja_id no válido")
		}
		tx = tx.Where("lote_granja_id = ?", id)
	}
	if programa := c.Query("programa_id"); programa != "" {
		id, err := uuid.Parse(programa)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "programa_id no válido")
		}
		tx = tx.Where("lote_programa_id = ?", id)
	}
	if estado := c.Query("estado"); estado != "" {
		tx = tx.Where("lote_estado = ?", estado)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Error al contar lotes")
	}

	var lotes []m.LoteModel
	if err := tx.Order("lote_nombre ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&lotes).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Error al listar lotes")
	}
	return helper.JsonList(c, "Lotes", lotes,
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// GET /lotes/:id
func (h *LoteController) Obtener(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID no válido")
	}
	var lote m.LoteModel
	if err := h.DB.First(&lote, "lote_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Lote no encontrado")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Error al consultar el lote")
	}
	return helper.JsonOK(c, "Lote", lote)
}

// PATCH /lotes/:id
func (h *LoteController) Actualizar(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID no válido")
	}
	var req dto.UpdateLoteRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload no válido")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	var lote m.LoteModel
	if err := h.DB.First(&lote, "lote_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Lote no encontrado")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Error al consultar el lote")
	}

	if req.Nombre != nil {
		lote.LoteNombre = *req.Nombre
	}
	if req.TipoLoteID != nil {
		lote.LoteTipoLoteID = req.TipoLoteID
	}
	if req.ProgramaID != nil {
		lote.LoteProgramaID = req.ProgramaID
	}
	if req.CultivoID != nil {
		lote.LoteCultivoID = req.CultivoID
	}
	if req.NombreCultivo != nil {
		lote.LoteNombreCultivo = req.NombreCultivo
	}
	if req.TipoGestion != nil {
		lote.LoteTipoGestion = req.TipoGestion
	}
	if req.Estado != nil {
		lote.LoteEstado = *req.Estado
	}

	if err := h.DB.Save(&lote).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Error al actualizar el lote")
	}
	return helper.JsonUpdated(c, "Lote actualizado", lote)
}

// DELETE /lotes/:id
func (h *LoteController) Eliminar(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID no válido")
	}

	var diags, recos int64
	if err := h.DB.Model(&diagModel.DiagnosticoModel{}).
		Where("diagnostico_lote_id = ?", id).
		Count(&diags).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Error al consultar diagnósticos")
	}
	if err := h.DB.Model(&recoModel.RecomendacionModel{}).
		Where("recomendacion_lote_id = ?", id).
		Count(&recos).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Error al consultar recomendaciones")
	}
	if diags+recos > 0 {
		return fiber.NewError(fiber.StatusBadRequest,
			"No se puede eliminar un lote con diagnósticos o recomendaciones asociadas")
	}

	res := h.DB.Delete(&m.LoteModel{}, "lote_id = ?", id)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Error al eliminar el lote")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Lote no encontrado")
	}
	return helper.JsonDeleted(c, "Lote eliminado", fiber.Map{"lote_id": id})
}

/* =========================================================
   Tipos de lote y cultivos/especies
   ========================================================= */

type CatalogoController struct {
	DB *gorm.DB
}

// GET /tipos-lote
func (h *CatalogoController) ListarTiposLote(c *fiber.Ctx) error {
	var tipos []m.TipoLoteModel
	if err := h.DB.Order("tipo_lote_nombre ASC").Find(&tipos).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Error al listar tipos de lote")
	}
	return helper.JsonOK(c, "Tipos de lote", tipos)
}

// POST /tipos-lote
func (h *CatalogoController) CrearTipoLote(c *fiber.Ctx) error {
	var req dto.CreateTipoLoteRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload no válido")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	tipo := req.ToModel()
	if err := h.DB.Create(&tipo).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Error al crear el tipo de lote")
	}
	return helper.JsonCreated(c, "Tipo de lote creado", tipo)
}

// GET /cultivos
func (h *CatalogoController) ListarCultivos(c *fiber.Ctx) error {
	tx := h.DB.Model(&m.CultivoEspecieModel{})
	if granja := c.Query("granja_id"); granja != "" {
		id, err := uuid.Parse(granja)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "granja_id no válido")
		}
		tx = tx.Where("cultivo_especie_granja_id = ?", id)
	}
	var cultivos []m.CultivoEspecieModel
	if err := tx.Order("cultivo_especie_nombre ASC").Find(&cultivos).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Error al listar cultivos")
	}
	return helper.JsonOK(c, "Cultivos", cultivos)
}

// POST /cultivos
func (h *CatalogoController) CrearCultivo(c *fiber.Ctx) error {
	var req dto.CreateCultivoEspecieRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload no válido")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	var granja m.GranjaModel
	if err := h.DB.First(&granja, "granja_id = ?", req.GranjaID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Granja no encontrada")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Error al consultar la granja")
	}

	cultivo := req.ToModel()
	if err := h.DB.Create(&cultivo).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Error al crear el cultivo")
	}
	return helper.JsonCreated(c, "Cultivo creado", cultivo)
}
