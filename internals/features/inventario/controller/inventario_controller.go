package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sistema_granjas_backend/internals/features/inventario/dto"
	m "sistema_granjas_backend/internals/features/inventario/model"
	helper "sistema_granjas_backend/internals/helpers"
)

/* =========================================================
   Herramientas e insumos (catálogo de inventario)
   Las cantidades disponibles NO se editan por acá: solo el
   ledger de movimientos las ajusta.
   ========================================================= */

type InventarioController struct {
	DB *gorm.DB
}

// POST /inventario/categorias
func (h *InventarioController) CrearCategoria(c *fiber.Ctx) error {
	var req dto.CreateCategoriaRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload no válido")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	categoria := req.ToModel()
	if err := h.DB.Create(&categoria).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Error al crear la categoría")
	}
	return helper.JsonCreated(c, "Categoría creada", categoria)
}

// GET /inventario/categorias
func (h *InventarioController) ListarCategorias(c *fiber.Ctx) error {
	var categorias []m.CategoriaInventarioModel
	if err := h.DB.Order("categoria_inventario_nombre ASC").Find(&categorias).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Error al listar categorías")
	}
	return helper.JsonOK(c, "Categorías de inventario", categorias)
}

// DELETE /inventario/categorias/:id
func (h *InventarioController) EliminarCategoria(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID no válido")
	}

	var herramientas int64
	if err := h.DB.Model(&m.HerramientaModel{}).
		Where("herramienta_categoria_id = ?", id).
		Count(&herramientas).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Error al consultar herramientas")
	}
	if herramientas > 0 {
		return fiber.NewError(fiber.StatusBadRequest,
			"No se puede eliminar una categoría con herramientas asociadas")
	}

	res := h.DB.Delete(&m.CategoriaInventarioModel{}, "categoria_inventario_id = ?", id)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Error al eliminar la categoría")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Categoría no encontrada")
	}
	return helper.JsonDeleted(c, "Categoría eliminada", fiber.Map{"categoria_inventario_id": id})
}

// POST /inventario/herramientas
func (h *InventarioController) CrearHerramienta(c *fiber.Ctx) error {
	var req dto.CreateHerramientaRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload no válido")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	herramienta := req.ToModel()
	if err := h.DB.Create(&herramienta).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Error al crear la herramienta")
	}
	return helper.JsonCreated(c, "Herramienta creada", herramienta)
}

// GET /inventario/herramientas
func (h *InventarioController) ListarHerramientas(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	tx := h.DB.Model(&m.HerramientaModel{})
	if categoria := c.Query("categoria_id"); categoria != "" {
		id, err := uuid.Parse(categoria)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "categoria_id no válido")
		}
		tx = tx.Where("herramienta_categoria_id = ?", id)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Error al contar herramientas")
	}

	var herramientas []m.HerramientaModel
	if err := tx.Order("herramienta_nombre ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&herramientas).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Error al listar herramientas")
	}
	return helper.JsonList(c, "Herramientas", herramientas,
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// GET /inventario/herramientas/:id
func (h *InventarioController) ObtenerHerramienta(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID no válido")
	}
	var herramienta m.HerramientaModel
	if err := h.DB.First(&herramienta, "herramienta_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Herramienta no encontrada")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Error al consultar la herramienta")
	}
	return helper.JsonOK(c, "Herramienta", herramienta)
}

// DELETE /inventario/herramientas/:id
func (h *InventarioController) EliminarHerramienta(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID no válido")
	}

	var movimientos int64
	if err := h.DB.Model(&m.MovimientoHerramientaModel{}).
		Where("movimiento_herramienta_herramienta_id = ?", id).
		Count(&movimientos).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Error al consultar movimientos")
	}
	if movimientos > 0 {
		return fiber.NewError(fiber.StatusBadRequest,
			"No se puede eliminar una herramienta con movimientos registrados")
	}

	res := h.DB.Delete(&m.HerramientaModel{}, "herramienta_id = ?", id)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Error al eliminar la herramienta")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Herramienta no encontrada")
	}
	return helper.JsonDeleted(c, "Herramienta eliminada", fiber.Map{"herramienta_id": id})
}

// POST /inventario/insumos
func (h *InventarioController) CrearInsumo(c *fiber.Ctx) error {
	var req dto.CreateInsumoRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload no válido")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	insumo := req.ToModel()
	if err := h.DB.Create(&insumo).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Error al crear el insumo")
	}
	return helper.JsonCreated(c, "Insumo creado", insumo)
}

// GET /inventario/insumos
func (h *InventarioController) ListarInsumos(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	tx := h.DB.Model(&m.InsumoModel{})
	if programa := c.Query("programa_id"); programa != "" {
		id, err := uuid.Parse(programa)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "programa_id no válido")
		}
		tx = tx.Where("insumo_programa_id = ?", id)
	}
	// ?bajo_stock=true filtra insumos en o por debajo del nivel de alerta
	if c.QueryBool("bajo_stock") {
		tx = tx.Where("insumo_cantidad_disponible <= insumo_nivel_alerta")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Error al contar insumos")
	}

	var insumos []m.InsumoModel
	if err := tx.Order("insumo_nombre ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&insumos).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Error al listar insumos")
	}
	return helper.JsonList(c, "Insumos", insumos,
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// GET /inventario/insumos/:id
func (h *InventarioController) ObtenerInsumo(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID no válido")
	}
	var insumo m.InsumoModel
	if err := h.DB.First(&insumo, "insumo_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Insumo no encontrado")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Error al consultar el insumo")
	}
	return helper.JsonOK(c, "Insumo", insumo)
}

// DELETE /inventario/insumos/:id
func (h *InventarioController) EliminarInsumo(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID no válido")
	}

	var movimientos int64
	if err := h.DB.Model(&m.MovimientoInsumoModel{}).
		Where("movimiento_insumo_insumo_id = ?", id).
		Count(&movimientos).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Error al consultar movimientos")
	}
	if movimientos > 0 {
		return fiber.NewError(fiber.StatusBadRequest,
			"No se puede eliminar un insumo con movimientos registrados")
	}

	res := h.DB.Delete(&m.InsumoModel{}, "insumo_id = ?", id)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Error al eliminar el insumo")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Insumo no encontrado")
	}
	return helper.JsonDeleted(c, "Insumo eliminado", fiber.Map{"insumo_id": id})
}
