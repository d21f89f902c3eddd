package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sistema_granjas_backend/internals/features/inventario/dto"
	m "sistema_granjas_backend/internals/features/inventario/model"
	"sistema_granjas_backend/internals/features/inventario/service"
	helper "sistema_granjas_backend/internals/helpers"
)

/* =========================================================
   Consulta del ledger de movimientos (solo lectura: los
   movimientos se crean desde las operaciones de labores)
   ========================================================= */

type MovimientoController struct {
	DB *gorm.DB
}

func parseQueryUUID(c *fiber.Ctx, key string) (*uuid.UUID, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, key+" no válido")
	}
	return &id, nil
}

// GET /inventario/movimientos/herramientas
func (h *MovimientoController) ListarMovimientosHerramientas(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 50, 200)

	tx := h.DB.Model(&m.MovimientoHerramientaModel{})
	if id, err := parseQueryUUID(c, "recurso_id"); err != nil {
		return err
	} else if id != nil {
		tx = tx.Where("movimiento_herramienta_herramienta_id = ?", *id)
	}
	if id, err := parseQueryUUID(c, "labor_id"); err != nil {
		return err
	} else if id != nil {
		tx = tx.Where("movimiento_herramienta_labor_id = ?", *id)
	}
	if tipo := c.Query("tipo_movimiento"); tipo != "" {
		tx = tx.Where("movimiento_herramienta_tipo = ?", tipo)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Error al contar movimientos")
	}

	var movs []m.MovimientoHerramientaModel
	if err := tx.Order("movimiento_herramienta_fecha DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&movs).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Error al listar movimientos")
	}

	items := make([]dto.MovimientoHerramientaResponse, 0, len(movs))
	for _, mov := range movs {
		item := dto.MovimientoHerramientaResponse{
			MovimientoID:    mov.MovimientoHerramientaID,
			HerramientaID:   mov.MovimientoHerramientaHerramientaID,
			LaborID:         mov.MovimientoHerramientaLaborID,
			Cantidad:        mov.MovimientoHerramientaCantidad,
			TipoMovimiento:  string(mov.MovimientoHerramientaTipo),
			FechaMovimiento: mov.MovimientoHerramientaFecha,
			Observaciones:   mov.MovimientoHerramientaObservaciones,
		}
		var herr m.HerramientaModel
		if err := h.DB.Select("herramienta_nombre").
			First(&herr, "herramienta_id = ?", mov.MovimientoHerramientaHerramientaID).Error; err == nil {
			item.HerramientaNombre = &herr.HerramientaNombre
		}
		items = append(items, item)
	}
	return helper.JsonList(c, "Movimientos de herramientas", items,
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// GET /inventario/movimientos/insumos
func (h *MovimientoController) ListarMovimientosInsumos(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 50, 200)

	tx := h.DB.Model(&m.MovimientoInsumoModel{})
	if id, err := parseQueryUUID(c, "recurso_id"); err != nil {
		return err
	} else if id != nil {
		tx = tx.Where("movimiento_insumo_insumo_id = ?", *id)
	}
	if id, err := parseQueryUUID(c, "labor_id"); err != nil {
		return err
	} else if id != nil {
		tx = tx.Where("movimiento_insumo_labor_id = ?", *id)
	}
	if tipo := c.Query("tipo_movimiento"); tipo != "" {
		tx = tx.Where("movimiento_insumo_tipo = ?", tipo)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Error al contar movimientos")
	}

	var movs []m.MovimientoInsumoModel
	if err := tx.Order("movimiento_insumo_fecha DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&movs).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Error al listar movimientos")
	}

	items := make([]dto.MovimientoInsumoResponse, 0, len(movs))
	for _, mov := range movs {
		item := dto.MovimientoInsumoResponse{
			MovimientoID:    mov.MovimientoInsumoID,
			InsumoID:        mov.MovimientoInsumoInsumoID,
			LaborID:         mov.MovimientoInsumoLaborID,
			Cantidad:        mov.MovimientoInsumoCantidad,
			TipoMovimiento:  string(mov.MovimientoInsumoTipo),
			FechaMovimiento: mov.MovimientoInsumoFecha,
			Observaciones:   mov.MovimientoInsumoObservaciones,
		}
		var ins m.InsumoModel
		if err := h.DB.Select("insumo_nombre, insumo_unidad_medida").
			First(&ins, "insumo_id = ?", mov.MovimientoInsumoInsumoID).Error; err == nil {
			item.InsumoNombre = &ins.InsumoNombre
			item.UnidadMedida = ins.InsumoUnidadMedida
		}
		items = append(items, item)
	}
	return helper.JsonList(c, "Movimientos de insumos", items,
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// GET /inventario/movimientos/estadisticas?dias=30
func (h *MovimientoController) Estadisticas(c *fiber.Ctx) error {
	dias := c.QueryInt("dias", 30)
	if dias <= 0 {
		dias = 30
	}
	stats, err := service.EstadisticasMovimientos(h.DB, dias)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Estadísticas de movimientos", stats)
}
