package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sistema_granjas_backend/internals/features/inventario/dto"
	m "sistema_granjas_backend/internals/features/inventario/model"
)

/*
   Ledger de inventario.

   Todo ajuste de cantidad_disponible pasa por acá: el insert del
   movimiento y el update del contador se hacen en la misma
   transacción, con un UPDATE condicionado que impide que el
   disponible quede negativo (o por encima del total) aun con
   peticiones concurrentes.
*/

// RegistrarMovimientoHerramienta inserta un movimiento y ajusta el
// disponible de la herramienta. Debe llamarse dentro de una transacción.
func RegistrarMovimientoHerramienta(
	tx *gorm.DB,
	herramientaID uuid.UUID,
	laborID *uuid.UUID,
	cantidad int,
	tipo m.TipoMovimiento,
	observaciones *string,
) (*m.MovimientoHerramientaModel, error) {
	if cantidad <= 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "La cantidad debe ser mayor a cero")
	}

	var herramienta m.HerramientaModel
	if err := tx.Where("herramienta_id = ?", herramientaID).First(&herramienta).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Herramienta no encontrada")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Error consultando herramienta")
	}

	switch tipo {
	case m.MovimientoSalida:
		res := tx.Model(&m.HerramientaModel{}).
			Where("herramienta_id = ? AND herramienta_cantidad_disponible >= ?", herramientaID, cantidad).
			UpdateColumn("herramienta_cantidad_disponible", gorm.Expr("herramienta_cantidad_disponible - ?", cantidad))
		if res.Error != nil {
			return nil, fiber.NewError(fiber.StatusInternalServerError, "Error actualizando disponibilidad")
		}
		if res.RowsAffected == 0 {
			return nil, fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("No hay suficiente disponibilidad. Disponible: %d", herramienta.HerramientaCantidadDisponible))
		}
	case m.MovimientoEntrada:
		res := tx.Model(&m.HerramientaModel{}).
			Where("herramienta_id = ? AND herramienta_cantidad_disponible + ? <= herramienta_cantidad_total", herramientaID, cantidad).
			UpdateColumn("herramienta_cantidad_disponible", gorm.Expr("herramienta_cantidad_disponible + ?", cantidad))
		if res.Error != nil {
			return nil, fiber.NewError(fiber.StatusInternalServerError, "Error actualizando disponibilidad")
		}
		if res.RowsAffected == 0 {
			return nil, fiber.NewError(fiber.StatusBadRequest, "La devolución excede la cantidad total de la herramienta")
		}
	default:
		return nil, fiber.NewError(fiber.StatusBadRequest, "Tipo de movimiento no válido")
	}

	mov := m.MovimientoHerramientaModel{
		MovimientoHerramientaHerramientaID: herramientaID,
		MovimientoHerramientaLaborID:       laborID,
		MovimientoHerramientaCantidad:      cantidad,
		MovimientoHerramientaTipo:          tipo,
		MovimientoHerramientaObservaciones: observaciones,
	}
	if err := tx.Create(&mov).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Error registrando movimiento")
	}
	return &mov, nil
}

// RegistrarMovimientoInsumo: igual que herramientas, con cantidades fraccionables.
func RegistrarMovimientoInsumo(
	tx *gorm.DB,
	insumoID uuid.UUID,
	laborID *uuid.UUID,
	cantidad float64,
	tipo m.TipoMovimiento,
	observaciones *string,
) (*m.MovimientoInsumoModel, error) {
	if cantidad <= 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "La cantidad debe ser mayor a cero")
	}

	var insumo m.InsumoModel
	if err := tx.Where("insumo_id = ?", insumoID).First(&insumo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Insumo no encontrado")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Error consultando insumo")
	}

	switch tipo {
	case m.MovimientoSalida:
		res := tx.Model(&m.InsumoModel{}).
			Where("insumo_id = ? AND insumo_cantidad_disponible >= ?", insumoID, cantidad).
			UpdateColumn("insumo_cantidad_disponible", gorm.Expr("insumo_cantidad_disponible - ?", cantidad))
		if res.Error != nil {
			return nil, fiber.NewError(fiber.StatusInternalServerError, "Error actualizando disponibilidad")
		}
		if res.RowsAffected == 0 {
			return nil, fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("No hay suficiente disponibilidad. Disponible: %g", insumo.InsumoCantidadDisponible))
		}
	case m.MovimientoEntrada:
		res := tx.Model(&m.InsumoModel{}).
			Where("insumo_id = ? AND insumo_cantidad_disponible + ? <= insumo_cantidad_total", insumoID, cantidad).
			UpdateColumn("insumo_cantidad_disponible", gorm.Expr("insumo_cantidad_disponible + ?", cantidad))
		if res.Error != nil {
			return nil, fiber.NewError(fiber.StatusInternalServerError, "Error actualizando disponibilidad")
		}
		if res.RowsAffected == 0 {
			return nil, fiber.NewError(fiber.StatusBadRequest, "La devolución excede la cantidad total del insumo")
		}
	default:
		return nil, fiber.NewError(fiber.StatusBadRequest, "Tipo de movimiento no válido")
	}

	mov := m.MovimientoInsumoModel{
		MovimientoInsumoInsumoID:      insumoID,
		MovimientoInsumoLaborID:       laborID,
		MovimientoInsumoCantidad:      cantidad,
		MovimientoInsumoTipo:          tipo,
		MovimientoInsumoObservaciones: observaciones,
	}
	if err := tx.Create(&mov).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Error registrando movimiento")
	}
	return &mov, nil
}

/* =========================================================
   Cantidades netas por (recurso, labor)
   ========================================================= */

// NetoHerramientaLabor calcula sum(salida) - sum(entrada) para una
// herramienta en una labor. Representa lo aún asignado.
func NetoHerramientaLabor(db *gorm.DB, herramientaID, laborID uuid.UUID) (int, error) {
	var movs []m.MovimientoHerramientaModel
	if err := db.
		Where("movimiento_herramienta_herramienta_id = ? AND movimiento_herramienta_labor_id = ?", herramientaID, laborID).
		Find(&movs).Error; err != nil {
		return 0, err
	}
	neto := 0
	for _, mov := range movs {
		switch mov.MovimientoHerramientaTipo {
		case m.MovimientoSalida:
			neto += mov.MovimientoHerramientaCantidad
		case m.MovimientoEntrada:
			neto -= mov.MovimientoHerramientaCantidad
		}
	}
	return neto, nil
}

func NetoInsumoLabor(db *gorm.DB, insumoID, laborID uuid.UUID) (float64, error) {
	var movs []m.MovimientoInsumoModel
	if err := db.
		Where("movimiento_insumo_insumo_id = ? AND movimiento_insumo_labor_id = ?", insumoID, laborID).
		Find(&movs).Error; err != nil {
		return 0, err
	}
	neto := 0.0
	for _, mov := range movs {
		switch mov.MovimientoInsumoTipo {
		case m.MovimientoSalida:
			neto += mov.MovimientoInsumoCantidad
		case m.MovimientoEntrada:
			neto -= mov.MovimientoInsumoCantidad
		}
	}
	return neto, nil
}

/* =========================================================
   Estadísticas (ventana móvil)
   ========================================================= */

// EstadisticasMovimientos agrega conteos y cantidades por tipo sobre
// los últimos `dias` días, segmentado por clase de recurso.
func EstadisticasMovimientos(db *gorm.DB, dias int) (*dto.EstadisticasMovimientosResponse, error) {
	if dias <= 0 {
		dias = 30
	}
	desde := time.Now().UTC().AddDate(0, 0, -dias)

	var movsHerr []m.MovimientoHerramientaModel
	if err := db.Where("movimiento_herramienta_fecha >= ?", desde).Find(&movsHerr).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Error consultando movimientos de herramientas")
	}
	var movsIns []m.MovimientoInsumoModel
	if err := db.Where("movimiento_insumo_fecha >= ?", desde).Find(&movsIns).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Error consultando movimientos de insumos")
	}

	out := dto.EstadisticasMovimientosResponse{PeriodoDias: dias}

	out.Herramientas.TotalMovimientos = int64(len(movsHerr))
	for _, mov := range movsHerr {
		switch mov.MovimientoHerramientaTipo {
		case m.MovimientoSalida:
			out.Herramientas.Salidas += float64(mov.MovimientoHerramientaCantidad)
			out.Herramientas.MovimientosPorTipo.Salida++
		case m.MovimientoEntrada:
			out.Herramientas.Entradas += float64(mov.MovimientoHerramientaCantidad)
			out.Herramientas.MovimientosPorTipo.Entrada++
		}
	}

	out.Insumos.TotalMovimientos = int64(len(movsIns))
	for _, mov := range movsIns {
		switch mov.MovimientoInsumoTipo {
		case m.MovimientoSalida:
			out.Insumos.Salidas += mov.MovimientoInsumoCantidad
			out.Insumos.MovimientosPorTipo.Salida++
		case m.MovimientoEntrada:
			out.Insumos.Entradas += mov.MovimientoInsumoCantidad
			out.Insumos.MovimientosPorTipo.Entrada++
		}
	}

	return &out, nil
}
