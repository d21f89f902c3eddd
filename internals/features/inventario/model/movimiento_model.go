package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tipos de movimiento del ledger de inventario.
type TipoMovimiento string

const (
	MovimientoSalida  TipoMovimiento = "salida"  // asignación / consumo en labor
	MovimientoEntrada TipoMovimiento = "entrada" // devolución al inventario
)

/*
   Los movimientos son un ledger append-only: nunca se editan ni se
   borran. Una devolución se representa con un movimiento "entrada"
   nuevo que referencia el mismo recurso; la cantidad neta por
   (recurso, labor) es sum(salida) - sum(entrada) y no puede quedar
   negativa.
*/

type MovimientoHerramientaModel struct {
	MovimientoHerramientaID            uuid.UUID  `gorm:"column:movimiento_herramienta_id;type:uuid;primaryKey" json:"movimiento_herramienta_id"`
	MovimientoHerramientaHerramientaID uuid.UUID  `gorm:"column:movimiento_herramienta_herramienta_id;type:uuid;not null;index" json:"movimiento_herramienta_herramienta_id"`
	MovimientoHerramientaLaborID       *uuid.UUID `gorm:"column:movimiento_herramienta_labor_id;type:uuid;index" json:"movimiento_herramienta_labor_id,omitempty"`

	MovimientoHerramientaCantidad int            `gorm:"column:movimiento_herramienta_cantidad;not null" json:"movimiento_herramienta_cantidad"`
	MovimientoHerramientaTipo     TipoMovimiento `gorm:"column:movimiento_herramienta_tipo;type:varchar(50);not null" json:"movimiento_herramienta_tipo"`

	MovimientoHerramientaFecha         time.Time `gorm:"column:movimiento_herramienta_fecha;not null;index" json:"movimiento_herramienta_fecha"`
	MovimientoHerramientaObservaciones *string   `gorm:"column:movimiento_herramienta_observaciones;type:text" json:"movimiento_herramienta_observaciones,omitempty"`
}

func (MovimientoHerramientaModel) TableName() string { return "movimientos_herramientas" }

func (m *MovimientoHerramientaModel) BeforeCreate(tx *gorm.DB) error {
	if m.MovimientoHerramientaID == uuid.Nil {
		m.MovimientoHerramientaID = uuid.New()
	}
	if m.MovimientoHerramientaFecha.IsZero() {
		m.MovimientoHerramientaFecha = time.Now().UTC()
	}
	return nil
}

type MovimientoInsumoModel struct {
	MovimientoInsumoID       uuid.UUID  `gorm:"column:movimiento_insumo_id;type:uuid;primaryKey" json:"movimiento_insumo_id"`
	MovimientoInsumoInsumoID uuid.UUID  `gorm:"column:movimiento_insumo_insumo_id;type:uuid;not null;index" json:"movimiento_insumo_insumo_id"`
	MovimientoInsumoLaborID  *uuid.UUID `gorm:"column:movimiento_insumo_labor_id;type:uuid;index" json:"movimiento_insumo_labor_id,omitempty"`

	MovimientoInsumoCantidad float64        `gorm:"column:movimiento_insumo_cantidad;not null" json:"movimiento_insumo_cantidad"`
	MovimientoInsumoTipo     TipoMovimiento `gorm:"column:movimiento_insumo_tipo;type:varchar(50);not null" json:"movimiento_insumo_tipo"`

	MovimientoInsumoFecha         time.Time `gorm:"column:movimiento_insumo_fecha;not null;index" json:"movimiento_insumo_fecha"`
	MovimientoInsumoObservaciones *string   `gorm:"column:movimiento_insumo_observaciones;type:text" json:"movimiento_insumo_observaciones,omitempty"`
}

func (MovimientoInsumoModel) TableName() string { return "movimientos_insumos" }

func (m *MovimientoInsumoModel) BeforeCreate(tx *gorm.DB) error {
	if m.MovimientoInsumoID == uuid.Nil {
		m.MovimientoInsumoID = uuid.New()
	}
	if m.MovimientoInsumoFecha.IsZero() {
		m.MovimientoInsumoFecha = time.Now().UTC()
	}
	return nil
}
