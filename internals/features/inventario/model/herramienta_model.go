package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoriaInventarioModel struct {
	CategoriaInventarioID          uuid.UUID `gorm:"column:categoria_inventario_id;type:uuid;primaryKey" json:"categoria_inventario_id"`
	CategoriaInventarioNombre      string    `gorm:"column:categoria_inventario_nombre;type:varchar(50);not null" json:"categoria_inventario_nombre"`
	CategoriaInventarioDescripcion *string   `gorm:"column:categoria_inventario_descripcion;type:varchar(255)" json:"categoria_inventario_descripcion,omitempty"`
}

func (CategoriaInventarioModel) TableName() string { return "categorias_inventario" }

func (c *CategoriaInventarioModel) BeforeCreate(tx *gorm.DB) error {
	if c.CategoriaInventarioID == uuid.Nil {
		c.CategoriaInventarioID = uuid.New()
	}
	return nil
}

// HerramientaModel: maestro de herramientas.
// herramienta_cantidad_disponible solo se ajusta desde el ledger de
// movimientos (misma transacción que el insert del movimiento).
type HerramientaModel struct {
	HerramientaID          uuid.UUID  `gorm:"column:herramienta_id;type:uuid;primaryKey" json:"herramienta_id"`
	HerramientaNombre      string     `gorm:"column:herramienta_nombre;type:varchar(100);not null" json:"herramienta_nombre"`
	HerramientaDescripcion *string    `gorm:"column:herramienta_descripcion;type:varchar(255)" json:"herramienta_descripcion,omitempty"`
	HerramientaCategoriaID *uuid.UUID `gorm:"column:herramienta_categoria_id;type:uuid" json:"herramienta_categoria_id,omitempty"`

	HerramientaCantidadTotal      int `gorm:"column:herramienta_cantidad_total;not null;default:0" json:"herramienta_cantidad_total"`
	HerramientaCantidadDisponible int `gorm:"column:herramienta_cantidad_disponible;not null;default:0" json:"herramienta_cantidad_disponible"`

	HerramientaEstado string `gorm:"column:herramienta_estado;type:varchar(50);not null;default:disponible" json:"herramienta_estado"`
}

func (HerramientaModel) TableName() string { return "herramientas" }

func (h *HerramientaModel) BeforeCreate(tx *gorm.DB) error {
	if h.HerramientaID == uuid.Nil {
		h.HerramientaID = uuid.New()
	}
	return nil
}
