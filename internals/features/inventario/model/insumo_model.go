package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InsumoModel: maestro de insumos. A diferencia de las herramientas,
// las cantidades son fraccionables (kg, litros) y el insumo pertenece
// a un programa, lo que restringe a qué labores se puede asignar.
type InsumoModel struct {
	InsumoID          uuid.UUID  `gorm:"column:insumo_id;type:uuid;primaryKey" json:"insumo_id"`
	InsumoNombre      string     `gorm:"column:insumo_nombre;type:varchar(100);not null" json:"insumo_nombre"`
	InsumoDescripcion *string    `gorm:"column:insumo_descripcion;type:varchar(255)" json:"insumo_descripcion,omitempty"`
	InsumoProgramaID  *uuid.UUID `gorm:"column:insumo_programa_id;type:uuid;index" json:"insumo_programa_id,omitempty"`

	InsumoCantidadTotal      float64 `gorm:"column:insumo_cantidad_total;not null;default:0" json:"insumo_cantidad_total"`
	InsumoCantidadDisponible float64 `gorm:"column:insumo_cantidad_disponible;not null;default:0" json:"insumo_cantidad_disponible"`

	InsumoUnidadMedida *string `gorm:"column:insumo_unidad_medida;type:varchar(50)" json:"insumo_unidad_medida,omitempty"`
	InsumoNivelAlerta  float64 `gorm:"column:insumo_nivel_alerta;not null;default:0" json:"insumo_nivel_alerta"`
	InsumoEstado       string  `gorm:"column:insumo_estado;type:varchar(50);not null;default:disponible" json:"insumo_estado"`
}

func (InsumoModel) TableName() string { return "insumos" }

func (i *InsumoModel) BeforeCreate(tx *gorm.DB) error {
	if i.InsumoID == uuid.Nil {
		i.InsumoID = uuid.New()
	}
	return nil
}
