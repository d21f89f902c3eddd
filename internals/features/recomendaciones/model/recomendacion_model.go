package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Estados de la recomendación. "completada" no se setea directamente:
// se deriva cuando todas sus labores quedan completadas.
type EstadoRecomendacion string

const (
	RecomendacionPendiente   EstadoRecomendacion = "pendiente"
	RecomendacionAprobada    EstadoRecomendacion = "aprobada"
	RecomendacionEnEjecucion EstadoRecomendacion = "en_ejecucion"
	RecomendacionCompletada  EstadoRecomendacion = "completada"
	RecomendacionCancelada   EstadoRecomendacion = "cancelada"
)

type RecomendacionModel struct {
	RecomendacionID          uuid.UUID           `gorm:"column:recomendacion_id;type:uuid;primaryKey" json:"recomendacion_id"`
	RecomendacionTitulo      string              `gorm:"column:recomendacion_titulo;type:varchar(200);not null" json:"recomendacion_titulo"`
	RecomendacionDescripcion *string             `gorm:"column:recomendacion_descripcion;type:text" json:"recomendacion_descripcion,omitempty"`
	RecomendacionTipo        *string             `gorm:"column:recomendacion_tipo;type:varchar(100)" json:"recomendacion_tipo,omitempty"` // riego, fertilización, etc.
	RecomendacionEstado      EstadoRecomendacion `gorm:"column:recomendacion_estado;type:varchar(50);not null;default:pendiente;index" json:"recomendacion_estado"`

	RecomendacionDocenteID     uuid.UUID  `gorm:"column:recomendacion_docente_id;type:uuid;not null;index" json:"recomendacion_docente_id"`
	RecomendacionLoteID        uuid.UUID  `gorm:"column:recomendacion_lote_id;type:uuid;not null;index" json:"recomendacion_lote_id"`
	RecomendacionDiagnosticoID *uuid.UUID `gorm:"column:recomendacion_diagnostico_id;type:uuid;index" json:"recomendacion_diagnostico_id,omitempty"`

	RecomendacionFechaCreacion   time.Time  `gorm:"column:recomendacion_fecha_creacion;not null" json:"recomendacion_fecha_creacion"`
	RecomendacionFechaAprobacion *time.Time `gorm:"column:recomendacion_fecha_aprobacion" json:"recomendacion_fecha_aprobacion,omitempty"`
}

func (RecomendacionModel) TableName() string { return "recomendaciones" }

func (r *RecomendacionModel) BeforeCreate(tx *gorm.DB) error {
	if r.RecomendacionID == uuid.Nil {
		r.RecomendacionID = uuid.New()
	}
	if r.RecomendacionEstado == "" {
		r.RecomendacionEstado = RecomendacionPendiente
	}
	if r.RecomendacionFechaCreacion.IsZero() {
		r.RecomendacionFechaCreacion = time.Now().UTC()
	}
	return nil
}
