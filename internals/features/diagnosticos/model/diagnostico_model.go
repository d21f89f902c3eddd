package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Estados del diagnóstico: abierto → en_revision (al asignarse docente)
// → cerrado (requiere docente asignado, estampa fecha_revision).
type EstadoDiagnostico string

const (
	DiagnosticoAbierto    EstadoDiagnostico = "abierto"
	DiagnosticoEnRevision EstadoDiagnostico = "en_revision"
	DiagnosticoCerrado    EstadoDiagnostico = "cerrado"
)

type DiagnosticoModel struct {
	DiagnosticoID          uuid.UUID         `gorm:"column:diagnostico_id;type:uuid;primaryKey" json:"diagnostico_id"`
	DiagnosticoTipo        string            `gorm:"column:diagnostico_tipo;type:varchar(100);not null" json:"diagnostico_tipo"`
	DiagnosticoDescripcion *string           `gorm:"column:diagnostico_descripcion;type:text" json:"diagnostico_descripcion,omitempty"`
	DiagnosticoEstado      EstadoDiagnostico `gorm:"column:diagnostico_estado;type:varchar(50);not null;default:abierto;index" json:"diagnostico_estado"`

	DiagnosticoEstudianteID uuid.UUID  `gorm:"column:diagnostico_estudiante_id;type:uuid;not null;index" json:"diagnostico_estudiante_id"`
	DiagnosticoDocenteID    *uuid.UUID `gorm:"column:diagnostico_docente_id;type:uuid;index" json:"diagnostico_docente_id,omitempty"`
	DiagnosticoLoteID       uuid.UUID  `gorm:"column:diagnostico_lote_id;type:uuid;not null;index" json:"diagnostico_lote_id"`

	DiagnosticoFechaCreacion time.Time  `gorm:"column:diagnostico_fecha_creacion;not null" json:"diagnostico_fecha_creacion"`
	DiagnosticoFechaRevision *time.Time `gorm:"column:diagnostico_fecha_revision" json:"diagnostico_fecha_revision,omitempty"`

	DiagnosticoObservaciones *string `gorm:"column:diagnostico_observaciones;type:text" json:"diagnostico_observaciones,omitempty"`
}

func (DiagnosticoModel) TableName() string { return "diagnosticos" }

func (d *DiagnosticoModel) BeforeCreate(tx *gorm.DB) error {
	if d.DiagnosticoID == uuid.Nil {
		d.DiagnosticoID = uuid.New()
	}
	if d.DiagnosticoEstado == "" {
		d.DiagnosticoEstado = DiagnosticoAbierto
	}
	if d.DiagnosticoFechaCreacion.IsZero() {
		d.DiagnosticoFechaCreacion = time.Now().UTC()
	}
	return nil
}
