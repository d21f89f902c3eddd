package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Entidades a las que puede adjuntarse una evidencia.
type EntidadEvidencia string

const (
	EntidadLabor         EntidadEvidencia = "labor"
	EntidadDiagnostico   EntidadEvidencia = "diagnostico"
	EntidadRecomendacion EntidadEvidencia = "recomendacion"
)

func (e EntidadEvidencia) Valida() bool {
	switch e {
	case EntidadLabor, EntidadDiagnostico, EntidadRecomendacion:
		return true
	}
	return false
}

// EvidenciaModel: adjunto probatorio. En lugar de tres FKs nullables
// se usa el par (entidad_tipo, entidad_id); el service valida que la
// entidad exista según el tipo antes de insertar.
type EvidenciaModel struct {
	EvidenciaID          uuid.UUID `gorm:"column:evidencia_id;type:uuid;primaryKey" json:"evidencia_id"`
	EvidenciaTipo        string    `gorm:"column:evidencia_tipo;type:varchar(50);not null" json:"evidencia_tipo"` // imagen, video, documento, audio, otro
	EvidenciaDescripcion string    `gorm:"column:evidencia_descripcion;type:text;not null" json:"evidencia_descripcion"`
	EvidenciaURLArchivo  string    `gorm:"column:evidencia_url_archivo;type:varchar(500);not null" json:"evidencia_url_archivo"`

	EvidenciaEntidadTipo EntidadEvidencia `gorm:"column:evidencia_entidad_tipo;type:varchar(50);not null;index:idx_evidencias_entidad" json:"evidencia_entidad_tipo"`
	EvidenciaEntidadID   uuid.UUID        `gorm:"column:evidencia_entidad_id;type:uuid;not null;index:idx_evidencias_entidad" json:"evidencia_entidad_id"`

	EvidenciaUsuarioID     uuid.UUID `gorm:"column:evidencia_usuario_id;type:uuid;not null;index" json:"evidencia_usuario_id"`
	EvidenciaFechaCreacion time.Time `gorm:"column:evidencia_fecha_creacion;not null" json:"evidencia_fecha_creacion"`
}

func (EvidenciaModel) TableName() string { return "evidencias" }

func (e *EvidenciaModel) BeforeCreate(tx *gorm.DB) error {
	if e.EvidenciaID == uuid.Nil {
		e.EvidenciaID = uuid.New()
	}
	if e.EvidenciaFechaCreacion.IsZero() {
		e.EvidenciaFechaCreacion = time.Now().UTC()
	}
	return nil
}
