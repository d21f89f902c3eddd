package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Estados de la labor. pendiente → en_progreso → completada;
// cancelada es alcanzable desde pendiente/en_progreso y es terminal.
type EstadoLabor string

const (
	LaborPendiente  EstadoLabor = "pendiente"
	LaborEnProgreso EstadoLabor = "en_progreso"
	LaborCompletada EstadoLabor = "completada"
	LaborCancelada  EstadoLabor = "cancelada"
)

type TipoLaborModel struct {
	TipoLaborID          uuid.UUID `gorm:"column:tipo_labor_id;type:uuid;primaryKey" json:"tipo_labor_id"`
	TipoLaborNombre      string    `gorm:"column:tipo_labor_nombre;type:varchar(100);not null" json:"tipo_labor_nombre"`
	TipoLaborDescripcion *string   `gorm:"column:tipo_labor_descripcion;type:varchar(255)" json:"tipo_labor_descripcion,omitempty"`
}

func (TipoLaborModel) TableName() string { return "tipos_labor" }

func (t *TipoLaborModel) BeforeCreate(tx *gorm.DB) error {
	if t.TipoLaborID == uuid.Nil {
		t.TipoLaborID = uuid.New()
	}
	return nil
}

/*
   LaborModel: unidad de trabajo de campo asignada a un trabajador,
   siempre bajo una recomendación.

   Invariantes:
   - labor_avance_porcentaje en [0,100]
   - estado completada ⇒ labor_fecha_finalizacion seteada y avance == 100
     (se fuerza en la transición, no retroactivamente)
   - no se puede borrar con movimientos o evidencias asociadas
*/
type LaborModel struct {
	LaborID     uuid.UUID   `gorm:"column:labor_id;type:uuid;primaryKey" json:"labor_id"`
	LaborEstado EstadoLabor `gorm:"column:labor_estado;type:varchar(50);not null;default:pendiente;index" json:"labor_estado"`

	LaborAvancePorcentaje int     `gorm:"column:labor_avance_porcentaje;not null;default:0" json:"labor_avance_porcentaje"`
	LaborComentario       *string `gorm:"column:labor_comentario;type:text" json:"labor_comentario,omitempty"`

	// FKs
	LaborRecomendacionID uuid.UUID  `gorm:"column:labor_recomendacion_id;type:uuid;not null;index" json:"labor_recomendacion_id"`
	LaborTrabajadorID    uuid.UUID  `gorm:"column:labor_trabajador_id;type:uuid;not null;index" json:"labor_trabajador_id"`
	LaborTipoLaborID     uuid.UUID  `gorm:"column:labor_tipo_labor_id;type:uuid;not null" json:"labor_tipo_labor_id"`
	LaborLoteID          *uuid.UUID `gorm:"column:labor_lote_id;type:uuid;index" json:"labor_lote_id,omitempty"`

	LaborFechaAsignacion    time.Time  `gorm:"column:labor_fecha_asignacion;not null" json:"labor_fecha_asignacion"`
	LaborFechaFinalizacion  *time.Time `gorm:"column:labor_fecha_finalizacion" json:"labor_fecha_finalizacion,omitempty"`
}

func (LaborModel) TableName() string { return "labores" }

func (l *LaborModel) BeforeCreate(tx *gorm.DB) error {
	if l.LaborID == uuid.Nil {
		l.LaborID = uuid.New()
	}
	if l.LaborEstado == "" {
		l.LaborEstado = LaborPendiente
	}
	if l.LaborFechaAsignacion.IsZero() {
		l.LaborFechaAsignacion = time.Now().UTC()
	}
	return nil
}
