package dto

import (
	"time"

	"github.com/google/uuid"

	m "sistema_granjas_backend/internals/features/recomendaciones/model"
)

type CreateRecomendacionRequest struct {
	Titulo        string     `json:"recomendacion_titulo" validate:"required,min=3,max=200"`
	Descripcion   *string    `json:"recomendacion_descripcion"`
	Tipo          *string    `json:"recomendacion_tipo"`
	LoteID        uuid.UUID  `json:"recomendacion_lote_id" validate:"required"`
	DiagnosticoID *uuid.UUID `json:"recomendacion_diagnostico_id"`
}

func (r CreateRecomendacionRequest) ToModel(docenteID uuid.UUID) m.RecomendacionModel {
	return m.RecomendacionModel{
		RecomendacionTitulo:        r.Titulo,
		RecomendacionDescripcion:   r.Descripcion,
		RecomendacionTipo:          r.Tipo,
		RecomendacionEstado:        m.RecomendacionPendiente,
		RecomendacionDocenteID:     docenteID,
		RecomendacionLoteID:        r.LoteID,
		RecomendacionDiagnosticoID: r.DiagnosticoID,
	}
}

type UpdateRecomendacionRequest struct {
	Titulo      *string                `json:"recomendacion_titulo" validate:"omitempty,min=3,max=200"`
	Descripcion *string                `json:"recomendacion_descripcion"`
	Tipo        *string                `json:"recomendacion_tipo"`
	Estado      *m.EstadoRecomendacion `json:"recomendacion_estado" validate:"omitempty,oneof=pendiente aprobada en_ejecucion completada cancelada"`
}

type ListRecomendacionesQuery struct {
	Estado        *string    `query:"estado"`
	LoteID        *uuid.UUID `query:"lote_id"`
	DocenteID     *uuid.UUID `query:"docente_id"`
	DiagnosticoID *uuid.UUID `query:"diagnostico_id"`
}

type RecomendacionResponse struct {
	RecomendacionID uuid.UUID             `json:"recomendacion_id"`
	Titulo          string                `json:"titulo"`
	Descripcion     *string               `json:"descripcion,omitempty"`
	Tipo            *string               `json:"tipo,omitempty"`
	Estado          m.EstadoRecomendacion `json:"estado"`

	DocenteID     uuid.UUID  `json:"docente_id"`
	LoteID        uuid.UUID  `json:"lote_id"`
	DiagnosticoID *uuid.UUID `json:"diagnostico_id,omitempty"`

	FechaCreacion   time.Time  `json:"fecha_creacion"`
	FechaAprobacion *time.Time `json:"fecha_aprobacion,omitempty"`

	DocenteNombre *string `json:"docente_nombre,omitempty"`
	LoteNombre    *string `json:"lote_nombre,omitempty"`
	GranjaNombre  *string `json:"granja_nombre,omitempty"`

	TotalLabores       int64 `json:"total_labores"`
	LaboresCompletadas int64 `json:"labores_completadas"`
}

type EstadisticasRecomendacionesResponse struct {
	Total       int64 `json:"total"`
	Pendientes  int64 `json:"pendientes"`
	Aprobadas   int64 `json:"aprobadas"`
	EnEjecucion int64 `json:"en_ejecucion"`
	Completadas int64 `json:"completadas"`
	Canceladas  int64 `json:"canceladas"`
}
