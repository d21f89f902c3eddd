package dto

import (
	"time"

	"github.com/google/uuid"

	m "sistema_granjas_backend/internals/features/diagnosticos/model"
)

type CreateDiagnosticoRequest struct {
	Tipo        string     `json:"diagnostico_tipo" validate:"required,min=3,max=100"`
	Descripcion *string    `json:"diagnostico_descripcion"`
	LoteID      uuid.UUID  `json:"diagnostico_lote_id" validate:"required"`
	DocenteID   *uuid.UUID `json:"diagnostico_docente_id"`
}

func (r CreateDiagnosticoRequest) ToModel(estudianteID uuid.UUID) m.DiagnosticoModel {
	return m.DiagnosticoModel{
		DiagnosticoTipo:         r.Tipo,
		DiagnosticoDescripcion:  r.Descripcion,
		DiagnosticoEstado:       m.DiagnosticoAbierto,
		DiagnosticoEstudianteID: estudianteID,
		DiagnosticoDocenteID:    r.DocenteID,
		DiagnosticoLoteID:       r.LoteID,
	}
}

// UpdateDiagnosticoRequest: qué campos puede tocar cada rol lo decide
// el service, no el DTO.
type UpdateDiagnosticoRequest struct {
	Descripcion   *string              `json:"diagnostico_descripcion"`
	Estado        *m.EstadoDiagnostico `json:"diagnostico_estado" validate:"omitempty,oneof=abierto en_revision cerrado"`
	Observaciones *string              `json:"diagnostico_observaciones"`
}

type AsignarDocenteRequest struct {
	DocenteID uuid.UUID `json:"docente_id" validate:"required"`
}

type CerrarDiagnosticoRequest struct {
	Observaciones *string `json:"observaciones"`
}

type ListDiagnosticosQuery struct {
	Estado       *string    `query:"estado"`
	LoteID       *uuid.UUID `query:"lote_id"`
	EstudianteID *uuid.UUID `query:"estudiante_id"`
	DocenteID    *uuid.UUID `query:"docente_id"`
}

type DiagnosticoResponse struct {
	DiagnosticoID uuid.UUID           `json:"diagnostico_id"`
	Tipo          string              `json:"tipo"`
	Descripcion   *string             `json:"descripcion,omitempty"`
	Estado        m.EstadoDiagnostico `json:"estado"`
	Observaciones *string             `json:"observaciones,omitempty"`

	EstudianteID uuid.UUID  `json:"estudiante_id"`
	DocenteID    *uuid.UUID `json:"docente_id,omitempty"`
	LoteID       uuid.UUID  `json:"lote_id"`

	FechaCreacion time.Time  `json:"fecha_creacion"`
	FechaRevision *time.Time `json:"fecha_revision,omitempty"`

	EstudianteNombre *string `json:"estudiante_nombre,omitempty"`
	DocenteNombre    *string `json:"docente_nombre,omitempty"`
	LoteNombre       *string `json:"lote_nombre,omitempty"`

	TotalRecomendaciones int64 `json:"total_recomendaciones"`
}

type EstadisticasDiagnosticosResponse struct {
	Total      int64 `json:"total"`
	Abiertos   int64 `json:"abiertos"`
	EnRevision int64 `json:"en_revision"`
	Cerrados   int64 `json:"cerrados"`
}
