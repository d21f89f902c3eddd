package dto

import (
	"time"

	"github.com/google/uuid"

	m "sistema_granjas_backend/internals/features/evidencias/model"
)

type CreateEvidenciaRequest struct {
	Tipo        string             `json:"evidencia_tipo" validate:"required,oneof=imagen video documento audio otro"`
	Descripcion string             `json:"evidencia_descripcion" validate:"required,min=3"`
	URLArchivo  string             `json:"evidencia_url_archivo" validate:"required,url"`
	EntidadTipo m.EntidadEvidencia `json:"evidencia_entidad_tipo" validate:"required,oneof=labor diagnostico recomendacion"`
	EntidadID   uuid.UUID          `json:"evidencia_entidad_id" validate:"required"`
}

func (r CreateEvidenciaRequest) ToModel(usuarioID uuid.UUID) m.EvidenciaModel {
	return m.EvidenciaModel{
		EvidenciaTipo:        r.Tipo,
		EvidenciaDescripcion: r.Descripcion,
		EvidenciaURLArchivo:  r.URLArchivo,
		EvidenciaEntidadTipo: r.EntidadTipo,
		EvidenciaEntidadID:   r.EntidadID,
		EvidenciaUsuarioID:   usuarioID,
	}
}

type EvidenciaResponse struct {
	EvidenciaID uuid.UUID          `json:"evidencia_id"`
	Tipo        string             `json:"tipo"`
	Descripcion string             `json:"descripcion"`
	URLArchivo  string             `json:"url_archivo"`
	EntidadTipo m.EntidadEvidencia `json:"entidad_tipo"`
	EntidadID   uuid.UUID          `json:"entidad_id"`

	UsuarioID     uuid.UUID `json:"usuario_id"`
	UsuarioNombre *string   `json:"usuario_nombre,omitempty"`
	FechaCreacion time.Time `json:"fecha_creacion"`
}
