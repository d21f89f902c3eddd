package dto

import (
	"github.com/google/uuid"

	m "sistema_granjas_backend/internals/features/granjas/model"
)

type CreateProgramaRequest struct {
	Nombre      string  `json:"programa_nombre" validate:"required,min=3,max=100"`
	Descripcion *string `json:"programa_descripcion"`
	Tipo        string  `json:"programa_tipo" validate:"required,oneof=agricola pecuario mixto"`
}

func (r CreateProgramaRequest) ToModel() m.ProgramaModel {
	return m.ProgramaModel{
		ProgramaNombre:      r.Nombre,
		ProgramaDescripcion: r.Descripcion,
		ProgramaTipo:        r.Tipo,
	}
}

type CreateGranjaRequest struct {
	Nombre    string `json:"granja_nombre" validate:"required,min=3,max=100"`
	Ubicacion string `json:"granja_ubicacion" validate:"required,min=3,max=150"`
}

func (r CreateGranjaRequest) ToModel() m.GranjaModel {
	return m.GranjaModel{
		GranjaNombre:    r.Nombre,
		GranjaUbicacion: r.Ubicacion,
		GranjaActivo:    true,
	}
}

type CreateTipoLoteRequest struct {
	Nombre      string  `json:"tipo_lote_nombre" validate:"required,min=3,max=50"`
	Descripcion *string `json:"tipo_lote_descripcion"`
}

func (r CreateTipoLoteRequest) ToModel() m.TipoLoteModel {
	return m.TipoLoteModel{
		TipoLoteNombre:      r.Nombre,
		TipoLoteDescripcion: r.Descripcion,
	}
}

type CreateCultivoEspecieRequest struct {
	Nombre      string    `json:"cultivo_especie_nombre" validate:"required,min=3,max=150"`
	Tipo        string    `json:"cultivo_especie_tipo" validate:"required,oneof=agricola pecuario"`
	Descripcion *string   `json:"cultivo_especie_descripcion"`
	GranjaID    uuid.UUID `json:"cultivo_especie_granja_id" validate:"required"`
}

func (r CreateCultivoEspecieRequest) ToModel() m.CultivoEspecieModel {
	return m.CultivoEspecieModel{
		CultivoEspecieNombre:      r.Nombre,
		CultivoEspecieTipo:        r.Tipo,
		CultivoEspecieDescripcion: r.Descripcion,
		CultivoEspecieGranjaID:    r.GranjaID,
	}
}

type CreateLoteRequest struct {
	Nombre        string     `json:"lote_nombre" validate:"required,min=3,max=100"`
	TipoLoteID    *uuid.UUID `json:"lote_tipo_lote_id"`
	GranjaID      *uuid.UUID `json:"lote_granja_id"`
	ProgramaID    *uuid.UUID `json:"lote_programa_id"`
	CultivoID     *uuid.UUID `json:"lote_cultivo_id"`
	NombreCultivo *string    `json:"lote_nombre_cultivo"`
	TipoGestion   *string    `json:"lote_tipo_gestion"`
}

func (r CreateLoteRequest) ToModel() m.LoteModel {
	return m.LoteModel{
		LoteNombre:        r.Nombre,
		LoteTipoLoteID:    r.TipoLoteID,
		LoteGranjaID:      r.GranjaID,
		LoteProgramaID:    r.ProgramaID,
		LoteCultivoID:     r.CultivoID,
		LoteNombreCultivo: r.NombreCultivo,
		LoteTipoGestion:   r.TipoGestion,
	}
}

type UpdateLoteRequest struct {
	Nombre        *string    `json:"lote_nombre" validate:"omitempty,min=3,max=100"`
	TipoLoteID    *uuid.UUID `json:"lote_tipo_lote_id"`
	ProgramaID    *uuid.UUID `json:"lote_programa_id"`
	CultivoID     *uuid.UUID `json:"lote_cultivo_id"`
	NombreCultivo *string    `json:"lote_nombre_cultivo"`
	TipoGestion   *string    `json:"lote_tipo_gestion"`
	Estado        *string    `json:"lote_estado" validate:"omitempty,oneof=activo inactivo"`
}
