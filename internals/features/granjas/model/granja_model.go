package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/*
   Entidades organizativas:

   - programa: agrupación de usuarios, lotes e insumos (alcance de permisos)
   - granja:   finca física con lotes
   - lote:     parcela dentro de una granja, asociada a un programa
*/

type ProgramaModel struct {
	ProgramaID            uuid.UUID `gorm:"column:programa_id;type:uuid;primaryKey" json:"programa_id"`
	ProgramaNombre        string    `gorm:"column:programa_nombre;type:varchar(100);not null" json:"programa_nombre"`
	ProgramaDescripcion   *string   `gorm:"column:programa_descripcion;type:varchar(255)" json:"programa_descripcion,omitempty"`
	ProgramaTipo          string    `gorm:"column:programa_tipo;type:varchar(50);not null" json:"programa_tipo"`
	ProgramaActivo        bool      `gorm:"column:programa_activo;not null;default:true" json:"programa_activo"`
	ProgramaFechaCreacion time.Time `gorm:"column:programa_fecha_creacion;not null" json:"programa_fecha_creacion"`
}

func (ProgramaModel) TableName() string { return "programas" }

func (p *ProgramaModel) BeforeCreate(tx *gorm.DB) error {
	if p.ProgramaID == uuid.Nil {
		p.ProgramaID = uuid.New()
	}
	if p.ProgramaFechaCreacion.IsZero() {
		p.ProgramaFechaCreacion = time.Now().UTC()
	}
	return nil
}

type GranjaModel struct {
	GranjaID            uuid.UUID `gorm:"column:granja_id;type:uuid;primaryKey" json:"granja_id"`
	GranjaNombre        string    `gorm:"column:granja_nombre;type:varchar(100);not null" json:"granja_nombre"`
	GranjaUbicacion     string    `gorm:"column:granja_ubicacion;type:varchar(150);not null" json:"granja_ubicacion"`
	GranjaActivo        bool      `gorm:"column:granja_activo;not null;default:true" json:"granja_activo"`
	GranjaFechaCreacion time.Time `gorm:"column:granja_fecha_creacion;not null" json:"granja_fecha_creacion"`
}

func (GranjaModel) TableName() string { return "granjas" }

func (g *GranjaModel) BeforeCreate(tx *gorm.DB) error {
	if g.GranjaID == uuid.Nil {
		g.GranjaID = uuid.New()
	}
	if g.GranjaFechaCreacion.IsZero() {
		g.GranjaFechaCreacion = time.Now().UTC()
	}
	return nil
}

type TipoLoteModel struct {
	TipoLoteID          uuid.UUID `gorm:"column:tipo_lote_id;type:uuid;primaryKey" json:"tipo_lote_id"`
	TipoLoteNombre      string    `gorm:"column:tipo_lote_nombre;type:varchar(50);not null" json:"tipo_lote_nombre"`
	TipoLoteDescripcion *string   `gorm:"column:tipo_lote_descripcion;type:varchar(255)" json:"tipo_lote_descripcion,omitempty"`
}

func (TipoLoteModel) TableName() string { return "tipos_lote" }

func (t *TipoLoteModel) BeforeCreate(tx *gorm.DB) error {
	if t.TipoLoteID == uuid.Nil {
		t.TipoLoteID = uuid.New()
	}
	return nil
}

type CultivoEspecieModel struct {
	CultivoEspecieID           uuid.UUID  `gorm:"column:cultivo_especie_id;type:uuid;primaryKey" json:"cultivo_especie_id"`
	CultivoEspecieNombre       string     `gorm:"column:cultivo_especie_nombre;type:varchar(150);not null" json:"cultivo_especie_nombre"`
	CultivoEspecieTipo         string     `gorm:"column:cultivo_especie_tipo;type:varchar(50);not null" json:"cultivo_especie_tipo"` // agricola | pecuario
	CultivoEspecieFechaInicio  *time.Time `gorm:"column:cultivo_especie_fecha_inicio" json:"cultivo_especie_fecha_inicio,omitempty"`
	CultivoEspecieDuracionDias *int       `gorm:"column:cultivo_especie_duracion_dias" json:"cultivo_especie_duracion_dias,omitempty"`
	CultivoEspecieDescripcion  *string    `gorm:"column:cultivo_especie_descripcion;type:text" json:"cultivo_especie_descripcion,omitempty"`
	CultivoEspecieEstado       string     `gorm:"column:cultivo_especie_estado;type:varchar(50);not null;default:activo" json:"cultivo_especie_estado"`
	CultivoEspecieGranjaID     uuid.UUID  `gorm:"column:cultivo_especie_granja_id;type:uuid;not null;index" json:"cultivo_especie_granja_id"`
}

func (CultivoEspecieModel) TableName() string { return "cultivos_especies" }

func (c *CultivoEspecieModel) BeforeCreate(tx *gorm.DB) error {
	if c.CultivoEspecieID == uuid.Nil {
		c.CultivoEspecieID = uuid.New()
	}
	return nil
}

type LoteModel struct {
	LoteID         uuid.UUID  `gorm:"column:lote_id;type:uuid;primaryKey" json:"lote_id"`
	LoteNombre     string     `gorm:"column:lote_nombre;type:varchar(100);not null" json:"lote_nombre"`
	LoteTipoLoteID *uuid.UUID `gorm:"column:lote_tipo_lote_id;type:uuid" json:"lote_tipo_lote_id,omitempty"`
	LoteGranjaID   *uuid.UUID `gorm:"column:lote_granja_id;type:uuid;index" json:"lote_granja_id,omitempty"`
	LoteProgramaID *uuid.UUID `gorm:"column:lote_programa_id;type:uuid;index" json:"lote_programa_id,omitempty"`
	LoteCultivoID  *uuid.UUID `gorm:"column:lote_cultivo_id;type:uuid" json:"lote_cultivo_id,omitempty"`

	LoteNombreCultivo *string    `gorm:"column:lote_nombre_cultivo;type:varchar(100)" json:"lote_nombre_cultivo,omitempty"`
	LoteTipoGestion   *string    `gorm:"column:lote_tipo_gestion;type:varchar(100)" json:"lote_tipo_gestion,omitempty"`
	LoteFechaInicio   *time.Time `gorm:"column:lote_fecha_inicio" json:"lote_fecha_inicio,omitempty"`
	LoteDuracionDias  *int       `gorm:"column:lote_duracion_dias" json:"lote_duracion_dias,omitempty"`
	LoteEstado        string     `gorm:"column:lote_estado;type:varchar(50);not null;default:activo" json:"lote_estado"`
}

func (LoteModel) TableName() string { return "lotes" }

func (l *LoteModel) BeforeCreate(tx *gorm.DB) error {
	if l.LoteID == uuid.Nil {
		l.LoteID = uuid.New()
	}
	return nil
}
