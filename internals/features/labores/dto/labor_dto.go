package dto

import (
	"time"

	"github.com/google/uuid"

	inventarioDTO "sistema_granjas_backend/internals/features/inventario/dto"
	m "sistema_granjas_backend/internals/features/labores/model"
)

/* =========================================================
   CREATE
   ========================================================= */

type CreateLaborRequest struct {
	RecomendacionID uuid.UUID  `json:"labor_recomendacion_id" validate:"required"`
	TrabajadorID    uuid.UUID  `json:"labor_trabajador_id" validate:"required"`
	TipoLaborID     uuid.UUID  `json:"labor_tipo_labor_id" validate:"required"`
	LoteID          *uuid.UUID `json:"labor_lote_id"`
	Comentario      *string    `json:"labor_comentario"`
}

func (r CreateLaborRequest) ToModel() m.LaborModel {
	return m.LaborModel{
		LaborEstado:          m.LaborPendiente,
		LaborComentario:      r.Comentario,
		LaborRecomendacionID: r.RecomendacionID,
		LaborTrabajadorID:    r.TrabajadorID,
		LaborTipoLaborID:     r.TipoLaborID,
		LaborLoteID:          r.LoteID,
	}
}

/* =========================================================
   UPDATE (campos parciales)
   ========================================================= */

type UpdateLaborRequest struct {
	Estado      *m.EstadoLabor `json:"labor_estado" validate:"omitempty,oneof=pendiente en_progreso completada cancelada"`
	Avance      *int           `json:"labor_avance_porcentaje" validate:"omitempty,gte=0,lte=100"`
	Comentario  *string        `json:"labor_comentario"`
	TipoLaborID *uuid.UUID     `json:"labor_tipo_labor_id"`
	LoteID      *uuid.UUID     `json:"labor_lote_id"`
}

/* =========================================================
   Operaciones de recursos / avance
   ========================================================= */

type AsignacionHerramientaRequest struct {
	HerramientaID uuid.UUID `json:"herramienta_id" validate:"required"`
	Cantidad      int       `json:"cantidad" validate:"required,gt=0"`
}

type AsignacionInsumoRequest struct {
	InsumoID uuid.UUID `json:"insumo_id" validate:"required"`
	Cantidad float64   `json:"cantidad" validate:"required,gt=0"`
}

type RegistroAvanceRequest struct {
	AvancePorcentaje int     `json:"avance_porcentaje" validate:"gte=0,lte=100"`
	Comentario       *string `json:"comentario"`
}

type DevolucionRequest struct {
	Cantidad float64 `json:"cantidad" validate:"required,gt=0"`
}

/* =========================================================
   Filtros de listado
   ========================================================= */

type ListLaboresQuery struct {
	Estado          *string    `query:"estado"`
	TrabajadorID    *uuid.UUID `query:"trabajador_id"`
	LoteID          *uuid.UUID `query:"lote_id"`
	RecomendacionID *uuid.UUID `query:"recomendacion_id"`
	TipoLaborID     *uuid.UUID `query:"tipo_labor_id"`
}

/* =========================================================
   Vistas (nombres resueltos + resumen de recursos)
   ========================================================= */

// ResumenHerramienta: cantidad neta aún asignada a la labor.
type ResumenHerramienta struct {
	HerramientaID     uuid.UUID `json:"herramienta_id"`
	HerramientaNombre *string   `json:"herramienta_nombre,omitempty"`
	CantidadActual    int       `json:"cantidad_actual"`
	UnidadMedida      string    `json:"unidad_medida"`
}

// ResumenInsumo: cantidad neta consumida en la labor.
type ResumenInsumo struct {
	InsumoID          uuid.UUID `json:"insumo_id"`
	InsumoNombre      *string   `json:"insumo_nombre,omitempty"`
	CantidadConsumida float64   `json:"cantidad_consumida"`
	UnidadMedida      string    `json:"unidad_medida"`
}

type EvidenciaInfo struct {
	EvidenciaID     uuid.UUID `json:"evidencia_id"`
	Tipo            string    `json:"tipo"`
	URLArchivo      string    `json:"url_archivo"`
	Descripcion     string    `json:"descripcion"`
	FechaCreacion   time.Time `json:"fecha_creacion"`
	CreadoPorNombre *string   `json:"creado_por_nombre,omitempty"`
}

type LaborResponse struct {
	LaborID          uuid.UUID     `json:"labor_id"`
	Estado           m.EstadoLabor `json:"estado"`
	AvancePorcentaje int           `json:"avance_porcentaje"`
	Comentario       *string       `json:"comentario,omitempty"`

	RecomendacionID uuid.UUID  `json:"recomendacion_id"`
	TrabajadorID    uuid.UUID  `json:"trabajador_id"`
	TipoLaborID     uuid.UUID  `json:"tipo_labor_id"`
	LoteID          *uuid.UUID `json:"lote_id,omitempty"`

	FechaAsignacion   time.Time  `json:"fecha_asignacion"`
	FechaFinalizacion *time.Time `json:"fecha_finalizacion,omitempty"`

	// nombres resueltos de entidades relacionadas
	TrabajadorNombre     *string `json:"trabajador_nombre,omitempty"`
	RecomendacionTitulo  *string `json:"recomendacion_titulo,omitempty"`
	LoteNombre           *string `json:"lote_nombre,omitempty"`
	GranjaNombre         *string `json:"granja_nombre,omitempty"`
	TipoLaborNombre      *string `json:"tipo_labor_nombre,omitempty"`
	TipoLaborDescripcion *string `json:"tipo_labor_descripcion,omitempty"`
}

type LaborConRecursosResponse struct {
	LaborResponse

	HerramientasAsignadas []ResumenHerramienta `json:"herramientas_asignadas"`
	InsumosAsignados      []ResumenInsumo      `json:"insumos_asignados"`
	Evidencias            []EvidenciaInfo      `json:"evidencias"`

	MovimientosHerramientas []inventarioDTO.MovimientoHerramientaResponse `json:"movimientos_herramientas"`
	MovimientosInsumos      []inventarioDTO.MovimientoInsumoResponse      `json:"movimientos_insumos"`
}

type LaborListResponse struct {
	Items   []LaborConRecursosResponse `json:"items"`
	Total   int64                      `json:"total"`
	Paginas int                        `json:"paginas"`
}

/* =========================================================
   Estadísticas
   ========================================================= */

type EstadisticasLaboresResponse struct {
	Total          int64   `json:"total"`
	Pendientes     int64   `json:"pendientes"`
	EnProgreso     int64   `json:"en_progreso"`
	Completadas    int64   `json:"completadas"`
	Canceladas     int64   `json:"canceladas"`
	PromedioAvance float64 `json:"promedio_avance"`
}
