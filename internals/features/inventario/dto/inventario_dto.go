package dto

import (
	"time"

	"github.com/google/uuid"

	m "sistema_granjas_backend/internals/features/inventario/model"
)

/* =========================================================
   CREATE / UPDATE — maestros de inventario
   ========================================================= */

type CreateCategoriaRequest struct {
	Nombre      string  `json:"categoria_inventario_nombre" validate:"required,min=1,max=50"`
	Descripcion *string `json:"categoria_inventario_descripcion" validate:"omitempty,max=255"`
}

func (r CreateCategoriaRequest) ToModel() m.CategoriaInventarioModel {
	return m.CategoriaInventarioModel{
		CategoriaInventarioNombre:      r.Nombre,
		CategoriaInventarioDescripcion: r.Descripcion,
	}
}

type CreateHerramientaRequest struct {
	Nombre        string     `json:"herramienta_nombre" validate:"required,min=1,max=100"`
	Descripcion   *string    `json:"herramienta_descripcion" validate:"omitempty,max=255"`
	CategoriaID   *uuid.UUID `json:"herramienta_categoria_id"`
	CantidadTotal int        `json:"herramienta_cantidad_total" validate:"gte=0"`
}

func (r CreateHerramientaRequest) ToModel() m.HerramientaModel {
	return m.HerramientaModel{
		HerramientaNombre:             r.Nombre,
		HerramientaDescripcion:        r.Descripcion,
		HerramientaCategoriaID:        r.CategoriaID,
		HerramientaCantidadTotal:      r.CantidadTotal,
		HerramientaCantidadDisponible: r.CantidadTotal,
	}
}

type CreateInsumoRequest struct {
	Nombre        string     `json:"insumo_nombre" validate:"required,min=1,max=100"`
	Descripcion   *string    `json:"insumo_descripcion" validate:"omitempty,max=255"`
	ProgramaID    *uuid.UUID `json:"insumo_programa_id"`
	CantidadTotal float64    `json:"insumo_cantidad_total" validate:"gte=0"`
	UnidadMedida  *string    `json:"insumo_unidad_medida" validate:"omitempty,max=50"`
	NivelAlerta   float64    `json:"insumo_nivel_alerta" validate:"gte=0"`
}

func (r CreateInsumoRequest) ToModel() m.InsumoModel {
	return m.InsumoModel{
		InsumoNombre:             r.Nombre,
		InsumoDescripcion:        r.Descripcion,
		InsumoProgramaID:         r.ProgramaID,
		InsumoCantidadTotal:      r.CantidadTotal,
		InsumoCantidadDisponible: r.CantidadTotal,
		InsumoUnidadMedida:       r.UnidadMedida,
		InsumoNivelAlerta:        r.NivelAlerta,
	}
}

/* =========================================================
   Vistas de movimientos (listados con nombres resueltos)
   ========================================================= */

type MovimientoHerramientaResponse struct {
	MovimientoID      uuid.UUID  `json:"movimiento_id"`
	HerramientaID     uuid.UUID  `json:"herramienta_id"`
	HerramientaNombre *string    `json:"herramienta_nombre,omitempty"`
	LaborID           *uuid.UUID `json:"labor_id,omitempty"`
	Cantidad          int        `json:"cantidad"`
	TipoMovimiento    string     `json:"tipo_movimiento"`
	FechaMovimiento   time.Time  `json:"fecha_movimiento"`
	Observaciones     *string    `json:"observaciones,omitempty"`
}

type MovimientoInsumoResponse struct {
	MovimientoID    uuid.UUID  `json:"movimiento_id"`
	InsumoID        uuid.UUID  `json:"insumo_id"`
	InsumoNombre    *string    `json:"insumo_nombre,omitempty"`
	UnidadMedida    *string    `json:"unidad_medida,omitempty"`
	LaborID         *uuid.UUID `json:"labor_id,omitempty"`
	Cantidad        float64    `json:"cantidad"`
	TipoMovimiento  string     `json:"tipo_movimiento"`
	FechaMovimiento time.Time  `json:"fecha_movimiento"`
	Observaciones   *string    `json:"observaciones,omitempty"`
}

// Filtros de listado de movimientos
type ListMovimientosQuery struct {
	RecursoID  *uuid.UUID `query:"recurso_id"`
	LaborID    *uuid.UUID `query:"labor_id"`
	Tipo       *string    `query:"tipo_movimiento"`
	FechaDesde *time.Time `query:"fecha_desde"`
	FechaHasta *time.Time `query:"fecha_hasta"`
}

/* =========================================================
   Estadísticas de movimientos (ventana móvil, default 30 días)
   ========================================================= */

type EstadisticasPorTipo struct {
	Salida  int64 `json:"salida"`
	Entrada int64 `json:"entrada"`
}

type EstadisticasRecurso struct {
	TotalMovimientos   int64               `json:"total_movimientos"`
	Salidas            float64             `json:"salidas"`
	Entradas           float64             `json:"entradas"`
	MovimientosPorTipo EstadisticasPorTipo `json:"movimientos_por_tipo"`
}

type EstadisticasMovimientosResponse struct {
	PeriodoDias  int                 `json:"periodo_dias"`
	Herramientas EstadisticasRecurso `json:"herramientas"`
	Insumos      EstadisticasRecurso `json:"insumos"`
}
