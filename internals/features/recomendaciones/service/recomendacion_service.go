package service

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sistema_granjas_backend/internals/constants"
	helperAuth "sistema_granjas_backend/internals/helpers/auth"

	granjaModel "sistema_granjas_backend/internals/features/granjas/model"
	laborModel "sistema_granjas_backend/internals/features/labores/model"
	"sistema_granjas_backend/internals/features/recomendaciones/dto"
	m "sistema_granjas_backend/internals/features/recomendaciones/model"
	usuarioModel "sistema_granjas_backend/internals/features/usuarios/model"
)

/* =========================================================
   Recomendaciones: órdenes de trabajo emitidas por docentes
   y asesores sobre un lote, opcionalmente ligadas a un
   diagnóstico. Las labores nacen siempre de una recomendación.
   ========================================================= */

func CrearRecomendacion(db *gorm.DB, actor helperAuth.Actor, req dto.CreateRecomendacionRequest) (*m.RecomendacionModel, error) {
	// docentes y asesores emiten a su nombre; el admin también puede
	if actor.Rol != constants.RolAdmin && !constants.EsDocente(actor.Rol) {
		return nil, fiber.NewError(fiber.StatusForbidden, "Solo docentes y asesores pueden crear recomendaciones")
	}

	var lote granjaModel.LoteModel
	if err := db.First(&lote, "lote_id = ?", req.LoteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Lote no encontrado")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Error al consultar el lote")
	}

	reco := req.ToModel(actor.ID)
	if err := db.Create(&reco).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Error al crear la recomendación")
	}
	return &reco, nil
}

func ObtenerRecomendacion(db *gorm.DB, id uuid.UUID) (*m.RecomendacionModel, error) {
	var reco m.RecomendacionModel
	if err := db.First(&reco, "recomendacion_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Recomendación no encontrada")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Error al consultar la recomendación")
	}
	return &reco, nil
}

// ListarRecomendaciones: docentes y asesores solo ven las propias;
// admin y talento humano ven todo.
func ListarRecomendaciones(db *gorm.DB, actor helperAuth.Actor, q dto.ListRecomendacionesQuery, offset, limit int) ([]m.RecomendacionModel, int64, error) {
	tx := db.Model(&m.RecomendacionModel{})

	if constants.EsDocente(actor.Rol) {
		tx = tx.Where("recomendacion_docente_id = ?", actor.ID)
	}

	if q.Estado != nil && *q.Estado != "" {
		tx = tx.Where("recomendacion_estado = ?", *q.Estado)
	}
	if q.LoteID != nil {
		tx = tx.Where("recomendacion_lote_id = ?", *q.LoteID)
	}
	if q.DocenteID != nil {
		tx = tx.Where("recomendacion_docente_id = ?", *q.DocenteID)
	}
	if q.DiagnosticoID != nil {
		tx = tx.Where("recomendacion_diagnostico_id = ?", *q.DiagnosticoID)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, fiber.NewError(fiber.StatusInternalServerError, "Error al contar recomendaciones")
	}

	var recos []m.RecomendacionModel
	if err := tx.Order("recomendacion_fecha_creacion DESC").
		Offset(offset).Limit(limit).
		Find(&recos).Error; err != nil {
		return nil, 0, fiber.NewError(fiber.StatusInternalServerError, "Error al listar recomendaciones")
	}
	return recos, total, nil
}

func ActualizarRecomendacion(db *gorm.DB, actor helperAuth.Actor, id uuid.UUID, req dto.UpdateRecomendacionRequest) (*m.RecomendacionModel, error) {
	reco, err := ObtenerRecomendacion(db, id)
	if err != nil {
		return nil, err
	}

	if actor.Rol != constants.RolAdmin && reco.RecomendacionDocenteID != actor.ID {
		return nil, fiber.NewError(fiber.StatusForbidden, "Solo puede modificar sus propias recomendaciones")
	}

	if req.Titulo != nil {
		reco.RecomendacionTitulo = *req.Titulo
	}
	if req.Descripcion != nil {
		reco.RecomendacionDescripcion = req.Descripcion
	}
	if req.Tipo != nil {
		reco.RecomendacionTipo = req.Tipo
	}
	if req.Estado != nil && *req.Estado != reco.RecomendacionEstado {
		reco.RecomendacionEstado = *req.Estado
		if *req.Estado == m.RecomendacionAprobada && reco.RecomendacionFechaAprobacion == nil {
			ahora := time.Now().UTC()
			reco.RecomendacionFechaAprobacion = &ahora
		}
	}

	if err := db.Save(reco).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Error al actualizar la recomendación")
	}
	return reco, nil
}

// AprobarRecomendacion: pendiente → aprobada, con fecha de aprobación.
func AprobarRecomendacion(db *gorm.DB, id uuid.UUID) (*m.RecomendacionModel, error) {
	reco, err := ObtenerRecomendacion(db, id)
	if err != nil {
		return nil, err
	}
	if reco.RecomendacionEstado != m.RecomendacionPendiente {
		return nil, fiber.NewError(fiber.StatusBadRequest,
			"Solo se pueden aprobar recomendaciones pendientes")
	}
	ahora := time.Now().UTC()
	reco.RecomendacionEstado = m.RecomendacionAprobada
	reco.RecomendacionFechaAprobacion = &ahora
	if err := db.Save(reco).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Error al aprobar la recomendación")
	}
	return reco, nil
}

// RechazarRecomendacion: pendiente → cancelada.
func RechazarRecomendacion(db *gorm.DB, id uuid.UUID) (*m.RecomendacionModel, error) {
	reco, err := ObtenerRecomendacion(db, id)
	if err != nil {
		return nil, err
	}
	if reco.RecomendacionEstado != m.RecomendacionPendiente {
		return nil, fiber.NewError(fiber.StatusBadRequest,
			"Solo se pueden rechazar recomendaciones pendientes")
	}
	reco.RecomendacionEstado = m.RecomendacionCancelada
	if err := db.Save(reco).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Error al rechazar la recomendación")
	}
	return reco, nil
}

// EliminarRecomendacion: bloqueada si tiene labores asociadas.
func EliminarRecomendacion(db *gorm.DB, actor helperAuth.Actor, id uuid.UUID) error {
	reco, err := ObtenerRecomendacion(db, id)
	if err != nil {
		return err
	}
	if actor.Rol != constants.RolAdmin && reco.RecomendacionDocenteID != actor.ID {
		return fiber.NewError(fiber.StatusForbidden, "Solo puede eliminar sus propias recomendaciones")
	}

	var labores int64
	if err := db.Model(&laborModel.LaborModel{}).
		Where("labor_recomendacion_id = ?", id).
		Count(&labores).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Error al consultar labores asociadas")
	}
	if labores > 0 {
		return fiber.NewError(fiber.StatusBadRequest,
			"No se puede eliminar una recomendación con labores asociadas")
	}

	if err := db.Delete(&m.RecomendacionModel{}, "recomendacion_id = ?", id).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Error al eliminar la recomendación")
	}
	return nil
}

/* =========================================================
   Derivación de estado desde las labores
   ========================================================= */

// ActualizarEstadoPorLabores recalcula el estado de la recomendación a
// partir de sus labores: todas completadas ⇒ completada; alguna en
// progreso o completada ⇒ en_ejecución. Se invoca dentro de la misma
// transacción que muta la labor, para que la recomendación nunca quede
// desfasada respecto de sus labores.
func ActualizarEstadoPorLabores(tx *gorm.DB, recomendacionID uuid.UUID) error {
	var reco m.RecomendacionModel
	if err := tx.First(&reco, "recomendacion_id = ?", recomendacionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if reco.RecomendacionEstado == m.RecomendacionCancelada {
		return nil
	}

	var total, completadas, enProgreso int64
	if err := tx.Model(&laborModel.LaborModel{}).
		Where("labor_recomendacion_id = ?", recomendacionID).
		Count(&total).Error; err != nil {
		return err
	}
	if total == 0 {
		return nil
	}
	if err := tx.Model(&laborModel.LaborModel{}).
		Where("labor_recomendacion_id = ? AND labor_estado = ?", recomendacionID, laborModel.LaborCompletada).
		Count(&completadas).Error; err != nil {
		return err
	}
	if err := tx.Model(&laborModel.LaborModel{}).
		Where("labor_recomendacion_id = ? AND labor_estado = ?", recomendacionID, laborModel.LaborEnProgreso).
		Count(&enProgreso).Error; err != nil {
		return err
	}

	nuevo := reco.RecomendacionEstado
	switch {
	case completadas == total:
		nuevo = m.RecomendacionCompletada
	case completadas > 0 || enProgreso > 0:
		nuevo = m.RecomendacionEnEjecucion
	}
	if nuevo == reco.RecomendacionEstado {
		return nil
	}
	return tx.Model(&m.RecomendacionModel{}).
		Where("recomendacion_id = ?", recomendacionID).
		UpdateColumn("recomendacion_estado", nuevo).Error
}

/* =========================================================
   Vistas y estadísticas
   ========================================================= */

func ArmarRecomendacionResponse(db *gorm.DB, reco m.RecomendacionModel) dto.RecomendacionResponse {
	resp := dto.RecomendacionResponse{
		RecomendacionID: reco.RecomendacionID,
		Titulo:          reco.RecomendacionTitulo,
		Descripcion:     reco.RecomendacionDescripcion,
		Tipo:            reco.RecomendacionTipo,
		Estado:          reco.RecomendacionEstado,
		DocenteID:       reco.RecomendacionDocenteID,
		LoteID:          reco.RecomendacionLoteID,
		DiagnosticoID:   reco.RecomendacionDiagnosticoID,
		FechaCreacion:   reco.RecomendacionFechaCreacion,
		FechaAprobacion: reco.RecomendacionFechaAprobacion,
	}

	var docente usuarioModel.UsuarioModel
	if err := db.Select("usuario_nombre").
		First(&docente, "usuario_id = ?", reco.RecomendacionDocenteID).Error; err == nil {
		resp.DocenteNombre = &docente.UsuarioNombre
	}

	var lote granjaModel.LoteModel
	if err := db.First(&lote, "lote_id = ?", reco.RecomendacionLoteID).Error; err == nil {
		resp.LoteNombre = &lote.LoteNombre
		if lote.LoteGranjaID != nil {
			var granja granjaModel.GranjaModel
			if err := db.Select("granja_nombre").
				First(&granja, "granja_id = ?", *lote.LoteGranjaID).Error; err == nil {
				resp.GranjaNombre = &granja.GranjaNombre
			}
		}
	}

	db.Model(&laborModel.LaborModel{}).
		Where("labor_recomendacion_id = ?", reco.RecomendacionID).
		Count(&resp.TotalLabores)
	db.Model(&laborModel.LaborModel{}).
		Where("labor_recomendacion_id = ? AND labor_estado = ?", reco.RecomendacionID, laborModel.LaborCompletada).
		Count(&resp.LaboresCompletadas)

	return resp
}

func EstadisticasRecomendaciones(db *gorm.DB, actor helperAuth.Actor) (*dto.EstadisticasRecomendacionesResponse, error) {
	base := func() *gorm.DB {
		q := db.Model(&m.RecomendacionModel{})
		if constants.EsDocente(actor.Rol) {
			q = q.Where("recomendacion_docente_id = ?", actor.ID)
		}
		return q
	}

	var stats dto.EstadisticasRecomendacionesResponse
	if err := base().Count(&stats.Total).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Error al calcular estadísticas")
	}
	porEstado := map[m.EstadoRecomendacion]*int64{
		m.RecomendacionPendiente:   &stats.Pendientes,
		m.RecomendacionAprobada:    &stats.Aprobadas,
		m.RecomendacionEnEjecucion: &stats.EnEjecucion,
		m.RecomendacionCompletada:  &stats.Completadas,
		m.RecomendacionCancelada:   &stats.Canceladas,
	}
	for estado, dest := range porEstado {
		if err := base().Where("recomendacion_estado = ?", estado).Count(dest).Error; err != nil {
			return nil, fiber.NewError(fiber.StatusInternalServerError, "Error al calcular estadísticas")
		}
	}
	return &stats, nil
}
