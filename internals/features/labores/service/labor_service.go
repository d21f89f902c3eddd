package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sistema_granjas_backend/internals/constants"
	helperAuth "sistema_granjas_backend/internals/helpers/auth"

	evidenciaModel "sistema_granjas_backend/internals/features/evidencias/model"
	granjaModel "sistema_granjas_backend/internals/features/granjas/model"
	invDTO "sistema_granjas_backend/internals/features/inventario/dto"
	invModel "sistema_granjas_backend/internals/features/inventario/model"
	invService "sistema_granjas_backend/internals/features/inventario/service"
	"sistema_granjas_backend/internals/features/labores/dto"
	m "sistema_granjas_backend/internals/features/labores/model"
	recoModel "sistema_granjas_backend/internals/features/recomendaciones/model"
	recoService "sistema_granjas_backend/internals/features/recomendaciones/service"
	usuarioModel "sistema_granjas_backend/internals/features/usuarios/model"
)

/* =========================================================
   Labores: máquina de estados
   pendiente → en_progreso → completada
   cancelada desde pendiente/en_progreso (terminal)
   ========================================================= */

func esTerminal(estado m.EstadoLabor) bool {
	return estado == m.LaborCompletada || estado == m.LaborCancelada
}

/* =========================================================
   CREAR
   ========================================================= */

func CrearLabor(db *gorm.DB, actor helperAuth.Actor, req dto.CreateLaborRequest) (*m.LaborModel, error) {
	var reco recoModel.RecomendacionModel
	if err := db.First(&reco, "recomendacion_id = ?", req.RecomendacionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Recomendación no encontrada")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Error al consultar la recomendación")
	}

	trabajador, err := cargarUsuarioConRol(db, req.TrabajadorID)
	if err != nil {
		return nil, err
	}
	if trabajador.rolNombre != constants.RolTrabajador {
		return nil, fiber.NewError(fiber.StatusBadRequest,
			"El usuario asignado no tiene rol de trabajador")
	}

	// talento humano solo asigna dentro de su programa
	if actor.Rol == constants.RolTalentoHumano {
		if actor.ProgramaID == nil || trabajador.programaID == nil ||
			*actor.ProgramaID != *trabajador.programaID {
			return nil, fiber.NewError(fiber.StatusForbidden,
				"Solo puede asignar labores a trabajadores de su programa")
		}
	}

	var tipoLabor m.TipoLaborModel
	if err := db.First(&tipoLabor, "tipo_labor_id = ?", req.TipoLaborID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Tipo de labor no encontrado")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Error al consultar el tipo de labor")
	}

	if req.LoteID != nil {
		var lote granjaModel.LoteModel
		if err := db.First(&lote, "lote_id = ?", *req.LoteID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fiber.NewError(fiber.StatusNotFound, "Lote no encontrado")
			}
			return nil, fiber.NewError(fiber.StatusInternalServerError, "Error al consultar el lote")
		}
	}

	labor := req.ToModel()
	if err := db.Create(&labor).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Error al crear la labor")
	}
	return &labor, nil
}

type usuarioResumen struct {
	nombre     string
	rolNombre  string
	programaID *uuid.UUID
}

func cargarUsuarioConRol(db *gorm.DB, usuarioID uuid.UUID) (*usuarioResumen, error) {
	var usuario usuarioModel.UsuarioModel
	if err := db.First(&usuario, "usuario_id = ?", usuarioID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Usuario no encontrado")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Error al consultar el usuario")
	}
	var rol usuarioModel.RolModel
	if err := db.First(&rol, "rol_id = ?", usuario.UsuarioRolID).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Error al consultar el rol del usuario")
	}
	return &usuarioResumen{
		nombre:     usuario.UsuarioNombre,
		rolNombre:  rol.RolNombre,
		programaID: usuario.UsuarioProgramaID,
	}, nil
}

/* =========================================================
   OBTENER / LISTAR (visibilidad por rol)
   ========================================================= */

func ObtenerLabor(db *gorm.DB, actor helperAuth.Actor, laborID uuid.UUID) (*dto.LaborConRecursosResponse, error) {
	ctx, err := CargarContextoLabor(db, laborID)
	if err != nil {
		return nil, err
	}

	switch actor.Rol {
	case constants.RolTrabajador:
		if ctx.Labor.LaborTrabajadorID != actor.ID {
			return nil, fiber.NewError(fiber.StatusForbidden, "Solo puede ver sus propias labores")
		}
	case constants.RolDocente, constants.RolAsesor:
		if ctx.DocenteRecomendacion != actor.ID {
			return nil, fiber.NewError(fiber.StatusForbidden, "Solo puede ver labores de sus recomendaciones")
		}
	case constants.RolTalentoHumano:
		if !mismoPrograma(actor, ctx) {
			return nil, fiber.NewError(fiber.StatusForbidden, "Solo puede ver labores de su programa")
		}
	}

	resp := ArmarLaborConRecursos(db, ctx.Labor)
	return &resp, nil
}

func ListarLabores(db *gorm.DB, actor helperAuth.Actor, q dto.ListLaboresQuery, offset, limit int) ([]m.LaborModel, int64, error) {
	tx := db.Model(&m.LaborModel{})

	switch actor.Rol {
	case constants.RolTrabajador:
		tx = tx.Where("labor_trabajador_id = ?", actor.ID)
	case constants.RolDocente, constants.RolAsesor:
		tx = tx.Where("labor_recomendacion_id IN (?)",
			db.Model(&recoModel.RecomendacionModel{}).
				Select("recomendacion_id").
				Where("recomendacion_docente_id = ?", actor.ID))
	case constants.RolTalentoHumano:
		if actor.ProgramaID == nil {
			return []m.LaborModel{}, 0, nil
		}
		tx = tx.Where("labor_trabajador_id IN (?)",
			db.Model(&usuarioModel.UsuarioModel{}).
				Select("usuario_id").
				Where("usuario_programa_id = ?", *actor.ProgramaID))
	}

	if q.Estado != nil && *q.Estado != "" {
		tx = tx.Where("labor_estado = ?", *q.Estado)
	}
	if q.TrabajadorID != nil {
		tx = tx.Where("labor_trabajador_id = ?", *q.TrabajadorID)
	}
	if q.LoteID != nil {
		tx = tx.Where("labor_lote_id = ?", *q.LoteID)
	}
	if q.RecomendacionID != nil {
		tx = tx.Where("labor_recomendacion_id = ?", *q.RecomendacionID)
	}
	if q.TipoLaborID != nil {
		tx = tx.Where("labor_tipo_labor_id = ?", *q.TipoLaborID)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, fiber.NewError(fiber.StatusInternalServerError, "Error al contar labores")
	}

	var labores []m.LaborModel
	if err := tx.Order("labor_fecha_asignacion DESC").
		Offset(offset).Limit(limit).
		Find(&labores).Error; err != nil {
		return nil, 0, fiber.NewError(fiber.StatusInternalServerError, "Error al listar labores")
	}
	return labores, total, nil
}

/* =========================================================
   EDITAR
   ========================================================= */

func ActualizarLabor(db *gorm.DB, actor helperAuth.Actor, laborID uuid.UUID, req dto.UpdateLaborRequest) (*m.LaborModel, error) {
	ctx, err := CargarContextoLabor(db, laborID)
	if err != nil {
		return nil, err
	}
	if err := VerificarPermisoLabor(actor, AccionEditar, ctx); err != nil {
		return nil, err
	}

	labor := ctx.Labor

	var out *m.LaborModel
	err = db.Transaction(func(tx *gorm.DB) error {
		if req.Avance != nil {
			labor.LaborAvancePorcentaje = *req.Avance
		}
		if req.Comentario != nil {
			labor.LaborComentario = req.Comentario
		}
		if req.TipoLaborID != nil {
			var tipoLabor m.TipoLaborModel
			if err := tx.First(&tipoLabor, "tipo_labor_id = ?", *req.TipoLaborID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fiber.NewError(fiber.StatusNotFound, "Tipo de labor no encontrado")
				}
				return fiber.NewError(fiber.StatusInternalServerError, "Error al consultar el tipo de labor")
			}
			labor.LaborTipoLaborID = *req.TipoLaborID
		}
		if req.LoteID != nil {
			labor.LaborLoteID = req.LoteID
		}
		if req.Estado != nil && *req.Estado != labor.LaborEstado {
			if esTerminal(labor.LaborEstado) {
				return fiber.NewError(fiber.StatusBadRequest,
					fmt.Sprintf("No se puede modificar una labor %s", labor.LaborEstado))
			}
			labor.LaborEstado = *req.Estado
			if *req.Estado == m.LaborCompletada {
				ahora := time.Now().UTC()
				labor.LaborAvancePorcentaje = 100
				labor.LaborFechaFinalizacion = &ahora
			}
		}

		if err := tx.Save(&labor).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Error al actualizar la labor")
		}
		if err := recoService.ActualizarEstadoPorLabores(tx, labor.LaborRecomendacionID); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Error al sincronizar la recomendación")
		}
		out = &labor
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

/* =========================================================
   AVANCE
   ========================================================= */

func RegistrarAvance(db *gorm.DB, actor helperAuth.Actor, laborID uuid.UUID, req dto.RegistroAvanceRequest) (*m.LaborModel, error) {
	ctx, err := CargarContextoLabor(db, laborID)
	if err != nil {
		return nil, err
	}
	if err := VerificarPermisoLabor(actor, AccionRegistrarAvance, ctx); err != nil {
		return nil, err
	}

	labor := ctx.Labor
	if esTerminal(labor.LaborEstado) {
		return nil, fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("No se puede registrar avance en una labor %s", labor.LaborEstado))
	}
	if req.AvancePorcentaje < 0 || req.AvancePorcentaje > 100 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "El avance debe estar entre 0 y 100")
	}

	var out *m.LaborModel
	err = db.Transaction(func(tx *gorm.DB) error {
		labor.LaborAvancePorcentaje = req.AvancePorcentaje
		if req.Comentario != nil {
			labor.LaborComentario = req.Comentario
		}

		switch {
		case req.AvancePorcentaje == 100:
			ahora := time.Now().UTC()
			labor.LaborEstado = m.LaborCompletada
			labor.LaborFechaFinalizacion = &ahora
		case req.AvancePorcentaje > 0 && labor.LaborEstado == m.LaborPendiente:
			labor.LaborEstado = m.LaborEnProgreso
		}

		if err := tx.Save(&labor).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Error al registrar el avance")
		}
		if err := recoService.ActualizarEstadoPorLabores(tx, labor.LaborRecomendacionID); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Error al sincronizar la recomendación")
		}
		out = &labor
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

/* =========================================================
   COMPLETAR
   ========================================================= */

func CompletarLabor(db *gorm.DB, actor helperAuth.Actor, laborID uuid.UUID, comentario *string) (*m.LaborModel, error) {
	ctx, err := CargarContextoLabor(db, laborID)
	if err != nil {
		return nil, err
	}
	if err := VerificarPermisoLabor(actor, AccionCompletar, ctx); err != nil {
		return nil, err
	}

	labor := ctx.Labor
	if esTerminal(labor.LaborEstado) {
		return nil, fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("La labor ya está %s", labor.LaborEstado))
	}

	var out *m.LaborModel
	err = db.Transaction(func(tx *gorm.DB) error {
		ahora := time.Now().UTC()
		labor.LaborEstado = m.LaborCompletada
		labor.LaborAvancePorcentaje = 100
		labor.LaborFechaFinalizacion = &ahora
		if comentario != nil {
			labor.LaborComentario = comentario
		}
		if err := tx.Save(&labor).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Error al completar la labor")
		}
		if err := recoService.ActualizarEstadoPorLabores(tx, labor.LaborRecomendacionID); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Error al sincronizar la recomendación")
		}
		out = &labor
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

/* =========================================================
   RECURSOS: asignación (salida) y devolución (entrada)
   ========================================================= */

func AsignarHerramienta(db *gorm.DB, actor helperAuth.Actor, laborID uuid.UUID, req dto.AsignacionHerramientaRequest) (*invModel.MovimientoHerramientaModel, error) {
	ctx, err := CargarContextoLabor(db, laborID)
	if err != nil {
		return nil, err
	}
	if err := VerificarPermisoLabor(actor, AccionAsignarRecursos, ctx); err != nil {
		return nil, err
	}
	if esTerminal(ctx.Labor.LaborEstado) {
		return nil, fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("No se pueden asignar recursos a una labor %s", ctx.Labor.LaborEstado))
	}

	var mov *invModel.MovimientoHerramientaModel
	err = db.Transaction(func(tx *gorm.DB) error {
		var errMov error
		mov, errMov = invService.RegistrarMovimientoHerramienta(
			tx, req.HerramientaID, &laborID, req.Cantidad, invModel.MovimientoSalida, nil)
		return errMov
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

func AsignarInsumo(db *gorm.DB, actor helperAuth.Actor, laborID uuid.UUID, req dto.AsignacionInsumoRequest) (*invModel.MovimientoInsumoModel, error) {
	ctx, err := CargarContextoLabor(db, laborID)
	if err != nil {
		return nil, err
	}
	if err := VerificarPermisoLabor(actor, AccionAsignarRecursos, ctx); err != nil {
		return nil, err
	}
	if esTerminal(ctx.Labor.LaborEstado) {
		return nil, fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("No se pueden asignar recursos a una labor %s", ctx.Labor.LaborEstado))
	}

	// el insumo pertenece a un programa; solo puede consumirse en
	// lotes de ese mismo programa
	var insumo invModel.InsumoModel
	if err := db.First(&insumo, "insumo_id = ?", req.InsumoID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Insumo no encontrado")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Error al consultar el insumo")
	}
	if insumo.InsumoProgramaID != nil {
		loteID := ctx.Labor.LaborLoteID
		if loteID == nil {
			var reco recoModel.RecomendacionModel
			if err := db.Select("recomendacion_lote_id").
				First(&reco, "recomendacion_id = ?", ctx.Labor.LaborRecomendacionID).Error; err == nil {
				loteID = &reco.RecomendacionLoteID
			}
		}
		if loteID != nil {
			var lote granjaModel.LoteModel
			if err := db.Select("lote_programa_id").
				First(&lote, "lote_id = ?", *loteID).Error; err == nil {
				if lote.LoteProgramaID != nil && *lote.LoteProgramaID != *insumo.InsumoProgramaID {
					return nil, fiber.NewError(fiber.StatusBadRequest,
						"El insumo no pertenece al programa del lote de la labor")
				}
			}
		}
	}

	var mov *invModel.MovimientoInsumoModel
	err = db.Transaction(func(tx *gorm.DB) error {
		var errMov error
		mov, errMov = invService.RegistrarMovimientoInsumo(
			tx, req.InsumoID, &laborID, req.Cantidad, invModel.MovimientoSalida, nil)
		return errMov
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// DevolverHerramienta registra la entrada inversa de un movimiento de
// salida. La cantidad se valida contra el movimiento original y contra
// el neto pendiente de la herramienta en la labor, para que una cadena
// de devoluciones parciales nunca devuelva más de lo asignado.
func DevolverHerramienta(db *gorm.DB, actor helperAuth.Actor, laborID, movimientoID uuid.UUID, cantidad int, observaciones *string) (*invModel.MovimientoHerramientaModel, error) {
	ctx, err := CargarContextoLabor(db, laborID)
	if err != nil {
		return nil, err
	}
	if err := VerificarPermisoLabor(actor, AccionDevolver, ctx); err != nil {
		return nil, err
	}

	var original invModel.MovimientoHerramientaModel
	if err := db.First(&original,
		"movimiento_herramienta_id = ? AND movimiento_herramienta_labor_id = ? AND movimiento_herramienta_tipo = ?",
		movimientoID, laborID, invModel.MovimientoSalida).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound,
				"Movimiento de salida no encontrado para esta labor")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Error al consultar el movimiento")
	}

	if cantidad <= 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "La cantidad debe ser mayor a cero")
	}
	if cantidad > original.MovimientoHerramientaCantidad {
		return nil, fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("No puede devolver más de lo asignado en el movimiento (%d)", original.MovimientoHerramientaCantidad))
	}

	neto, err := invService.NetoHerramientaLabor(db, original.MovimientoHerramientaHerramientaID, laborID)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Error al calcular el neto asignado")
	}
	if cantidad > neto {
		return nil, fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("La labor solo tiene %d unidades pendientes de devolución", neto))
	}

	var mov *invModel.MovimientoHerramientaModel
	err = db.Transaction(func(tx *gorm.DB) error {
		var errMov error
		mov, errMov = invService.RegistrarMovimientoHerramienta(
			tx, original.MovimientoHerramientaHerramientaID, &laborID,
			cantidad, invModel.MovimientoEntrada, observaciones)
		return errMov
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

func DevolverInsumo(db *gorm.DB, actor helperAuth.Actor, laborID, movimientoID uuid.UUID, cantidad float64, observaciones *string) (*invModel.MovimientoInsumoModel, error) {
	ctx, err := CargarContextoLabor(db, laborID)
	if err != nil {
		return nil, err
	}
	if err := VerificarPermisoLabor(actor, AccionDevolver, ctx); err != nil {
		return nil, err
	}

	var original invModel.MovimientoInsumoModel
	if err := db.First(&original,
		"movimiento_insumo_id = ? AND movimiento_insumo_labor_id = ? AND movimiento_insumo_tipo = ?",
		movimientoID, laborID, invModel.MovimientoSalida).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound,
				"Movimiento de salida no encontrado para esta labor")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Error al consultar el movimiento")
	}

	if cantidad <= 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "La cantidad debe ser mayor a cero")
	}
	if cantidad > original.MovimientoInsumoCantidad {
		return nil, fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("No puede devolver más de lo asignado en el movimiento (%.2f)", original.MovimientoInsumoCantidad))
	}

	neto, err := invService.NetoInsumoLabor(db, original.MovimientoInsumoInsumoID, laborID)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Error al calcular el neto asignado")
	}
	if cantidad > neto {
		return nil, fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("La labor solo tiene %.2f pendiente de devolución", neto))
	}

	var mov *invModel.MovimientoInsumoModel
	err = db.Transaction(func(tx *gorm.DB) error {
		var errMov error
		mov, errMov = invService.RegistrarMovimientoInsumo(
			tx, original.MovimientoInsumoInsumoID, &laborID,
			cantidad, invModel.MovimientoEntrada, observaciones)
		return errMov
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

/* =========================================================
   ELIMINAR (guardado por historial)
   ========================================================= */

func EliminarLabor(db *gorm.DB, actor helperAuth.Actor, laborID uuid.UUID) error {
	ctx, err := CargarContextoLabor(db, laborID)
	if err != nil {
		return err
	}
	if err := VerificarPermisoLabor(actor, AccionEliminar, ctx); err != nil {
		return err
	}

	var movHerr, movIns, evidencias int64
	if err := db.Model(&invModel.MovimientoHerramientaModel{}).
		Where("movimiento_herramienta_labor_id = ?", laborID).
		Count(&movHerr).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Error al consultar movimientos")
	}
	if err := db.Model(&invModel.MovimientoInsumoModel{}).
		Where("movimiento_insumo_labor_id = ?", laborID).
		Count(&movIns).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Error al consultar movimientos")
	}
	if err := db.Model(&evidenciaModel.EvidenciaModel{}).
		Where("evidencia_entidad_tipo = ? AND evidencia_entidad_id = ?", evidenciaModel.EntidadLabor, laborID).
		Count(&evidencias).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Error al consultar evidencias")
	}
	if movHerr+movIns > 0 || evidencias > 0 {
		return fiber.NewError(fiber.StatusBadRequest,
			"No se puede eliminar una labor con movimientos de inventario o evidencias asociadas")
	}

	if err := db.Delete(&m.LaborModel{}, "labor_id = ?", laborID).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Error al eliminar la labor")
	}
	return nil
}

/* =========================================================
   VISTAS: nombres resueltos + resumen de recursos
   ========================================================= */

func ArmarLaborResponse(db *gorm.DB, labor m.LaborModel) dto.LaborResponse {
	resp := dto.LaborResponse{
		LaborID:           labor.LaborID,
		Estado:            labor.LaborEstado,
		AvancePorcentaje:  labor.LaborAvancePorcentaje,
		Comentario:        labor.LaborComentario,
		RecomendacionID:   labor.LaborRecomendacionID,
		TrabajadorID:      labor.LaborTrabajadorID,
		TipoLaborID:       labor.LaborTipoLaborID,
		LoteID:            labor.LaborLoteID,
		FechaAsignacion:   labor.LaborFechaAsignacion,
		FechaFinalizacion: labor.LaborFechaFinalizacion,
	}

	var trabajador usuarioModel.UsuarioModel
	if err := db.Select("usuario_nombre").
		First(&trabajador, "usuario_id = ?", labor.LaborTrabajadorID).Error; err == nil {
		resp.TrabajadorNombre = &trabajador.UsuarioNombre
	}

	var reco recoModel.RecomendacionModel
	if err := db.Select("recomendacion_titulo").
		First(&reco, "recomendacion_id = ?", labor.LaborRecomendacionID).Error; err == nil {
		resp.RecomendacionTitulo = &reco.RecomendacionTitulo
	}

	var tipoLabor m.TipoLaborModel
	if err := db.First(&tipoLabor, "tipo_labor_id = ?", labor.LaborTipoLaborID).Error; err == nil {
		resp.TipoLaborNombre = &tipoLabor.TipoLaborNombre
		resp.TipoLaborDescripcion = tipoLabor.TipoLaborDescripcion
	}

	if labor.LaborLoteID != nil {
		var lote granjaModel.LoteModel
		if err := db.First(&lote, "lote_id = ?", *labor.LaborLoteID).Error; err == nil {
			resp.LoteNombre = &lote.LoteNombre
			if lote.LoteGranjaID != nil {
				var granja granjaModel.GranjaModel
				if err := db.Select("granja_nombre").
					First(&granja, "granja_id = ?", *lote.LoteGranjaID).Error; err == nil {
					resp.GranjaNombre = &granja.GranjaNombre
				}
			}
		}
	}

	return resp
}

// ArmarLaborConRecursos agrega a la vista base el resumen de recursos
// netos (solo los que siguen asignados), el historial de movimientos y
// las evidencias.
func ArmarLaborConRecursos(db *gorm.DB, labor m.LaborModel) dto.LaborConRecursosResponse {
	resp := dto.LaborConRecursosResponse{
		LaborResponse:           ArmarLaborResponse(db, labor),
		HerramientasAsignadas:   []dto.ResumenHerramienta{},
		InsumosAsignados:        []dto.ResumenInsumo{},
		Evidencias:              []dto.EvidenciaInfo{},
		MovimientosHerramientas: []invDTO.MovimientoHerramientaResponse{},
		MovimientosInsumos:      []invDTO.MovimientoInsumoResponse{},
	}

	var movsHerr []invModel.MovimientoHerramientaModel
	db.Where("movimiento_herramienta_labor_id = ?", labor.LaborID).
		Order("movimiento_herramienta_fecha ASC").
		Find(&movsHerr)

	netosHerr := map[uuid.UUID]int{}
	for _, mov := range movsHerr {
		item := invDTO.MovimientoHerramientaResponse{
			MovimientoID:    mov.MovimientoHerramientaID,
			HerramientaID:   mov.MovimientoHerramientaHerramientaID,
			LaborID:         mov.MovimientoHerramientaLaborID,
			Cantidad:        mov.MovimientoHerramientaCantidad,
			TipoMovimiento:  string(mov.MovimientoHerramientaTipo),
			FechaMovimiento: mov.MovimientoHerramientaFecha,
			Observaciones:   mov.MovimientoHerramientaObservaciones,
		}
		var herr invModel.HerramientaModel
		if err := db.Select("herramienta_nombre").
			First(&herr, "herramienta_id = ?", mov.MovimientoHerramientaHerramientaID).Error; err == nil {
			item.HerramientaNombre = &herr.HerramientaNombre
		}
		resp.MovimientosHerramientas = append(resp.MovimientosHerramientas, item)

		if mov.MovimientoHerramientaTipo == invModel.MovimientoSalida {
			netosHerr[mov.MovimientoHerramientaHerramientaID] += mov.MovimientoHerramientaCantidad
		} else {
			netosHerr[mov.MovimientoHerramientaHerramientaID] -= mov.MovimientoHerramientaCantidad
		}
	}
	for herrID, neto := range netosHerr {
		if neto <= 0 {
			continue
		}
		item := dto.ResumenHerramienta{
			HerramientaID:  herrID,
			CantidadActual: neto,
			UnidadMedida:   "unidades",
		}
		var herr invModel.HerramientaModel
		if err := db.Select("herramienta_nombre").
			First(&herr, "herramienta_id = ?", herrID).Error; err == nil {
			item.HerramientaNombre = &herr.HerramientaNombre
		}
		resp.HerramientasAsignadas = append(resp.HerramientasAsignadas, item)
	}

	var movsIns []invModel.MovimientoInsumoModel
	db.Where("movimiento_insumo_labor_id = ?", labor.LaborID).
		Order("movimiento_insumo_fecha ASC").
		Find(&movsIns)

	netosIns := map[uuid.UUID]float64{}
	for _, mov := range movsIns {
		item := invDTO.MovimientoInsumoResponse{
			MovimientoID:    mov.MovimientoInsumoID,
			InsumoID:        mov.MovimientoInsumoInsumoID,
			LaborID:         mov.MovimientoInsumoLaborID,
			Cantidad:        mov.MovimientoInsumoCantidad,
			TipoMovimiento:  string(mov.MovimientoInsumoTipo),
			FechaMovimiento: mov.MovimientoInsumoFecha,
			Observaciones:   mov.MovimientoInsumoObservaciones,
		}
		var ins invModel.InsumoModel
		if err := db.Select("insumo_nombre, insumo_unidad_medida").
			First(&ins, "insumo_id = ?", mov.MovimientoInsumoInsumoID).Error; err == nil {
			item.InsumoNombre = &ins.InsumoNombre
			item.UnidadMedida = ins.InsumoUnidadMedida
		}
		resp.MovimientosInsumos = append(resp.MovimientosInsumos, item)

		if mov.MovimientoInsumoTipo == invModel.MovimientoSalida {
			netosIns[mov.MovimientoInsumoInsumoID] += mov.MovimientoInsumoCantidad
		} else {
			netosIns[mov.MovimientoInsumoInsumoID] -= mov.MovimientoInsumoCantidad
		}
	}
	for insID, neto := range netosIns {
		if neto <= 0 {
			continue
		}
		item := dto.ResumenInsumo{
			InsumoID:          insID,
			CantidadConsumida: neto,
			UnidadMedida:      "unidades",
		}
		var ins invModel.InsumoModel
		if err := db.Select("insumo_nombre, insumo_unidad_medida").
			First(&ins, "insumo_id = ?", insID).Error; err == nil {
			item.InsumoNombre = &ins.InsumoNombre
			if ins.InsumoUnidadMedida != nil {
				item.UnidadMedida = *ins.InsumoUnidadMedida
			}
		}
		resp.InsumosAsignados = append(resp.InsumosAsignados, item)
	}

	var evidencias []evidenciaModel.EvidenciaModel
	db.Where("evidencia_entidad_tipo = ? AND evidencia_entidad_id = ?", evidenciaModel.EntidadLabor, labor.LaborID).
		Order("evidencia_fecha_creacion ASC").
		Find(&evidencias)
	for _, ev := range evidencias {
		info := dto.EvidenciaInfo{
			EvidenciaID:   ev.EvidenciaID,
			Tipo:          ev.EvidenciaTipo,
			URLArchivo:    ev.EvidenciaURLArchivo,
			Descripcion:   ev.EvidenciaDescripcion,
			FechaCreacion: ev.EvidenciaFechaCreacion,
		}
		var creador usuarioModel.UsuarioModel
		if err := db.Select("usuario_nombre").
			First(&creador, "usuario_id = ?", ev.EvidenciaUsuarioID).Error; err == nil {
			info.CreadoPorNombre = &creador.UsuarioNombre
		}
		resp.Evidencias = append(resp.Evidencias, info)
	}

	return resp
}

/* =========================================================
   ESTADÍSTICAS
   ========================================================= */

func EstadisticasLabores(db *gorm.DB, actor helperAuth.Actor) (*dto.EstadisticasLaboresResponse, error) {
	base := func() *gorm.DB {
		q := db.Model(&m.LaborModel{})
		switch actor.Rol {
		case constants.RolTrabajador:
			q = q.Where("labor_trabajador_id = ?", actor.ID)
		case constants.RolDocente, constants.RolAsesor:
			q = q.Where("labor_recomendacion_id IN (?)",
				db.Model(&recoModel.RecomendacionModel{}).
					Select("recomendacion_id").
					Where("recomendacion_docente_id = ?", actor.ID))
		case constants.RolTalentoHumano:
			if actor.ProgramaID != nil {
				q = q.Where("labor_trabajador_id IN (?)",
					db.Model(&usuarioModel.UsuarioModel{}).
						Select("usuario_id").
						Where("usuario_programa_id = ?", *actor.ProgramaID))
			}
		}
		return q
	}

	var stats dto.EstadisticasLaboresResponse
	if err := base().Count(&stats.Total).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Error al calcular estadísticas")
	}
	porEstado := map[m.EstadoLabor]*int64{
		m.LaborPendiente:  &stats.Pendientes,
		m.LaborEnProgreso: &stats.EnProgreso,
		m.LaborCompletada: &stats.Completadas,
		m.LaborCancelada:  &stats.Canceladas,
	}
	for estado, dest := range porEstado {
		if err := base().Where("labor_estado = ?", estado).Count(dest).Error; err != nil {
			return nil, fiber.NewError(fiber.StatusInternalServerError, "Error al calcular estadísticas")
		}
	}

	if stats.Total > 0 {
		var promedio *float64
		if err := base().
			Select("AVG(labor_avance_porcentaje)").
			Scan(&promedio).Error; err == nil && promedio != nil {
			stats.PromedioAvance = *promedio
		}
	}
	return &stats, nil
}
