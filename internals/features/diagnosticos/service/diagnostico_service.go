package service

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sistema_granjas_backend/internals/constants"
	helperAuth "sistema_granjas_backend/internals/helpers/auth"

	"sistema_granjas_backend/internals/features/diagnosticos/dto"
	m "sistema_granjas_backend/internals/features/diagnosticos/model"
	granjaModel "sistema_granjas_backend/internals/features/granjas/model"
	recoModel "sistema_granjas_backend/internals/features/recomendaciones/model"
	usuarioModel "sistema_granjas_backend/internals/features/usuarios/model"
)

/* =========================================================
   Diagnósticos: reportes de campo de los estudiantes sobre
   un lote, revisados y cerrados por un docente.
   abierto → en_revision → cerrado
   ========================================================= */

func rolDeUsuario(db *gorm.DB, usuarioID uuid.UUID) (string, error) {
	var usuario usuarioModel.UsuarioModel
	if err := db.First(&usuario, "usuario_id = ?", usuarioID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fiber.NewError(fiber.StatusNotFound, "Usuario no encontrado")
		}
		return "", fiber.NewError(fiber.StatusInternalServerError, "Error al consultar el usuario")
	}
	var rol usuarioModel.RolModel
	if err := db.First(&rol, "rol_id = ?", usuario.UsuarioRolID).Error; err != nil {
		return "", fiber.NewError(fiber.StatusInternalServerError, "Error al consultar el rol")
	}
	return rol.RolNombre, nil
}

func CrearDiagnostico(db *gorm.DB, actor helperAuth.Actor, req dto.CreateDiagnosticoRequest) (*m.DiagnosticoModel, error) {
	// los estudiantes reportan a su nombre; el admin también puede crear
	if actor.Rol != constants.RolEstudiante && actor.Rol != constants.RolAdmin {
		return nil, fiber.NewError(fiber.StatusForbidden, "Solo los estudiantes pueden crear diagnósticos")
	}

	var lote granjaModel.LoteModel
	if err := db.First(&lote, "lote_id = ?", req.LoteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Lote no encontrado")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Error al consultar el lote")
	}

	if req.DocenteID != nil {
		rol, err := rolDeUsuario(db, *req.DocenteID)
		if err != nil {
			return nil, err
		}
		if !constants.EsDocente(rol) {
			return nil, fiber.NewError(fiber.StatusBadRequest,
				"El usuario asignado no tiene rol de docente o asesor")
		}
	}

	diag := req.ToModel(actor.ID)
	if err := db.Create(&diag).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Error al crear el diagnóstico")
	}
	return &diag, nil
}

func ObtenerDiagnostico(db *gorm.DB, id uuid.UUID) (*m.DiagnosticoModel, error) {
	var diag m.DiagnosticoModel
	if err := db.First(&diag, "diagnostico_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Diagnóstico no encontrado")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Error al consultar el diagnóstico")
	}
	return &diag, nil
}

// ListarDiagnosticos: el estudiante ve los propios; docentes y asesores
// ven los asignados a ellos y los sin asignar; admin y talento humano
// ven todo.
func ListarDiagnosticos(db *gorm.DB, actor helperAuth.Actor, q dto.ListDiagnosticosQuery, offset, limit int) ([]m.DiagnosticoModel, int64, error) {
	tx := db.Model(&m.DiagnosticoModel{})

	switch actor.Rol {
	case constants.RolEstudiante:
		tx = tx.Where("diagnostico_estudiante_id = ?", actor.ID)
	case constants.RolDocente, constants.RolAsesor:
		tx = tx.Where("diagnostico_docente_id = ? OR diagnostico_docente_id IS NULL", actor.ID)
	}

	if q.Estado != nil && *q.Estado != "" {
		tx = tx.Where("diagnostico_estado = ?", *q.Estado)
	}
	if q.LoteID != nil {
		tx = tx.Where("diagnostico_lote_id = ?", *q.LoteID)
	}
	if q.EstudianteID != nil {
		tx = tx.Where("diagnostico_estudiante_id = ?", *q.EstudianteID)
	}
	if q.DocenteID != nil {
		tx = tx.Where("diagnostico_docente_id = ?", *q.DocenteID)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, fiber.NewError(fiber.StatusInternalServerError, "Error al contar diagnósticos")
	}

	var diags []m.DiagnosticoModel
	if err := tx.Order("diagnostico_fecha_creacion DESC").
		Offset(offset).Limit(limit).
		Find(&diags).Error; err != nil {
		return nil, 0, fiber.NewError(fiber.StatusInternalServerError, "Error al listar diagnósticos")
	}
	return diags, total, nil
}

// ActualizarDiagnostico aplica restricciones de campos por rol:
// el docente asignado solo toca estado y observaciones; el estudiante
// dueño solo toca la descripción, y solo mientras esté abierto; el
// admin no tiene restricción.
func ActualizarDiagnostico(db *gorm.DB, actor helperAuth.Actor, id uuid.UUID, req dto.UpdateDiagnosticoRequest) (*m.DiagnosticoModel, error) {
	diag, err := ObtenerDiagnostico(db, id)
	if err != nil {
		return nil, err
	}

	switch {
	case actor.Rol == constants.RolAdmin:
		// sin restricción

	case constants.EsDocente(actor.Rol):
		if diag.DiagnosticoDocenteID == nil || *diag.DiagnosticoDocenteID != actor.ID {
			return nil, fiber.NewError(fiber.StatusForbidden,
				"Solo el docente asignado puede modificar este diagnóstico")
		}
		if req.Descripcion != nil {
			return nil, fiber.NewError(fiber.StatusForbidden,
				"El docente solo puede modificar el estado y las observaciones")
		}

	case actor.Rol == constants.RolEstudiante:
		if diag.DiagnosticoEstudianteID != actor.ID {
			return nil, fiber.NewError(fiber.StatusForbidden,
				"Solo puede modificar sus propios diagnósticos")
		}
		if diag.DiagnosticoEstado != m.DiagnosticoAbierto {
			return nil, fiber.NewError(fiber.StatusBadRequest,
				"Solo se pueden modificar diagnósticos abiertos")
		}
		if req.Estado != nil || req.Observaciones != nil {
			return nil, fiber.NewError(fiber.StatusForbidden,
				"El estudiante solo puede modificar la descripción")
		}

	default:
		return nil, fiber.NewError(fiber.StatusForbidden,
			"No tiene permisos para modificar este diagnóstico")
	}

	if req.Descripcion != nil {
		diag.DiagnosticoDescripcion = req.Descripcion
	}
	if req.Observaciones != nil {
		diag.DiagnosticoObservaciones = req.Observaciones
	}
	if req.Estado != nil && *req.Estado != diag.DiagnosticoEstado {
		if *req.Estado == m.DiagnosticoCerrado && diag.DiagnosticoDocenteID == nil {
			return nil, fiber.NewError(fiber.StatusBadRequest,
				"No se puede cerrar un diagnóstico sin docente asignado")
		}
		diag.DiagnosticoEstado = *req.Estado
		if *req.Estado == m.DiagnosticoCerrado && diag.DiagnosticoFechaRevision == nil {
			ahora := time.Now().UTC()
			diag.DiagnosticoFechaRevision = &ahora
		}
	}

	if err := db.Save(diag).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Error al actualizar el diagnóstico")
	}
	return diag, nil
}

// AsignarDocente: abierto → en_revision al asignar.
func AsignarDocente(db *gorm.DB, id uuid.UUID, docenteID uuid.UUID) (*m.DiagnosticoModel, error) {
	diag, err := ObtenerDiagnostico(db, id)
	if err != nil {
		return nil, err
	}
	if diag.DiagnosticoEstado == m.DiagnosticoCerrado {
		return nil, fiber.NewError(fiber.StatusBadRequest,
			"No se puede asignar docente a un diagnóstico cerrado")
	}

	rol, err := rolDeUsuario(db, docenteID)
	if err != nil {
		return nil, err
	}
	if !constants.EsDocente(rol) {
		return nil, fiber.NewError(fiber.StatusBadRequest,
			"El usuario asignado no tiene rol de docente o asesor")
	}

	diag.DiagnosticoDocenteID = &docenteID
	if diag.DiagnosticoEstado == m.DiagnosticoAbierto {
		diag.DiagnosticoEstado = m.DiagnosticoEnRevision
	}
	if err := db.Save(diag).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Error al asignar el docente")
	}
	return diag, nil
}

// CerrarDiagnostico: lo cierra el docente asignado (o el admin) y
// queda con fecha de revisión.
func CerrarDiagnostico(db *gorm.DB, actor helperAuth.Actor, id uuid.UUID, observaciones *string) (*m.DiagnosticoModel, error) {
	diag, err := ObtenerDiagnostico(db, id)
	if err != nil {
		return nil, err
	}

	if diag.DiagnosticoDocenteID == nil {
		return nil, fiber.NewError(fiber.StatusBadRequest,
			"No se puede cerrar un diagnóstico sin docente asignado")
	}
	if actor.Rol != constants.RolAdmin {
		if !constants.EsDocente(actor.Rol) || *diag.DiagnosticoDocenteID != actor.ID {
			return nil, fiber.NewError(fiber.StatusForbidden,
				"Solo el docente asignado puede cerrar este diagnóstico")
		}
	}
	if diag.DiagnosticoEstado == m.DiagnosticoCerrado {
		return nil, fiber.NewError(fiber.StatusBadRequest, "El diagnóstico ya está cerrado")
	}

	ahora := time.Now().UTC()
	diag.DiagnosticoEstado = m.DiagnosticoCerrado
	diag.DiagnosticoFechaRevision = &ahora
	if observaciones != nil {
		diag.DiagnosticoObservaciones = observaciones
	}
	if err := db.Save(diag).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Error al cerrar el diagnóstico")
	}
	return diag, nil
}

// EliminarDiagnostico: bloqueado si tiene recomendaciones derivadas.
func EliminarDiagnostico(db *gorm.DB, actor helperAuth.Actor, id uuid.UUID) error {
	diag, err := ObtenerDiagnostico(db, id)
	if err != nil {
		return err
	}

	if actor.Rol != constants.RolAdmin {
		if actor.Rol != constants.RolEstudiante || diag.DiagnosticoEstudianteID != actor.ID {
			return fiber.NewError(fiber.StatusForbidden, "Solo puede eliminar sus propios diagnósticos")
		}
		if diag.DiagnosticoEstado != m.DiagnosticoAbierto {
			return fiber.NewError(fiber.StatusBadRequest, "Solo se pueden eliminar diagnósticos abiertos")
		}
	}

	var recos int64
	if err := db.Model(&recoModel.RecomendacionModel{}).
		Where("recomendacion_diagnostico_id = ?", id).
		Count(&recos).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Error al consultar recomendaciones asociadas")
	}
	if recos > 0 {
		return fiber.NewError(fiber.StatusBadRequest,
			"No se puede eliminar un diagnóstico con recomendaciones asociadas")
	}

	if err := db.Delete(&m.DiagnosticoModel{}, "diagnostico_id = ?", id).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Error al eliminar el diagnóstico")
	}
	return nil
}

/* =========================================================
   Vistas y estadísticas
   ========================================================= */

func ArmarDiagnosticoResponse(db *gorm.DB, diag m.DiagnosticoModel) dto.DiagnosticoResponse {
	resp := dto.DiagnosticoResponse{
		DiagnosticoID: diag.DiagnosticoID,
		Tipo:          diag.DiagnosticoTipo,
		Descripcion:   diag.DiagnosticoDescripcion,
		Estado:        diag.DiagnosticoEstado,
		Observaciones: diag.DiagnosticoObservaciones,
		EstudianteID:  diag.DiagnosticoEstudianteID,
		DocenteID:     diag.DiagnosticoDocenteID,
		LoteID:        diag.DiagnosticoLoteID,
		FechaCreacion: diag.DiagnosticoFechaCreacion,
		FechaRevision: diag.DiagnosticoFechaRevision,
	}

	var estudiante usuarioModel.UsuarioModel
	if err := db.Select("usuario_nombre").
		First(&estudiante, "usuario_id = ?", diag.DiagnosticoEstudianteID).Error; err == nil {
		resp.EstudianteNombre = &estudiante.UsuarioNombre
	}
	if diag.DiagnosticoDocenteID != nil {
		var docente usuarioModel.UsuarioModel
		if err := db.Select("usuario_nombre").
			First(&docente, "usuario_id = ?", *diag.DiagnosticoDocenteID).Error; err == nil {
			resp.DocenteNombre = &docente.UsuarioNombre
		}
	}
	var lote granjaModel.LoteModel
	if err := db.Select("lote_nombre").
		First(&lote, "lote_id = ?", diag.DiagnosticoLoteID).Error; err == nil {
		resp.LoteNombre = &lote.LoteNombre
	}

	db.Model(&recoModel.RecomendacionModel{}).
		Where("recomendacion_diagnostico_id = ?", diag.DiagnosticoID).
		Count(&resp.TotalRecomendaciones)

	return resp
}

func EstadisticasDiagnosticos(db *gorm.DB, actor helperAuth.Actor) (*dto.EstadisticasDiagnosticosResponse, error) {
	base := func() *gorm.DB {
		q := db.Model(&m.DiagnosticoModel{})
		switch actor.Rol {
		case constants.RolEstudiante:
			q = q.Where("diagnostico_estudiante_id = ?", actor.ID)
		case constants.RolDocente, constants.RolAsesor:
			q = q.Where("diagnostico_docente_id = ?", actor.ID)
		}
		return q
	}

	var stats dto.EstadisticasDiagnosticosResponse
	if err := base().Count(&stats.Total).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Error al calcular estadísticas")
	}
	porEstado := map[m.EstadoDiagnostico]*int64{
		m.DiagnosticoAbierto:    &stats.Abiertos,
		m.DiagnosticoEnRevision: &stats.EnRevision,
		m.DiagnosticoCerrado:    &stats.Cerrados,
	}
	for estado, dest := range porEstado {
		if err := base().Where("diagnostico_estado = ?", estado).Count(dest).Error; err != nil {
			return nil, fiber.NewError(fiber.StatusInternalServerError, "Error al calcular estadísticas")
		}
	}
	return &stats, nil
}
