package service

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sistema_granjas_backend/internals/constants"
	helperAuth "sistema_granjas_backend/internals/helpers/auth"

	diagModel "sistema_granjas_backend/internals/features/diagnosticos/model"
	"sistema_granjas_backend/internals/features/evidencias/dto"
	m "sistema_granjas_backend/internals/features/evidencias/model"
	laborModel "sistema_granjas_backend/internals/features/labores/model"
	recoModel "sistema_granjas_backend/internals/features/recomendaciones/model"
	usuarioModel "sistema_granjas_backend/internals/features/usuarios/model"
)

/* =========================================================
   Evidencias: adjuntos (foto, video, documento) colgados de
   una labor, un diagnóstico o una recomendación mediante el
   par (entidad_tipo, entidad_id).
   ========================================================= */

// verificarEntidad comprueba que la entidad referenciada exista.
func verificarEntidad(db *gorm.DB, tipo m.EntidadEvidencia, id uuid.UUID) error {
	var err error
	switch tipo {
	case m.EntidadLabor:
		err = db.First(&laborModel.LaborModel{}, "labor_id = ?", id).Error
	case m.EntidadDiagnostico:
		err = db.First(&diagModel.DiagnosticoModel{}, "diagnostico_id = ?", id).Error
	case m.EntidadRecomendacion:
		err = db.First(&recoModel.RecomendacionModel{}, "recomendacion_id = ?", id).Error
	default:
		return fiber.NewError(fiber.StatusBadRequest, "Tipo de entidad no válido")
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound,
				"La entidad referenciada por la evidencia no existe")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Error al verificar la entidad")
	}
	return nil
}

func CrearEvidencia(db *gorm.DB, actor helperAuth.Actor, req dto.CreateEvidenciaRequest) (*m.EvidenciaModel, error) {
	if !req.EntidadTipo.Valida() {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Tipo de entidad no válido")
	}
	if err := verificarEntidad(db, req.EntidadTipo, req.EntidadID); err != nil {
		return nil, err
	}

	ev := req.ToModel(actor.ID)
	if err := db.Create(&ev).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Error al crear la evidencia")
	}
	return &ev, nil
}

func ObtenerEvidencia(db *gorm.DB, id uuid.UUID) (*m.EvidenciaModel, error) {
	var ev m.EvidenciaModel
	if err := db.First(&ev, "evidencia_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Evidencia no encontrada")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Error al consultar la evidencia")
	}
	return &ev, nil
}

func ListarEvidenciasPorEntidad(db *gorm.DB, tipo m.EntidadEvidencia, entidadID uuid.UUID) ([]m.EvidenciaModel, error) {
	if !tipo.Valida() {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Tipo de entidad no válido")
	}
	var evs []m.EvidenciaModel
	if err := db.Where("evidencia_entidad_tipo = ? AND evidencia_entidad_id = ?", tipo, entidadID).
		Order("evidencia_fecha_creacion ASC").
		Find(&evs).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Error al listar evidencias")
	}
	return evs, nil
}

// EliminarEvidencia: solo el creador o el admin.
func EliminarEvidencia(db *gorm.DB, actor helperAuth.Actor, id uuid.UUID) error {
	ev, err := ObtenerEvidencia(db, id)
	if err != nil {
		return err
	}
	if actor.Rol != constants.RolAdmin && ev.EvidenciaUsuarioID != actor.ID {
		return fiber.NewError(fiber.StatusForbidden, "Solo puede eliminar sus propias evidencias")
	}
	if err := db.Delete(&m.EvidenciaModel{}, "evidencia_id = ?", id).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Error al eliminar la evidencia")
	}
	return nil
}

func ArmarEvidenciaResponse(db *gorm.DB, ev m.EvidenciaModel) dto.EvidenciaResponse {
	resp := dto.EvidenciaResponse{
		EvidenciaID:   ev.EvidenciaID,
		Tipo:          ev.EvidenciaTipo,
		Descripcion:   ev.EvidenciaDescripcion,
		URLArchivo:    ev.EvidenciaURLArchivo,
		EntidadTipo:   ev.EvidenciaEntidadTipo,
		EntidadID:     ev.EvidenciaEntidadID,
		UsuarioID:     ev.EvidenciaUsuarioID,
		FechaCreacion: ev.EvidenciaFechaCreacion,
	}
	var usuario usuarioModel.UsuarioModel
	if err := db.Select("usuario_nombre").
		First(&usuario, "usuario_id = ?", ev.EvidenciaUsuarioID).Error; err == nil {
		resp.UsuarioNombre = &usuario.UsuarioNombre
	}
	return resp
}
