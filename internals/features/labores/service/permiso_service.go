package service

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sistema_granjas_backend/internals/constants"
	helperAuth "sistema_granjas_backend/internals/helpers/auth"

	laborModel "sistema_granjas_backend/internals/features/labores/model"
	recoModel "sistema_granjas_backend/internals/features/recomendaciones/model"
	usuarioModel "sistema_granjas_backend/internals/features/usuarios/model"
)

/* =========================================================
   Matriz de permisos sobre labores
   ========================================================= */

type AccionLabor string

const (
	AccionEditar          AccionLabor = "editar"
	AccionEliminar        AccionLabor = "eliminar"
	AccionAsignarRecursos AccionLabor = "asignar recursos a"
	AccionDevolver        AccionLabor = "devolver recursos de"
	AccionRegistrarAvance AccionLabor = "registrar avance en"
	AccionCompletar       AccionLabor = "completar"
)

// ContextoLabor reúne todo lo que la matriz necesita para decidir,
// cargado una sola vez por el service antes de verificar.
type ContextoLabor struct {
	Labor                laborModel.LaborModel
	TrabajadorProgramaID *uuid.UUID
	DocenteRecomendacion uuid.UUID
}

type reglaPermiso func(actor helperAuth.Actor, ctx ContextoLabor) bool

func mismoPrograma(actor helperAuth.Actor, ctx ContextoLabor) bool {
	return actor.ProgramaID != nil &&
		ctx.TrabajadorProgramaID != nil &&
		*actor.ProgramaID == *ctx.TrabajadorProgramaID
}

func esSuRecomendacion(actor helperAuth.Actor, ctx ContextoLabor) bool {
	return ctx.DocenteRecomendacion == actor.ID
}

func esSuLabor(actor helperAuth.Actor, ctx ContextoLabor) bool {
	return ctx.Labor.LaborTrabajadorID == actor.ID
}

// Quién puede hacer qué. El admin no aparece porque siempre puede;
// un rol ausente (estudiante) nunca puede.
var matrizLabores = map[string]map[AccionLabor]reglaPermiso{
	constants.RolTalentoHumano: {
		AccionEditar:          mismoPrograma,
		AccionAsignarRecursos: mismoPrograma,
		AccionDevolver:        mismoPrograma,
	},
	constants.RolDocente: {
		AccionEditar:          esSuRecomendacion,
		AccionCompletar:       esSuRecomendacion,
		AccionAsignarRecursos: esSuRecomendacion,
		AccionDevolver:        esSuRecomendacion,
	},
	constants.RolAsesor: {
		AccionEditar:          esSuRecomendacion,
		AccionCompletar:       esSuRecomendacion,
		AccionAsignarRecursos: esSuRecomendacion,
		AccionDevolver:        esSuRecomendacion,
	},
	constants.RolTrabajador: {
		AccionRegistrarAvance: esSuLabor,
		AccionCompletar:       esSuLabor,
	},
}

// VerificarPermisoLabor aplica la matriz. Devuelve 403 con un mensaje
// que distingue "acción no permitida para el rol" de "la labor no es suya".
func VerificarPermisoLabor(actor helperAuth.Actor, accion AccionLabor, ctx ContextoLabor) error {
	if actor.Rol == constants.RolAdmin {
		return nil
	}
	acciones, ok := matrizLabores[actor.Rol]
	if !ok {
		return fiber.NewError(fiber.StatusForbidden,
			fmt.Sprintf("No tiene permisos para %s esta labor", accion))
	}
	regla, ok := acciones[accion]
	if !ok {
		return fiber.NewError(fiber.StatusForbidden,
			fmt.Sprintf("No tiene permisos para %s esta labor", accion))
	}
	if !regla(actor, ctx) {
		if actor.Rol == constants.RolTalentoHumano {
			return fiber.NewError(fiber.StatusForbidden,
				fmt.Sprintf("Solo puede %s labores de trabajadores de su programa", accion))
		}
		return fiber.NewError(fiber.StatusForbidden,
			fmt.Sprintf("No tiene permisos para %s esta labor", accion))
	}
	return nil
}

// CargarContextoLabor resuelve labor + programa del trabajador + docente
// de la recomendación en una pasada. 404 si la labor no existe.
func CargarContextoLabor(db *gorm.DB, laborID uuid.UUID) (ContextoLabor, error) {
	var ctx ContextoLabor

	if err := db.First(&ctx.Labor, "labor_id = ?", laborID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ctx, fiber.NewError(fiber.StatusNotFound, "Labor no encontrada")
		}
		return ctx, fiber.NewError(fiber.StatusInternalServerError, "Error al consultar la labor")
	}

	var trabajador usuarioModel.UsuarioModel
	if err := db.Select("usuario_programa_id").
		First(&trabajador, "usuario_id = ?", ctx.Labor.LaborTrabajadorID).Error; err == nil {
		ctx.TrabajadorProgramaID = trabajador.UsuarioProgramaID
	}

	var reco recoModel.RecomendacionModel
	if err := db.Select("recomendacion_docente_id").
		First(&reco, "recomendacion_id = ?", ctx.Labor.LaborRecomendacionID).Error; err == nil {
		ctx.DocenteRecomendacion = reco.RecomendacionDocenteID
	}

	return ctx, nil
}
