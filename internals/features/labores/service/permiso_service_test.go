package service

import (
	"testing"

	"github.com/google/uuid"

	"sistema_granjas_backend/internals/constants"
	helperAuth "sistema_granjas_backend/internals/helpers/auth"
	laborModel "sistema_granjas_backend/internals/features/labores/model"
)

func TestMatrizPermisosLabores(t *testing.T) {
	programaA := uuid.New()
	programaB := uuid.New()
	docenteID := uuid.New()
	trabajadorID := uuid.New()

	ctx := ContextoLabor{
		Labor:                laborModel.LaborModel{LaborTrabajadorID: trabajadorID},
		TrabajadorProgramaID: &programaA,
		DocenteRecomendacion: docenteID,
	}

	casos := []struct {
		nombre   string
		actor    helperAuth.Actor
		accion   AccionLabor
		permitido bool
	}{
		{"admin puede todo", helperAuth.Actor{ID: uuid.New(), Rol: constants.RolAdmin}, AccionEliminar, true},
		{"talento humano edita en su programa", helperAuth.Actor{ID: uuid.New(), Rol: constants.RolTalentoHumano, ProgramaID: &programaA}, AccionEditar, true},
		{"talento humano no edita otro programa", helperAuth.Actor{ID: uuid.New(), Rol: constants.RolTalentoHumano, ProgramaID: &programaB}, AccionEditar, false},
		{"talento humano sin programa no edita", helperAuth.Actor{ID: uuid.New(), Rol: constants.RolTalentoHumano}, AccionEditar, false},
		{"talento humano no completa", helperAuth.Actor{ID: uuid.New(), Rol: constants.RolTalentoHumano, ProgramaID: &programaA}, AccionCompletar, false},
		{"talento humano devuelve en su programa", helperAuth.Actor{ID: uuid.New(), Rol: constants.RolTalentoHumano, ProgramaID: &programaA}, AccionDevolver, true},
		{"docente dueño asigna recursos", helperAuth.Actor{ID: docenteID, Rol: constants.RolDocente}, AccionAsignarRecursos, true},
		{"docente ajeno no asigna", helperAuth.Actor{ID: uuid.New(), Rol: constants.RolDocente}, AccionAsignarRecursos, false},
		{"docente dueño completa", helperAuth.Actor{ID: docenteID, Rol: constants.RolDocente}, AccionCompletar, true},
		{"docente no registra avance", helperAuth.Actor{ID: docenteID, Rol: constants.RolDocente}, AccionRegistrarAvance, false},
		{"docente no elimina", helperAuth.Actor{ID: docenteID, Rol: constants.RolDocente}, AccionEliminar, false},
		{"asesor dueño devuelve", helperAuth.Actor{ID: docenteID, Rol: constants.RolAsesor}, AccionDevolver, true},
		{"trabajador asignado registra avance", helperAuth.Actor{ID: trabajadorID, Rol: constants.RolTrabajador}, AccionRegistrarAvance, true},
		{"trabajador asignado completa", helperAuth.Actor{ID: trabajadorID, Rol: constants.RolTrabajador}, AccionCompletar, true},
		{"otro trabajador no registra avance", helperAuth.Actor{ID: uuid.New(), Rol: constants.RolTrabajador}, AccionRegistrarAvance, false},
		{"trabajador no asigna recursos", helperAuth.Actor{ID: trabajadorID, Rol: constants.RolTrabajador}, AccionAsignarRecursos, false},
		{"estudiante nunca", helperAuth.Actor{ID: uuid.New(), Rol: constants.RolEstudiante}, AccionEditar, false},
	}

	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			err := VerificarPermisoLabor(c.actor, c.accion, ctx)
			if c.permitido && err != nil {
				t.Fatalf("se esperaba permitido, llegó %v", err)
			}
			if !c.permitido && err == nil {
				t.Fatal("se esperaba denegado")
			}
		})
	}
}

func TestCargarContextoLaborInexistente(t *testing.T) {
	db := abrirDB(t)
	_, err := CargarContextoLabor(db, uuid.New())
	if err == nil || codigoDe(t, err) != 404 {
		t.Fatalf("se esperaba 404, llegó %v", err)
	}
}
