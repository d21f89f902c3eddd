package service

import (
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sistema_granjas_backend/internals/constants"
	helperAuth "sistema_granjas_backend/internals/helpers/auth"

	diagDTO "sistema_granjas_backend/internals/features/diagnosticos/dto"
	m "sistema_granjas_backend/internals/features/diagnosticos/model"
	granjaModel "sistema_granjas_backend/internals/features/granjas/model"
	recoModel "sistema_granjas_backend/internals/features/recomendaciones/model"
	usuarioModel "sistema_granjas_backend/internals/features/usuarios/model"
)

func abrirDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("abrir sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatal(err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(
		&usuarioModel.RolModel{},
		&usuarioModel.UsuarioModel{},
		&granjaModel.ProgramaModel{},
		&granjaModel.LoteModel{},
		&m.DiagnosticoModel{},
		&recoModel.RecomendacionModel{},
	); err != nil {
		t.Fatalf("migrar: %v", err)
	}
	return db
}

func crearUsuarioConRol(t *testing.T, db *gorm.DB, rolNombre string) helperAuth.Actor {
	t.Helper()
	var rol usuarioModel.RolModel
	if err := db.First(&rol, "rol_nombre = ?", rolNombre).Error; err != nil {
		rol = usuarioModel.RolModel{RolNombre: rolNombre, RolActivo: true}
		if err := db.Create(&rol).Error; err != nil {
			t.Fatal(err)
		}
	}
	u := usuarioModel.UsuarioModel{
		UsuarioNombre: rolNombre,
		UsuarioEmail:  rolNombre + "+" + uuid.NewString() + "@granjas.test",
		UsuarioRolID:  rol.RolID,
		UsuarioActivo: true,
	}
	if err := db.Create(&u).Error; err != nil {
		t.Fatal(err)
	}
	return helperAuth.Actor{ID: u.UsuarioID, Rol: rolNombre}
}

func crearLote(t *testing.T, db *gorm.DB) granjaModel.LoteModel {
	t.Helper()
	lote := granjaModel.LoteModel{LoteNombre: "Lote C"}
	if err := db.Create(&lote).Error; err != nil {
		t.Fatal(err)
	}
	return lote
}

func esCodigo(err error, code int) bool {
	var fe *fiber.Error
	return errors.As(err, &fe) && fe.Code == code
}

func TestCrearDiagnosticoSoloEstudiantes(t *testing.T) {
	db := abrirDB(t)
	lote := crearLote(t, db)
	trabajador := crearUsuarioConRol(t, db, constants.RolTrabajador)

	_, err := CrearDiagnostico(db, trabajador, diagDTO.CreateDiagnosticoRequest{Tipo: "Plaga", LoteID: lote.LoteID})
	if !esCodigo(err, fiber.StatusForbidden) {
		t.Fatalf("trabajador debería recibir 403, llegó %v", err)
	}

	estudiante := crearUsuarioConRol(t, db, constants.RolEstudiante)
	diag, err := CrearDiagnostico(db, estudiante, diagDTO.CreateDiagnosticoRequest{Tipo: "Plaga", LoteID: lote.LoteID})
	if err != nil {
		t.Fatalf("estudiante: %v", err)
	}
	if diag.DiagnosticoEstado != m.DiagnosticoAbierto {
		t.Fatalf("estado inicial = %s", diag.DiagnosticoEstado)
	}
	if diag.DiagnosticoEstudianteID != estudiante.ID {
		t.Fatal("el diagnóstico debe quedar a nombre del estudiante")
	}
}

func TestCrearDiagnosticoDocenteDebeSerDocente(t *testing.T) {
	db := abrirDB(t)
	lote := crearLote(t, db)
	estudiante := crearUsuarioConRol(t, db, constants.RolEstudiante)
	otroEstudiante := crearUsuarioConRol(t, db, constants.RolEstudiante)

	_, err := CrearDiagnostico(db, estudiante, diagDTO.CreateDiagnosticoRequest{
		Tipo:      "Enfermedad",
		LoteID:    lote.LoteID,
		DocenteID: &otroEstudiante.ID,
	})
	if !esCodigo(err, fiber.StatusBadRequest) {
		t.Fatalf("docente con rol inválido debería dar 400, llegó %v", err)
	}

	asesor := crearUsuarioConRol(t, db, constants.RolAsesor)
	if _, err := CrearDiagnostico(db, estudiante, diagDTO.CreateDiagnosticoRequest{
		Tipo:      "Enfermedad",
		LoteID:    lote.LoteID,
		DocenteID: &asesor.ID,
	}); err != nil {
		t.Fatalf("un asesor sí puede ser asignado: %v", err)
	}
}

func TestAsignarDocenteTransiciona(t *testing.T) {
	db := abrirDB(t)
	lote := crearLote(t, db)
	estudiante := crearUsuarioConRol(t, db, constants.RolEstudiante)
	docente := crearUsuarioConRol(t, db, constants.RolDocente)

	diag, err := CrearDiagnostico(db, estudiante, diagDTO.CreateDiagnosticoRequest{Tipo: "Suelo", LoteID: lote.LoteID})
	if err != nil {
		t.Fatal(err)
	}

	asignado, err := AsignarDocente(db, diag.DiagnosticoID, docente.ID)
	if err != nil {
		t.Fatalf("asignar: %v", err)
	}
	if asignado.DiagnosticoEstado != m.DiagnosticoEnRevision {
		t.Fatalf("estado = %s, se esperaba en_revision", asignado.DiagnosticoEstado)
	}
	if asignado.DiagnosticoDocenteID == nil || *asignado.DiagnosticoDocenteID != docente.ID {
		t.Fatal("docente no quedó asignado")
	}
}

func TestActualizarRestriccionesPorRol(t *testing.T) {
	db := abrirDB(t)
	lote := crearLote(t, db)
	estudiante := crearUsuarioConRol(t, db, constants.RolEstudiante)
	docente := crearUsuarioConRol(t, db, constants.RolDocente)

	diag, err := CrearDiagnostico(db, estudiante, diagDTO.CreateDiagnosticoRequest{Tipo: "Riego", LoteID: lote.LoteID})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := AsignarDocente(db, diag.DiagnosticoID, docente.ID); err != nil {
		t.Fatal(err)
	}

	descripcion := "Se observa encharcamiento"
	observaciones := "Revisar el drenaje"
	estadoCerrado := m.DiagnosticoCerrado

	// docente asignado no toca la descripción
	if _, err := ActualizarDiagnostico(db, docente, diag.DiagnosticoID, diagDTO.UpdateDiagnosticoRequest{Descripcion: &descripcion}); !esCodigo(err, fiber.StatusForbidden) {
		t.Fatalf("docente con descripción debería dar 403, llegó %v", err)
	}
	// pero sí estado y observaciones
	cerrado, err := ActualizarDiagnostico(db, docente, diag.DiagnosticoID, diagDTO.UpdateDiagnosticoRequest{
		Estado: &estadoCerrado, Observaciones: &observaciones,
	})
	if err != nil {
		t.Fatalf("docente estado+observaciones: %v", err)
	}
	if cerrado.DiagnosticoEstado != m.DiagnosticoCerrado || cerrado.DiagnosticoFechaRevision == nil {
		t.Fatalf("cierre incompleto: %+v", cerrado)
	}

	// estudiante no toca estado ni observaciones, y menos en uno cerrado
	if _, err := ActualizarDiagnostico(db, estudiante, diag.DiagnosticoID, diagDTO.UpdateDiagnosticoRequest{Descripcion: &descripcion}); !esCodigo(err, fiber.StatusBadRequest) {
		t.Fatalf("estudiante sobre cerrado debería dar 400, llegó %v", err)
	}

	// abierto: el estudiante dueño sí edita la descripción
	abierto, err := CrearDiagnostico(db, estudiante, diagDTO.CreateDiagnosticoRequest{Tipo: "Riego", LoteID: lote.LoteID})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ActualizarDiagnostico(db, estudiante, abierto.DiagnosticoID, diagDTO.UpdateDiagnosticoRequest{Estado: &estadoCerrado}); !esCodigo(err, fiber.StatusForbidden) {
		t.Fatalf("estudiante con estado debería dar 403, llegó %v", err)
	}
	editado, err := ActualizarDiagnostico(db, estudiante, abierto.DiagnosticoID, diagDTO.UpdateDiagnosticoRequest{Descripcion: &descripcion})
	if err != nil {
		t.Fatalf("estudiante descripción: %v", err)
	}
	if editado.DiagnosticoDescripcion == nil || *editado.DiagnosticoDescripcion != descripcion {
		t.Fatal("la descripción no se guardó")
	}
}

func TestCerrarSoloDocenteAsignado(t *testing.T) {
	db := abrirDB(t)
	lote := crearLote(t, db)
	estudiante := crearUsuarioConRol(t, db, constants.RolEstudiante)
	docente := crearUsuarioConRol(t, db, constants.RolDocente)
	otroDocente := crearUsuarioConRol(t, db, constants.RolDocente)

	diag, err := CrearDiagnostico(db, estudiante, diagDTO.CreateDiagnosticoRequest{Tipo: "Plaga", LoteID: lote.LoteID})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := AsignarDocente(db, diag.DiagnosticoID, docente.ID); err != nil {
		t.Fatal(err)
	}

	if _, err := CerrarDiagnostico(db, otroDocente, diag.DiagnosticoID, nil); !esCodigo(err, fiber.StatusForbidden) {
		t.Fatalf("otro docente debería recibir 403, llegó %v", err)
	}
	cerrado, err := CerrarDiagnostico(db, docente, diag.DiagnosticoID, nil)
	if err != nil {
		t.Fatalf("cerrar: %v", err)
	}
	if cerrado.DiagnosticoEstado != m.DiagnosticoCerrado {
		t.Fatalf("estado = %s", cerrado.DiagnosticoEstado)
	}
	// doble cierre
	if _, err := CerrarDiagnostico(db, docente, diag.DiagnosticoID, nil); !esCodigo(err, fiber.StatusBadRequest) {
		t.Fatalf("ya cerrado debería dar 400, llegó %v", err)
	}
}

func TestCerrarSinDocenteAsignadoRechazado(t *testing.T) {
	db := abrirDB(t)
	lote := crearLote(t, db)
	estudiante := crearUsuarioConRol(t, db, constants.RolEstudiante)
	admin := crearUsuarioConRol(t, db, constants.RolAdmin)

	diag, err := CrearDiagnostico(db, estudiante, diagDTO.CreateDiagnosticoRequest{Tipo: "Plaga", LoteID: lote.LoteID})
	if err != nil {
		t.Fatal(err)
	}

	// ni siquiera el admin puede cerrar sin docente asignado
	if _, err := CerrarDiagnostico(db, admin, diag.DiagnosticoID, nil); !esCodigo(err, fiber.StatusBadRequest) {
		t.Fatalf("cerrar sin docente debería dar 400, llegó %v", err)
	}

	// tampoco vía actualización de estado
	estadoCerrado := m.DiagnosticoCerrado
	if _, err := ActualizarDiagnostico(db, admin, diag.DiagnosticoID, diagDTO.UpdateDiagnosticoRequest{Estado: &estadoCerrado}); !esCodigo(err, fiber.StatusBadRequest) {
		t.Fatalf("actualizar a cerrado sin docente debería dar 400, llegó %v", err)
	}

	var recargado m.DiagnosticoModel
	if err := db.First(&recargado, "diagnostico_id = ?", diag.DiagnosticoID).Error; err != nil {
		t.Fatal(err)
	}
	if recargado.DiagnosticoEstado != m.DiagnosticoAbierto {
		t.Fatalf("estado = %s, debía seguir abierto", recargado.DiagnosticoEstado)
	}

	// con docente asignado el cierre procede
	docente := crearUsuarioConRol(t, db, constants.RolDocente)
	if _, err := AsignarDocente(db, diag.DiagnosticoID, docente.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := CerrarDiagnostico(db, admin, diag.DiagnosticoID, nil); err != nil {
		t.Fatalf("con docente asignado el admin sí cierra: %v", err)
	}
}

func TestEliminarConRecomendacionesBloqueado(t *testing.T) {
	db := abrirDB(t)
	lote := crearLote(t, db)
	estudiante := crearUsuarioConRol(t, db, constants.RolEstudiante)

	diag, err := CrearDiagnostico(db, estudiante, diagDTO.CreateDiagnosticoRequest{Tipo: "Plaga", LoteID: lote.LoteID})
	if err != nil {
		t.Fatal(err)
	}
	reco := recoModel.RecomendacionModel{
		RecomendacionTitulo:        "Fumigar",
		RecomendacionDocenteID:     uuid.New(),
		RecomendacionLoteID:        lote.LoteID,
		RecomendacionDiagnosticoID: &diag.DiagnosticoID,
	}
	if err := db.Create(&reco).Error; err != nil {
		t.Fatal(err)
	}

	if err := EliminarDiagnostico(db, estudiante, diag.DiagnosticoID); !esCodigo(err, fiber.StatusBadRequest) {
		t.Fatalf("con recomendaciones debería dar 400, llegó %v", err)
	}

	limpio, err := CrearDiagnostico(db, estudiante, diagDTO.CreateDiagnosticoRequest{Tipo: "Plaga", LoteID: lote.LoteID})
	if err != nil {
		t.Fatal(err)
	}
	if err := EliminarDiagnostico(db, estudiante, limpio.DiagnosticoID); err != nil {
		t.Fatalf("abierto y sin recomendaciones debería eliminarse: %v", err)
	}
}

func TestListarVisibilidadPorRol(t *testing.T) {
	db := abrirDB(t)
	lote := crearLote(t, db)
	estudianteA := crearUsuarioConRol(t, db, constants.RolEstudiante)
	estudianteB := crearUsuarioConRol(t, db, constants.RolEstudiante)
	docente := crearUsuarioConRol(t, db, constants.RolDocente)
	otroDocente := crearUsuarioConRol(t, db, constants.RolDocente)

	if _, err := CrearDiagnostico(db, estudianteA, diagDTO.CreateDiagnosticoRequest{
		Tipo: "Plaga", LoteID: lote.LoteID, DocenteID: &otroDocente.ID,
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := CrearDiagnostico(db, estudianteB, diagDTO.CreateDiagnosticoRequest{Tipo: "Suelo", LoteID: lote.LoteID}); err != nil {
		t.Fatal(err)
	}

	// estudiante: solo los propios
	_, total, err := ListarDiagnosticos(db, estudianteA, diagDTO.ListDiagnosticosQuery{}, 0, 50)
	if err != nil {
		t.Fatal(err)
	}
	if total != 1 {
		t.Fatalf("estudiante A debería ver 1, vio %d", total)
	}

	// docente sin asignaciones: ve solo los sin asignar
	diags, _, err := ListarDiagnosticos(db, docente, diagDTO.ListDiagnosticosQuery{}, 0, 50)
	if err != nil {
		t.Fatal(err)
	}
	for _, d := range diags {
		if d.DiagnosticoDocenteID != nil && *d.DiagnosticoDocenteID != docente.ID {
			t.Fatal("el docente vio un diagnóstico asignado a otro")
		}
	}

	// admin: todos
	admin := crearUsuarioConRol(t, db, constants.RolAdmin)
	_, total, err = ListarDiagnosticos(db, admin, diagDTO.ListDiagnosticosQuery{}, 0, 50)
	if err != nil {
		t.Fatal(err)
	}
	if total != 2 {
		t.Fatalf("admin debería ver 2, vio %d", total)
	}
}
