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

	diagModel "sistema_granjas_backend/internals/features/diagnosticos/model"
	evidenciaModel "sistema_granjas_backend/internals/features/evidencias/model"
	granjaModel "sistema_granjas_backend/internals/features/granjas/model"
	invModel "sistema_granjas_backend/internals/features/inventario/model"
	"sistema_granjas_backend/internals/features/labores/dto"
	m "sistema_granjas_backend/internals/features/labores/model"
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
		t.Fatalf("obtener *sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&usuarioModel.RolModel{},
		&usuarioModel.UsuarioModel{},
		&granjaModel.ProgramaModel{},
		&granjaModel.GranjaModel{},
		&granjaModel.TipoLoteModel{},
		&granjaModel.CultivoEspecieModel{},
		&granjaModel.LoteModel{},
		&invModel.CategoriaInventarioModel{},
		&invModel.HerramientaModel{},
		&invModel.InsumoModel{},
		&m.TipoLaborModel{},
		&diagModel.DiagnosticoModel{},
		&recoModel.RecomendacionModel{},
		&m.LaborModel{},
		&invModel.MovimientoHerramientaModel{},
		&invModel.MovimientoInsumoModel{},
		&evidenciaModel.EvidenciaModel{},
	); err != nil {
		t.Fatalf("migrar: %v", err)
	}
	return db
}

type escenario struct {
	db *gorm.DB

	programa      granjaModel.ProgramaModel
	otroPrograma  granjaModel.ProgramaModel
	lote          granjaModel.LoteModel
	tipoLabor     m.TipoLaborModel
	recomendacion recoModel.RecomendacionModel

	admin      helperAuth.Actor
	talento    helperAuth.Actor
	docente    helperAuth.Actor
	trabajador helperAuth.Actor
	estudiante helperAuth.Actor
}

func crearUsuario(t *testing.T, db *gorm.DB, rolNombre string, programaID *uuid.UUID) helperAuth.Actor {
	t.Helper()
	var rol usuarioModel.RolModel
	if err := db.First(&rol, "rol_nombre = ?", rolNombre).Error; err != nil {
		rol = usuarioModel.RolModel{RolNombre: rolNombre, RolActivo: true}
		if err := db.Create(&rol).Error; err != nil {
			t.Fatalf("crear rol %s: %v", rolNombre, err)
		}
	}
	usuario := usuarioModel.UsuarioModel{
		UsuarioNombre:     rolNombre + " de prueba",
		UsuarioEmail:      rolNombre + "+" + uuid.NewString() + "@granjas.test",
		UsuarioRolID:      rol.RolID,
		UsuarioProgramaID: programaID,
		UsuarioActivo:     true,
	}
	if err := db.Create(&usuario).Error; err != nil {
		t.Fatalf("crear usuario %s: %v", rolNombre, err)
	}
	return helperAuth.Actor{ID: usuario.UsuarioID, Rol: rolNombre, ProgramaID: programaID}
}

func armarEscenario(t *testing.T) *escenario {
	t.Helper()
	db := abrirDB(t)
	e := &escenario{db: db}

	e.programa = granjaModel.ProgramaModel{ProgramaNombre: "Hortalizas", ProgramaTipo: "agricola"}
	e.otroPrograma = granjaModel.ProgramaModel{ProgramaNombre: "Avicultura", ProgramaTipo: "pecuario"}
	if err := db.Create(&e.programa).Error; err != nil {
		t.Fatal(err)
	}
	if err := db.Create(&e.otroPrograma).Error; err != nil {
		t.Fatal(err)
	}

	e.lote = granjaModel.LoteModel{LoteNombre: "Lote A", LoteProgramaID: &e.programa.ProgramaID}
	if err := db.Create(&e.lote).Error; err != nil {
		t.Fatal(err)
	}

	e.tipoLabor = m.TipoLaborModel{TipoLaborNombre: "Riego"}
	if err := db.Create(&e.tipoLabor).Error; err != nil {
		t.Fatal(err)
	}

	e.admin = crearUsuario(t, db, constants.RolAdmin, nil)
	e.talento = crearUsuario(t, db, constants.RolTalentoHumano, &e.programa.ProgramaID)
	e.docente = crearUsuario(t, db, constants.RolDocente, nil)
	e.trabajador = crearUsuario(t, db, constants.RolTrabajador, &e.programa.ProgramaID)
	e.estudiante = crearUsuario(t, db, constants.RolEstudiante, nil)

	e.recomendacion = recoModel.RecomendacionModel{
		RecomendacionTitulo:    "Regar lote A",
		RecomendacionEstado:    recoModel.RecomendacionAprobada,
		RecomendacionDocenteID: e.docente.ID,
		RecomendacionLoteID:    e.lote.LoteID,
	}
	if err := db.Create(&e.recomendacion).Error; err != nil {
		t.Fatal(err)
	}
	return e
}

func (e *escenario) crearLabor(t *testing.T, actor helperAuth.Actor) *m.LaborModel {
	t.Helper()
	labor, err := CrearLabor(e.db, actor, dto.CreateLaborRequest{
		RecomendacionID: e.recomendacion.RecomendacionID,
		TrabajadorID:    e.trabajador.ID,
		TipoLaborID:     e.tipoLabor.TipoLaborID,
		LoteID:          &e.lote.LoteID,
	})
	if err != nil {
		t.Fatalf("crear labor: %v", err)
	}
	return labor
}

func codigoDe(t *testing.T, err error) int {
	t.Helper()
	var fe *fiber.Error
	if !errors.As(err, &fe) {
		t.Fatalf("se esperaba *fiber.Error, llegó %T: %v", err, err)
	}
	return fe.Code
}

/* =========================================================
   Creación
   ========================================================= */

func TestCrearLaborRechazaUsuarioSinRolTrabajador(t *testing.T) {
	e := armarEscenario(t)

	_, err := CrearLabor(e.db, e.admin, dto.CreateLaborRequest{
		RecomendacionID: e.recomendacion.RecomendacionID,
		TrabajadorID:    e.estudiante.ID,
		TipoLaborID:     e.tipoLabor.TipoLaborID,
	})
	if err == nil {
		t.Fatal("se esperaba error al asignar labor a un estudiante")
	}
	if codigoDe(t, err) != fiber.StatusBadRequest {
		t.Fatalf("código inesperado: %d", codigoDe(t, err))
	}
}

func TestCrearLaborTalentoHumanoSoloSuPrograma(t *testing.T) {
	e := armarEscenario(t)
	ajeno := crearUsuario(t, e.db, constants.RolTrabajador, &e.otroPrograma.ProgramaID)

	_, err := CrearLabor(e.db, e.talento, dto.CreateLaborRequest{
		RecomendacionID: e.recomendacion.RecomendacionID,
		TrabajadorID:    ajeno.ID,
		TipoLaborID:     e.tipoLabor.TipoLaborID,
	})
	if err == nil {
		t.Fatal("se esperaba 403 por trabajador de otro programa")
	}
	if codigoDe(t, err) != fiber.StatusForbidden {
		t.Fatalf("código inesperado: %d", codigoDe(t, err))
	}

	// mismo programa sí
	if _, err := CrearLabor(e.db, e.talento, dto.CreateLaborRequest{
		RecomendacionID: e.recomendacion.RecomendacionID,
		TrabajadorID:    e.trabajador.ID,
		TipoLaborID:     e.tipoLabor.TipoLaborID,
	}); err != nil {
		t.Fatalf("el mismo programa debería permitirse: %v", err)
	}
}

func TestCrearLaborRecomendacionInexistente(t *testing.T) {
	e := armarEscenario(t)
	_, err := CrearLabor(e.db, e.admin, dto.CreateLaborRequest{
		RecomendacionID: uuid.New(),
		TrabajadorID:    e.trabajador.ID,
		TipoLaborID:     e.tipoLabor.TipoLaborID,
	})
	if err == nil || codigoDe(t, err) != fiber.StatusNotFound {
		t.Fatalf("se esperaba 404, llegó %v", err)
	}
}

func TestActualizarLaborTipoInexistente(t *testing.T) {
	e := armarEscenario(t)
	labor := e.crearLabor(t, e.admin)
	fantasma := uuid.New()

	_, err := ActualizarLabor(e.db, e.admin, labor.LaborID, dto.UpdateLaborRequest{
		TipoLaborID: &fantasma,
	})
	if err == nil || codigoDe(t, err) != fiber.StatusNotFound {
		t.Fatalf("se esperaba 404 por tipo de labor inexistente, llegó %v", err)
	}

	// el tipo original queda intacto
	var recargada m.LaborModel
	if err := e.db.First(&recargada, "labor_id = ?", labor.LaborID).Error; err != nil {
		t.Fatal(err)
	}
	if recargada.LaborTipoLaborID != e.tipoLabor.TipoLaborID {
		t.Fatalf("el tipo cambió a %s", recargada.LaborTipoLaborID)
	}
}

/* =========================================================
   Avance y máquina de estados
   ========================================================= */

func TestRegistrarAvanceTransiciones(t *testing.T) {
	e := armarEscenario(t)
	labor := e.crearLabor(t, e.admin)

	// avance parcial: pendiente → en_progreso
	actualizada, err := RegistrarAvance(e.db, e.trabajador, labor.LaborID, dto.RegistroAvanceRequest{AvancePorcentaje: 40})
	if err != nil {
		t.Fatalf("avance 40: %v", err)
	}
	if actualizada.LaborEstado != m.LaborEnProgreso {
		t.Fatalf("estado = %s, se esperaba en_progreso", actualizada.LaborEstado)
	}
	if actualizada.LaborFechaFinalizacion != nil {
		t.Fatal("no debería tener fecha de finalización")
	}

	// avance 100: → completada con fecha
	completada, err := RegistrarAvance(e.db, e.trabajador, labor.LaborID, dto.RegistroAvanceRequest{AvancePorcentaje: 100})
	if err != nil {
		t.Fatalf("avance 100: %v", err)
	}
	if completada.LaborEstado != m.LaborCompletada {
		t.Fatalf("estado = %s, se esperaba completada", completada.LaborEstado)
	}
	if completada.LaborFechaFinalizacion == nil {
		t.Fatal("completada sin fecha de finalización")
	}

	// terminal: nuevo avance rechazado
	if _, err := RegistrarAvance(e.db, e.trabajador, labor.LaborID, dto.RegistroAvanceRequest{AvancePorcentaje: 50}); err == nil {
		t.Fatal("se esperaba rechazo de avance sobre labor completada")
	}
}

func TestRegistrarAvanceSoloElTrabajadorAsignado(t *testing.T) {
	e := armarEscenario(t)
	labor := e.crearLabor(t, e.admin)
	otro := crearUsuario(t, e.db, constants.RolTrabajador, &e.programa.ProgramaID)

	_, err := RegistrarAvance(e.db, otro, labor.LaborID, dto.RegistroAvanceRequest{AvancePorcentaje: 10})
	if err == nil || codigoDe(t, err) != fiber.StatusForbidden {
		t.Fatalf("se esperaba 403 para otro trabajador, llegó %v", err)
	}
}

func TestCompletarLaborSincronizaRecomendacion(t *testing.T) {
	e := armarEscenario(t)
	labor1 := e.crearLabor(t, e.admin)
	labor2 := e.crearLabor(t, e.admin)

	if _, err := CompletarLabor(e.db, e.trabajador, labor1.LaborID, nil); err != nil {
		t.Fatalf("completar labor1: %v", err)
	}

	var reco recoModel.RecomendacionModel
	if err := e.db.First(&reco, "recomendacion_id = ?", e.recomendacion.RecomendacionID).Error; err != nil {
		t.Fatal(err)
	}
	if reco.RecomendacionEstado != recoModel.RecomendacionEnEjecucion {
		t.Fatalf("con una labor completada de dos, la recomendación debería estar en_ejecucion, está %s", reco.RecomendacionEstado)
	}

	if _, err := CompletarLabor(e.db, e.trabajador, labor2.LaborID, nil); err != nil {
		t.Fatalf("completar labor2: %v", err)
	}
	if err := e.db.First(&reco, "recomendacion_id = ?", e.recomendacion.RecomendacionID).Error; err != nil {
		t.Fatal(err)
	}
	if reco.RecomendacionEstado != recoModel.RecomendacionCompletada {
		t.Fatalf("con todas las labores completadas la recomendación debería completarse, está %s", reco.RecomendacionEstado)
	}
}

/* =========================================================
   Recursos
   ========================================================= */

func (e *escenario) crearHerramienta(t *testing.T, total int) invModel.HerramientaModel {
	t.Helper()
	h := invModel.HerramientaModel{
		HerramientaNombre:             "Pala",
		HerramientaCantidadTotal:      total,
		HerramientaCantidadDisponible: total,
	}
	if err := e.db.Create(&h).Error; err != nil {
		t.Fatal(err)
	}
	return h
}

func (e *escenario) crearInsumo(t *testing.T, total float64, programaID *uuid.UUID) invModel.InsumoModel {
	t.Helper()
	unidad := "kg"
	i := invModel.InsumoModel{
		InsumoNombre:             "Abono",
		InsumoProgramaID:         programaID,
		InsumoCantidadTotal:      total,
		InsumoCantidadDisponible: total,
		InsumoUnidadMedida:       &unidad,
	}
	if err := e.db.Create(&i).Error; err != nil {
		t.Fatal(err)
	}
	return i
}

func TestAsignarHerramientaDescuentaDisponible(t *testing.T) {
	e := armarEscenario(t)
	labor := e.crearLabor(t, e.admin)
	herr := e.crearHerramienta(t, 10)

	mov, err := AsignarHerramienta(e.db, e.admin, labor.LaborID, dto.AsignacionHerramientaRequest{
		HerramientaID: herr.HerramientaID, Cantidad: 4,
	})
	if err != nil {
		t.Fatalf("asignar: %v", err)
	}
	if mov.MovimientoHerramientaTipo != invModel.MovimientoSalida {
		t.Fatalf("tipo = %s", mov.MovimientoHerramientaTipo)
	}

	var recargada invModel.HerramientaModel
	if err := e.db.First(&recargada, "herramienta_id = ?", herr.HerramientaID).Error; err != nil {
		t.Fatal(err)
	}
	if recargada.HerramientaCantidadDisponible != 6 {
		t.Fatalf("disponible = %d, se esperaba 6", recargada.HerramientaCantidadDisponible)
	}
	if recargada.HerramientaCantidadTotal != 10 {
		t.Fatalf("el total no debe cambiar, quedó %d", recargada.HerramientaCantidadTotal)
	}
}

func TestAsignarHerramientaSinDisponibilidadNoDejaRastro(t *testing.T) {
	e := armarEscenario(t)
	labor := e.crearLabor(t, e.admin)
	herr := e.crearHerramienta(t, 3)

	_, err := AsignarHerramienta(e.db, e.admin, labor.LaborID, dto.AsignacionHerramientaRequest{
		HerramientaID: herr.HerramientaID, Cantidad: 5,
	})
	if err == nil || codigoDe(t, err) != fiber.StatusBadRequest {
		t.Fatalf("se esperaba 400 por disponibilidad, llegó %v", err)
	}

	// atomicidad: ni movimiento ni descuento
	var movimientos int64
	e.db.Model(&invModel.MovimientoHerramientaModel{}).Count(&movimientos)
	if movimientos != 0 {
		t.Fatalf("quedaron %d movimientos registrados", movimientos)
	}
	var recargada invModel.HerramientaModel
	e.db.First(&recargada, "herramienta_id = ?", herr.HerramientaID)
	if recargada.HerramientaCantidadDisponible != 3 {
		t.Fatalf("disponible = %d, se esperaba 3 intacto", recargada.HerramientaCantidadDisponible)
	}
}

func TestAsignarInsumoDeOtroProgramaRechazado(t *testing.T) {
	e := armarEscenario(t)
	labor := e.crearLabor(t, e.admin)
	insumo := e.crearInsumo(t, 50, &e.otroPrograma.ProgramaID)

	_, err := AsignarInsumo(e.db, e.admin, labor.LaborID, dto.AsignacionInsumoRequest{
		InsumoID: insumo.InsumoID, Cantidad: 2.5,
	})
	if err == nil || codigoDe(t, err) != fiber.StatusBadRequest {
		t.Fatalf("se esperaba 400 por programa ajeno, llegó %v", err)
	}
}

func TestDevolucionParcialYTopeNeto(t *testing.T) {
	e := armarEscenario(t)
	labor := e.crearLabor(t, e.admin)
	herr := e.crearHerramienta(t, 10)

	mov, err := AsignarHerramienta(e.db, e.admin, labor.LaborID, dto.AsignacionHerramientaRequest{
		HerramientaID: herr.HerramientaID, Cantidad: 6,
	})
	if err != nil {
		t.Fatal(err)
	}

	// primera devolución parcial
	if _, err := DevolverHerramienta(e.db, e.admin, labor.LaborID, mov.MovimientoHerramientaID, 4, nil); err != nil {
		t.Fatalf("devolver 4: %v", err)
	}

	// segunda devolución contra el mismo movimiento: 4 ≤ 6 pero el
	// neto pendiente es 2, debe rechazarse
	_, err = DevolverHerramienta(e.db, e.admin, labor.LaborID, mov.MovimientoHerramientaID, 4, nil)
	if err == nil || codigoDe(t, err) != fiber.StatusBadRequest {
		t.Fatalf("se esperaba 400 por exceder el neto pendiente, llegó %v", err)
	}

	// devolver el resto sí
	if _, err := DevolverHerramienta(e.db, e.admin, labor.LaborID, mov.MovimientoHerramientaID, 2, nil); err != nil {
		t.Fatalf("devolver 2: %v", err)
	}

	var recargada invModel.HerramientaModel
	e.db.First(&recargada, "herramienta_id = ?", herr.HerramientaID)
	if recargada.HerramientaCantidadDisponible != 10 {
		t.Fatalf("disponible = %d, se esperaba 10 tras devolver todo", recargada.HerramientaCantidadDisponible)
	}
}

func TestDevolverContraMovimientoDeOtraLabor(t *testing.T) {
	e := armarEscenario(t)
	labor1 := e.crearLabor(t, e.admin)
	labor2 := e.crearLabor(t, e.admin)
	herr := e.crearHerramienta(t, 10)

	mov, err := AsignarHerramienta(e.db, e.admin, labor1.LaborID, dto.AsignacionHerramientaRequest{
		HerramientaID: herr.HerramientaID, Cantidad: 3,
	})
	if err != nil {
		t.Fatal(err)
	}

	_, err = DevolverHerramienta(e.db, e.admin, labor2.LaborID, mov.MovimientoHerramientaID, 1, nil)
	if err == nil || codigoDe(t, err) != fiber.StatusNotFound {
		t.Fatalf("se esperaba 404 por movimiento de otra labor, llegó %v", err)
	}
}

/* =========================================================
   Eliminación y visibilidad
   ========================================================= */

func TestEliminarLaborConMovimientosBloqueado(t *testing.T) {
	e := armarEscenario(t)
	labor := e.crearLabor(t, e.admin)
	herr := e.crearHerramienta(t, 5)

	if _, err := AsignarHerramienta(e.db, e.admin, labor.LaborID, dto.AsignacionHerramientaRequest{
		HerramientaID: herr.HerramientaID, Cantidad: 1,
	}); err != nil {
		t.Fatal(err)
	}

	err := EliminarLabor(e.db, e.admin, labor.LaborID)
	if err == nil || codigoDe(t, err) != fiber.StatusBadRequest {
		t.Fatalf("se esperaba 400 por historial, llegó %v", err)
	}

	// una labor limpia sí se elimina
	limpia := e.crearLabor(t, e.admin)
	if err := EliminarLabor(e.db, e.admin, limpia.LaborID); err != nil {
		t.Fatalf("eliminar labor limpia: %v", err)
	}
}

func TestEliminarLaborConEvidenciasBloqueado(t *testing.T) {
	e := armarEscenario(t)
	labor := e.crearLabor(t, e.admin)

	evidencia := evidenciaModel.EvidenciaModel{
		EvidenciaTipo:        "imagen",
		EvidenciaDescripcion: "Riego terminado",
		EvidenciaURLArchivo:  "https://archivos.granjas.test/riego.jpg",
		EvidenciaEntidadTipo: evidenciaModel.EntidadLabor,
		EvidenciaEntidadID:   labor.LaborID,
		EvidenciaUsuarioID:   e.trabajador.ID,
	}
	if err := e.db.Create(&evidencia).Error; err != nil {
		t.Fatal(err)
	}

	err := EliminarLabor(e.db, e.admin, labor.LaborID)
	if err == nil || codigoDe(t, err) != fiber.StatusBadRequest {
		t.Fatalf("se esperaba 400 por evidencias asociadas, llegó %v", err)
	}

	var quedan int64
	e.db.Model(&m.LaborModel{}).Where("labor_id = ?", labor.LaborID).Count(&quedan)
	if quedan != 1 {
		t.Fatal("la labor no debería haberse eliminado")
	}
}

func TestEliminarLaborSoloAdmin(t *testing.T) {
	e := armarEscenario(t)
	labor := e.crearLabor(t, e.admin)

	err := EliminarLabor(e.db, e.talento, labor.LaborID)
	if err == nil || codigoDe(t, err) != fiber.StatusForbidden {
		t.Fatalf("se esperaba 403 para talento humano, llegó %v", err)
	}
}

func TestListarLaboresVisibilidadPorRol(t *testing.T) {
	e := armarEscenario(t)
	propia := e.crearLabor(t, e.admin)

	// labor de otro trabajador en otro programa, bajo otra recomendación
	otroDocente := crearUsuario(t, e.db, constants.RolDocente, nil)
	otroTrabajador := crearUsuario(t, e.db, constants.RolTrabajador, &e.otroPrograma.ProgramaID)
	otraReco := recoModel.RecomendacionModel{
		RecomendacionTitulo:    "Alimentar aves",
		RecomendacionDocenteID: otroDocente.ID,
		RecomendacionLoteID:    e.lote.LoteID,
	}
	if err := e.db.Create(&otraReco).Error; err != nil {
		t.Fatal(err)
	}
	ajena, err := CrearLabor(e.db, e.admin, dto.CreateLaborRequest{
		RecomendacionID: otraReco.RecomendacionID,
		TrabajadorID:    otroTrabajador.ID,
		TipoLaborID:     e.tipoLabor.TipoLaborID,
	})
	if err != nil {
		t.Fatal(err)
	}

	// trabajador: solo la propia
	labores, total, err := ListarLabores(e.db, e.trabajador, dto.ListLaboresQuery{}, 0, 50)
	if err != nil {
		t.Fatal(err)
	}
	if total != 1 || len(labores) != 1 || labores[0].LaborID != propia.LaborID {
		t.Fatalf("el trabajador debería ver solo su labor, vio %d", total)
	}

	// docente: solo labores de sus recomendaciones
	labores, _, err = ListarLabores(e.db, e.docente, dto.ListLaboresQuery{}, 0, 50)
	if err != nil {
		t.Fatal(err)
	}
	for _, l := range labores {
		if l.LaborID == ajena.LaborID {
			t.Fatal("el docente vio una labor de otra recomendación")
		}
	}

	// talento humano: solo trabajadores de su programa
	labores, _, err = ListarLabores(e.db, e.talento, dto.ListLaboresQuery{}, 0, 50)
	if err != nil {
		t.Fatal(err)
	}
	for _, l := range labores {
		if l.LaborTrabajadorID == otroTrabajador.ID {
			t.Fatal("talento humano vio una labor de otro programa")
		}
	}

	// admin: todas
	_, total, err = ListarLabores(e.db, e.admin, dto.ListLaboresQuery{}, 0, 50)
	if err != nil {
		t.Fatal(err)
	}
	if total != 2 {
		t.Fatalf("el admin debería ver 2 labores, vio %d", total)
	}
}

func TestVistaLaborConRecursosNetos(t *testing.T) {
	e := armarEscenario(t)
	labor := e.crearLabor(t, e.admin)
	herr := e.crearHerramienta(t, 10)
	insumo := e.crearInsumo(t, 20, &e.programa.ProgramaID)

	mov, err := AsignarHerramienta(e.db, e.admin, labor.LaborID, dto.AsignacionHerramientaRequest{
		HerramientaID: herr.HerramientaID, Cantidad: 5,
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := AsignarInsumo(e.db, e.admin, labor.LaborID, dto.AsignacionInsumoRequest{
		InsumoID: insumo.InsumoID, Cantidad: 7.5,
	}); err != nil {
		t.Fatal(err)
	}
	// devolver todo: la herramienta desaparece del resumen
	if _, err := DevolverHerramienta(e.db, e.admin, labor.LaborID, mov.MovimientoHerramientaID, 5, nil); err != nil {
		t.Fatal(err)
	}

	vista := ArmarLaborConRecursos(e.db, *labor)
	if len(vista.HerramientasAsignadas) != 0 {
		t.Fatalf("con neto 0 la herramienta no debe listarse, hay %d", len(vista.HerramientasAsignadas))
	}
	if len(vista.InsumosAsignados) != 1 || vista.InsumosAsignados[0].CantidadConsumida != 7.5 {
		t.Fatalf("resumen de insumos inesperado: %+v", vista.InsumosAsignados)
	}
	// el historial completo sí queda
	if len(vista.MovimientosHerramientas) != 2 {
		t.Fatalf("se esperaban 2 movimientos de herramienta, hay %d", len(vista.MovimientosHerramientas))
	}
}
