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

	granjaModel "sistema_granjas_backend/internals/features/granjas/model"
	laborModel "sistema_granjas_backend/internals/features/labores/model"
	recoDTO "sistema_granjas_backend/internals/features/recomendaciones/dto"
	m "sistema_granjas_backend/internals/features/recomendaciones/model"
	usuarioModel "sistema_granjas_backend/internals/features/usuarios/model"
)

func peticionReco(loteID uuid.UUID) recoDTO.CreateRecomendacionRequest {
	return recoDTO.CreateRecomendacionRequest{
		Titulo: "Aplicar riego por goteo",
		LoteID: loteID,
	}
}

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
		&granjaModel.GranjaModel{},
		&granjaModel.LoteModel{},
		&laborModel.TipoLaborModel{},
		&m.RecomendacionModel{},
		&laborModel.LaborModel{},
	); err != nil {
		t.Fatalf("migrar: %v", err)
	}
	return db
}

func crearLote(t *testing.T, db *gorm.DB) granjaModel.LoteModel {
	t.Helper()
	lote := granjaModel.LoteModel{LoteNombre: "Lote B"}
	if err := db.Create(&lote).Error; err != nil {
		t.Fatal(err)
	}
	return lote
}

func esCodigo(err error, code int) bool {
	var fe *fiber.Error
	return errors.As(err, &fe) && fe.Code == code
}

func TestCrearRecomendacionSoloDocentesYAdmin(t *testing.T) {
	db := abrirDB(t)
	lote := crearLote(t, db)

	estudiante := helperAuth.Actor{ID: uuid.New(), Rol: constants.RolEstudiante}
	_, err := CrearRecomendacion(db, estudiante, peticionReco(lote.LoteID))
	if !esCodigo(err, fiber.StatusForbidden) {
		t.Fatalf("estudiante debería recibir 403, llegó %v", err)
	}

	docente := helperAuth.Actor{ID: uuid.New(), Rol: constants.RolDocente}
	reco, err := CrearRecomendacion(db, docente, peticionReco(lote.LoteID))
	if err != nil {
		t.Fatalf("docente: %v", err)
	}
	if reco.RecomendacionDocenteID != docente.ID {
		t.Fatal("la recomendación debe quedar a nombre del docente")
	}
	if reco.RecomendacionEstado != m.RecomendacionPendiente {
		t.Fatalf("estado inicial = %s", reco.RecomendacionEstado)
	}
}

func TestCrearRecomendacionLoteInexistente(t *testing.T) {
	db := abrirDB(t)
	docente := helperAuth.Actor{ID: uuid.New(), Rol: constants.RolAsesor}
	_, err := CrearRecomendacion(db, docente, peticionReco(uuid.New()))
	if !esCodigo(err, fiber.StatusNotFound) {
		t.Fatalf("se esperaba 404, llegó %v", err)
	}
}

func TestAprobarYRechazarSoloPendientes(t *testing.T) {
	db := abrirDB(t)
	lote := crearLote(t, db)
	docente := helperAuth.Actor{ID: uuid.New(), Rol: constants.RolDocente}

	reco, err := CrearRecomendacion(db, docente, peticionReco(lote.LoteID))
	if err != nil {
		t.Fatal(err)
	}

	aprobada, err := AprobarRecomendacion(db, reco.RecomendacionID)
	if err != nil {
		t.Fatalf("aprobar: %v", err)
	}
	if aprobada.RecomendacionEstado != m.RecomendacionAprobada || aprobada.RecomendacionFechaAprobacion == nil {
		t.Fatalf("aprobación incompleta: %+v", aprobada)
	}

	// ya no está pendiente
	if _, err := AprobarRecomendacion(db, reco.RecomendacionID); !esCodigo(err, fiber.StatusBadRequest) {
		t.Fatalf("reaprobar debería dar 400, llegó %v", err)
	}
	if _, err := RechazarRecomendacion(db, reco.RecomendacionID); !esCodigo(err, fiber.StatusBadRequest) {
		t.Fatalf("rechazar aprobada debería dar 400, llegó %v", err)
	}
}

func TestActualizarSoloElDueno(t *testing.T) {
	db := abrirDB(t)
	lote := crearLote(t, db)
	duena := helperAuth.Actor{ID: uuid.New(), Rol: constants.RolDocente}
	otra := helperAuth.Actor{ID: uuid.New(), Rol: constants.RolDocente}

	reco, err := CrearRecomendacion(db, duena, peticionReco(lote.LoteID))
	if err != nil {
		t.Fatal(err)
	}

	titulo := "Título corregido"
	if _, err := ActualizarRecomendacion(db, otra, reco.RecomendacionID, recoDTO.UpdateRecomendacionRequest{Titulo: &titulo}); !esCodigo(err, fiber.StatusForbidden) {
		t.Fatalf("otra docente debería recibir 403, llegó %v", err)
	}
	actualizada, err := ActualizarRecomendacion(db, duena, reco.RecomendacionID, recoDTO.UpdateRecomendacionRequest{Titulo: &titulo})
	if err != nil {
		t.Fatal(err)
	}
	if actualizada.RecomendacionTitulo != titulo {
		t.Fatalf("título = %q", actualizada.RecomendacionTitulo)
	}
}

func TestEliminarConLaboresBloqueado(t *testing.T) {
	db := abrirDB(t)
	lote := crearLote(t, db)
	docente := helperAuth.Actor{ID: uuid.New(), Rol: constants.RolDocente}

	reco, err := CrearRecomendacion(db, docente, peticionReco(lote.LoteID))
	if err != nil {
		t.Fatal(err)
	}
	labor := laborModel.LaborModel{
		LaborRecomendacionID: reco.RecomendacionID,
		LaborTrabajadorID:    uuid.New(),
		LaborTipoLaborID:     uuid.New(),
	}
	if err := db.Create(&labor).Error; err != nil {
		t.Fatal(err)
	}

	if err := EliminarRecomendacion(db, docente, reco.RecomendacionID); !esCodigo(err, fiber.StatusBadRequest) {
		t.Fatalf("se esperaba 400 con labores asociadas, llegó %v", err)
	}

	if err := db.Delete(&laborModel.LaborModel{}, "labor_id = ?", labor.LaborID).Error; err != nil {
		t.Fatal(err)
	}
	if err := EliminarRecomendacion(db, docente, reco.RecomendacionID); err != nil {
		t.Fatalf("sin labores debería eliminarse: %v", err)
	}
}

func TestListarDocenteSoloVeLasPropias(t *testing.T) {
	db := abrirDB(t)
	lote := crearLote(t, db)
	docenteA := helperAuth.Actor{ID: uuid.New(), Rol: constants.RolDocente}
	docenteB := helperAuth.Actor{ID: uuid.New(), Rol: constants.RolAsesor}

	if _, err := CrearRecomendacion(db, docenteA, peticionReco(lote.LoteID)); err != nil {
		t.Fatal(err)
	}
	if _, err := CrearRecomendacion(db, docenteB, peticionReco(lote.LoteID)); err != nil {
		t.Fatal(err)
	}

	_, total, err := ListarRecomendaciones(db, docenteA, recoDTO.ListRecomendacionesQuery{}, 0, 50)
	if err != nil {
		t.Fatal(err)
	}
	if total != 1 {
		t.Fatalf("docente A debería ver 1, vio %d", total)
	}

	admin := helperAuth.Actor{ID: uuid.New(), Rol: constants.RolAdmin}
	_, total, err = ListarRecomendaciones(db, admin, recoDTO.ListRecomendacionesQuery{}, 0, 50)
	if err != nil {
		t.Fatal(err)
	}
	if total != 2 {
		t.Fatalf("admin debería ver 2, vio %d", total)
	}
}

func TestEstadoDerivadoDeLabores(t *testing.T) {
	db := abrirDB(t)
	lote := crearLote(t, db)
	docente := helperAuth.Actor{ID: uuid.New(), Rol: constants.RolDocente}

	reco, err := CrearRecomendacion(db, docente, peticionReco(lote.LoteID))
	if err != nil {
		t.Fatal(err)
	}

	// sin labores: no-op
	if err := ActualizarEstadoPorLabores(db, reco.RecomendacionID); err != nil {
		t.Fatal(err)
	}
	var recargada m.RecomendacionModel
	db.First(&recargada, "recomendacion_id = ?", reco.RecomendacionID)
	if recargada.RecomendacionEstado != m.RecomendacionPendiente {
		t.Fatalf("sin labores el estado no debe cambiar, está %s", recargada.RecomendacionEstado)
	}

	crearLaborEstado := func(estado laborModel.EstadoLabor) laborModel.LaborModel {
		l := laborModel.LaborModel{
			LaborRecomendacionID: reco.RecomendacionID,
			LaborTrabajadorID:    uuid.New(),
			LaborTipoLaborID:     uuid.New(),
			LaborEstado:          estado,
		}
		if err := db.Create(&l).Error; err != nil {
			t.Fatal(err)
		}
		return l
	}

	// una en progreso ⇒ en_ejecucion
	enProgreso := crearLaborEstado(laborModel.LaborEnProgreso)
	if err := ActualizarEstadoPorLabores(db, reco.RecomendacionID); err != nil {
		t.Fatal(err)
	}
	db.First(&recargada, "recomendacion_id = ?", reco.RecomendacionID)
	if recargada.RecomendacionEstado != m.RecomendacionEnEjecucion {
		t.Fatalf("estado = %s, se esperaba en_ejecucion", recargada.RecomendacionEstado)
	}

	// todas completadas ⇒ completada
	if err := db.Model(&laborModel.LaborModel{}).
		Where("labor_id = ?", enProgreso.LaborID).
		UpdateColumn("labor_estado", laborModel.LaborCompletada).Error; err != nil {
		t.Fatal(err)
	}
	if err := ActualizarEstadoPorLabores(db, reco.RecomendacionID); err != nil {
		t.Fatal(err)
	}
	db.First(&recargada, "recomendacion_id = ?", reco.RecomendacionID)
	if recargada.RecomendacionEstado != m.RecomendacionCompletada {
		t.Fatalf("estado = %s, se esperaba completada", recargada.RecomendacionEstado)
	}

	// una recomendación cancelada no se toca
	if err := db.Model(&m.RecomendacionModel{}).
		Where("recomendacion_id = ?", reco.RecomendacionID).
		UpdateColumn("recomendacion_estado", m.RecomendacionCancelada).Error; err != nil {
		t.Fatal(err)
	}
	if err := ActualizarEstadoPorLabores(db, reco.RecomendacionID); err != nil {
		t.Fatal(err)
	}
	db.First(&recargada, "recomendacion_id = ?", reco.RecomendacionID)
	if recargada.RecomendacionEstado != m.RecomendacionCancelada {
		t.Fatalf("una cancelada no debe reactivarse, está %s", recargada.RecomendacionEstado)
	}
}
