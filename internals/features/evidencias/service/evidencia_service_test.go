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
	"sistema_granjas_backend/internals/features/evidencias/dto"
	m "sistema_granjas_backend/internals/features/evidencias/model"
	laborModel "sistema_granjas_backend/internals/features/labores/model"
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
		&laborModel.TipoLaborModel{},
		&laborModel.LaborModel{},
		&diagModel.DiagnosticoModel{},
		&recoModel.RecomendacionModel{},
		&m.EvidenciaModel{},
	); err != nil {
		t.Fatalf("migrar: %v", err)
	}
	return db
}

func esCodigo(err error, code int) bool {
	var fe *fiber.Error
	return errors.As(err, &fe) && fe.Code == code
}

func peticionEvidencia(tipo m.EntidadEvidencia, id uuid.UUID) dto.CreateEvidenciaRequest {
	return dto.CreateEvidenciaRequest{
		Tipo:        "imagen",
		Descripcion: "Foto del avance",
		URLArchivo:  "https://archivos.granjas.test/foto.jpg",
		EntidadTipo: tipo,
		EntidadID:   id,
	}
}

func TestCrearEvidenciaPorCadaEntidad(t *testing.T) {
	db := abrirDB(t)
	actor := helperAuth.Actor{ID: uuid.New(), Rol: constants.RolEstudiante}

	labor := laborModel.LaborModel{
		LaborRecomendacionID: uuid.New(),
		LaborTrabajadorID:    uuid.New(),
		LaborTipoLaborID:     uuid.New(),
	}
	if err := db.Create(&labor).Error; err != nil {
		t.Fatal(err)
	}
	diag := diagModel.DiagnosticoModel{
		DiagnosticoTipo:         "Plaga",
		DiagnosticoEstudianteID: uuid.New(),
		DiagnosticoLoteID:       uuid.New(),
	}
	if err := db.Create(&diag).Error; err != nil {
		t.Fatal(err)
	}
	reco := recoModel.RecomendacionModel{
		RecomendacionTitulo:    "Fumigar",
		RecomendacionDocenteID: uuid.New(),
		RecomendacionLoteID:    uuid.New(),
	}
	if err := db.Create(&reco).Error; err != nil {
		t.Fatal(err)
	}

	casos := []struct {
		tipo m.EntidadEvidencia
		id   uuid.UUID
	}{
		{m.EntidadLabor, labor.LaborID},
		{m.EntidadDiagnostico, diag.DiagnosticoID},
		{m.EntidadRecomendacion, reco.RecomendacionID},
	}
	for _, c := range casos {
		if _, err := CrearEvidencia(db, actor, peticionEvidencia(c.tipo, c.id)); err != nil {
			t.Fatalf("entidad %s: %v", c.tipo, err)
		}
	}
}

func TestCrearEvidenciaEntidadInexistente(t *testing.T) {
	db := abrirDB(t)
	actor := helperAuth.Actor{ID: uuid.New(), Rol: constants.RolTrabajador}

	_, err := CrearEvidencia(db, actor, peticionEvidencia(m.EntidadLabor, uuid.New()))
	if !esCodigo(err, fiber.StatusNotFound) {
		t.Fatalf("se esperaba 404, llegó %v", err)
	}
}

func TestCrearEvidenciaTipoEntidadInvalido(t *testing.T) {
	db := abrirDB(t)
	actor := helperAuth.Actor{ID: uuid.New(), Rol: constants.RolTrabajador}

	_, err := CrearEvidencia(db, actor, peticionEvidencia(m.EntidadEvidencia("granja"), uuid.New()))
	if !esCodigo(err, fiber.StatusBadRequest) {
		t.Fatalf("se esperaba 400, llegó %v", err)
	}
}

func TestListarEvidenciasFiltraPorEntidad(t *testing.T) {
	db := abrirDB(t)
	actor := helperAuth.Actor{ID: uuid.New(), Rol: constants.RolTrabajador}

	laborA := laborModel.LaborModel{LaborRecomendacionID: uuid.New(), LaborTrabajadorID: uuid.New(), LaborTipoLaborID: uuid.New()}
	laborB := laborModel.LaborModel{LaborRecomendacionID: uuid.New(), LaborTrabajadorID: uuid.New(), LaborTipoLaborID: uuid.New()}
	if err := db.Create(&laborA).Error; err != nil {
		t.Fatal(err)
	}
	if err := db.Create(&laborB).Error; err != nil {
		t.Fatal(err)
	}

	if _, err := CrearEvidencia(db, actor, peticionEvidencia(m.EntidadLabor, laborA.LaborID)); err != nil {
		t.Fatal(err)
	}
	if _, err := CrearEvidencia(db, actor, peticionEvidencia(m.EntidadLabor, laborA.LaborID)); err != nil {
		t.Fatal(err)
	}
	if _, err := CrearEvidencia(db, actor, peticionEvidencia(m.EntidadLabor, laborB.LaborID)); err != nil {
		t.Fatal(err)
	}

	evs, err := ListarEvidenciasPorEntidad(db, m.EntidadLabor, laborA.LaborID)
	if err != nil {
		t.Fatal(err)
	}
	if len(evs) != 2 {
		t.Fatalf("labor A debería tener 2 evidencias, tiene %d", len(evs))
	}
}

func TestEliminarEvidenciaSoloCreadorOAdmin(t *testing.T) {
	db := abrirDB(t)
	creador := helperAuth.Actor{ID: uuid.New(), Rol: constants.RolTrabajador}
	otro := helperAuth.Actor{ID: uuid.New(), Rol: constants.RolTrabajador}
	admin := helperAuth.Actor{ID: uuid.New(), Rol: constants.RolAdmin}

	labor := laborModel.LaborModel{LaborRecomendacionID: uuid.New(), LaborTrabajadorID: uuid.New(), LaborTipoLaborID: uuid.New()}
	if err := db.Create(&labor).Error; err != nil {
		t.Fatal(err)
	}

	ev, err := CrearEvidencia(db, creador, peticionEvidencia(m.EntidadLabor, labor.LaborID))
	if err != nil {
		t.Fatal(err)
	}

	if err := EliminarEvidencia(db, otro, ev.EvidenciaID); !esCodigo(err, fiber.StatusForbidden) {
		t.Fatalf("otro usuario debería recibir 403, llegó %v", err)
	}
	if err := EliminarEvidencia(db, creador, ev.EvidenciaID); err != nil {
		t.Fatalf("el creador debería poder eliminar: %v", err)
	}

	ev2, err := CrearEvidencia(db, creador, peticionEvidencia(m.EntidadLabor, labor.LaborID))
	if err != nil {
		t.Fatal(err)
	}
	if err := EliminarEvidencia(db, admin, ev2.EvidenciaID); err != nil {
		t.Fatalf("el admin debería poder eliminar: %v", err)
	}

	if err := EliminarEvidencia(db, admin, uuid.New()); !esCodigo(err, fiber.StatusNotFound) {
		t.Fatalf("evidencia fantasma debería dar 404, llegó %v", err)
	}
}
