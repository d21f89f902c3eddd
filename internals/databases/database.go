package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"sistema_granjas_backend/internals/configs"
	diagnosticoModel "sistema_granjas_backend/internals/features/diagnosticos/model"
	evidenciaModel "sistema_granjas_backend/internals/features/evidencias/model"
	granjaModel "sistema_granjas_backend/internals/features/granjas/model"
	inventarioModel "sistema_granjas_backend/internals/features/inventario/model"
	laborModel "sistema_granjas_backend/internals/features/labores/model"
	recomendacionModel "sistema_granjas_backend/internals/features/recomendaciones/model"
	usuarioModel "sistema_granjas_backend/internals/features/usuarios/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("🔌 Conectando a PostgreSQL...")

	sslmode := getenv("DB_SSLMODE", "require")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=sistema_granjas&options=-c statement_timeout=3000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // compatible con PgBouncer (transaction pooling)
	}), &gorm.Config{
		Logger: configs.NewGormLogger(),
	})
	if err != nil {
		log.Fatalf("❌ Error conectando a la base de datos: %v", err)
	}
	DB = db
	log.Println("✅ DB conectada.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("[WARN] no se pudo obtener *sql.DB: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)
}

// MigrateAll corre AutoMigrate sobre todas las entidades del sistema.
// El orden respeta las dependencias por FK.
func MigrateAll() {
	if err := Migrate(DB); err != nil {
		log.Fatalf("❌ Error en migraciones: %v", err)
	}
	log.Println("✅ Migraciones aplicadas.")
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&usuarioModel.RolModel{},
		&usuarioModel.UsuarioModel{},
		&granjaModel.ProgramaModel{},
		&granjaModel.GranjaModel{},
		&granjaModel.TipoLoteModel{},
		&granjaModel.CultivoEspecieModel{},
		&granjaModel.LoteModel{},
		&inventarioModel.CategoriaInventarioModel{},
		&inventarioModel.HerramientaModel{},
		&inventarioModel.InsumoModel{},
		&laborModel.TipoLaborModel{},
		&diagnosticoModel.DiagnosticoModel{},
		&recomendacionModel.RecomendacionModel{},
		&laborModel.LaborModel{},
		&inventarioModel.MovimientoHerramientaModel{},
		&inventarioModel.MovimientoInsumoModel{},
		&evidenciaModel.EvidenciaModel{},
	)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
