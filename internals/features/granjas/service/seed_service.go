package service

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"sistema_granjas_backend/internals/constants"
	m "sistema_granjas_backend/internals/features/granjas/model"
	usuarioModel "sistema_granjas_backend/internals/features/usuarios/model"
)

/* =========================================================
   Inicialización del sistema: roles y catálogos base.
   Idempotente; se ejecuta en cada arranque.
   ========================================================= */

var rolesBase = []struct {
	nombre      string
	descripcion string
	nivel       int
}{
	{constants.RolAdmin, "Administrador del sistema", 100},
	{constants.RolTalentoHumano, "Gestión de talento humano y asignación de labores", 80},
	{constants.RolDocente, "Docente que emite recomendaciones y revisa diagnósticos", 60},
	{constants.RolAsesor, "Asesor técnico externo", 60},
	{constants.RolTrabajador, "Trabajador de campo", 40},
	{constants.RolEstudiante, "Estudiante que reporta diagnósticos", 20},
}

var tiposLoteBase = []string{"Invernadero", "Campo abierto", "Corral", "Estanque"}

func InicializarSistema(db *gorm.DB) error {
	if err := sembrarRoles(db); err != nil {
		return err
	}
	if err := sembrarTiposLote(db); err != nil {
		return err
	}
	log.Println("✅ Datos base del sistema verificados")
	return nil
}

func sembrarRoles(db *gorm.DB) error {
	for _, r := range rolesBase {
		var existente usuarioModel.RolModel
		err := db.First(&existente, "rol_nombre = ?", r.nombre).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		desc := r.descripcion
		rol := usuarioModel.RolModel{
			RolNombre:       r.nombre,
			RolDescripcion:  &desc,
			RolNivelPermiso: r.nivel,
			RolActivo:       true,
		}
		if err := db.Create(&rol).Error; err != nil {
			return err
		}
		log.Printf("➕ Rol creado: %s", r.nombre)
	}
	return nil
}

func sembrarTiposLote(db *gorm.DB) error {
	for _, nombre := range tiposLoteBase {
		var existente m.TipoLoteModel
		err := db.First(&existente, "tipo_lote_nombre = ?", nombre).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := db.Create(&m.TipoLoteModel{TipoLoteNombre: nombre}).Error; err != nil {
			return err
		}
	}
	return nil
}
