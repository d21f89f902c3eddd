package constants

import "fmt"

// Roles del sistema (deben coincidir con la tabla roles sembrada al inicio)
const (
	RolAdmin         = "admin"
	RolTalentoHumano = "talento_humano"
	RolDocente       = "docente"
	RolAsesor        = "asesor"
	RolTrabajador    = "trabajador"
	RolEstudiante    = "estudiante"
)

// Template de mensajes de error por rol
const (
	ErrSoloAdmin        = "Solo un administrador puede acceder a %s."
	ErrSoloAsignadores  = "Solo admin o talento humano pueden acceder a %s."
	ErrRolesInsuficient = "Se requiere uno de los siguientes roles: %s."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrSoloAdmin, feature)
}

func RoleErrorAsignadores(feature string) string {
	return fmt.Sprintf(ErrSoloAsignadores, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	TodosLosRoles = []string{
		RolAdmin,
		RolTalentoHumano,
		RolDocente,
		RolAsesor,
		RolTrabajador,
		RolEstudiante,
	}

	// roles que pueden crear/asignar labores
	Asignadores = []string{
		RolAdmin,
		RolTalentoHumano,
	}

	// roles docentes (emiten recomendaciones, revisan diagnósticos)
	Docentes = []string{
		RolDocente,
		RolAsesor,
	}

	DocentesYAdmin = []string{
		RolDocente,
		RolAsesor,
		RolAdmin,
	}

	OperadoresLabores = []string{
		RolAdmin,
		RolTalentoHumano,
		RolTrabajador,
	}

	SoloAdmin = []string{
		RolAdmin,
	}
)

// EsDocente agrupa docente y asesor, que comparten permisos en todo el sistema.
func EsDocente(rol string) bool {
	return rol == RolDocente || rol == RolAsesor
}
