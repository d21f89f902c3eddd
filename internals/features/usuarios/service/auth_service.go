package service

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"sistema_granjas_backend/internals/configs"
	"sistema_granjas_backend/internals/features/usuarios/dto"
	m "sistema_granjas_backend/internals/features/usuarios/model"
)

const tokenVigencia = 24 * time.Hour

/* =========================================================
   Registro / Login (HS256, claims: sub, rol, programa_id)
   ========================================================= */

func Registro(db *gorm.DB, req dto.RegistroRequest) (*m.UsuarioModel, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var existente m.UsuarioModel
	err := db.First(&existente, "usuario_email = ?", email).Error
	if err == nil {
		return nil, fiber.NewError(fiber.StatusConflict, "El email ya está registrado")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Error al consultar usuarios")
	}

	var rol m.RolModel
	if err := db.First(&rol, "rol_nombre = ?", req.Rol).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Rol no válido")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Error al consultar roles")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Error al procesar la contraseña")
	}
	hashStr := string(hash)

	usuario := m.UsuarioModel{
		UsuarioNombre:       strings.TrimSpace(req.Nombre),
		UsuarioEmail:        email,
		UsuarioRolID:        rol.RolID,
		UsuarioProgramaID:   req.ProgramaID,
		UsuarioPasswordHash: &hashStr,
		UsuarioActivo:       true,
	}
	if err := db.Create(&usuario).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Error al registrar el usuario")
	}
	return &usuario, nil
}

func Login(db *gorm.DB, req dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var usuario m.UsuarioModel
	if err := db.First(&usuario, "usuario_email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Credenciales inválidas")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Error al consultar usuarios")
	}
	if !usuario.UsuarioActivo {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Usuario inactivo")
	}
	if usuario.UsuarioPasswordHash == nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Credenciales inválidas")
	}
	if err := bcrypt.CompareHashAndPassword(
		[]byte(*usuario.UsuarioPasswordHash), []byte(req.Password)); err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Credenciales inválidas")
	}

	var rol m.RolModel
	if err := db.First(&rol, "rol_id = ?", usuario.UsuarioRolID).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Error al consultar el rol")
	}

	token, err := emitirToken(usuario, rol.RolNombre)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Error al generar el token")
	}

	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(tokenVigencia.Seconds()),
		Usuario:     ArmarUsuarioResponse(usuario, rol.RolNombre),
	}, nil
}

func emitirToken(usuario m.UsuarioModel, rolNombre string) (string, error) {
	if configs.JWTSecret == "" {
		return "", errors.New("JWT_SECRET no configurado")
	}
	ahora := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub": usuario.UsuarioID.String(),
		"rol": rolNombre,
		"iat": ahora.Unix(),
		"exp": ahora.Add(tokenVigencia).Unix(),
	}
	if usuario.UsuarioProgramaID != nil {
		claims["programa_id"] = usuario.UsuarioProgramaID.String()
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(configs.JWTSecret))
}

/* =========================================================
   Gestión de usuarios
   ========================================================= */

func ObtenerUsuario(db *gorm.DB, id uuid.UUID) (*m.UsuarioModel, string, error) {
	var usuario m.UsuarioModel
	if err := db.First(&usuario, "usuario_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", fiber.NewError(fiber.StatusNotFound, "Usuario no encontrado")
		}
		return nil, "", fiber.NewError(fiber.StatusInternalServerError, "Error al consultar el usuario")
	}
	var rol m.RolModel
	if err := db.First(&rol, "rol_id = ?", usuario.UsuarioRolID).Error; err != nil {
		return nil, "", fiber.NewError(fiber.StatusInternalServerError, "Error al consultar el rol")
	}
	return &usuario, rol.RolNombre, nil
}

func ListarUsuarios(db *gorm.DB, q dto.ListUsuariosQuery, offset, limit int) ([]m.UsuarioModel, int64, error) {
	tx := db.Model(&m.UsuarioModel{})

	if q.Rol != nil && *q.Rol != "" {
		tx = tx.Where("usuario_rol_id IN (?)",
			db.Model(&m.RolModel{}).Select("rol_id").Where("rol_nombre = ?", *q.Rol))
	}
	if q.ProgramaID != nil {
		tx = tx.Where("usuario_programa_id = ?", *q.ProgramaID)
	}
	if q.Activo != nil {
		tx = tx.Where("usuario_activo = ?", *q.Activo)
	}
	if q.Buscar != nil && strings.TrimSpace(*q.Buscar) != "" {
		patron := "%" + strings.TrimSpace(*q.Buscar) + "%"
		tx = tx.Where("usuario_nombre LIKE ? OR usuario_email LIKE ?", patron, patron)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, fiber.NewError(fiber.StatusInternalServerError, "Error al contar usuarios")
	}

	var usuarios []m.UsuarioModel
	if err := tx.Order("usuario_fecha_creacion DESC").
		Offset(offset).Limit(limit).
		Find(&usuarios).Error; err != nil {
		return nil, 0, fiber.NewError(fiber.StatusInternalServerError, "Error al listar usuarios")
	}
	return usuarios, total, nil
}

func ActualizarUsuario(db *gorm.DB, id uuid.UUID, req dto.UpdateUsuarioRequest) (*m.UsuarioModel, string, error) {
	usuario, rolNombre, err := ObtenerUsuario(db, id)
	if err != nil {
		return nil, "", err
	}

	if req.Nombre != nil {
		usuario.UsuarioNombre = strings.TrimSpace(*req.Nombre)
	}
	if req.ProgramaID != nil {
		usuario.UsuarioProgramaID = req.ProgramaID
	}
	if req.Activo != nil {
		usuario.UsuarioActivo = *req.Activo
	}
	if req.Rol != nil && *req.Rol != rolNombre {
		var rol m.RolModel
		if err := db.First(&rol, "rol_nombre = ?", *req.Rol).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, "", fiber.NewError(fiber.StatusBadRequest, "Rol no válido")
			}
			return nil, "", fiber.NewError(fiber.StatusInternalServerError, "Error al consultar roles")
		}
		usuario.UsuarioRolID = rol.RolID
		rolNombre = rol.RolNombre
	}

	if err := db.Save(usuario).Error; err != nil {
		return nil, "", fiber.NewError(fiber.StatusInternalServerError, "Error al actualizar el usuario")
	}
	return usuario, rolNombre, nil
}

// DesactivarUsuario: baja lógica; el historial (labores, movimientos,
// evidencias) se conserva.
func DesactivarUsuario(db *gorm.DB, id uuid.UUID) error {
	res := db.Model(&m.UsuarioModel{}).
		Where("usuario_id = ?", id).
		UpdateColumn("usuario_activo", false)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Error al desactivar el usuario")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Usuario no encontrado")
	}
	return nil
}

func ArmarUsuarioResponse(usuario m.UsuarioModel, rolNombre string) dto.UsuarioResponse {
	return dto.UsuarioResponse{
		UsuarioID:     usuario.UsuarioID,
		Nombre:        usuario.UsuarioNombre,
		Email:         usuario.UsuarioEmail,
		Rol:           rolNombre,
		ProgramaID:    usuario.UsuarioProgramaID,
		Activo:        usuario.UsuarioActivo,
		FechaCreacion: usuario.UsuarioFechaCreacion,
	}
}
