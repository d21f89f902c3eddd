package dto

import (
	"time"

	"github.com/google/uuid"
)

/* =========================================================
   Auth
   ========================================================= */

type RegistroRequest struct {
	Nombre     string     `json:"nombre" validate:"required,min=3,max=100"`
	Email      string     `json:"email" validate:"required,email"`
	Password   string     `json:"password" validate:"required,min=8"`
	Rol        string     `json:"rol" validate:"required,oneof=admin talento_humano docente asesor trabajador estudiante"`
	ProgramaID *uuid.UUID `json:"programa_id"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type"`
	ExpiresIn   int64           `json:"expires_in"`
	Usuario     UsuarioResponse `json:"usuario"`
}

/* =========================================================
   Usuarios
   ========================================================= */

type UsuarioResponse struct {
	UsuarioID  uuid.UUID  `json:"usuario_id"`
	Nombre     string     `json:"nombre"`
	Email      string     `json:"email"`
	Rol        string     `json:"rol"`
	ProgramaID *uuid.UUID `json:"programa_id,omitempty"`
	Activo     bool       `json:"activo"`

	FechaCreacion time.Time `json:"fecha_creacion"`
}

type UpdateUsuarioRequest struct {
	Nombre     *string    `json:"nombre" validate:"omitempty,min=3,max=100"`
	Rol        *string    `json:"rol" validate:"omitempty,oneof=admin talento_humano docente asesor trabajador estudiante"`
	ProgramaID *uuid.UUID `json:"programa_id"`
	Activo     *bool      `json:"activo"`
}

type ListUsuariosQuery struct {
	Rol        *string    `query:"rol"`
	ProgramaID *uuid.UUID `query:"programa_id"`
	Activo     *bool      `query:"activo"`
	Buscar     *string    `query:"buscar"`
}
