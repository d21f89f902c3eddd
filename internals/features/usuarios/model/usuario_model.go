package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RolModel struct {
	RolID           uuid.UUID `gorm:"column:rol_id;type:uuid;primaryKey" json:"rol_id"`
	RolNombre       string    `gorm:"column:rol_nombre;type:varchar(50);not null;uniqueIndex" json:"rol_nombre"`
	RolDescripcion  *string   `gorm:"column:rol_descripcion;type:text" json:"rol_descripcion,omitempty"`
	RolNivelPermiso int       `gorm:"column:rol_nivel_permiso;not null;default:0" json:"rol_nivel_permiso"`
	RolActivo       bool      `gorm:"column:rol_activo;not null;default:true" json:"rol_activo"`
}

func (RolModel) TableName() string { return "roles" }

func (r *RolModel) BeforeCreate(tx *gorm.DB) error {
	if r.RolID == uuid.Nil {
		r.RolID = uuid.New()
	}
	return nil
}

type UsuarioModel struct {
	UsuarioID     uuid.UUID `gorm:"column:usuario_id;type:uuid;primaryKey" json:"usuario_id"`
	UsuarioNombre string    `gorm:"column:usuario_nombre;type:varchar(100);not null" json:"usuario_nombre"`
	UsuarioEmail  string    `gorm:"column:usuario_email;type:varchar(100);not null;uniqueIndex" json:"usuario_email"`

	// FKs (IDs solamente, estilo tenant-safe)
	UsuarioRolID      uuid.UUID  `gorm:"column:usuario_rol_id;type:uuid;not null;index" json:"usuario_rol_id"`
	UsuarioProgramaID *uuid.UUID `gorm:"column:usuario_programa_id;type:uuid;index" json:"usuario_programa_id,omitempty"`

	UsuarioPasswordHash *string `gorm:"column:usuario_password_hash;type:varchar(255)" json:"-"`
	UsuarioAuthProvider string  `gorm:"column:usuario_auth_provider;type:varchar(50);not null;default:traditional" json:"usuario_auth_provider"`

	UsuarioActivo        bool      `gorm:"column:usuario_activo;not null;default:true" json:"usuario_activo"`
	UsuarioFechaCreacion time.Time `gorm:"column:usuario_fecha_creacion;not null" json:"usuario_fecha_creacion"`
}

func (UsuarioModel) TableName() string { return "usuarios" }

func (u *UsuarioModel) BeforeCreate(tx *gorm.DB) error {
	if u.UsuarioID == uuid.Nil {
		u.UsuarioID = uuid.New()
	}
	if u.UsuarioFechaCreacion.IsZero() {
		u.UsuarioFechaCreacion = time.Now().UTC()
	}
	return nil
}
