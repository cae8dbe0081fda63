package model

import (
	"time"

	"gorm.io/gorm"

	tallerModel "talleres_backend/internals/features/talleres/model"
)

type OrganizadorModel struct {
	CI     string `gorm:"type:char(8);primaryKey;column:ci" json:"ci"`
	UserID *int64 `gorm:"index;column:user_id" json:"user_id,omitempty"`
	Activo bool   `gorm:"not null;default:true;column:activo" json:"activo"`

	Talleres []tallerModel.TallerModel `gorm:"many2many:talleres_organizadores;foreignKey:CI;joinForeignKey:CIOrganizador;references:ID;joinReferences:TallerID" json:"talleres,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;column:updated_at" json:"updated_at"`

	// ===== Enriquecido desde Registro de Personas (no persistido) =====
	Nombre          *string `gorm:"-" json:"nombre"`
	SegundoNombre   *string `gorm:"-" json:"segundo_nombre"`
	Apellido        *string `gorm:"-" json:"apellido"`
	SegundoApellido *string `gorm:"-" json:"segundo_apellido"`
	Telefono        *string `gorm:"-" json:"telefono"`
}

func (OrganizadorModel) TableName() string { return "organizadores" }

// TallerOrganizadorModel es la fila pivot taller↔organizador.
type TallerOrganizadorModel struct {
	TallerID      int64  `gorm:"primaryKey;column:taller_id" json:"taller_id"`
	CIOrganizador string `gorm:"type:char(8);primaryKey;column:ci_organizador" json:"ci_organizador"`

	CreatedAt time.Time `gorm:"autoCreateTime;column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;column:updated_at" json:"updated_at"`
}

func (TallerOrganizadorModel) TableName() string { return "talleres_organizadores" }

func PorEstado(estado string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch estado {
		case "inactivos":
			return db.Where("organizadores.activo = ?", false)
		case "todos":
			return db
		default:
			return db.Where("organizadores.activo = ?", true)
		}
	}
}
