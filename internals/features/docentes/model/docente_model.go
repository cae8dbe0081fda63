package model

import (
	"time"

	"gorm.io/gorm"
)

type DocenteModel struct {
	CI     string `gorm:"type:char(8);primaryKey;column:ci" json:"ci"`
	UserID *int64 `gorm:"column:user_id" json:"user_id,omitempty"`
	Activo bool   `gorm:"not null;default:true;column:activo" json:"activo"`

	CreatedAt time.Time `gorm:"autoCreateTime;column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;column:updated_at" json:"updated_at"`

	// ===== Enriquecido desde Registro de Personas (no persistido) =====
	Nombre          *string `gorm:"-" json:"nombre"`
	SegundoNombre   *string `gorm:"-" json:"segundo_nombre"`
	Apellido        *string `gorm:"-" json:"apellido"`
	SegundoApellido *string `gorm:"-" json:"segundo_apellido"`
	Telefono        *string `gorm:"-" json:"telefono"`

	// Talleres en los que dictó al menos una clase (armado en el listado)
	TalleresDicta []TallerResumen `gorm:"-" json:"talleres_dicta,omitempty"`
}

// TallerResumen es la vista mínima de un taller para el listado de docentes.
type TallerResumen struct {
	ID     int64  `json:"id"`
	Nombre string `json:"nombre"`
}

func (DocenteModel) TableName() string { return "docentes" }

// PorEstado es el predicado de visibilidad explícito: cada consulta elige
// activos (default), inactivos o todos; nunca hay filtro global implícito.
func PorEstado(estado string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch estado {
		case "inactivos":
			return db.Where("docentes.activo = ?", false)
		case "todos":
			return db
		default:
			return db.Where("docentes.activo = ?", true)
		}
	}
}
