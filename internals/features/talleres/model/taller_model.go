package model

import (
	"time"

	"gorm.io/gorm"
)

type TallerModel struct {
	ID          int64   `gorm:"primaryKey;column:id" json:"id"`
	Nombre      string  `gorm:"type:varchar(255);not null;column:nombre" json:"nombre"`
	Descripcion *string `gorm:"type:text;column:descripcion" json:"descripcion"`

	// id_ciudad referencia al catálogo de ciudades del Registro de Personas,
	// sin FK real (la ciudad vive en el servicio externo).
	IDCiudad int64   `gorm:"not null;index;column:id_ciudad" json:"id_ciudad"`
	Calle    *string `gorm:"type:varchar(255);column:calle" json:"calle"`
	Numero   *string `gorm:"type:varchar(50);column:numero" json:"numero"`

	Activo bool `gorm:"not null;default:true;column:activo" json:"activo"`

	CreatedAt time.Time `gorm:"autoCreateTime;column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;column:updated_at" json:"updated_at"`

	// Nombre de la ciudad, resuelto contra el catálogo externo (no persistido)
	Ciudad *string `gorm:"-" json:"ciudad"`
}

func (TallerModel) TableName() string { return "talleres" }

func PorEstado(estado string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch estado {
		case "inactivos":
			return db.Where("talleres.activo = ?", false)
		case "todos":
			return db
		default:
			return db.Where("talleres.activo = ?", true)
		}
	}
}
