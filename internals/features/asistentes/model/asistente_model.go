package model

import "time"

type AsistenteModel struct {
	CI string `gorm:"type:char(8);primaryKey;column:ci" json:"ci"`

	CreatedAt time.Time `gorm:"autoCreateTime;column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;column:updated_at" json:"updated_at"`

	// Enriquecido desde Registro de Personas (no persistido)
	Nombre   *string `gorm:"-" json:"nombre"`
	Apellido *string `gorm:"-" json:"apellido"`
}

func (AsistenteModel) TableName() string { return "asistentes" }
