package model

import "time"

// ClaseAsistenteModel es la fila pivot clase↔asistente con la marca de
// asistencia. Única por (clase_id, ci_asistente).
type ClaseAsistenteModel struct {
	ID          int64  `gorm:"primaryKey;column:id" json:"id"`
	ClaseID     int64  `gorm:"not null;uniqueIndex:uq_clase_asistente,priority:1;column:clase_id" json:"clase_id"`
	CIAsistente string `gorm:"type:char(8);not null;uniqueIndex:uq_clase_asistente,priority:2;column:ci_asistente" json:"ci_asistente"`
	Asistio     bool   `gorm:"not null;default:false;column:asistio" json:"asistio"`

	CreatedAt time.Time `gorm:"autoCreateTime;column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;column:updated_at" json:"updated_at"`
}

func (ClaseAsistenteModel) TableName() string { return "clase_asistentes" }
