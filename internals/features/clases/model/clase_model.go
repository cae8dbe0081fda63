package model

import (
	"sort"
	"time"

	docenteModel "talleres_backend/internals/features/docentes/model"
	tallerModel "talleres_backend/internals/features/talleres/model"
)

type ClaseModel struct {
	ID                int64     `gorm:"primaryKey;column:id" json:"id"`
	FechaHora         time.Time `gorm:"type:timestamptz;not null;index:idx_clases_taller_fecha,priority:2;column:fecha_hora" json:"fecha_hora"`
	AsistentesMaximos *int      `gorm:"column:asistentes_maximos" json:"asistentes_maximos"`

	CIDocente string `gorm:"type:char(8);not null;column:ci_docente" json:"ci_docente"`
	TallerID  int64  `gorm:"not null;index:idx_clases_taller_fecha,priority:1;column:taller_id" json:"taller_id"`

	Taller  *tallerModel.TallerModel   `gorm:"foreignKey:TallerID;references:ID;constraint:OnDelete:CASCADE" json:"taller,omitempty"`
	Docente *docenteModel.DocenteModel `gorm:"foreignKey:CIDocente;references:CI" json:"docente,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;column:updated_at" json:"updated_at"`
}

func (ClaseModel) TableName() string { return "clases" }

// EsFutura: una clase cuenta como futura mientras fecha_hora >= ahora.
// El instante exacto "ahora" todavía pertenece al bucket futuro.
func (m *ClaseModel) EsFutura(ahora time.Time) bool {
	return !m.FechaHora.Before(ahora)
}

// OrdenarFuturasPrimero aplica el orden de los listados de clases: primero las
// futuras (más próxima primero), después las pasadas, también en fecha_hora
// ascendente. Orden estable para no romper el orden relativo previo.
func OrdenarFuturasPrimero(clases []ClaseModel, ahora time.Time) {
	sort.SliceStable(clases, func(i, j int) bool {
		fi, fj := clases[i].EsFutura(ahora), clases[j].EsFutura(ahora)
		if fi != fj {
			return fi
		}
		return clases[i].FechaHora.Before(clases[j].FechaHora)
	})
}
