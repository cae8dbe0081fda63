package dto

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"talleres_backend/internals/personas"
)

// ClaseRequest cubre alta y edición de una clase.
type ClaseRequest struct {
	FechaHora         time.Time `json:"fecha_hora" validate:"required"`
	AsistentesMaximos int       `json:"asistentes_maximos" validate:"required,min=1"`
	CIDocente         string    `json:"ci_docente" validate:"required,len=8,numeric"`
	TallerID          int64     `json:"taller_id" validate:"required,gt=0"`
}

// FechaEstrictamenteFutura: el instante exacto "ahora" no alcanza para crear
// ni editar una clase.
func (r ClaseRequest) FechaEstrictamenteFutura(ahora time.Time) bool {
	return r.FechaHora.After(ahora)
}

// ClaseFiltros son los filtros de listado de clases.
// q puede ser un CI (solo dígitos → LIKE en base) o un nombre (match en
// memoria sobre datos enriquecidos).
type ClaseFiltros struct {
	Q           string `json:"q"`
	Taller      string `json:"taller"`
	Desde       string `json:"desde"`
	Hasta       string `json:"hasta"`
	Organizador string `json:"organizador,omitempty"`
}

// BuscaCIEnBase: un término puramente numérico se empuja como LIKE sobre
// ci_docente en SQL y nunca pasa por el matcher en memoria.
func (f ClaseFiltros) BuscaCIEnBase() bool {
	return f.Q != "" && personas.EsNumerica(f.Q)
}

// FiltraNombreEnMemoria: un término no numérico recién filtra en memoria
// sobre los nombres enriquecidos y nunca se vuelve un LIKE de CI.
func (f ClaseFiltros) FiltraNombreEnMemoria() bool {
	return f.Q != "" && !personas.EsNumerica(f.Q)
}

func ParseClaseFiltros(c *fiber.Ctx) ClaseFiltros {
	return ClaseFiltros{
		Q:           strings.TrimSpace(c.Query("q")),
		Taller:      strings.TrimSpace(c.Query("taller")),
		Desde:       strings.TrimSpace(c.Query("desde")),
		Hasta:       strings.TrimSpace(c.Query("hasta")),
		Organizador: strings.TrimSpace(c.Query("organizador")),
	}
}
