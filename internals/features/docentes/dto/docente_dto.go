package dto

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// DocenteRequest es el alta/sincronización de un docente: los datos de la
// persona van al Registro de Personas, localmente solo queda el CI activo.
type DocenteRequest struct {
	CI              string  `json:"ci" validate:"required,len=8,numeric"`
	Nombre          string  `json:"nombre" validate:"required,max=255"`
	Apellido        string  `json:"apellido" validate:"required,max=255"`
	SegundoNombre   *string `json:"segundo_nombre" validate:"omitempty,max=255"`
	SegundoApellido *string `json:"segundo_apellido" validate:"omitempty,max=255"`
	Telefono        *string `json:"telefono" validate:"omitempty,max=50"`
}

func (r *DocenteRequest) Normalize() {
	r.CI = strings.TrimSpace(r.CI)
	r.Nombre = strings.TrimSpace(r.Nombre)
	r.Apellido = strings.TrimSpace(r.Apellido)
}

// DocenteFiltros: busqueda es un fragmento de CI (va a la base), nombre se
// matchea en memoria contra los datos enriquecidos.
type DocenteFiltros struct {
	Busqueda string `json:"busqueda"`
	Nombre   string `json:"nombre"`
	Taller   string `json:"taller"`
	Estado   string `json:"estado"`
}

func ParseDocenteFiltros(c *fiber.Ctx) DocenteFiltros {
	f := DocenteFiltros{
		Busqueda: strings.TrimSpace(c.Query("busqueda")),
		Nombre:   strings.TrimSpace(c.Query("nombre")),
		Taller:   strings.TrimSpace(c.Query("taller")),
		Estado:   strings.TrimSpace(c.Query("estado", "activos")),
	}
	switch f.Estado {
	case "activos", "inactivos", "todos":
	default:
		f.Estado = "activos"
	}
	return f
}
