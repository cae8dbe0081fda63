package dto

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// TallerRequest cubre alta y edición de un taller.
type TallerRequest struct {
	Nombre      string  `json:"nombre" validate:"required,max=255"`
	Descripcion *string `json:"descripcion" validate:"omitempty"`
	IDCiudad    int64   `json:"id_ciudad" validate:"required,gt=0"`
	Calle       *string `json:"calle" validate:"omitempty,max=255"`
	Numero      *string `json:"numero" validate:"omitempty,max=50"`
}

func (r *TallerRequest) Normalize() {
	r.Nombre = strings.TrimSpace(r.Nombre)
}

// TallerFiltros son los filtros de listado; se devuelven tal cual al caller
// para que la vista los conserve.
type TallerFiltros struct {
	Nombre      string `json:"nombre"`
	Ciudad      string `json:"ciudad"`
	Estado      string `json:"estado"`
	Organizador string `json:"organizador,omitempty"`
}

func ParseTallerFiltros(c *fiber.Ctx) TallerFiltros {
	f := TallerFiltros{
		Nombre:      strings.TrimSpace(c.Query("nombre")),
		Ciudad:      strings.TrimSpace(c.Query("ciudad")),
		Estado:      strings.TrimSpace(c.Query("estado", "activos")),
		Organizador: strings.TrimSpace(c.Query("organizador")),
	}
	switch f.Estado {
	case "activos", "inactivos", "todos":
	default:
		f.Estado = "activos"
	}
	return f
}
