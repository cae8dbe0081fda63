package controller

import (
	"github.com/gofiber/fiber/v2"

	claseDTO "talleres_backend/internals/features/clases/dto"
	organizadorService "talleres_backend/internals/features/organizadores/service"
	helper "talleres_backend/internals/helpers"
)

/* ================= Listado organizador ================= */

// ListOrganizador responde GET /organizador/clases.
// Mismo pipeline que el listado admin más el filtro por organizador (clases de
// talleres vinculados a ese CI) y los catálogos acotados al organizador.
func (ctl *ClaseController) ListOrganizador(c *fiber.Ctx) error {
	f := claseDTO.ParseClaseFiltros(c)

	clases, err := ctl.consultarClases(c, f, f.Organizador)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudieron listar las clases")
	}

	talleres, err := ctl.catalogoTalleres(c, f.Organizador)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo armar el catálogo de talleres")
	}

	organizadores, err := organizadorService.Catalogo(c.UserContext(), ctl.DB, ctl.Resolver)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo armar el catálogo de organizadores")
	}

	return helper.JsonOK(c, "OK", fiber.Map{
		"clases":        clases,
		"talleres":      talleres,
		"organizadores": organizadores,
		"filtros":       f,
	})
}
