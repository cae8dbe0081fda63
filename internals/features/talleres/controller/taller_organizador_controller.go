package controller

import (
	"github.com/gofiber/fiber/v2"

	organizadorService "talleres_backend/internals/features/organizadores/service"
	tallerDTO "talleres_backend/internals/features/talleres/dto"
	tallerModel "talleres_backend/internals/features/talleres/model"
	helper "talleres_backend/internals/helpers"
)

/* ================= Listado organizador ================= */

// ListOrganizador responde GET /organizador/talleres.
// Igual que el listado admin pero con filtro extra por organizador (CI) vía la
// pivot talleres_organizadores, y con el catálogo de organizadores para el
// selector.
func (ctl *TallerController) ListOrganizador(c *fiber.Ctx) error {
	f := tallerDTO.ParseTallerFiltros(c)

	q := ctl.DB.WithContext(c.UserContext()).
		Model(&tallerModel.TallerModel{}).
		Scopes(tallerModel.PorEstado(f.Estado))

	if f.Organizador != "" {
		q = q.Where("id IN (?)", ctl.DB.
			Table("talleres_organizadores").
			Select("taller_id").
			Where("ci_organizador = ?", f.Organizador))
	}
	if f.Ciudad != "" {
		q = q.Where("id_ciudad = ?", f.Ciudad)
	}
	if f.Nombre != "" {
		like := "%" + f.Nombre + "%"
		q = q.Where("nombre ILIKE ? OR descripcion ILIKE ?", like, like)
	}

	var talleres []tallerModel.TallerModel
	if err := q.Order("id_ciudad").Order("nombre").Find(&talleres).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudieron listar los talleres")
	}

	ciudades := ctl.ciudades(c)
	porID := make(map[int64]string, len(ciudades))
	for _, cd := range ciudades {
		porID[cd.ID] = cd.Nombre
	}
	for i := range talleres {
		if nombre, ok := porID[talleres[i].IDCiudad]; ok {
			n := nombre
			talleres[i].Ciudad = &n
		}
	}

	organizadores, err := organizadorService.Catalogo(c.UserContext(), ctl.DB, ctl.Resolver)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo armar el catálogo de organizadores")
	}

	return helper.JsonOK(c, "OK", fiber.Map{
		"talleres":      talleres,
		"ciudades":      ciudades,
		"organizadores": organizadores,
		"filtros":       f,
	})
}
