package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	organizadorController "talleres_backend/internals/features/organizadores/controller"
	"talleres_backend/internals/personas"
	"talleres_backend/internals/services/usuariosapi"
)

// OrganizadorAdminRoutes monta el ABM de organizadores bajo el grupo admin.
// /buscar-usuarios va antes de /:ci para que Fiber no lo capture como CI.
func OrganizadorAdminRoutes(g fiber.Router, db *gorm.DB, usuarios *usuariosapi.Client, resolver *personas.Resolver, proyectoClave string) {
	ctl := organizadorController.NewOrganizadorController(db, usuarios, resolver, proyectoClave)

	organizadores := g.Group("/organizadores")
	organizadores.Get("/buscar-usuarios", ctl.BuscarUsuarios)
	organizadores.Get("/", ctl.List)
	organizadores.Post("/", ctl.Create)
	organizadores.Put("/:ci", ctl.Update)
	organizadores.Delete("/:ci", ctl.Delete)
	organizadores.Patch("/:ci/restore", ctl.Restore)
}
