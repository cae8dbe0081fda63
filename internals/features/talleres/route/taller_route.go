package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	tallerController "talleres_backend/internals/features/talleres/controller"
	"talleres_backend/internals/personas"
	"talleres_backend/internals/services/registropersonas"
)

// TallerAdminRoutes monta el CRUD de talleres bajo el grupo admin.
func TallerAdminRoutes(g fiber.Router, db *gorm.DB, registro *registropersonas.Client, resolver *personas.Resolver) {
	ctl := tallerController.NewTallerController(db, registro, resolver)

	talleres := g.Group("/talleres")
	talleres.Get("/", ctl.List)
	talleres.Post("/", ctl.Create)
	talleres.Put("/:id", ctl.Update)
	talleres.Delete("/:id", ctl.Delete)
	talleres.Patch("/:id/restore", ctl.Restore)
}

// TallerOrganizadorRoutes monta la vista de talleres del organizador.
func TallerOrganizadorRoutes(g fiber.Router, db *gorm.DB, registro *registropersonas.Client, resolver *personas.Resolver) {
	ctl := tallerController.NewTallerController(db, registro, resolver)

	talleres := g.Group("/talleres")
	talleres.Get("/", ctl.ListOrganizador)
	talleres.Post("/", ctl.Create)
	talleres.Put("/:id", ctl.Update)
}
