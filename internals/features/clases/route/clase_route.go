package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	claseController "talleres_backend/internals/features/clases/controller"
	"talleres_backend/internals/personas"
)

// ClaseAdminRoutes monta el CRUD de clases bajo el grupo admin.
func ClaseAdminRoutes(g fiber.Router, db *gorm.DB, resolver *personas.Resolver) {
	ctl := claseController.NewClaseController(db, resolver)

	clases := g.Group("/clases")
	clases.Get("/", ctl.List)
	clases.Post("/", ctl.Create)
	clases.Put("/:id", ctl.Update)
	clases.Delete("/:id", ctl.Delete)
}

// ClaseOrganizadorRoutes monta el listado de clases del organizador.
func ClaseOrganizadorRoutes(g fiber.Router, db *gorm.DB, resolver *personas.Resolver) {
	ctl := claseController.NewClaseController(db, resolver)

	clases := g.Group("/clases")
	clases.Get("/", ctl.ListOrganizador)
}
