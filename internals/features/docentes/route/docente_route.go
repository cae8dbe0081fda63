package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	docenteController "talleres_backend/internals/features/docentes/controller"
	"talleres_backend/internals/personas"
	"talleres_backend/internals/services/registropersonas"
)

// DocenteAdminRoutes monta el CRUD + auxiliares de docentes bajo admin.
func DocenteAdminRoutes(g fiber.Router, db *gorm.DB, registro *registropersonas.Client, resolver *personas.Resolver) {
	ctl := docenteController.NewDocenteController(db, registro, resolver)

	docentes := g.Group("/docentes")
	docentes.Get("/", ctl.List)
	docentes.Post("/", ctl.Create)

	// Auxiliares del modal de alta (antes que /:ci para no colisionar)
	docentes.Get("/buscar", ctl.Buscar)
	docentes.Get("/top", ctl.Top)
	docentes.Get("/persona/:ci", ctl.Persona)
	docentes.Get("/existe/:ci", ctl.Existe)

	docentes.Delete("/:ci", ctl.Delete)
	docentes.Patch("/:ci/restore", ctl.Restore)
}
