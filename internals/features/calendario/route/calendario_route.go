package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	calendarioController "talleres_backend/internals/features/calendario/controller"
	"talleres_backend/internals/personas"
)

// CalendarioRoutes monta los endpoints públicos del calendario de docentes.
func CalendarioRoutes(g fiber.Router, db *gorm.DB, resolver *personas.Resolver) {
	ctl := calendarioController.NewCalendarioController(db, resolver)

	api := g.Group("/api")
	api.Get("/docentes", ctl.Docentes)
	api.Get("/:ci/clases", ctl.Clases)
}
