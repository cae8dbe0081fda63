package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"talleres_backend/internals/configs"
	authRoute "talleres_backend/internals/features/auth/route"
	calendarioRoute "talleres_backend/internals/features/calendario/route"
	claseRoute "talleres_backend/internals/features/clases/route"
	docenteRoute "talleres_backend/internals/features/docentes/route"
	organizadorRoute "talleres_backend/internals/features/organizadores/route"
	tallerRoute "talleres_backend/internals/features/talleres/route"
	"talleres_backend/internals/middlewares"
	"talleres_backend/internals/personas"
	"talleres_backend/internals/services/registropersonas"
	"talleres_backend/internals/services/usuariosapi"
)

// SetupRoutes arma los cuatro grupos de la app:
//   - /auth        login/me/logout contra la API de usuarios
//   - /admin       ABM completo, solo rol admin
//   - /organizador vistas acotadas, roles admin u organizador
//   - /docente     calendario público, sin sesión
func SetupRoutes(app *fiber.App, db *gorm.DB, registro *registropersonas.Client, usuarios *usuariosapi.Client, resolver *personas.Resolver) {
	clave := configs.ProyectoClave

	auth := app.Group("/auth")
	authRoute.AuthRoutes(auth, usuarios, clave)

	admin := app.Group("/admin",
		middlewares.ApiAuth(usuarios),
		middlewares.RequireRoles(clave, "admin"),
	)
	tallerRoute.TallerAdminRoutes(admin, db, registro, resolver)
	claseRoute.ClaseAdminRoutes(admin, db, resolver)
	docenteRoute.DocenteAdminRoutes(admin, db, registro, resolver)
	organizadorRoute.OrganizadorAdminRoutes(admin, db, usuarios, resolver, clave)

	organizador := app.Group("/organizador",
		middlewares.ApiAuth(usuarios),
		middlewares.RequireRoles(clave, "admin", "organizador"),
	)
	tallerRoute.TallerOrganizadorRoutes(organizador, db, registro, resolver)
	claseRoute.ClaseOrganizadorRoutes(organizador, db, resolver)

	docente := app.Group("/docente")
	calendarioRoute.CalendarioRoutes(docente, db, resolver)
}
