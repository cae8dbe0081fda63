package route

import (
	"github.com/gofiber/fiber/v2"

	authController "talleres_backend/internals/features/auth/controller"
	"talleres_backend/internals/middlewares"
	"talleres_backend/internals/services/usuariosapi"
)

// AuthRoutes monta login/me/logout. Solo login queda fuera del middleware
// de sesión.
func AuthRoutes(g fiber.Router, usuarios *usuariosapi.Client, proyectoClave string) {
	ctl := authController.NewAuthController(usuarios, proyectoClave)

	g.Post("/login", ctl.Login)
	g.Get("/me", middlewares.ApiAuth(usuarios), ctl.Me)
	g.Post("/logout", middlewares.ApiAuth(usuarios), ctl.Logout)
}
