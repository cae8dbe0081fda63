package controller

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	authDTO "talleres_backend/internals/features/auth/dto"
	helper "talleres_backend/internals/helpers"
	"talleres_backend/internals/middlewares"
	"talleres_backend/internals/services/usuariosapi"
)

var fallbackValidator = validator.New()

// AuthController delega toda la autenticación en la API de usuarios: acá no
// se guardan credenciales ni se emiten tokens propios.
type AuthController struct {
	Usuarios  *usuariosapi.Client
	Validator *validator.Validate

	// Clave del proyecto cuyos roles se devuelven junto al usuario.
	ProyectoClave string
}

func NewAuthController(usuarios *usuariosapi.Client, proyectoClave string) *AuthController {
	return &AuthController{Usuarios: usuarios, Validator: fallbackValidator, ProyectoClave: proyectoClave}
}

// Login responde POST /auth/login: pide el token y devuelve el usuario con
// sus roles en este proyecto en una sola respuesta.
func (ctl *AuthController) Login(c *fiber.Ctx) error {
	var req authDTO.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body inválido: "+err.Error())
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	// El nombre de dispositivo sale del User-Agent si el cliente no manda uno.
	if req.DeviceName == "" {
		req.DeviceName = c.Get(fiber.HeaderUserAgent)
	}
	if req.DeviceName == "" {
		req.DeviceName = "frontend-app"
	}

	token, err := ctl.Usuarios.Login(c.UserContext(), req.Email, req.Password, req.DeviceName)
	if err != nil {
		if apiErr, ok := err.(*usuariosapi.APIError); ok && apiErr.Status == fiber.StatusUnprocessableEntity {
			return helper.JsonError(c, fiber.StatusUnprocessableEntity, apiErr.Message)
		}
		return helper.JsonError(c, fiber.StatusUnauthorized, "Credenciales inválidas")
	}

	usuario, err := ctl.Usuarios.Me(c.UserContext(), token)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadGateway, "No se pudo obtener el usuario autenticado")
	}

	return helper.JsonOK(c, "Sesión iniciada", fiber.Map{
		"token":   token,
		"usuario": usuario,
		"roles":   usuario.RolesEnProyecto(ctl.ProyectoClave),
	})
}

// Me responde GET /auth/me con el usuario ya validado por el middleware.
func (ctl *AuthController) Me(c *fiber.Ctx) error {
	u := middlewares.UserFrom(c)
	if u == nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "No autenticado")
	}
	return helper.JsonOK(c, "OK", fiber.Map{
		"usuario": u,
		"roles":   u.RolesEnProyecto(ctl.ProyectoClave),
	})
}

// Logout responde POST /auth/logout. La revocación remota es best effort;
// el cache local del token se limpia siempre.
func (ctl *AuthController) Logout(c *fiber.Ctx) error {
	token := middlewares.TokenFrom(c)
	if token != "" {
		if err := ctl.Usuarios.Logout(c.UserContext(), token); err != nil {
			log.Println("[WARN] Logout remoto falló:", err)
		}
		middlewares.ForgetToken(token)
	}
	return helper.JsonOK(c, "Sesión cerrada", nil)
}
