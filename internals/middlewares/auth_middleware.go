package middlewares

import (
	"log"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"

	helper "talleres_backend/internals/helpers"
	"talleres_backend/internals/services/usuariosapi"
)

const (
	localUserKey  = "api_user"
	localTokenKey = "api_token"

	// Los tokens se validan contra la API de usuarios; el resultado se
	// cachea un rato para no pegarle en cada request.
	userCacheTTL = 10 * time.Minute
)

type usuarioCacheado struct {
	usuario *usuariosapi.Usuario
	expira  time.Time
}

var (
	userCacheMu sync.RWMutex
	userCache   = map[string]usuarioCacheado{}
)

// ApiAuth valida el Bearer token contra la API de usuarios y deja el usuario
// y el token en Locals para los handlers y guards posteriores.
func ApiAuth(usuarios *usuariosapi.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Token no provisto")
		}

		if u := cachedUser(token); u != nil {
			c.Locals(localUserKey, u)
			c.Locals(localTokenKey, token)
			return c.Next()
		}

		u, err := usuarios.Me(c.UserContext(), token)
		if err != nil {
			if apiErr, ok := err.(*usuariosapi.APIError); ok && apiErr.Status == fiber.StatusUnauthorized {
				return helper.JsonError(c, fiber.StatusUnauthorized, "Token inválido o expirado")
			}
			log.Println("[ERROR] No se pudo validar el token:", err)
			return helper.JsonError(c, fiber.StatusBadGateway, "No se pudo validar la sesión")
		}

		cacheUser(token, u)
		c.Locals(localUserKey, u)
		c.Locals(localTokenKey, token)
		return c.Next()
	}
}

// RequireRoles exige que el usuario tenga alguno de los roles dados dentro
// del proyecto configurado. Debe montarse después de ApiAuth.
func RequireRoles(proyectoClave string, roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u := UserFrom(c)
		if u == nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, "No autenticado")
		}
		propios := u.RolesEnProyecto(proyectoClave)
		for _, requerido := range roles {
			for _, r := range propios {
				if r == strings.ToLower(requerido) {
					return c.Next()
				}
			}
		}
		return helper.JsonError(c, fiber.StatusForbidden, "No tiene permisos para acceder a este recurso")
	}
}

// TokenFrom devuelve el Bearer token validado por ApiAuth, o "".
func TokenFrom(c *fiber.Ctx) string {
	t, _ := c.Locals(localTokenKey).(string)
	return t
}

// UserFrom devuelve el usuario autenticado, o nil.
func UserFrom(c *fiber.Ctx) *usuariosapi.Usuario {
	u, _ := c.Locals(localUserKey).(*usuariosapi.Usuario)
	return u
}

func bearerToken(c *fiber.Ctx) string {
	h := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}

func cachedUser(token string) *usuariosapi.Usuario {
	userCacheMu.RLock()
	defer userCacheMu.RUnlock()
	if e, ok := userCache[token]; ok && time.Now().Before(e.expira) {
		return e.usuario
	}
	return nil
}

func cacheUser(token string, u *usuariosapi.Usuario) {
	userCacheMu.Lock()
	defer userCacheMu.Unlock()
	userCache[token] = usuarioCacheado{usuario: u, expira: time.Now().Add(userCacheTTL)}
}

// ForgetToken saca un token del cache (por ejemplo tras un logout).
func ForgetToken(token string) {
	userCacheMu.Lock()
	defer userCacheMu.Unlock()
	delete(userCache, token)
}
