package middlewares

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RequestLogger etiqueta cada request con un id corto y loguea método, ruta,
// status y latencia al terminar.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()[:8]
		}
		c.Locals("request_id", id)
		c.Set("X-Request-ID", id)

		inicio := time.Now()
		err := c.Next()

		log.Printf("[INFO] %s %s %s -> %d (%s)",
			id, c.Method(), c.Path(), c.Response().StatusCode(), time.Since(inicio).Round(time.Millisecond))
		return err
	}
}
