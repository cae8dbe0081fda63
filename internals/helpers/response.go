package helper

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// JsonOK responde 200 con el envelope estándar.
func JsonOK(c *fiber.Ctx, message string, data interface{}) error {
	return JsonWithCode(c, fiber.StatusOK, message, data)
}

// JsonCreated responde 201 (alta de recursos).
func JsonCreated(c *fiber.Ctx, message string, data interface{}) error {
	return JsonWithCode(c, fiber.StatusCreated, message, data)
}

func JsonWithCode(c *fiber.Ctx, code int, message string, data interface{}) error {
	return c.Status(code).JSON(fiber.Map{
		"code":    code,
		"status":  "success",
		"message": message,
		"data":    data,
	})
}

// JsonError responde un error simple.
func JsonError(c *fiber.Ctx, code int, message string) error {
	return c.Status(code).JSON(fiber.Map{
		"code":    code,
		"status":  "error",
		"message": message,
	})
}

// JsonErrorWithFields responde un error con detalle por campo.
func JsonErrorWithFields(c *fiber.Ctx, code int, message string, fields map[string]string) error {
	return c.Status(code).JSON(fiber.Map{
		"code":    code,
		"status":  "error",
		"message": message,
		"errors":  fields,
	})
}

// JsonFieldError es el atajo para un error de regla de negocio atado a un campo
// (ej. "no se puede editar una clase que ya sucedió" sobre fecha_hora).
func JsonFieldError(c *fiber.Ctx, field, message string) error {
	return JsonErrorWithFields(c, fiber.StatusUnprocessableEntity, "Validación fallida", map[string]string{field: message})
}

// JsonValidationError convierte validator.ValidationErrors en un mapa campo→tag.
func JsonValidationError(c *fiber.Ctx, err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return JsonError(c, fiber.StatusBadRequest, "Entrada inválida")
	}
	fields := make(map[string]string, len(ve))
	for _, fe := range ve {
		fields[fe.Field()] = fe.Tag()
	}
	return JsonErrorWithFields(c, fiber.StatusUnprocessableEntity, "Validación fallida", fields)
}
