package dto

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// OrganizadorRequest cubre el alta: o se adjunta un usuario remoto existente
// (user_id) o se crea uno nuevo en la API de usuarios (name/email/password).
// En ambos casos el CI es la identidad local canónica.
type OrganizadorRequest struct {
	CI     string `json:"ci" validate:"required,len=8,numeric"`
	UserID *int64 `json:"user_id" validate:"omitempty,gt=0"`

	Name                 string `json:"name" validate:"required_without=UserID,omitempty,max=255"`
	Email                string `json:"email" validate:"required_without=UserID,omitempty,email,max=255"`
	Password             string `json:"password" validate:"required_without=UserID,omitempty,min=8,eqfield=PasswordConfirmation"`
	PasswordConfirmation string `json:"password_confirmation"`

	Roles    []string `json:"roles" validate:"required,min=1,dive,oneof=organizador docente"`
	Talleres []int64  `json:"talleres" validate:"omitempty,dive,gt=0"`
}

// UsuarioPatch son los datos opcionales del usuario remoto en una edición.
type UsuarioPatch struct {
	Name                 *string `json:"name" validate:"omitempty,max=255"`
	Email                *string `json:"email" validate:"omitempty,email,max=255"`
	Password             *string `json:"password" validate:"omitempty,min=8"`
	PasswordConfirmation *string `json:"password_confirmation" validate:"omitempty,min=8"`
}

// OrganizadorUpdateRequest: todo opcional; roles nil significa "no tocar roles"
// (distinto de roles vacío, que saca al usuario de ambos roles del proyecto).
type OrganizadorUpdateRequest struct {
	Usuario  *UsuarioPatch `json:"usuario" validate:"omitempty"`
	Roles    *[]string     `json:"roles" validate:"omitempty,dive,oneof=organizador docente"`
	Talleres *[]int64      `json:"talleres" validate:"omitempty,dive,gt=0"`
}

type OrganizadorFiltros struct {
	Taller string `json:"taller"`
	Nombre string `json:"nombre"`
	Estado string `json:"estado"`
}

func ParseOrganizadorFiltros(c *fiber.Ctx) OrganizadorFiltros {
	f := OrganizadorFiltros{
		Taller: strings.TrimSpace(c.Query("taller")),
		Nombre: strings.TrimSpace(c.Query("nombre")),
		Estado: strings.TrimSpace(c.Query("estado", "activos")),
	}
	switch f.Estado {
	case "activos", "inactivos", "todos":
	default:
		f.Estado = "activos"
	}
	return f
}
