package dto

// LoginRequest son las credenciales que se reenvían a la API de usuarios.
type LoginRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required"`
	DeviceName string `json:"device_name" validate:"omitempty,max=100"`
}
