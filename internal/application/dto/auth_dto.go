package dto

import "time"

// RegisterRequest alta de usuario.
type RegisterRequest struct {
	Email      string  `json:"email"`
	Password   string  `json:"password"`
	Rol        string  `json:"rol"` // vacío = CLIENTE
	SocioID    *string `json:"socio_id,omitempty"`
	EmpleadoID *string `json:"empleado_id,omitempty"`
}

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UsuarioResponse representación de un usuario (sin hash).
type UsuarioResponse struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Rol        string    `json:"rol"`
	SocioID    *string   `json:"socio_id,omitempty"`
	EmpleadoID *string   `json:"empleado_id,omitempty"`
	Estado     string    `json:"estado"`
	CreatedAt  time.Time `json:"created_at"`
}

// LoginResponse token + usuario autenticado.
type LoginResponse struct {
	Token   string          `json:"token"`
	Usuario UsuarioResponse `json:"usuario"`
}
