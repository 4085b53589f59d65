package entity

import "time"

// Roles de usuario de la aplicación.
const (
	RolCliente       = "CLIENTE"
	RolOperario      = "OPERARIO"
	RolAdministrador = "ADMINISTRADOR"
)

// Usuario credencial de acceso. SocioID o EmpleadoID según el rol.
type Usuario struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Rol          string
	SocioID      *string
	EmpleadoID   *string
	Estado       string // "active" | "disabled"
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ActorID devuelve el id de socio o empleado detrás del usuario según su rol.
func (u *Usuario) ActorID() string {
	switch {
	case u.SocioID != nil:
		return *u.SocioID
	case u.EmpleadoID != nil:
		return *u.EmpleadoID
	}
	return ""
}
