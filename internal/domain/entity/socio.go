package entity

import "time"

// Socio representa un socio de la cooperativa (titular de una o más cuentas).
type Socio struct {
	ID        string
	Nombre    string
	Apellido  string
	DNI       string
	Email     string
	Telefono  string
	Direccion string
	Estado    string // "ACTIVO" | "SUSPENDIDO" | "BAJA"
	CreatedAt time.Time
}

// Cuenta representa una cuenta de suministro eléctrico de un socio.
type Cuenta struct {
	ID                  string
	SocioID             string
	Numero              string
	DireccionSuministro string
	Estado              string // "ACTIVA" | "SUSPENDIDA" | "BAJA"
	CreatedAt           time.Time
}
