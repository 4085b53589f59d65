package dto

import "time"

// CreateSocioRequest alta de socio.
type CreateSocioRequest struct {
	Nombre    string `json:"nombre"`
	Apellido  string `json:"apellido"`
	DNI       string `json:"dni"`
	Email     string `json:"email"`
	Telefono  string `json:"telefono"`
	Direccion string `json:"direccion"`
}

// UpdateSocioRequest edición parcial de un socio (solo campos presentes).
type UpdateSocioRequest struct {
	Email     *string `json:"email,omitempty"`
	Telefono  *string `json:"telefono,omitempty"`
	Direccion *string `json:"direccion,omitempty"`
	Estado    *string `json:"estado,omitempty"` // ACTIVO | SUSPENDIDO | BAJA
}

// CreateCuentaRequest alta de cuenta de suministro para un socio.
type CreateCuentaRequest struct {
	Numero              string `json:"numero"`
	DireccionSuministro string `json:"direccion_suministro"`
}

// SocioResponse representación de un socio.
type SocioResponse struct {
	ID        string    `json:"id"`
	Nombre    string    `json:"nombre"`
	Apellido  string    `json:"apellido"`
	DNI       string    `json:"dni"`
	Email     string    `json:"email"`
	Telefono  string    `json:"telefono"`
	Direccion string    `json:"direccion"`
	Estado    string    `json:"estado"`
	CreatedAt time.Time `json:"created_at"`
}

// CuentaResponse representación de una cuenta de suministro.
type CuentaResponse struct {
	ID                  string `json:"id"`
	SocioID             string `json:"socio_id"`
	Numero              string `json:"numero"`
	DireccionSuministro string `json:"direccion_suministro"`
	Estado              string `json:"estado"`
}

// CuadrillaResponse representación de una cuadrilla.
type CuadrillaResponse struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
	Zona   string `json:"zona"`
	Activa bool   `json:"activa"`
}

// EmpleadoResponse representación de un empleado.
type EmpleadoResponse struct {
	ID          string  `json:"id"`
	Nombre      string  `json:"nombre"`
	Apellido    string  `json:"apellido"`
	Legajo      string  `json:"legajo"`
	Activo      bool    `json:"activo"`
	CuadrillaID *string `json:"cuadrilla_id,omitempty"`
}
