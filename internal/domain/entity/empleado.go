package entity

import "time"

// Empleado representa un operario o empleado administrativo de la cooperativa.
// CuadrillaID es nil si no integra ninguna cuadrilla activa.
type Empleado struct {
	ID          string
	Nombre      string
	Apellido    string
	Legajo      string
	Activo      bool
	CuadrillaID *string
	CreatedAt   time.Time
}

// Cuadrilla agrupa empleados técnicos; el itinerario pre-asigna órdenes a una
// cuadrilla y cualquier integrante puede tomarlas.
type Cuadrilla struct {
	ID        string
	Nombre    string
	Zona      string
	Activa    bool
	CreatedAt time.Time
}
