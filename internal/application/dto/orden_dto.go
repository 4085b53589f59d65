package dto

import "time"

// OrdenTrabajoResponse representación de una orden de trabajo.
type OrdenTrabajoResponse struct {
	ID                    string     `json:"id"`
	ReclamoID             string     `json:"reclamo_id"`
	EmpleadoID            *string    `json:"empleado_id,omitempty"`
	Estado                string     `json:"estado"`
	DireccionIntervencion string     `json:"direccion_intervencion"`
	Observaciones         string     `json:"observaciones"`
	CuadrillaID           *string    `json:"cuadrilla_id,omitempty"`
	FechaProgramada       *time.Time `json:"fecha_programada,omitempty"`
	AsignadaAt            *time.Time `json:"asignada_at,omitempty"`
	CerradaAt             *time.Time `json:"cerrada_at,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
}

// ObservacionesRequest cuerpo con observaciones (obligatorias según la operación).
type ObservacionesRequest struct {
	Observaciones string `json:"observaciones"`
}

// AsignarEmpleadoRequest asignación de un técnico a una orden.
type AsignarEmpleadoRequest struct {
	EmpleadoID string `json:"empleado_id"`
}

// CancelarOrdenRequest cancelación con motivo.
type CancelarOrdenRequest struct {
	Motivo string `json:"motivo"`
}

// AsignarCuadrillaRequest agenda una orden en el itinerario de una cuadrilla.
type AsignarCuadrillaRequest struct {
	OrdenID     string `json:"orden_id"`
	CuadrillaID string `json:"cuadrilla_id"`
	Fecha       string `json:"fecha"` // YYYY-MM-DD
}

// ItinerarioItemResponse ítem del itinerario: la orden más su disponibilidad.
type ItinerarioItemResponse struct {
	Orden  OrdenTrabajoResponse `json:"orden"`
	Estado string               `json:"estado"` // "disponible" | "tomada"
}
