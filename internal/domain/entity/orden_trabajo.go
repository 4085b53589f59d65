package entity

import (
	"time"

	"github.com/coelsur/cooperativa-api/internal/domain/workflow"
)

// OrdenTrabajo es la unidad de trabajo derivada de un reclamo (una por reclamo).
// EmpleadoID nil significa orden administrativa sin técnico, o bien orden de
// itinerario aún no tomada. CuadrillaID y FechaProgramada guardan el itinerario
// como relación estructurada; Observaciones queda solo como historial libre.
type OrdenTrabajo struct {
	ID                   string
	ReclamoID            string
	EmpleadoID           *string
	Estado               workflow.EstadoOrden
	DireccionIntervencion string
	Observaciones        string
	CuadrillaID          *string
	FechaProgramada      *time.Time
	AsignadaAt           *time.Time
	CerradaAt            *time.Time
	CreatedAt            time.Time
}

// Disponible indica si la orden puede ser tomada del itinerario por un operario.
func (o *OrdenTrabajo) Disponible() bool {
	return o.EmpleadoID == nil && o.Estado == workflow.OrdenPendiente
}
