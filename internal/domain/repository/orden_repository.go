package repository

import (
	"context"
	"time"

	"github.com/coelsur/cooperativa-api/internal/domain/entity"
)

// OrdenTrabajoRepository define el puerto de persistencia para OrdenTrabajo.
//
// Todas las transiciones son UPDATE con guarda de estado (y de empleado cuando
// aplica): devuelven false si ninguna fila coincidió. El caso "cero filas" lo
// traduce el caso de uso a domain.ErrConflict o domain.ErrNotFound según
// corresponda; es el único control de concurrencia entre requests.
type OrdenTrabajoRepository interface {
	Create(ctx context.Context, orden *entity.OrdenTrabajo) error
	GetByID(ctx context.Context, id string) (*entity.OrdenTrabajo, error)
	GetByReclamo(ctx context.Context, reclamoID string) (*entity.OrdenTrabajo, error)
	ListByEmpleado(ctx context.Context, empleadoID string, limit, offset int) ([]*entity.OrdenTrabajo, error)

	// ListSinAsignar órdenes PENDIENTE sin empleado ni cuadrilla de la categoría
	// dada, ordenadas por prioridad del reclamo y antigüedad: el pool disponible
	// para armar itinerarios.
	ListSinAsignar(ctx context.Context, categoria string) ([]*entity.OrdenTrabajo, error)

	// Flujo administrativo (empleado siempre NULL).
	MarcarEnProceso(ctx context.Context, id string, observaciones *string) (bool, error)
	CerrarAdministrativa(ctx context.Context, id, observaciones string, cerradaAt time.Time) (bool, error)

	// Flujo técnico.
	AsignarEmpleado(ctx context.Context, id, empleadoID string, asignadaAt time.Time) (bool, error)
	IniciarTrabajo(ctx context.Context, id, empleadoID string) (bool, error)
	Completar(ctx context.Context, id, empleadoID, observaciones string, cerradaAt time.Time) (bool, error)
	Cancelar(ctx context.Context, id, motivo string) (bool, error)

	// Itinerario de cuadrilla (relación estructurada cuadrilla + fecha).
	AsignarACuadrilla(ctx context.Context, id, cuadrillaID string, fecha time.Time, nota string) (bool, error)
	ListItinerario(ctx context.Context, cuadrillaID string, fecha time.Time) ([]*entity.OrdenTrabajo, error)
	TomarDeItinerario(ctx context.Context, id, empleadoID, cuadrillaID string, fecha, asignadaAt time.Time, nota string) (bool, error)
	QuitarDeItinerario(ctx context.Context, id string) (bool, error)
}
