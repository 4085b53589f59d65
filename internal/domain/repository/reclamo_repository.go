package repository

import (
	"context"
	"time"

	"github.com/coelsur/cooperativa-api/internal/domain/entity"
	"github.com/coelsur/cooperativa-api/internal/domain/workflow"
)

// ReclamoFilter filtros opcionales para listados de reclamos.
type ReclamoFilter struct {
	Estado    *workflow.EstadoReclamo
	Prioridad *int
	Limit     int
	Offset    int
}

// ResumenReclamos conteos agregados de reclamos por estado.
type ResumenReclamos struct {
	Total      int
	Pendientes int
	EnProceso  int
	Resueltos  int
	Cerrados   int
}

// ReclamoRepository define el puerto de persistencia para Reclamo.
// Los métodos de transición usan UPDATE con guarda de estado: devuelven false
// si ninguna fila coincidió (fila inexistente o estado distinto al esperado).
type ReclamoRepository interface {
	Create(ctx context.Context, reclamo *entity.Reclamo) error
	GetByID(ctx context.Context, id string) (*entity.Reclamo, error)
	ListByCuenta(ctx context.Context, cuentaID string, limit, offset int) ([]*entity.Reclamo, error)
	ListBySocio(ctx context.Context, socioID string, limit, offset int) ([]*entity.Reclamo, error)
	List(ctx context.Context, filter ReclamoFilter) ([]*entity.Reclamo, error)

	// Transicionar mueve el reclamo de `desde` a `hacia`. Si `hacia` es terminal
	// estampa cerradoAt y, si se pasan, las observaciones de cierre.
	Transicionar(ctx context.Context, id string, desde workflow.EstadoReclamo, hacia workflow.EstadoReclamo, observaciones *string, cerradoAt *time.Time) (bool, error)

	// AsignarOperario setea el operario y avanza PENDIENTE -> EN_PROCESO; si el
	// reclamo está en otro estado solo cambia el operario.
	AsignarOperario(ctx context.Context, id, operarioID string) (bool, error)

	// SetEstado escribe el estado espejo que dicta la transición de la orden de
	// trabajo, sin guarda de estado: la guarda ya corrió sobre la orden dentro
	// de la misma tx. cerradoAt nil limpia cerrado_at (reversión por cancelación).
	SetEstado(ctx context.Context, id string, estado workflow.EstadoReclamo, observaciones *string, cerradoAt *time.Time) (bool, error)

	ResumenPorSocio(ctx context.Context, socioID string) (*ResumenReclamos, error)
	ResumenPorOperario(ctx context.Context, operarioID string) (*ResumenReclamos, error)
	ResumenGlobal(ctx context.Context) (*ResumenReclamos, error)
}
