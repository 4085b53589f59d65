package ordenes

import (
	"context"
	"time"

	"github.com/coelsur/cooperativa-api/internal/application/dto"
	"github.com/coelsur/cooperativa-api/internal/domain"
	"github.com/coelsur/cooperativa-api/internal/domain/repository"
	"github.com/coelsur/cooperativa-api/internal/domain/workflow"
)

// AsignarACuadrilla agenda una orden PENDIENTE sin empleado en el itinerario de
// una cuadrilla activa para la fecha dada.
func (uc *UseCase) AsignarACuadrilla(ctx context.Context, in dto.AsignarCuadrillaRequest) (*dto.OrdenTrabajoResponse, error) {
	if in.OrdenID == "" || in.CuadrillaID == "" {
		return nil, domain.ErrInvalidInput
	}
	fecha, err := time.Parse("2006-01-02", in.Fecha)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	cuadrilla, err := uc.cuadrillaRepo.GetByID(ctx, in.CuadrillaID)
	if err != nil {
		return nil, err
	}
	if cuadrilla == nil || !cuadrilla.Activa {
		return nil, domain.ErrNotFound
	}

	nota := "Programada para cuadrilla " + cuadrilla.Nombre + " el " + in.Fecha
	ok, err := uc.ordenRepo.AsignarACuadrilla(ctx, in.OrdenID, in.CuadrillaID, fecha, nota)
	if err != nil {
		return nil, err
	}
	if !ok {
		return uc.resolverFalla(ctx, in.OrdenID)
	}
	return uc.ObtenerPorID(ctx, in.OrdenID)
}

// ListarItinerario devuelve las órdenes agendadas para la cuadrilla en la fecha,
// anotando si cada una sigue disponible o ya fue tomada por un operario.
func (uc *UseCase) ListarItinerario(ctx context.Context, cuadrillaID, fecha string) ([]*dto.ItinerarioItemResponse, error) {
	if cuadrillaID == "" {
		return nil, domain.ErrInvalidInput
	}
	dia, err := time.Parse("2006-01-02", fecha)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.ordenRepo.ListItinerario(ctx, cuadrillaID, dia)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ItinerarioItemResponse, 0, len(list))
	for _, o := range list {
		estado := "tomada"
		if o.Disponible() {
			estado = "disponible"
		}
		out = append(out, &dto.ItinerarioItemResponse{Orden: *toOrdenResponse(o), Estado: estado})
	}
	return out, nil
}

// TomarDeItinerario reclama una orden del itinerario para el operario: la orden
// queda ASIGNADA a él y el reclamo padre pasa a EN_PROCESO, en una sola
// transacción. Solo un operario de la cuadrilla agendada puede tomarla, y solo
// del itinerario de la fecha indicada; si otro llegó antes o la orden está
// programada para otro día, la guarda no matchea y devuelve ErrOrdenNoDisponible.
func (uc *UseCase) TomarDeItinerario(ctx context.Context, ordenID, empleadoID, fecha string) (*dto.OrdenTrabajoResponse, error) {
	dia, err := time.Parse("2006-01-02", fecha)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	empleado, err := uc.empleadoRepo.GetByID(ctx, empleadoID)
	if err != nil {
		return nil, err
	}
	if empleado == nil || !empleado.Activo {
		return nil, domain.ErrEmpleadoInactivo
	}
	if empleado.CuadrillaID == nil {
		return nil, domain.ErrOrdenNoDisponible
	}
	cuadrillaID := *empleado.CuadrillaID

	now := time.Now()
	nota := "Tomada del itinerario por " + empleado.Nombre + " " + empleado.Apellido
	var out *dto.OrdenTrabajoResponse
	err = uc.txRunner.Run(ctx, func(reclamoRepo repository.ReclamoRepository, ordenRepo repository.OrdenTrabajoRepository) error {
		ok, err := ordenRepo.TomarDeItinerario(ctx, ordenID, empleadoID, cuadrillaID, dia, now, nota)
		if err != nil {
			return err
		}
		if !ok {
			actual, err := ordenRepo.GetByID(ctx, ordenID)
			if err != nil {
				return err
			}
			if actual == nil {
				return domain.ErrNotFound
			}
			return domain.ErrOrdenNoDisponible
		}
		orden, err := ordenRepo.GetByID(ctx, ordenID)
		if err != nil {
			return err
		}
		if _, err := reclamoRepo.SetEstado(ctx, orden.ReclamoID, workflow.ReclamoEnProceso, nil, nil); err != nil {
			return err
		}
		out = toOrdenResponse(orden)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// QuitarDeItinerario saca del itinerario una orden que nadie tomó todavía.
// Si un operario ya la tomó devuelve ErrConflict.
func (uc *UseCase) QuitarDeItinerario(ctx context.Context, ordenID string) (*dto.OrdenTrabajoResponse, error) {
	ok, err := uc.ordenRepo.QuitarDeItinerario(ctx, ordenID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return uc.resolverFalla(ctx, ordenID)
	}
	return uc.ObtenerPorID(ctx, ordenID)
}

// resolverFalla distingue orden inexistente de guarda no matcheada.
func (uc *UseCase) resolverFalla(ctx context.Context, ordenID string) (*dto.OrdenTrabajoResponse, error) {
	actual, err := uc.ordenRepo.GetByID(ctx, ordenID)
	if err != nil {
		return nil, err
	}
	if actual == nil {
		return nil, domain.ErrNotFound
	}
	return nil, domain.ErrConflict
}
