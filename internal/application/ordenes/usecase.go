// Package ordenes implementa el ciclo de vida de las órdenes de trabajo.
//
// Dos subflujos conviven sobre la misma tabla: el administrativo (nunca lleva
// técnico) y el técnico (requiere técnico para cerrar). Toda transición escribe
// el estado espejo sobre el reclamo padre dentro de la misma transacción; si
// cualquiera de las dos escrituras falla, ninguna queda.
package ordenes

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/coelsur/cooperativa-api/internal/application/dto"
	"github.com/coelsur/cooperativa-api/internal/domain"
	"github.com/coelsur/cooperativa-api/internal/domain/entity"
	"github.com/coelsur/cooperativa-api/internal/domain/repository"
	"github.com/coelsur/cooperativa-api/internal/domain/workflow"
)

// TxRunner puerto transaccional para el par orden de trabajo / reclamo.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		reclamoRepo repository.ReclamoRepository,
		ordenRepo repository.OrdenTrabajoRepository,
	) error) error
}

// UseCase casos de uso del ciclo de vida de órdenes de trabajo.
type UseCase struct {
	txRunner      TxRunner
	ordenRepo     repository.OrdenTrabajoRepository
	empleadoRepo  repository.EmpleadoRepository
	cuadrillaRepo repository.CuadrillaRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	ordenRepo repository.OrdenTrabajoRepository,
	empleadoRepo repository.EmpleadoRepository,
	cuadrillaRepo repository.CuadrillaRepository,
) *UseCase {
	return &UseCase{
		txRunner:      txRunner,
		ordenRepo:     ordenRepo,
		empleadoRepo:  empleadoRepo,
		cuadrillaRepo: cuadrillaRepo,
	}
}

// ── Flujo administrativo ──────────────────────────────────────────────────────

// MarcarEnProceso orden administrativa PENDIENTE -> EN_PROCESO; el reclamo
// padre pasa a EN_PROCESO en la misma transacción.
func (uc *UseCase) MarcarEnProceso(ctx context.Context, ordenID string, observaciones string) (*dto.OrdenTrabajoResponse, error) {
	var obs *string
	if s := strings.TrimSpace(observaciones); s != "" {
		obs = &s
	}
	return uc.transicionar(ctx, ordenID, func(ordenRepo repository.OrdenTrabajoRepository) (bool, error) {
		return ordenRepo.MarcarEnProceso(ctx, ordenID, obs)
	}, workflow.OrdenEnProceso, nil, nil)
}

// CerrarAdministrativa orden administrativa EN_PROCESO -> CERRADA. Las
// observaciones son obligatorias; el reclamo padre queda RESUELTO con las
// mismas observaciones de cierre.
func (uc *UseCase) CerrarAdministrativa(ctx context.Context, ordenID, observaciones string) (*dto.OrdenTrabajoResponse, error) {
	obs := strings.TrimSpace(observaciones)
	if obs == "" {
		return nil, domain.ErrObservacionRequerida
	}
	now := time.Now()
	return uc.transicionar(ctx, ordenID, func(ordenRepo repository.OrdenTrabajoRepository) (bool, error) {
		return ordenRepo.CerrarAdministrativa(ctx, ordenID, obs, now)
	}, workflow.OrdenCerrada, &obs, &now)
}

// ── Flujo técnico ─────────────────────────────────────────────────────────────

// AsignarOperario orden técnica PENDIENTE -> ASIGNADA. El empleado debe existir
// y estar activo; el reclamo padre pasa a EN_PROCESO.
func (uc *UseCase) AsignarOperario(ctx context.Context, ordenID, empleadoID string) (*dto.OrdenTrabajoResponse, error) {
	if err := uc.validarEmpleado(ctx, empleadoID); err != nil {
		return nil, err
	}
	now := time.Now()
	return uc.transicionar(ctx, ordenID, func(ordenRepo repository.OrdenTrabajoRepository) (bool, error) {
		return ordenRepo.AsignarEmpleado(ctx, ordenID, empleadoID, now)
	}, workflow.OrdenAsignada, nil, nil)
}

// IniciarTrabajo orden técnica ASIGNADA -> EN_PROCESO, solo por el empleado asignado.
func (uc *UseCase) IniciarTrabajo(ctx context.Context, ordenID, empleadoID string) (*dto.OrdenTrabajoResponse, error) {
	return uc.transicionar(ctx, ordenID, func(ordenRepo repository.OrdenTrabajoRepository) (bool, error) {
		return ordenRepo.IniciarTrabajo(ctx, ordenID, empleadoID)
	}, workflow.OrdenEnProceso, nil, nil)
}

// CompletarTrabajo orden técnica EN_PROCESO -> COMPLETADA. Las observaciones son
// obligatorias y se validan antes de tocar la DB; el reclamo padre queda
// RESUELTO con las mismas observaciones.
func (uc *UseCase) CompletarTrabajo(ctx context.Context, ordenID, empleadoID, observaciones string) (*dto.OrdenTrabajoResponse, error) {
	obs := strings.TrimSpace(observaciones)
	if obs == "" {
		return nil, domain.ErrObservacionRequerida
	}
	now := time.Now()
	return uc.transicionar(ctx, ordenID, func(ordenRepo repository.OrdenTrabajoRepository) (bool, error) {
		return ordenRepo.Completar(ctx, ordenID, empleadoID, obs, now)
	}, workflow.OrdenCompletada, &obs, &now)
}

// Cancelar orden técnica PENDIENTE o ASIGNADA -> CANCELADA; el reclamo padre
// vuelve a PENDIENTE (cerrado_at queda NULL).
func (uc *UseCase) Cancelar(ctx context.Context, ordenID, motivo string) (*dto.OrdenTrabajoResponse, error) {
	if strings.TrimSpace(motivo) == "" {
		return nil, domain.ErrObservacionRequerida
	}
	return uc.transicionar(ctx, ordenID, func(ordenRepo repository.OrdenTrabajoRepository) (bool, error) {
		return ordenRepo.Cancelar(ctx, ordenID, strings.TrimSpace(motivo))
	}, workflow.OrdenCancelada, nil, nil)
}

// ── Lecturas ──────────────────────────────────────────────────────────────────

// ObtenerPorID devuelve una orden por ID.
func (uc *UseCase) ObtenerPorID(ctx context.Context, id string) (*dto.OrdenTrabajoResponse, error) {
	orden, err := uc.ordenRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if orden == nil {
		return nil, domain.ErrNotFound
	}
	return toOrdenResponse(orden), nil
}

// ObtenerPorReclamo devuelve la orden del reclamo (una por reclamo).
func (uc *UseCase) ObtenerPorReclamo(ctx context.Context, reclamoID string) (*dto.OrdenTrabajoResponse, error) {
	orden, err := uc.ordenRepo.GetByReclamo(ctx, reclamoID)
	if err != nil {
		return nil, err
	}
	if orden == nil {
		return nil, domain.ErrNotFound
	}
	return toOrdenResponse(orden), nil
}

// ListarPorEmpleado órdenes asignadas al empleado.
func (uc *UseCase) ListarPorEmpleado(ctx context.Context, empleadoID string, page dto.PageRequest) ([]*dto.OrdenTrabajoResponse, error) {
	page.DefaultPage()
	list, err := uc.ordenRepo.ListByEmpleado(ctx, empleadoID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toOrdenResponses(list), nil
}

// ListarSinAsignar pool de órdenes PENDIENTE sin empleado ni cuadrilla de la categoría.
func (uc *UseCase) ListarSinAsignar(ctx context.Context, categoria string) ([]*dto.OrdenTrabajoResponse, error) {
	if categoria != entity.CategoriaTecnico && categoria != entity.CategoriaAdministrativo {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.ordenRepo.ListSinAsignar(ctx, categoria)
	if err != nil {
		return nil, err
	}
	return toOrdenResponses(list), nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// transicionar corre la transición guardada de la orden y el espejo del reclamo
// dentro de una transacción. Si la guarda no matchea ninguna fila distingue
// entre orden inexistente (ErrNotFound) y estado incompatible (ErrConflict);
// el error aborta la tx y ninguna de las dos filas cambia.
func (uc *UseCase) transicionar(
	ctx context.Context,
	ordenID string,
	aplicar func(repository.OrdenTrabajoRepository) (bool, error),
	destino workflow.EstadoOrden,
	obsCierre *string,
	cerradoAt *time.Time,
) (*dto.OrdenTrabajoResponse, error) {
	var out *dto.OrdenTrabajoResponse
	err := uc.txRunner.Run(ctx, func(reclamoRepo repository.ReclamoRepository, ordenRepo repository.OrdenTrabajoRepository) error {
		ok, err := aplicar(ordenRepo)
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
			return domain.ErrConflict
		}

		orden, err := ordenRepo.GetByID(ctx, ordenID)
		if err != nil {
			return err
		}
		if orden == nil {
			return fmt.Errorf("orden %s desapareció dentro de la tx", ordenID)
		}

		espejo, hay := workflow.EstadoReclamoEspejo(destino)
		if hay {
			if _, err := reclamoRepo.SetEstado(ctx, orden.ReclamoID, espejo, obsCierre, cerradoAt); err != nil {
				return err
			}
		}
		out = toOrdenResponse(orden)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (uc *UseCase) validarEmpleado(ctx context.Context, empleadoID string) error {
	empleado, err := uc.empleadoRepo.GetByID(ctx, empleadoID)
	if err != nil {
		return err
	}
	if empleado == nil || !empleado.Activo {
		return domain.ErrEmpleadoInactivo
	}
	return nil
}

func toOrdenResponse(o *entity.OrdenTrabajo) *dto.OrdenTrabajoResponse {
	return &dto.OrdenTrabajoResponse{
		ID:                    o.ID,
		ReclamoID:             o.ReclamoID,
		EmpleadoID:            o.EmpleadoID,
		Estado:                string(o.Estado),
		DireccionIntervencion: o.DireccionIntervencion,
		Observaciones:         o.Observaciones,
		CuadrillaID:           o.CuadrillaID,
		FechaProgramada:       o.FechaProgramada,
		AsignadaAt:            o.AsignadaAt,
		CerradaAt:             o.CerradaAt,
		CreatedAt:             o.CreatedAt,
	}
}

func toOrdenResponses(list []*entity.OrdenTrabajo) []*dto.OrdenTrabajoResponse {
	out := make([]*dto.OrdenTrabajoResponse, 0, len(list))
	for _, o := range list {
		out = append(out, toOrdenResponse(o))
	}
	return out
}
