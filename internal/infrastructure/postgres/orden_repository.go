package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/coelsur/cooperativa-api/internal/domain/entity"
	"github.com/coelsur/cooperativa-api/internal/domain/repository"
)

var _ repository.OrdenTrabajoRepository = (*OrdenTrabajoRepo)(nil)

const ordenColumns = `id, reclamo_id, empleado_id, estado, direccion_intervencion,
	observaciones, cuadrilla_id, fecha_programada, asignada_at, cerrada_at, created_at`

// OrdenTrabajoRepo implementación de OrdenTrabajoRepository (usable con pool o tx).
//
// Las transiciones son UPDATE con guarda: el WHERE exige el estado (y empleado)
// esperados y el caller decide qué significa "cero filas". Las notas se agregan
// al final de observaciones con appendObs, nunca se pisan.
type OrdenTrabajoRepo struct {
	q Querier
}

// NewOrdenTrabajoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrdenTrabajoRepository(q Querier) *OrdenTrabajoRepo {
	return &OrdenTrabajoRepo{q: q}
}

// Create persiste una nueva orden de trabajo.
func (r *OrdenTrabajoRepo) Create(ctx context.Context, orden *entity.OrdenTrabajo) error {
	if orden.ID == "" {
		orden.ID = uuid.New().String()
	}
	query := `
		INSERT INTO ordenes_trabajo (id, reclamo_id, empleado_id, estado, direccion_intervencion, observaciones, cuadrilla_id, fecha_programada, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		orden.ID, orden.ReclamoID, orden.EmpleadoID, orden.Estado,
		orden.DireccionIntervencion, orden.Observaciones, orden.CuadrillaID,
		orden.FechaProgramada, orden.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert orden de trabajo: %w", err)
	}
	return nil
}

// GetByID obtiene una orden por ID. Devuelve nil, nil si no existe.
func (r *OrdenTrabajoRepo) GetByID(ctx context.Context, id string) (*entity.OrdenTrabajo, error) {
	query := `SELECT ` + ordenColumns + ` FROM ordenes_trabajo WHERE id = $1`
	ot, err := scanOrden(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get orden: %w", err)
	}
	return ot, nil
}

// GetByReclamo obtiene la orden asociada al reclamo (una por reclamo).
func (r *OrdenTrabajoRepo) GetByReclamo(ctx context.Context, reclamoID string) (*entity.OrdenTrabajo, error) {
	query := `SELECT ` + ordenColumns + ` FROM ordenes_trabajo WHERE reclamo_id = $1`
	ot, err := scanOrden(r.q.QueryRow(ctx, query, reclamoID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get orden por reclamo: %w", err)
	}
	return ot, nil
}

// ListByEmpleado lista órdenes asignadas al empleado, más recientes primero.
func (r *OrdenTrabajoRepo) ListByEmpleado(ctx context.Context, empleadoID string, limit, offset int) ([]*entity.OrdenTrabajo, error) {
	query := `SELECT ` + ordenColumns + `
		FROM ordenes_trabajo WHERE empleado_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, empleadoID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list ordenes por empleado: %w", err)
	}
	return collectOrdenes(rows)
}

// ListSinAsignar órdenes PENDIENTE sin empleado ni cuadrilla de la categoría dada,
// por prioridad del reclamo y antigüedad: el pool para armar itinerarios.
func (r *OrdenTrabajoRepo) ListSinAsignar(ctx context.Context, categoria string) ([]*entity.OrdenTrabajo, error) {
	query := `
		SELECT ` + ordenPrefixed("ot") + `
		FROM ordenes_trabajo ot
		JOIN reclamos r ON r.id = ot.reclamo_id
		JOIN tipos_reclamo t ON t.id = r.tipo_id
		WHERE ot.estado = 'PENDIENTE'
		  AND ot.empleado_id IS NULL
		  AND ot.cuadrilla_id IS NULL
		  AND t.categoria = $1
		ORDER BY r.prioridad, ot.created_at`
	rows, err := r.q.Query(ctx, query, categoria)
	if err != nil {
		return nil, fmt.Errorf("list ordenes sin asignar: %w", err)
	}
	return collectOrdenes(rows)
}

// MarcarEnProceso flujo administrativo: PENDIENTE -> EN_PROCESO, solo órdenes sin empleado.
func (r *OrdenTrabajoRepo) MarcarEnProceso(ctx context.Context, id string, observaciones *string) (bool, error) {
	query := `
		UPDATE ordenes_trabajo
		SET estado = 'EN_PROCESO',
		    observaciones = ` + appendObs("$2") + `
		WHERE id = $1 AND estado = 'PENDIENTE' AND empleado_id IS NULL`
	tag, err := r.q.Exec(ctx, query, id, observaciones)
	if err != nil {
		return false, fmt.Errorf("marcar orden en proceso: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// CerrarAdministrativa flujo administrativo: EN_PROCESO -> CERRADA con observaciones obligatorias.
func (r *OrdenTrabajoRepo) CerrarAdministrativa(ctx context.Context, id, observaciones string, cerradaAt time.Time) (bool, error) {
	query := `
		UPDATE ordenes_trabajo
		SET estado = 'CERRADA',
		    observaciones = ` + appendObs("$2") + `,
		    cerrada_at = $3
		WHERE id = $1 AND estado = 'EN_PROCESO' AND empleado_id IS NULL`
	tag, err := r.q.Exec(ctx, query, id, observaciones, cerradaAt)
	if err != nil {
		return false, fmt.Errorf("cerrar orden administrativa: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// AsignarEmpleado flujo técnico: PENDIENTE -> ASIGNADA.
func (r *OrdenTrabajoRepo) AsignarEmpleado(ctx context.Context, id, empleadoID string, asignadaAt time.Time) (bool, error) {
	query := `
		UPDATE ordenes_trabajo
		SET estado = 'ASIGNADA', empleado_id = $2, asignada_at = $3
		WHERE id = $1 AND estado = 'PENDIENTE'`
	tag, err := r.q.Exec(ctx, query, id, empleadoID, asignadaAt)
	if err != nil {
		return false, fmt.Errorf("asignar empleado a orden: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// IniciarTrabajo flujo técnico: ASIGNADA -> EN_PROCESO, solo por el empleado asignado.
func (r *OrdenTrabajoRepo) IniciarTrabajo(ctx context.Context, id, empleadoID string) (bool, error) {
	query := `
		UPDATE ordenes_trabajo
		SET estado = 'EN_PROCESO'
		WHERE id = $1 AND estado = 'ASIGNADA' AND empleado_id = $2`
	tag, err := r.q.Exec(ctx, query, id, empleadoID)
	if err != nil {
		return false, fmt.Errorf("iniciar trabajo: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Completar flujo técnico: EN_PROCESO -> COMPLETADA, solo por el empleado asignado.
func (r *OrdenTrabajoRepo) Completar(ctx context.Context, id, empleadoID, observaciones string, cerradaAt time.Time) (bool, error) {
	query := `
		UPDATE ordenes_trabajo
		SET estado = 'COMPLETADA',
		    observaciones = ` + appendObs("$3") + `,
		    cerrada_at = $4
		WHERE id = $1 AND estado = 'EN_PROCESO' AND empleado_id = $2`
	tag, err := r.q.Exec(ctx, query, id, empleadoID, observaciones, cerradaAt)
	if err != nil {
		return false, fmt.Errorf("completar trabajo: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Cancelar PENDIENTE o ASIGNADA -> CANCELADA; agrega el motivo a observaciones.
func (r *OrdenTrabajoRepo) Cancelar(ctx context.Context, id, motivo string) (bool, error) {
	query := `
		UPDATE ordenes_trabajo
		SET estado = 'CANCELADA',
		    empleado_id = NULL,
		    observaciones = ` + appendObs("'Cancelada: ' || $2") + `
		WHERE id = $1 AND estado IN ('PENDIENTE', 'ASIGNADA')`
	tag, err := r.q.Exec(ctx, query, id, motivo)
	if err != nil {
		return false, fmt.Errorf("cancelar orden: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// AsignarACuadrilla agenda la orden en el itinerario de la cuadrilla para la fecha.
// Solo órdenes PENDIENTE sin empleado; la nota queda como historial.
func (r *OrdenTrabajoRepo) AsignarACuadrilla(ctx context.Context, id, cuadrillaID string, fecha time.Time, nota string) (bool, error) {
	query := `
		UPDATE ordenes_trabajo
		SET cuadrilla_id = $2,
		    fecha_programada = $3,
		    empleado_id = NULL,
		    estado = 'PENDIENTE',
		    observaciones = ` + appendObs("$4") + `
		WHERE id = $1 AND estado = 'PENDIENTE' AND empleado_id IS NULL`
	tag, err := r.q.Exec(ctx, query, id, cuadrillaID, fecha, nota)
	if err != nil {
		return false, fmt.Errorf("asignar orden a cuadrilla: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListItinerario órdenes agendadas para la cuadrilla en la fecha: primero las
// disponibles (sin empleado), luego por prioridad del reclamo y antigüedad.
func (r *OrdenTrabajoRepo) ListItinerario(ctx context.Context, cuadrillaID string, fecha time.Time) ([]*entity.OrdenTrabajo, error) {
	query := `
		SELECT ` + ordenPrefixed("ot") + `
		FROM ordenes_trabajo ot
		JOIN reclamos r ON r.id = ot.reclamo_id
		WHERE ot.cuadrilla_id = $1 AND ot.fecha_programada = $2
		ORDER BY (ot.empleado_id IS NOT NULL), r.prioridad, ot.created_at`
	rows, err := r.q.Query(ctx, query, cuadrillaID, fecha)
	if err != nil {
		return nil, fmt.Errorf("list itinerario: %w", err)
	}
	return collectOrdenes(rows)
}

// TomarDeItinerario un operario de la cuadrilla toma una orden disponible:
// PENDIENTE sin empleado, agendada para esa cuadrilla y para esa fecha. Ante
// una carrera solo un UPDATE coincide; el perdedor ve cero filas.
func (r *OrdenTrabajoRepo) TomarDeItinerario(ctx context.Context, id, empleadoID, cuadrillaID string, fecha, asignadaAt time.Time, nota string) (bool, error) {
	query := `
		UPDATE ordenes_trabajo
		SET estado = 'ASIGNADA',
		    empleado_id = $2,
		    asignada_at = $5,
		    observaciones = ` + appendObs("$6") + `
		WHERE id = $1 AND cuadrilla_id = $3 AND fecha_programada = $4
		  AND estado = 'PENDIENTE' AND empleado_id IS NULL`
	tag, err := r.q.Exec(ctx, query, id, empleadoID, cuadrillaID, fecha, asignadaAt, nota)
	if err != nil {
		return false, fmt.Errorf("tomar orden de itinerario: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// QuitarDeItinerario saca la orden del itinerario mientras nadie la tomó:
// limpia cuadrilla y fecha, vuelve al pool de no asignadas.
func (r *OrdenTrabajoRepo) QuitarDeItinerario(ctx context.Context, id string) (bool, error) {
	query := `
		UPDATE ordenes_trabajo
		SET cuadrilla_id = NULL, fecha_programada = NULL
		WHERE id = $1 AND estado = 'PENDIENTE' AND empleado_id IS NULL AND cuadrilla_id IS NOT NULL`
	tag, err := r.q.Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("quitar orden de itinerario: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// appendObs concatena una nota (expresión SQL) al final de observaciones con
// salto de línea, tolerando observaciones vacías y notas NULL.
func appendObs(expr string) string {
	return `TRIM(BOTH E'\n' FROM observaciones || E'\n' || COALESCE(` + expr + `, ''))`
}

func ordenPrefixed(alias string) string {
	return alias + `.id, ` + alias + `.reclamo_id, ` + alias + `.empleado_id, ` + alias + `.estado, ` +
		alias + `.direccion_intervencion, ` + alias + `.observaciones, ` + alias + `.cuadrilla_id, ` +
		alias + `.fecha_programada, ` + alias + `.asignada_at, ` + alias + `.cerrada_at, ` + alias + `.created_at`
}

func scanOrden(row pgx.Row) (*entity.OrdenTrabajo, error) {
	var ot entity.OrdenTrabajo
	err := row.Scan(
		&ot.ID, &ot.ReclamoID, &ot.EmpleadoID, &ot.Estado, &ot.DireccionIntervencion,
		&ot.Observaciones, &ot.CuadrillaID, &ot.FechaProgramada, &ot.AsignadaAt,
		&ot.CerradaAt, &ot.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &ot, nil
}

func collectOrdenes(rows pgx.Rows) ([]*entity.OrdenTrabajo, error) {
	defer rows.Close()
	var list []*entity.OrdenTrabajo
	for rows.Next() {
		ot, err := scanOrden(rows)
		if err != nil {
			return nil, fmt.Errorf("scan orden: %w", err)
		}
		list = append(list, ot)
	}
	return list, rows.Err()
}
