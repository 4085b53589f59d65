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
	"github.com/coelsur/cooperativa-api/internal/domain/workflow"
)

var _ repository.ReclamoRepository = (*ReclamoRepo)(nil)

const reclamoColumns = `id, cuenta_id, tipo_id, descripcion, prioridad, canal, estado,
	operario_id, observaciones_cierre, created_at, cerrado_at`

// ReclamoRepo implementación de ReclamoRepository (usable con pool o tx).
type ReclamoRepo struct {
	q Querier
}

// NewReclamoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReclamoRepository(q Querier) *ReclamoRepo {
	return &ReclamoRepo{q: q}
}

// Create persiste un nuevo reclamo.
func (r *ReclamoRepo) Create(ctx context.Context, reclamo *entity.Reclamo) error {
	if reclamo.ID == "" {
		reclamo.ID = uuid.New().String()
	}
	query := `
		INSERT INTO reclamos (id, cuenta_id, tipo_id, descripcion, prioridad, canal, estado, operario_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		reclamo.ID, reclamo.CuentaID, reclamo.TipoID, reclamo.Descripcion,
		reclamo.Prioridad, reclamo.Canal, reclamo.Estado, reclamo.OperarioID, reclamo.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert reclamo: %w", err)
	}
	return nil
}

// GetByID obtiene un reclamo por ID. Devuelve nil, nil si no existe.
func (r *ReclamoRepo) GetByID(ctx context.Context, id string) (*entity.Reclamo, error) {
	query := `SELECT ` + reclamoColumns + ` FROM reclamos WHERE id = $1`
	rec, err := scanReclamo(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get reclamo: %w", err)
	}
	return rec, nil
}

// ListByCuenta lista reclamos de una cuenta, más recientes primero.
func (r *ReclamoRepo) ListByCuenta(ctx context.Context, cuentaID string, limit, offset int) ([]*entity.Reclamo, error) {
	query := `SELECT ` + reclamoColumns + `
		FROM reclamos WHERE cuenta_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, cuentaID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list reclamos por cuenta: %w", err)
	}
	return collectReclamos(rows)
}

// ListBySocio lista reclamos de todas las cuentas del socio en una sola consulta,
// más recientes primero; limit y offset aplican sobre el conjunto completo.
func (r *ReclamoRepo) ListBySocio(ctx context.Context, socioID string, limit, offset int) ([]*entity.Reclamo, error) {
	query := `SELECT ` + reclamoColumns + `
		FROM reclamos
		WHERE cuenta_id IN (SELECT id FROM cuentas WHERE socio_id = $1)
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, socioID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list reclamos por socio: %w", err)
	}
	return collectReclamos(rows)
}

// List lista reclamos con filtros opcionales de estado y prioridad.
func (r *ReclamoRepo) List(ctx context.Context, filter repository.ReclamoFilter) ([]*entity.Reclamo, error) {
	query := `SELECT ` + reclamoColumns + `
		FROM reclamos
		WHERE ($1::TEXT IS NULL OR estado = $1)
		  AND ($2::INT IS NULL OR prioridad = $2)
		ORDER BY prioridad, created_at DESC
		LIMIT $3 OFFSET $4`
	var estado *string
	if filter.Estado != nil {
		s := string(*filter.Estado)
		estado = &s
	}
	rows, err := r.q.Query(ctx, query, estado, filter.Prioridad, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("list reclamos: %w", err)
	}
	return collectReclamos(rows)
}

// Transicionar mueve el reclamo de `desde` a `hacia` con guarda de estado.
// Estados terminales estampan cerrado_at; las observaciones de cierre solo se
// escriben si se pasan (COALESCE conserva las existentes).
func (r *ReclamoRepo) Transicionar(ctx context.Context, id string, desde, hacia workflow.EstadoReclamo, observaciones *string, cerradoAt *time.Time) (bool, error) {
	query := `
		UPDATE reclamos
		SET estado = $3,
		    observaciones_cierre = COALESCE($4, observaciones_cierre),
		    cerrado_at = COALESCE($5, cerrado_at)
		WHERE id = $1 AND estado = $2`
	tag, err := r.q.Exec(ctx, query, id, desde, hacia, observaciones, cerradoAt)
	if err != nil {
		return false, fmt.Errorf("transicionar reclamo: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// SetEstado escribe el estado espejo dictado por la transición de la orden de
// trabajo. Sin guarda de estado; cerrado_at se pisa con el valor recibido para
// que quede NULL al revertir a PENDIENTE.
func (r *ReclamoRepo) SetEstado(ctx context.Context, id string, estado workflow.EstadoReclamo, observaciones *string, cerradoAt *time.Time) (bool, error) {
	query := `
		UPDATE reclamos
		SET estado = $2,
		    observaciones_cierre = COALESCE($3, observaciones_cierre),
		    cerrado_at = $4
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, estado, observaciones, cerradoAt)
	if err != nil {
		return false, fmt.Errorf("set estado reclamo: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// AsignarOperario setea el operario; solo si el estado actual es PENDIENTE lo
// avanza a EN_PROCESO (el CASE deja el resto de estados intactos).
func (r *ReclamoRepo) AsignarOperario(ctx context.Context, id, operarioID string) (bool, error) {
	query := `
		UPDATE reclamos
		SET operario_id = $2,
		    estado = CASE WHEN estado = 'PENDIENTE' THEN 'EN_PROCESO' ELSE estado END
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, operarioID)
	if err != nil {
		return false, fmt.Errorf("asignar operario a reclamo: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ResumenPorSocio conteos por estado de los reclamos de las cuentas del socio.
func (r *ReclamoRepo) ResumenPorSocio(ctx context.Context, socioID string) (*repository.ResumenReclamos, error) {
	query := resumenQuery + ` WHERE r.cuenta_id IN (SELECT id FROM cuentas WHERE socio_id = $1)`
	return r.scanResumen(ctx, query, socioID)
}

// ResumenPorOperario conteos por estado de los reclamos asignados al operario.
func (r *ReclamoRepo) ResumenPorOperario(ctx context.Context, operarioID string) (*repository.ResumenReclamos, error) {
	query := resumenQuery + ` WHERE r.operario_id = $1`
	return r.scanResumen(ctx, query, operarioID)
}

// ResumenGlobal conteos por estado de todos los reclamos.
func (r *ReclamoRepo) ResumenGlobal(ctx context.Context) (*repository.ResumenReclamos, error) {
	return r.scanResumen(ctx, resumenQuery)
}

const resumenQuery = `
	SELECT COUNT(*),
	       COUNT(*) FILTER (WHERE r.estado = 'PENDIENTE'),
	       COUNT(*) FILTER (WHERE r.estado = 'EN_PROCESO'),
	       COUNT(*) FILTER (WHERE r.estado = 'RESUELTO'),
	       COUNT(*) FILTER (WHERE r.estado = 'CERRADO')
	FROM reclamos r`

func (r *ReclamoRepo) scanResumen(ctx context.Context, query string, args ...any) (*repository.ResumenReclamos, error) {
	var res repository.ResumenReclamos
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&res.Total, &res.Pendientes, &res.EnProceso, &res.Resueltos, &res.Cerrados,
	)
	if err != nil {
		return nil, fmt.Errorf("resumen reclamos: %w", err)
	}
	return &res, nil
}

func scanReclamo(row pgx.Row) (*entity.Reclamo, error) {
	var rec entity.Reclamo
	err := row.Scan(
		&rec.ID, &rec.CuentaID, &rec.TipoID, &rec.Descripcion, &rec.Prioridad,
		&rec.Canal, &rec.Estado, &rec.OperarioID, &rec.ObservacionesCierre,
		&rec.CreatedAt, &rec.CerradoAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func collectReclamos(rows pgx.Rows) ([]*entity.Reclamo, error) {
	defer rows.Close()
	var list []*entity.Reclamo
	for rows.Next() {
		rec, err := scanReclamo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reclamo: %w", err)
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}
