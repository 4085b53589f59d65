package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/coelsur/cooperativa-api/internal/domain"
	"github.com/coelsur/cooperativa-api/internal/domain/entity"
	"github.com/coelsur/cooperativa-api/internal/domain/repository"
)

var _ repository.ValoracionRepository = (*ValoracionRepo)(nil)

const valoracionColumns = `id, reclamo_id, socio_id, puntaje, comentario, created_at`

// ValoracionRepo implementación de ValoracionRepository (usable con pool o tx).
type ValoracionRepo struct {
	q Querier
}

// NewValoracionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewValoracionRepository(q Querier) *ValoracionRepo {
	return &ValoracionRepo{q: q}
}

// Create persiste una valoración. El UNIQUE (reclamo_id, socio_id) de la tabla
// es la barrera definitiva: una segunda fila del mismo par devuelve ErrYaValorado.
func (r *ValoracionRepo) Create(ctx context.Context, v *entity.Valoracion) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	query := `
		INSERT INTO valoraciones (id, reclamo_id, socio_id, puntaje, comentario, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, v.ID, v.ReclamoID, v.SocioID, v.Puntaje, v.Comentario, v.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrYaValorado
		}
		return fmt.Errorf("insert valoracion: %w", err)
	}
	return nil
}

// GetByID obtiene una valoración por ID. Devuelve nil, nil si no existe.
func (r *ValoracionRepo) GetByID(ctx context.Context, id string) (*entity.Valoracion, error) {
	return r.getOne(ctx, `SELECT `+valoracionColumns+` FROM valoraciones WHERE id = $1`, id)
}

// GetByReclamo obtiene la valoración de un reclamo (a lo sumo una por socio titular).
func (r *ValoracionRepo) GetByReclamo(ctx context.Context, reclamoID string) (*entity.Valoracion, error) {
	return r.getOne(ctx, `SELECT `+valoracionColumns+` FROM valoraciones WHERE reclamo_id = $1`, reclamoID)
}

// GetByReclamoAndSocio obtiene la valoración del par (reclamo, socio).
func (r *ValoracionRepo) GetByReclamoAndSocio(ctx context.Context, reclamoID, socioID string) (*entity.Valoracion, error) {
	return r.getOne(ctx,
		`SELECT `+valoracionColumns+` FROM valoraciones WHERE reclamo_id = $1 AND socio_id = $2`,
		reclamoID, socioID)
}

// ListBySocio lista valoraciones del socio, más recientes primero.
func (r *ValoracionRepo) ListBySocio(ctx context.Context, socioID string, limit, offset int) ([]*entity.Valoracion, error) {
	query := `SELECT ` + valoracionColumns + `
		FROM valoraciones WHERE socio_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, socioID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list valoraciones: %w", err)
	}
	return collectValoraciones(rows)
}

// Update actualiza puntaje y comentario.
func (r *ValoracionRepo) Update(ctx context.Context, v *entity.Valoracion) error {
	query := `UPDATE valoraciones SET puntaje = $2, comentario = $3 WHERE id = $1`
	_, err := r.q.Exec(ctx, query, v.ID, v.Puntaje, v.Comentario)
	if err != nil {
		return fmt.Errorf("update valoracion: %w", err)
	}
	return nil
}

// Delete elimina una valoración por ID.
func (r *ValoracionRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM valoraciones WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete valoracion: %w", err)
	}
	return nil
}

// Estadisticas conteo, promedio, histograma por puntaje y cantidad con comentario.
func (r *ValoracionRepo) Estadisticas(ctx context.Context) (*repository.EstadisticasValoraciones, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(AVG(puntaje), 0),
		       COUNT(*) FILTER (WHERE puntaje = 1),
		       COUNT(*) FILTER (WHERE puntaje = 2),
		       COUNT(*) FILTER (WHERE puntaje = 3),
		       COUNT(*) FILTER (WHERE puntaje = 4),
		       COUNT(*) FILTER (WHERE puntaje = 5),
		       COUNT(*) FILTER (WHERE comentario IS NOT NULL AND comentario <> '')
		FROM valoraciones`
	est := repository.EstadisticasValoraciones{PorPuntaje: make(map[int]int, 5)}
	var p1, p2, p3, p4, p5 int
	err := r.q.QueryRow(ctx, query).Scan(
		&est.Total, &est.Promedio, &p1, &p2, &p3, &p4, &p5, &est.ConComentario,
	)
	if err != nil {
		return nil, fmt.Errorf("estadisticas valoraciones: %w", err)
	}
	est.PorPuntaje[1], est.PorPuntaje[2], est.PorPuntaje[3], est.PorPuntaje[4], est.PorPuntaje[5] = p1, p2, p3, p4, p5
	return &est, nil
}

// Recientes las últimas n valoraciones.
func (r *ValoracionRepo) Recientes(ctx context.Context, n int) ([]*entity.Valoracion, error) {
	query := `SELECT ` + valoracionColumns + ` FROM valoraciones ORDER BY created_at DESC LIMIT $1`
	rows, err := r.q.Query(ctx, query, n)
	if err != nil {
		return nil, fmt.Errorf("valoraciones recientes: %w", err)
	}
	return collectValoraciones(rows)
}

func (r *ValoracionRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Valoracion, error) {
	var v entity.Valoracion
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&v.ID, &v.ReclamoID, &v.SocioID, &v.Puntaje, &v.Comentario, &v.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get valoracion: %w", err)
	}
	return &v, nil
}

func collectValoraciones(rows pgx.Rows) ([]*entity.Valoracion, error) {
	defer rows.Close()
	var list []*entity.Valoracion
	for rows.Next() {
		var v entity.Valoracion
		if err := rows.Scan(&v.ID, &v.ReclamoID, &v.SocioID, &v.Puntaje, &v.Comentario, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan valoracion: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}
