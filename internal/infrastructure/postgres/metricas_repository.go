package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coelsur/cooperativa-api/internal/domain/repository"
)

var _ repository.MetricasRepository = (*MetricasRepo)(nil)

// MetricasRepo consultas de solo lectura para los KPIs del tablero administrativo.
// Va directo contra el pool: nunca participa de transacciones.
type MetricasRepo struct {
	pool *pgxpool.Pool
}

// NewMetricasRepository construye el adaptador de métricas.
func NewMetricasRepository(pool *pgxpool.Pool) *MetricasRepo {
	return &MetricasRepo{pool: pool}
}

// TiempoMedioResolucionHoras promedio de horas entre creación y cierre de los
// reclamos terminados en el período. Cero si no hubo cierres.
func (r *MetricasRepo) TiempoMedioResolucionHoras(ctx context.Context, desde, hasta time.Time) (float64, error) {
	const query = `
		SELECT COALESCE(AVG(EXTRACT(EPOCH FROM (cerrado_at - created_at)) / 3600), 0)
		FROM reclamos
		WHERE cerrado_at IS NOT NULL AND cerrado_at BETWEEN $1 AND $2`
	var horas float64
	if err := r.pool.QueryRow(ctx, query, desde, hasta).Scan(&horas); err != nil {
		return 0, fmt.Errorf("metricas.TiempoMedioResolucionHoras: %w", err)
	}
	return horas, nil
}

// EficienciaOperativa porcentaje de reclamos cerrados en el período que se
// resolvieron dentro del umbral de días. Cero si no hubo cierres.
func (r *MetricasRepo) EficienciaOperativa(ctx context.Context, desde, hasta time.Time, diasUmbral int) (float64, error) {
	const query = `
		SELECT COALESCE(
		    100.0 * COUNT(*) FILTER (WHERE cerrado_at - created_at <= make_interval(days => $3))
		          / NULLIF(COUNT(*), 0),
		    0)
		FROM reclamos
		WHERE cerrado_at IS NOT NULL AND cerrado_at BETWEEN $1 AND $2`
	var pct float64
	if err := r.pool.QueryRow(ctx, query, desde, hasta, diasUmbral).Scan(&pct); err != nil {
		return 0, fmt.Errorf("metricas.EficienciaOperativa: %w", err)
	}
	return pct, nil
}

// SatisfaccionPromedio promedio global de puntajes de valoraciones.
func (r *MetricasRepo) SatisfaccionPromedio(ctx context.Context) (float64, error) {
	var prom float64
	err := r.pool.QueryRow(ctx, `SELECT COALESCE(AVG(puntaje), 0) FROM valoraciones`).Scan(&prom)
	if err != nil {
		return 0, fmt.Errorf("metricas.SatisfaccionPromedio: %w", err)
	}
	return prom, nil
}

// ReclamosPorEstado conteo de reclamos agrupados por estado.
func (r *MetricasRepo) ReclamosPorEstado(ctx context.Context) ([]repository.ConteoPorClave, error) {
	return r.conteo(ctx, `SELECT estado, COUNT(*) FROM reclamos GROUP BY estado ORDER BY estado`)
}

// ReclamosPorTipo conteo de reclamos agrupados por nombre de tipo.
func (r *MetricasRepo) ReclamosPorTipo(ctx context.Context) ([]repository.ConteoPorClave, error) {
	return r.conteo(ctx, `
		SELECT t.nombre, COUNT(*)
		FROM reclamos r JOIN tipos_reclamo t ON t.id = r.tipo_id
		GROUP BY t.nombre ORDER BY COUNT(*) DESC`)
}

// ReclamosPorCanal conteo de reclamos agrupados por canal de ingreso.
func (r *MetricasRepo) ReclamosPorCanal(ctx context.Context) ([]repository.ConteoPorClave, error) {
	return r.conteo(ctx, `SELECT canal, COUNT(*) FROM reclamos GROUP BY canal ORDER BY COUNT(*) DESC`)
}

func (r *MetricasRepo) conteo(ctx context.Context, query string) ([]repository.ConteoPorClave, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("metricas.conteo: %w", err)
	}
	defer rows.Close()
	var results []repository.ConteoPorClave
	for rows.Next() {
		var c repository.ConteoPorClave
		if err := rows.Scan(&c.Clave, &c.Cantidad); err != nil {
			return nil, fmt.Errorf("metricas.conteo scan: %w", err)
		}
		results = append(results, c)
	}
	return results, rows.Err()
}
