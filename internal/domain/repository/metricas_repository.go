package repository

import (
	"context"
	"time"
)

// ConteoPorClave conteo agrupado por una clave (estado, tipo, canal).
type ConteoPorClave struct {
	Clave    string
	Cantidad int
}

// MetricasRepository consultas de solo lectura para los KPIs del tablero
// administrativo. Sin invariantes propios: agregaciones SQL directas.
type MetricasRepository interface {
	// TiempoMedioResolucionHoras promedio de horas entre creación y cierre de
	// reclamos terminados en el período.
	TiempoMedioResolucionHoras(ctx context.Context, desde, hasta time.Time) (float64, error)
	// EficienciaOperativa porcentaje de reclamos del período resueltos dentro
	// del umbral de días.
	EficienciaOperativa(ctx context.Context, desde, hasta time.Time, diasUmbral int) (float64, error)
	// SatisfaccionPromedio promedio global de puntajes de valoraciones (proxy
	// de satisfacción).
	SatisfaccionPromedio(ctx context.Context) (float64, error)
	ReclamosPorEstado(ctx context.Context) ([]ConteoPorClave, error)
	ReclamosPorTipo(ctx context.Context) ([]ConteoPorClave, error)
	ReclamosPorCanal(ctx context.Context) ([]ConteoPorClave, error)
}
