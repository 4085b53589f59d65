package repository

import (
	"context"

	"github.com/coelsur/cooperativa-api/internal/domain/entity"
)

// EstadisticasValoraciones agregados globales de valoraciones.
type EstadisticasValoraciones struct {
	Total         int
	Promedio      float64
	PorPuntaje    map[int]int // histograma 1..5
	ConComentario int
}

// ValoracionRepository define el puerto de persistencia para Valoracion.
// Create devuelve domain.ErrYaValorado si ya existe una fila (reclamo, socio);
// el UNIQUE de la tabla es la barrera definitiva ante carreras.
type ValoracionRepository interface {
	Create(ctx context.Context, v *entity.Valoracion) error
	GetByID(ctx context.Context, id string) (*entity.Valoracion, error)
	GetByReclamo(ctx context.Context, reclamoID string) (*entity.Valoracion, error)
	GetByReclamoAndSocio(ctx context.Context, reclamoID, socioID string) (*entity.Valoracion, error)
	ListBySocio(ctx context.Context, socioID string, limit, offset int) ([]*entity.Valoracion, error)
	Update(ctx context.Context, v *entity.Valoracion) error
	Delete(ctx context.Context, id string) error
	Estadisticas(ctx context.Context) (*EstadisticasValoraciones, error)
	Recientes(ctx context.Context, n int) ([]*entity.Valoracion, error)
}
