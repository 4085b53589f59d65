package repository

import (
	"context"

	"github.com/coelsur/cooperativa-api/internal/domain/entity"
)

// EmpleadoRepository define el puerto de persistencia para Empleado.
type EmpleadoRepository interface {
	Create(ctx context.Context, empleado *entity.Empleado) error
	GetByID(ctx context.Context, id string) (*entity.Empleado, error)
	List(ctx context.Context, soloActivos bool) ([]*entity.Empleado, error)
	ListByCuadrilla(ctx context.Context, cuadrillaID string) ([]*entity.Empleado, error)
	// AsignarCuadrilla setea (o limpia, con nil) la cuadrilla del empleado.
	AsignarCuadrilla(ctx context.Context, empleadoID string, cuadrillaID *string) error
}

// CuadrillaRepository define el puerto de persistencia para Cuadrilla.
type CuadrillaRepository interface {
	Create(ctx context.Context, cuadrilla *entity.Cuadrilla) error
	GetByID(ctx context.Context, id string) (*entity.Cuadrilla, error)
	List(ctx context.Context, soloActivas bool) ([]*entity.Cuadrilla, error)
}

// TipoReclamoRepository catálogo de tipos de reclamo.
type TipoReclamoRepository interface {
	GetByID(ctx context.Context, id string) (*entity.TipoReclamo, error)
	List(ctx context.Context, soloActivos bool) ([]*entity.TipoReclamo, error)
}
