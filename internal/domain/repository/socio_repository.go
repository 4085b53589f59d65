package repository

import (
	"context"

	"github.com/coelsur/cooperativa-api/internal/domain/entity"
)

// SocioRepository define el puerto de persistencia para Socio.
type SocioRepository interface {
	Create(ctx context.Context, socio *entity.Socio) error
	GetByID(ctx context.Context, id string) (*entity.Socio, error)
	GetByDNI(ctx context.Context, dni string) (*entity.Socio, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Socio, error)
	// Search busca por nombre, apellido o DNI. El término llega ya normalizado
	// (sin acentos, minúsculas) desde el caso de uso.
	Search(ctx context.Context, termino string, limit, offset int) ([]*entity.Socio, error)
	Update(ctx context.Context, socio *entity.Socio) error
}

// CuentaRepository define el puerto de persistencia para Cuenta.
type CuentaRepository interface {
	Create(ctx context.Context, cuenta *entity.Cuenta) error
	GetByID(ctx context.Context, id string) (*entity.Cuenta, error)
	GetByNumero(ctx context.Context, numero string) (*entity.Cuenta, error)
	ListBySocio(ctx context.Context, socioID string) ([]*entity.Cuenta, error)
}
