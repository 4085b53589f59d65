package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/coelsur/cooperativa-api/internal/domain/entity"
)

// FacturaRepository define el puerto de persistencia para Factura (solo consulta
// desde autogestión; la emisión viene del sistema comercial).
type FacturaRepository interface {
	Create(ctx context.Context, factura *entity.Factura) error
	GetByID(ctx context.Context, id string) (*entity.Factura, error)
	ListByCuenta(ctx context.Context, cuentaID string, limit, offset int) ([]*entity.Factura, error)
	// SaldoPendiente suma los importes de facturas PENDIENTE o VENCIDA de la cuenta.
	SaldoPendiente(ctx context.Context, cuentaID string) (decimal.Decimal, error)
}
