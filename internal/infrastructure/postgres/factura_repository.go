package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/coelsur/cooperativa-api/internal/domain"
	"github.com/coelsur/cooperativa-api/internal/domain/entity"
	"github.com/coelsur/cooperativa-api/internal/domain/repository"
)

var _ repository.FacturaRepository = (*FacturaRepo)(nil)

const facturaColumns = `id, cuenta_id, periodo, vencimiento, importe, estado, created_at`

// FacturaRepo implementación de FacturaRepository (usable con pool o tx).
// Los importes viajan como NUMERIC y escanean a decimal.Decimal vía el codec
// registrado en el pool.
type FacturaRepo struct {
	q Querier
}

// NewFacturaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFacturaRepository(q Querier) *FacturaRepo {
	return &FacturaRepo{q: q}
}

// Create persiste una factura (carga desde el sistema comercial).
func (r *FacturaRepo) Create(ctx context.Context, factura *entity.Factura) error {
	if factura.ID == "" {
		factura.ID = uuid.New().String()
	}
	query := `
		INSERT INTO facturas (id, cuenta_id, periodo, vencimiento, importe, estado, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		factura.ID, factura.CuentaID, factura.Periodo, factura.Vencimiento,
		factura.Importe, factura.Estado, factura.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert factura: %w", err)
	}
	return nil
}

// GetByID obtiene una factura por ID. Devuelve nil, nil si no existe.
func (r *FacturaRepo) GetByID(ctx context.Context, id string) (*entity.Factura, error) {
	query := `SELECT ` + facturaColumns + ` FROM facturas WHERE id = $1`
	var f entity.Factura
	err := r.q.QueryRow(ctx, query, id).Scan(
		&f.ID, &f.CuentaID, &f.Periodo, &f.Vencimiento, &f.Importe, &f.Estado, &f.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get factura: %w", err)
	}
	return &f, nil
}

// ListByCuenta lista facturas de la cuenta, período más reciente primero.
func (r *FacturaRepo) ListByCuenta(ctx context.Context, cuentaID string, limit, offset int) ([]*entity.Factura, error) {
	query := `SELECT ` + facturaColumns + `
		FROM facturas WHERE cuenta_id = $1
		ORDER BY periodo DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, cuentaID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list facturas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Factura
	for rows.Next() {
		var f entity.Factura
		if err := rows.Scan(&f.ID, &f.CuentaID, &f.Periodo, &f.Vencimiento, &f.Importe, &f.Estado, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan factura: %w", err)
		}
		list = append(list, &f)
	}
	return list, rows.Err()
}

// SaldoPendiente suma los importes de facturas PENDIENTE o VENCIDA de la cuenta.
func (r *FacturaRepo) SaldoPendiente(ctx context.Context, cuentaID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(importe), 0)
		FROM facturas
		WHERE cuenta_id = $1 AND estado IN ('PENDIENTE', 'VENCIDA')`
	var saldo decimal.Decimal
	if err := r.q.QueryRow(ctx, query, cuentaID).Scan(&saldo); err != nil {
		return decimal.Zero, fmt.Errorf("saldo pendiente: %w", err)
	}
	return saldo, nil
}
