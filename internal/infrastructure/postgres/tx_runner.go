package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coelsur/cooperativa-api/internal/application/ordenes"
	"github.com/coelsur/cooperativa-api/internal/application/reclamos"
	"github.com/coelsur/cooperativa-api/internal/application/valoraciones"
	"github.com/coelsur/cooperativa-api/internal/domain/repository"
)

// TxRunner satisface los puertos transaccionales de los casos de uso.
var _ reclamos.TxRunner = (*TxRunner)(nil)
var _ ordenes.TxRunner = (*TxRunner)(nil)
var _ valoraciones.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
// El par reclamo/orden de trabajo solo se escribe a través de Run: o se
// persisten ambos lados de la transición o ninguno.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos de reclamos y órdenes atados
// a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	reclamoRepo repository.ReclamoRepository,
	ordenRepo repository.OrdenTrabajoRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewReclamoRepository(tx), NewOrdenTrabajoRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunValoracion inicia una transacción con repos de valoraciones, reclamos y
// cuentas (alta de valoración: verificación de estado y pertenencia + insert).
func (r *TxRunner) RunValoracion(ctx context.Context, fn func(
	valoracionRepo repository.ValoracionRepository,
	reclamoRepo repository.ReclamoRepository,
	cuentaRepo repository.CuentaRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewValoracionRepository(tx), NewReclamoRepository(tx), NewCuentaRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
