package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// FacturaResponse representación de una factura.
type FacturaResponse struct {
	ID          string          `json:"id"`
	CuentaID    string          `json:"cuenta_id"`
	Periodo     string          `json:"periodo"`
	Vencimiento time.Time       `json:"vencimiento"`
	Importe     decimal.Decimal `json:"importe"`
	Estado      string          `json:"estado"`
}

// SaldoResponse saldo pendiente de una cuenta.
type SaldoResponse struct {
	CuentaID string          `json:"cuenta_id"`
	Saldo    decimal.Decimal `json:"saldo"`
}
