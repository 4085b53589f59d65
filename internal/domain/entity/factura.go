package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de factura.
const (
	FacturaPendiente = "PENDIENTE"
	FacturaPagada    = "PAGADA"
	FacturaVencida   = "VENCIDA"
)

// Factura representa una factura de consumo emitida sobre una cuenta.
type Factura struct {
	ID          string
	CuentaID    string
	Periodo     string // "2026-08"
	Vencimiento time.Time
	Importe     decimal.Decimal
	Estado      string
	CreatedAt   time.Time
}
