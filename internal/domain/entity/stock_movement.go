package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockMovement es una entrada inmutable del ledger de stock: cantidad antes y
// después de la mutación, motivo y costo. Los movimientos solo se insertan,
// nunca se actualizan; un rollback genera un movimiento nuevo.
type StockMovement struct {
	ID         string
	StockID    string
	Before     decimal.Decimal
	After      decimal.Decimal
	Cost       decimal.Decimal // con signo: negativo cuando se revierte costo en rollback
	Reason     string
	Serial     string // números de serie afectados (opcional)
	ReceiverID string // referencia a quién recibe (opcional)
	CreatedBy  string
	CreatedAt  time.Time
}

// Delta devuelve el cambio neto de cantidad que aplicó este movimiento.
func (m *StockMovement) Delta() decimal.Decimal {
	return m.After.Sub(m.Before)
}
