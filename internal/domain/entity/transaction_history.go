package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionHistory es la traza inmutable de una transacción: par estado/cantidad
// antes y después de cada cambio persistido. Solo se insertan filas, nunca se editan.
type TransactionHistory struct {
	ID             string
	TransactionID  string
	StateBefore    TransactionState
	StateAfter     TransactionState
	QuantityBefore decimal.Decimal
	QuantityAfter  decimal.Decimal
	CreatedBy      string
	CreatedAt      time.Time
}
