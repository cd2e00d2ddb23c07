package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockRecord representa la cantidad en existencia de un producto en una bodega.
// La cantidad nunca se edita directamente: toda mutación pasa por el ledger
// (take/put/rollback) que además registra el StockMovement correspondiente.
type StockRecord struct {
	ID          string
	ProductID   string
	WarehouseID string
	Quantity    decimal.Decimal
	CreatedBy   string // UserID que creó el registro
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasEnough indica si hay existencia suficiente para tomar la cantidad indicada.
func (s *StockRecord) HasEnough(quantity decimal.Decimal) bool {
	return s.Quantity.GreaterThanOrEqual(quantity)
}
