package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un artículo inventariable. Stock se maneja por bodega en
// StockRecord; Cost es el costo promedio y se actualiza vía movimientos.
type Product struct {
	ID           string
	SKU          string
	Name         string
	Description  string
	CategoryCode string // prefijo para generación de SKU
	Price        decimal.Decimal
	Cost         decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
