package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateTransactionRequest body para POST /api/transactions.
type CreateTransactionRequest struct {
	StockID string `json:"stock_id"`
	Name    string `json:"name,omitempty"`
}

// TransactionOpRequest body común de las operaciones de la máquina de estados.
// Quantity es opcional en las operaciones con variante total/parcial (returned,
// received, release, remove) y en sold.
type TransactionOpRequest struct {
	Quantity  *decimal.Decimal `json:"quantity,omitempty"`
	Reason    string           `json:"reason,omitempty"`
	Cost      decimal.Decimal  `json:"cost,omitempty"`
	BackOrder bool             `json:"back_order,omitempty"` // solo para reserved
}

// TransactionResponse transacción en respuestas.
type TransactionResponse struct {
	ID        string          `json:"id"`
	StockID   string          `json:"stock_id"`
	Name      string          `json:"name,omitempty"`
	State     string          `json:"state"`
	Quantity  decimal.Decimal `json:"quantity"`
	CreatedBy string          `json:"created_by,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// TransactionHistoryResponse fila de la traza en respuestas.
type TransactionHistoryResponse struct {
	ID             string          `json:"id"`
	TransactionID  string          `json:"transaction_id"`
	StateBefore    string          `json:"state_before"`
	StateAfter     string          `json:"state_after"`
	QuantityBefore decimal.Decimal `json:"quantity_before"`
	QuantityAfter  decimal.Decimal `json:"quantity_after"`
	CreatedAt      time.Time       `json:"created_at"`
}
