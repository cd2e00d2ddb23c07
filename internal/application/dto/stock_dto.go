package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateStockRequest body para POST /api/stocks.
type CreateStockRequest struct {
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	Reason      string          `json:"reason,omitempty"`
	Cost        decimal.Decimal `json:"cost,omitempty"`
}

// StockMutationRequest body para POST /api/stocks/:id/put y /api/stocks/:id/take.
type StockMutationRequest struct {
	Quantity   decimal.Decimal `json:"quantity"`
	Reason     string          `json:"reason,omitempty"`
	Cost       decimal.Decimal `json:"cost,omitempty"`
	Serial     string          `json:"serial,omitempty"`
	ReceiverID string          `json:"receiver_id,omitempty"`
}

// MoveStockRequest body para POST /api/stocks/:id/move.
type MoveStockRequest struct {
	WarehouseID string `json:"warehouse_id"`
}

// RollbackRequest body para POST /api/stocks/:id/rollback. MovementID vacío
// revierte el movimiento más reciente.
type RollbackRequest struct {
	MovementID string `json:"movement_id,omitempty"`
	Recursive  bool   `json:"recursive,omitempty"`
}

// StockResponse registro de stock en respuestas.
type StockResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	CreatedBy   string          `json:"created_by,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// MovementResponse entrada del ledger en respuestas.
type MovementResponse struct {
	ID         string          `json:"id"`
	StockID    string          `json:"stock_id"`
	Before     decimal.Decimal `json:"before"`
	After      decimal.Decimal `json:"after"`
	Cost       decimal.Decimal `json:"cost"`
	Reason     string          `json:"reason"`
	Serial     string          `json:"serial,omitempty"`
	ReceiverID string          `json:"receiver_id,omitempty"`
	CreatedBy  string          `json:"created_by,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}
