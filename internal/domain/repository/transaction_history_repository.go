package repository

import "github.com/jhoicas/inventario-ledger/internal/domain/entity"

// TransactionHistoryRepository puerto de persistencia de la traza de transacciones (append-only).
type TransactionHistoryRepository interface {
	Create(history *entity.TransactionHistory) error
	ListByTransaction(transactionID string, limit, offset int) ([]*entity.TransactionHistory, error)
}
