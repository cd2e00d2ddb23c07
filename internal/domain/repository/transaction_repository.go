package repository

import "github.com/jhoicas/inventario-ledger/internal/domain/entity"

// TransactionRepository puerto de persistencia para transacciones de inventario.
type TransactionRepository interface {
	Create(tx *entity.InventoryTransaction) error
	GetByID(id string) (*entity.InventoryTransaction, error)
	// GetByIDForUpdate bloquea la fila de la transacción dentro de la tx de BD.
	GetByIDForUpdate(id string) (*entity.InventoryTransaction, error)
	Update(tx *entity.InventoryTransaction) error
	ListByStock(stockID string, limit, offset int) ([]*entity.InventoryTransaction, error)
}
