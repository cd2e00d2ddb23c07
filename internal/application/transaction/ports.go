package transaction

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los cuatro
// repositorios que participan en una transición: stock, movimientos,
// transacciones e historial. StockRecord, InventoryTransaction y
// TransactionHistory persisten juntos o ninguno.
type TxRunner interface {
	RunTransaction(ctx context.Context, fn func(
		stockRepo repository.StockRecordRepository,
		movRepo repository.StockMovementRepository,
		txRepo repository.TransactionRepository,
		histRepo repository.TransactionHistoryRepository,
	) error) error
}
