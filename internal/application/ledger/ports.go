package ledger

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad entre la actualización
// del stock, la inserción del movimiento y el costo promedio del producto:
// o todo persiste o nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockRecordRepository,
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// Event evento de dominio emitido tras una operación exitosa del ledger o de
// la máquina de estados. La entrega es responsabilidad del bus suscrito.
type Event struct {
	Name        string
	At          time.Time
	Stock       *entity.StockRecord
	Movement    *entity.StockMovement
	Transaction *entity.InventoryTransaction
}

// Nombres de eventos del ledger de stock. Los de transacciones usan el prefijo
// EventTransactionPrefix + nombre de operación (ej. "inventory.transaction.checkout").
const (
	EventStockTaken    = "stock.taken"
	EventStockAdded    = "stock.added"
	EventStockMoved    = "stock.moved"
	EventStockRollback = "stock.rollback"

	EventTransactionPrefix = "inventory.transaction."
)

// EventBus puerto de publicación de eventos de dominio.
type EventBus interface {
	Publish(ctx context.Context, event Event)
}

// Flags banderas de configuración que gobiernan el comportamiento del ledger.
type Flags struct {
	// AllowDuplicateMovements: si es false, un take/put de cantidad cero es un
	// no-op sin movimiento; si es true, genera un movimiento con before == after.
	AllowDuplicateMovements bool
	// RollbackCost: si es true, el movimiento generado por un rollback lleva el
	// costo del movimiento revertido con el signo negado; si es false, costo cero.
	RollbackCost bool
	// AllowNoUser: permite operaciones sin actor autenticado.
	AllowNoUser bool
}

// DefaultFlags valores por defecto del contrato: duplicados y reversión de
// costo habilitados, operaciones anónimas deshabilitadas.
func DefaultFlags() Flags {
	return Flags{AllowDuplicateMovements: true, RollbackCost: true, AllowNoUser: false}
}
