package repository

import (
	"time"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// StockMovementRepository puerto de persistencia del ledger de movimientos.
// Solo inserta y consulta: los movimientos son append-only.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	// GetLastByStock devuelve el movimiento más reciente del stock (nil si no hay).
	GetLastByStock(stockID string) (*entity.StockMovement, error)
	ListByStock(stockID string, limit, offset int) ([]*entity.StockMovement, error)
	// ListSince devuelve los movimientos del stock creados en o después del
	// instante dado, del más reciente al más antiguo (para rollback recursivo).
	ListSince(stockID string, since time.Time) ([]*entity.StockMovement, error)
}
