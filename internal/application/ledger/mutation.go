package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// StockMutation parámetros de un take/put sobre un registro de stock.
type StockMutation struct {
	Quantity   decimal.Decimal
	Reason     string
	Cost       decimal.Decimal
	Serial     string
	ReceiverID string
	Actor      string
}

// TakeInTx ejecuta un take usando repositorios atados a la transacción de BD
// del caller (mismo patrón que usa la máquina de estados para mutar stock
// dentro de su propia tx). Bloquea la fila, verifica disponibilidad, actualiza
// la cantidad y agrega el movimiento; todo dentro de la tx del caller.
//
// Única vía de descuento de stock: no existe otro camino que reduzca Quantity
// sin dejar su StockMovement.
func TakeInTx(
	stockRepo repository.StockRecordRepository,
	movRepo repository.StockMovementRepository,
	stockID string,
	mut StockMutation,
	allowDuplicates bool,
) (*entity.StockRecord, *entity.StockMovement, error) {
	if mut.Quantity.IsNegative() {
		return nil, nil, &domain.InvalidQuantityError{Quantity: mut.Quantity}
	}
	stock, err := stockRepo.GetByIDForUpdate(stockID)
	if err != nil {
		return nil, nil, err
	}
	if stock == nil {
		return nil, nil, domain.ErrNotFound
	}
	if !stock.HasEnough(mut.Quantity) {
		return nil, nil, &domain.NotEnoughStockError{Requested: mut.Quantity, Available: stock.Quantity}
	}
	after := stock.Quantity.Sub(mut.Quantity)
	return applyInTx(stockRepo, movRepo, stock, after, mut, allowDuplicates)
}

// PutInTx espejo de TakeInTx: agrega cantidad al stock dentro de la tx del caller.
func PutInTx(
	stockRepo repository.StockRecordRepository,
	movRepo repository.StockMovementRepository,
	stockID string,
	mut StockMutation,
	allowDuplicates bool,
) (*entity.StockRecord, *entity.StockMovement, error) {
	if mut.Quantity.IsNegative() {
		return nil, nil, &domain.InvalidQuantityError{Quantity: mut.Quantity}
	}
	stock, err := stockRepo.GetByIDForUpdate(stockID)
	if err != nil {
		return nil, nil, err
	}
	if stock == nil {
		return nil, nil, domain.ErrNotFound
	}
	after := stock.Quantity.Add(mut.Quantity)
	return applyInTx(stockRepo, movRepo, stock, after, mut, allowDuplicates)
}

// applyInTx persiste la nueva cantidad y agrega el movimiento con before/after.
// Si la cantidad no cambia y los movimientos duplicados están deshabilitados,
// devuelve el registro sin tocar y sin movimiento.
func applyInTx(
	stockRepo repository.StockRecordRepository,
	movRepo repository.StockMovementRepository,
	stock *entity.StockRecord,
	after decimal.Decimal,
	mut StockMutation,
	allowDuplicates bool,
) (*entity.StockRecord, *entity.StockMovement, error) {
	before := stock.Quantity
	if before.Equal(after) && !allowDuplicates {
		return stock, nil, nil
	}
	now := time.Now()
	stock.Quantity = after
	stock.UpdatedAt = now
	if err := stockRepo.Update(stock); err != nil {
		return nil, nil, err
	}
	movement := &entity.StockMovement{
		ID:         uuid.New().String(),
		StockID:    stock.ID,
		Before:     before,
		After:      after,
		Cost:       mut.Cost,
		Reason:     mut.Reason,
		Serial:     mut.Serial,
		ReceiverID: mut.ReceiverID,
		CreatedBy:  mut.Actor,
		CreatedAt:  now,
	}
	if err := movRepo.Create(movement); err != nil {
		return nil, nil, err
	}
	return stock, movement, nil
}
