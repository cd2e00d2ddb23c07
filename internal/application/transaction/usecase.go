package transaction

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/application/ledger"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// TransactionUseCase implementa la máquina de estados de transacciones de
// inventario. Cada operación valida la transición contra el estado actual
// ANTES de tocar stock, ejecuta el take/put correspondiente con los primitivos
// del ledger y persiste transacción e historial en la misma tx de BD.
type TransactionUseCase struct {
	txRunner  TxRunner
	txRepo    repository.TransactionRepository
	histRepo  repository.TransactionHistoryRepository
	stockRepo repository.StockRecordRepository
	bus       ledger.EventBus
	flags     ledger.Flags
}

// NewTransactionUseCase construye el caso de uso.
func NewTransactionUseCase(
	txRunner TxRunner,
	txRepo repository.TransactionRepository,
	histRepo repository.TransactionHistoryRepository,
	stockRepo repository.StockRecordRepository,
	bus ledger.EventBus,
	flags ledger.Flags,
) *TransactionUseCase {
	return &TransactionUseCase{
		txRunner:  txRunner,
		txRepo:    txRepo,
		histRepo:  histRepo,
		stockRepo: stockRepo,
		bus:       bus,
		flags:     flags,
	}
}

func (uc *TransactionUseCase) requireActor(actor string) error {
	if actor == "" && !uc.flags.AllowNoUser {
		return domain.ErrNoUserLoggedIn
	}
	return nil
}

// Create abre una transacción sobre un registro de stock. Nace en estado
// "opened" con cantidad cero y genera su primera fila de historial.
func (uc *TransactionUseCase) Create(ctx context.Context, actor, stockID, name string) (*entity.InventoryTransaction, error) {
	if err := uc.requireActor(actor); err != nil {
		return nil, err
	}
	if stockID == "" {
		return nil, domain.ErrStockNotFound
	}
	stock, err := uc.stockRepo.GetByID(stockID)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, domain.ErrStockNotFound
	}
	now := time.Now()
	trans := &entity.InventoryTransaction{
		ID:        uuid.New().String(),
		StockID:   stockID,
		Name:      name,
		State:     entity.StateOpened,
		Quantity:  decimal.Zero,
		CreatedBy: actor,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err = uc.txRunner.RunTransaction(ctx, func(
		_ repository.StockRecordRepository,
		_ repository.StockMovementRepository,
		txRepo repository.TransactionRepository,
		histRepo repository.TransactionHistoryRepository,
	) error {
		if err := txRepo.Create(trans); err != nil {
			return err
		}
		return histRepo.Create(&entity.TransactionHistory{
			ID:             uuid.New().String(),
			TransactionID:  trans.ID,
			StateBefore:    inventory.StateNew,
			StateAfter:     trans.State,
			QuantityBefore: decimal.Zero,
			QuantityAfter:  trans.Quantity,
			CreatedBy:      actor,
			CreatedAt:      now,
		})
	})
	if err != nil {
		return nil, err
	}
	uc.publish(ctx, "opened", nil, nil, trans)
	return trans, nil
}

// GetByID devuelve una transacción.
func (uc *TransactionUseCase) GetByID(id string) (*entity.InventoryTransaction, error) {
	trans, err := uc.txRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if trans == nil {
		return nil, domain.ErrNotFound
	}
	return trans, nil
}

// ListHistory lista la traza de una transacción con paginación.
func (uc *TransactionUseCase) ListHistory(transactionID string, limit, offset int) ([]*entity.TransactionHistory, error) {
	return uc.histRepo.ListByTransaction(transactionID, limit, offset)
}

// ListByStock lista las transacciones de un registro de stock.
func (uc *TransactionUseCase) ListByStock(stockID string, limit, offset int) ([]*entity.InventoryTransaction, error) {
	return uc.txRepo.ListByStock(stockID, limit, offset)
}

// opContext repositorios atados a la tx de BD más la transacción bloqueada.
type opContext struct {
	stockRepo repository.StockRecordRepository
	movRepo   repository.StockMovementRepository
	txRepo    repository.TransactionRepository
	histRepo  repository.TransactionHistoryRepository
	trans     *entity.InventoryTransaction
	actor     string
}

// withTransaction abre la tx de BD, bloquea la fila de la transacción y ejecuta
// la operación. Cualquier error revierte stock, transacción e historial juntos.
func (uc *TransactionUseCase) withTransaction(ctx context.Context, actor, transactionID string, op inventory.Operation, fn func(oc *opContext) error) (*entity.InventoryTransaction, error) {
	if err := uc.requireActor(actor); err != nil {
		return nil, err
	}
	var trans *entity.InventoryTransaction
	err := uc.txRunner.RunTransaction(ctx, func(
		stockRepo repository.StockRecordRepository,
		movRepo repository.StockMovementRepository,
		txRepo repository.TransactionRepository,
		histRepo repository.TransactionHistoryRepository,
	) error {
		var err error
		trans, err = txRepo.GetByIDForUpdate(transactionID)
		if err != nil {
			return err
		}
		if trans == nil {
			return domain.ErrNotFound
		}
		if trans.StockID == "" {
			return domain.ErrStockNotFound
		}
		return fn(&opContext{
			stockRepo: stockRepo,
			movRepo:   movRepo,
			txRepo:    txRepo,
			histRepo:  histRepo,
			trans:     trans,
			actor:     actor,
		})
	})
	if err != nil {
		return nil, err
	}
	uc.publish(ctx, string(op), nil, nil, trans)
	return trans, nil
}

// save persiste la transacción y agrega la fila de historial con el par
// antes/después. Cambios nulos (mismo estado y cantidad) no generan historial.
func (oc *opContext) save(prevState entity.TransactionState, prevQty decimal.Decimal) error {
	now := time.Now()
	oc.trans.UpdatedAt = now
	if err := oc.txRepo.Update(oc.trans); err != nil {
		return err
	}
	if prevState == oc.trans.State && prevQty.Equal(oc.trans.Quantity) {
		return nil
	}
	return oc.histRepo.Create(&entity.TransactionHistory{
		ID:             uuid.New().String(),
		TransactionID:  oc.trans.ID,
		StateBefore:    prevState,
		StateAfter:     oc.trans.State,
		QuantityBefore: prevQty,
		QuantityAfter:  oc.trans.Quantity,
		CreatedBy:      oc.actor,
		CreatedAt:      now,
	})
}

// take descuenta stock dentro de la tx usando los primitivos del ledger.
func (oc *opContext) take(qty decimal.Decimal, reason string, cost decimal.Decimal, allowDup bool) error {
	_, _, err := ledger.TakeInTx(oc.stockRepo, oc.movRepo, oc.trans.StockID, ledger.StockMutation{
		Quantity: qty,
		Reason:   reason,
		Cost:     cost,
		Actor:    oc.actor,
	}, allowDup)
	return err
}

// put devuelve stock dentro de la tx usando los primitivos del ledger.
func (oc *opContext) put(qty decimal.Decimal, reason string, cost decimal.Decimal, allowDup bool) error {
	_, _, err := ledger.PutInTx(oc.stockRepo, oc.movRepo, oc.trans.StockID, ledger.StockMutation{
		Quantity: qty,
		Reason:   reason,
		Cost:     cost,
		Actor:    oc.actor,
	}, allowDup)
	return err
}

// reasonFor resuelve el motivo: el explícito del caller o el del catálogo.
func reasonFor(op inventory.Operation, explicit string, trans *entity.InventoryTransaction, qty decimal.Decimal) string {
	if explicit != "" {
		return explicit
	}
	return inventory.Reason(string(op), map[string]string{
		"id":       trans.ID,
		"quantity": qty.String(),
	})
}

func (uc *TransactionUseCase) publish(ctx context.Context, op string, stock *entity.StockRecord, movement *entity.StockMovement, trans *entity.InventoryTransaction) {
	if uc.bus == nil {
		return
	}
	uc.bus.Publish(ctx, ledger.Event{
		Name:        ledger.EventTransactionPrefix + op,
		At:          time.Now(),
		Stock:       stock,
		Movement:    movement,
		Transaction: trans,
	})
}
